package service

import (
	"context"
	"testing"
	"time"

	"jobboard/board_service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applicant(email string) models.ApplicationInput {
	return models.ApplicationInput{
		Applicant: models.Applicant{Name: "Luis Ortega", Email: email, Phone: "559-555-0101"},
	}
}

func TestApply(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewApplicationService(f.repo, nil, discardLogger())
	job := f.job(t, f.company.ID, "MIG Welder", models.JobPublished)
	draft := f.job(t, f.company.ID, "Hidden", models.JobDraft)

	app, err := svc.Apply(ctx, job.Slug, applicant("Luis@Example.com "))
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationNew, app.Status)
	assert.Equal(t, "luis@example.com", app.Applicant.Email)
	require.NotNil(t, app.Job)
	assert.Equal(t, job.ID, app.Job.ID)

	stored, err := f.repo.Jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ApplicationCount)

	t.Run("duplicate email ignoring case", func(t *testing.T) {
		_, err := svc.Apply(ctx, job.Slug, applicant("LUIS@example.com"))
		assert.ErrorIs(t, err, models.ErrDuplicateApplication)

		stored, err := f.repo.Jobs.GetByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.ApplicationCount)
	})

	t.Run("draft job", func(t *testing.T) {
		_, err := svc.Apply(ctx, draft.Slug, applicant("a@b.test"))
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("deadline passed", func(t *testing.T) {
		deadline := time.Now().Add(-time.Hour)
		late, err := f.repo.Jobs.Create(ctx, f.company.ID, models.JobDraftInput{
			Title: "Late Role", Status: models.JobPublished, ApplicationDeadline: &deadline,
		})
		require.NoError(t, err)

		_, err = svc.Apply(ctx, late.Slug, applicant("a@b.test"))
		assert.ErrorIs(t, err, models.ErrJobNotOpen)
	})
}

func TestApplicationsForEmployer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewApplicationService(f.repo, nil, discardLogger())

	own := f.job(t, f.company.ID, "MIG Welder", models.JobPublished)
	foreign := f.job(t, f.other.ID, "Driver", models.JobPublished)

	mine, err := svc.Apply(ctx, own.Slug, applicant("dana@example.com"))
	require.NoError(t, err)
	theirs, err := svc.Apply(ctx, foreign.Slug, applicant("sam@example.com"))
	require.NoError(t, err)

	t.Run("list only own company", func(t *testing.T) {
		apps, err := svc.List(ctx, f.employer, models.ApplicationFilter{})
		require.NoError(t, err)
		require.Len(t, apps, 1)
		assert.Equal(t, mine.ID, apps[0].ID)
	})

	t.Run("filter by foreign job", func(t *testing.T) {
		_, err := svc.List(ctx, f.employer, models.ApplicationFilter{JobID: foreign.ID})
		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("update own", func(t *testing.T) {
		status := models.ApplicationInterviewing
		rating := 4
		updated, err := svc.Update(ctx, f.employer, mine.ID, models.ApplicationUpdate{Status: &status, Rating: &rating})
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
		assert.Equal(t, 4, updated.Rating)
	})

	t.Run("rating out of range", func(t *testing.T) {
		rating := 9
		_, err := svc.Update(ctx, f.employer, mine.ID, models.ApplicationUpdate{Rating: &rating})
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("update foreign", func(t *testing.T) {
		status := models.ApplicationRejected
		_, err := svc.Update(ctx, f.employer, theirs.ID, models.ApplicationUpdate{Status: &status})
		assert.ErrorIs(t, err, models.ErrForbidden)
	})
}
