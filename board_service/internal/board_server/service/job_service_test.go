package service

import (
	"context"
	"testing"

	"jobboard/board_service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobServiceOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewJobService(f.repo, nil, discardLogger())
	foreign := f.job(t, f.other.ID, "Forklift Driver", models.JobPublished)

	created, err := svc.Create(ctx, f.employer, models.JobDraftInput{Title: "Press Operator", Description: "Run presses"})
	require.NoError(t, err)
	assert.Equal(t, models.JobDraft, created.Status)
	assert.Nil(t, created.PublishedAt)
	assert.Equal(t, f.company.ID, created.CompanyID)

	t.Run("own jobs listed", func(t *testing.T) {
		jobs, err := svc.ListOwn(ctx, f.employer)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, created.ID, jobs[0].ID)
	})

	t.Run("foreign job is forbidden", func(t *testing.T) {
		_, err := svc.Get(ctx, f.employer, foreign.ID)
		assert.ErrorIs(t, err, models.ErrForbidden)

		_, err = svc.Update(ctx, f.employer, foreign.ID, models.JobDraftInput{Title: "Hijacked"})
		assert.ErrorIs(t, err, models.ErrForbidden)

		assert.ErrorIs(t, svc.Delete(ctx, f.employer, foreign.ID), models.ErrForbidden)

		stored, err := f.repo.Jobs.GetByID(ctx, foreign.ID)
		require.NoError(t, err)
		assert.Equal(t, "Forklift Driver", stored.Title)
	})

	t.Run("admin may manage any job", func(t *testing.T) {
		admin := models.Identity{ID: "root", Role: models.RoleAdmin}
		got, err := svc.Get(ctx, admin, foreign.ID)
		require.NoError(t, err)
		assert.Equal(t, foreign.ID, got.ID)
	})

	t.Run("missing job", func(t *testing.T) {
		_, err := svc.Get(ctx, f.employer, "nope")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("employer without company", func(t *testing.T) {
		_, err := svc.Create(ctx, models.Identity{ID: "u9", Role: models.RoleEmployer}, models.JobDraftInput{Title: "X"})
		assert.ErrorIs(t, err, models.ErrCompanyRequired)
	})

	t.Run("update keeps status when empty and publishes once", func(t *testing.T) {
		updated, err := svc.Update(ctx, f.employer, created.ID, models.JobDraftInput{Title: "Press Operator II", Description: "Run presses"})
		require.NoError(t, err)
		assert.Equal(t, models.JobDraft, updated.Status)

		published, err := svc.Update(ctx, f.employer, created.ID, models.JobDraftInput{Title: "Press Operator II", Status: models.JobPublished})
		require.NoError(t, err)
		require.NotNil(t, published.PublishedAt)

		again, err := svc.Update(ctx, f.employer, created.ID, models.JobDraftInput{Title: "Press Operator III", Status: models.JobPublished})
		require.NoError(t, err)
		assert.Equal(t, published.PublishedAt, again.PublishedAt)
	})

	t.Run("delete own job", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, f.employer, created.ID))
		_, err := f.repo.Jobs.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestJobServiceBulk(t *testing.T) {
	tests := []struct {
		name       string
		action     models.BulkAction
		foreign    bool
		missing    bool
		wantErr    error
		wantStatus models.JobStatus
		wantGone   bool
	}{
		{name: "publish", action: models.BulkPublish, wantStatus: models.JobPublished},
		{name: "expire", action: models.BulkExpire, wantStatus: models.JobExpired},
		{name: "delete", action: models.BulkDelete, wantGone: true},
		{name: "foreign id rejects whole batch", action: models.BulkDelete, foreign: true, wantErr: models.ErrForbidden, wantStatus: models.JobDraft},
		{name: "missing id rejects whole batch", action: models.BulkPublish, missing: true, wantErr: models.ErrForbidden, wantStatus: models.JobDraft},
		{name: "unknown action", action: "archive", wantErr: models.ErrInvalidInput, wantStatus: models.JobDraft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			svc := NewJobService(f.repo, nil, discardLogger())

			a := f.job(t, f.company.ID, "Welder", models.JobDraft)
			b := f.job(t, f.company.ID, "Fitter", models.JobDraft)
			ids := []string{a.ID, b.ID, a.ID}

			var foreign models.Job
			if tt.foreign {
				foreign = f.job(t, f.other.ID, "Driver", models.JobPublished)
				ids = append(ids, foreign.ID)
			}
			if tt.missing {
				ids = append(ids, "does-not-exist")
			}

			res, err := svc.Bulk(ctx, f.employer, tt.action, ids)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 2, res.Affected)
			}

			for _, id := range []string{a.ID, b.ID} {
				job, err := f.repo.Jobs.GetByID(ctx, id)
				if tt.wantGone {
					assert.ErrorIs(t, err, models.ErrNotFound)
					continue
				}
				require.NoError(t, err)
				assert.Equal(t, tt.wantStatus, job.Status)
			}

			if tt.foreign {
				job, err := f.repo.Jobs.GetByID(ctx, foreign.ID)
				require.NoError(t, err)
				assert.Equal(t, models.JobPublished, job.Status)
			}
		})
	}
}
