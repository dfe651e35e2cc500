package repository

import (
	"context"
	"testing"
	"time"

	"jobboard/board_service/internal/docstore/memstore"
	"jobboard/board_service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	repo     *BoardRepository
	company  models.Company
	category models.Category
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	clock := func() time.Time { return testNow }

	repo, err := NewBoardRepository(memstore.New(memstore.WithClock(clock)))
	require.NoError(t, err)
	repo = repo.WithClock(clock)

	_, err = repo.Store().Create(ctx, models.DocCategory, map[string]any{"name": "Healthcare", "slug": "healthcare"})
	require.NoError(t, err)
	category, err := repo.Categories.GetBySlug(ctx, "healthcare")
	require.NoError(t, err)

	company, err := repo.Companies.Create(ctx, "owner-1", models.CompanyInput{Name: "Valley Health", Description: "Clinics"})
	require.NoError(t, err)

	return fixture{repo: repo, company: company, category: category}
}

func (f fixture) job(t *testing.T, title string, status models.JobStatus) models.Job {
	t.Helper()
	job, err := f.repo.Jobs.Create(context.Background(), f.company.ID, models.JobDraftInput{
		Title:       title,
		CategoryID:  f.category.ID,
		Description: "Shift work",
		Salary:      models.Salary{Type: models.SalaryHourly, Min: 28},
		Location:    models.Location{City: "Fresno", County: "Fresno"},
		JobType:     models.JobFullTime,
		Status:      status,
	})
	require.NoError(t, err)
	return job
}

func TestMakeSlug(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain title", "Registered Nurse (Night Shift)", "registered-nurse-night-shift"},
		{"only symbols", "!!!", "job"},
		{"diacritics", "Café Manager", "cafe-manager"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MakeSlug(tt.text, "job"))
		})
	}

	long := MakeSlug("lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod tempor incididunt", "job")
	assert.LessOrEqual(t, len(long), maxSlugLength)
	assert.NotEqual(t, '-', rune(long[len(long)-1]))
}

func TestJobCreateSlugsAndCounters(t *testing.T) {
	f := newFixture(t)

	first := f.job(t, "Registered Nurse", models.JobDraft)
	second := f.job(t, "Registered Nurse", models.JobPublished)
	third := f.job(t, "Registered Nurse", models.JobDraft)

	assert.Equal(t, "registered-nurse", first.Slug)
	assert.Equal(t, "registered-nurse-2", second.Slug)
	assert.Equal(t, "registered-nurse-3", third.Slug)

	assert.Nil(t, first.PublishedAt)
	require.NotNil(t, second.PublishedAt)
	assert.Equal(t, testNow, second.PublishedAt.UTC())
	assert.Zero(t, second.ViewCount)
	assert.Zero(t, second.ApplicationCount)

	require.NotNil(t, second.Company)
	assert.Equal(t, "Valley Health", second.Company.Name)
	require.NotNil(t, second.Category)
	assert.Equal(t, "healthcare", second.Category.Slug)
}

func TestJobPublishSetsTimestampOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job := f.job(t, "Welder", models.JobDraft)

	require.NoError(t, f.repo.Jobs.SetStatus(ctx, job.ID, models.JobPublished))
	published, err := f.repo.Jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	first := *published.PublishedAt

	later := f.repo.WithClock(func() time.Time { return testNow.Add(48 * time.Hour) })
	require.NoError(t, later.Jobs.SetStatus(ctx, job.ID, models.JobExpired))
	require.NoError(t, later.Jobs.SetStatus(ctx, job.ID, models.JobPublished))

	again, err := later.Jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, first, *again.PublishedAt)
}

func TestJobPublicVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	open := f.job(t, "Open", models.JobPublished)
	draft := f.job(t, "Draft", models.JobDraft)
	sibling := f.job(t, "Sibling", models.JobPublished)

	_, err := f.repo.Jobs.GetPublicBySlug(ctx, draft.Slug)
	assert.ErrorIs(t, err, models.ErrNotFound)

	got, err := f.repo.Jobs.GetPublicBySlug(ctx, open.Slug)
	require.NoError(t, err)
	assert.Equal(t, open.ID, got.ID)

	related, err := f.repo.Jobs.Related(ctx, open, 5)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, sibling.ID, related[0].ID)

	openJobs, err := f.repo.Jobs.ListPublicByCompany(ctx, f.company.ID)
	require.NoError(t, err)
	assert.Len(t, openJobs, 2)

	categories, err := f.repo.Categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, 2, categories[0].JobCount)
}

func TestJobGetManySkipsMissing(t *testing.T) {
	f := newFixture(t)
	a := f.job(t, "A", models.JobDraft)
	b := f.job(t, "B", models.JobDraft)

	jobs, err := f.repo.Jobs.GetMany(context.Background(), []string{a.ID, "missing", b.ID})
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestJobCounters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job := f.job(t, "Counter", models.JobPublished)

	require.NoError(t, f.repo.Jobs.IncViews(ctx, job.ID))
	require.NoError(t, f.repo.Jobs.IncViews(ctx, job.ID))
	require.NoError(t, f.repo.Jobs.IncApplications(ctx, job.ID))

	got, err := f.repo.Jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ViewCount)
	assert.Equal(t, 1, got.ApplicationCount)

	assert.ErrorIs(t, f.repo.Jobs.IncViews(ctx, "missing"), models.ErrNotFound)
}

func TestApplicationDuplicateIsRejectedByStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job := f.job(t, "Nurse", models.JobPublished)

	in := models.ApplicationInput{Applicant: models.Applicant{Name: "Ana", Email: "Ana@Example.com", Phone: "555"}}
	app, err := f.repo.Applications.Create(ctx, job.ID, in, testNow)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", app.Applicant.Email)
	assert.Equal(t, models.ApplicationNew, app.Status)

	exists, err := f.repo.Applications.Exists(ctx, job.ID, " ANA@example.com ")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = f.repo.Applications.Create(ctx, job.ID, in, testNow)
	assert.ErrorIs(t, err, models.ErrDuplicateApplication)
}

func TestApplicationListAndUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	nurse := f.job(t, "Nurse", models.JobPublished)
	aide := f.job(t, "Aide", models.JobPublished)

	_, err := f.repo.Applications.Create(ctx, nurse.ID, models.ApplicationInput{Applicant: models.Applicant{Name: "A", Email: "a@x.test"}}, testNow.Add(-2*time.Hour))
	require.NoError(t, err)
	second, err := f.repo.Applications.Create(ctx, aide.ID, models.ApplicationInput{Applicant: models.Applicant{Name: "B", Email: "b@x.test"}}, testNow.Add(-time.Hour))
	require.NoError(t, err)

	all, err := f.repo.Applications.ListForCompany(ctx, f.company.ID, models.ApplicationFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	require.NotNil(t, all[0].Job)
	assert.Equal(t, "Aide", all[0].Job.Title)

	onlyNurse, err := f.repo.Applications.ListForCompany(ctx, f.company.ID, models.ApplicationFilter{JobID: nurse.ID})
	require.NoError(t, err)
	assert.Len(t, onlyNurse, 1)

	other, err := f.repo.Applications.ListForCompany(ctx, "someone-else", models.ApplicationFilter{})
	require.NoError(t, err)
	assert.Empty(t, other)

	status := models.ApplicationInterviewing
	rating := 4
	interview := testNow.Add(24 * time.Hour)
	updated, err := f.repo.Applications.Update(ctx, second.ID, models.ApplicationUpdate{Status: &status, Rating: &rating, InterviewAt: &interview})
	require.NoError(t, err)
	assert.Equal(t, status, updated.Status)
	assert.Equal(t, 4, updated.Rating)
	require.NotNil(t, updated.InterviewAt)
	assert.True(t, interview.Equal(*updated.InterviewAt))

	interviewing, err := f.repo.Applications.ListForCompany(ctx, f.company.ID, models.ApplicationFilter{Status: status})
	require.NoError(t, err)
	assert.Len(t, interviewing, 1)
}

func TestUserFindOrCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	missing, err := f.repo.Users.FindByEmail(ctx, "new@x.test")
	require.NoError(t, err)
	assert.True(t, missing.IsAbsent())

	user, created, err := f.repo.Users.FindOrCreate(ctx, "New@X.test", "New User")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.RoleJobseeker, user.Role)
	assert.Equal(t, "new@x.test", user.Email)

	again, created, err := f.repo.Users.FindOrCreate(ctx, "new@x.test", "Other Name")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.ID, again.ID)

	employer, err := f.repo.Users.AttachCompany(ctx, user.ID, f.company.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployer, employer.Role)
	assert.Equal(t, f.company.ID, employer.CompanyID)
}

func TestFollowIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.repo.Follows.Follow(ctx, "u1", f.company.ID))
	require.NoError(t, f.repo.Follows.Follow(ctx, "u1", f.company.ID))

	follows, err := f.repo.Follows.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, follows, 1)

	following, err := f.repo.Follows.IsFollowing(ctx, "u1", f.company.ID)
	require.NoError(t, err)
	assert.True(t, following)

	require.NoError(t, f.repo.Follows.Unfollow(ctx, "u1", f.company.ID))
	require.NoError(t, f.repo.Follows.Unfollow(ctx, "u1", f.company.ID))

	following, err = f.repo.Follows.IsFollowing(ctx, "u1", f.company.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestTransactRollsBackAllRepositories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job := f.job(t, "Nurse", models.JobPublished)

	err := f.repo.Transact(ctx, func(tx *BoardRepository) error {
		if _, err := tx.Applications.Create(ctx, job.ID, models.ApplicationInput{Applicant: models.Applicant{Name: "A", Email: "a@x.test"}}, testNow); err != nil {
			return err
		}
		if err := tx.Jobs.IncApplications(ctx, job.ID); err != nil {
			return err
		}
		return tx.Jobs.IncApplications(ctx, "missing")
	})
	assert.ErrorIs(t, err, models.ErrNotFound)

	got, err := f.repo.Jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Zero(t, got.ApplicationCount)

	apps, err := f.repo.CompanyApplications(ctx, f.company.ID)
	require.NoError(t, err)
	assert.Empty(t, apps)
}
