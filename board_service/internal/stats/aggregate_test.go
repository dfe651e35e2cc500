package stats

import (
	"math"
	"testing"
	"time"

	"jobboard/board_service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func app(status models.ApplicationStatus, applied time.Time, interview *time.Time) models.Application {
	return models.Application{Status: status, AppliedAt: applied, InterviewAt: interview}
}

func ptr(t time.Time) *time.Time { return &t }

func TestOverview(t *testing.T) {
	jobs := []models.Job{
		{ID: "1", Status: models.JobPublished, ViewCount: 100},
		{ID: "2", Status: models.JobDraft, ViewCount: 0},
		{ID: "3", Status: models.JobPublished, ViewCount: 50},
		{ID: "4", Status: models.JobFilled, ViewCount: 50},
	}
	apps := []models.Application{
		app(models.ApplicationNew, now.Add(-time.Hour), nil),
		app(models.ApplicationNew, now.AddDate(0, 0, -6), nil),
		app(models.ApplicationReviewed, now.AddDate(0, 0, -8), nil),
		app(models.ApplicationHired, now.AddDate(0, 0, -20), ptr(now.AddDate(0, 0, -16))),
	}

	got := Overview(jobs, apps, now)
	assert.Equal(t, models.DashboardOverview{
		TotalJobs:         4,
		ActiveJobs:        2,
		TotalApplications: 4,
		NewApplications:   2,
		TotalViews:        200,
		AverageTimeToHire: 4,
		ConversionRate:    2,
	}, got)
}

func TestAverageTimeToHire(t *testing.T) {
	base := now.AddDate(0, 0, -30)

	tests := []struct {
		name string
		apps []models.Application
		want int
	}{
		{"no applications", nil, 0},
		{"no hires", []models.Application{app(models.ApplicationInterviewing, base, ptr(base.AddDate(0, 0, 3)))}, 0},
		{"hire without interview time is skipped", []models.Application{app(models.ApplicationHired, base, nil)}, 0},
		{
			name: "whole days then rounded mean",
			apps: []models.Application{
				app(models.ApplicationHired, base, ptr(base.Add(2*24*time.Hour+20*time.Hour))), // 2
				app(models.ApplicationHired, base, ptr(base.AddDate(0, 0, 5))),                // 5
			},
			want: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AverageTimeToHire(tt.apps))
		})
	}
}

func TestConversionRateNeverDividesByZero(t *testing.T) {
	assert.Zero(t, ConversionRate(5, 0))
	assert.Zero(t, ConversionRate(0, 0))
	assert.Equal(t, 25.0, ConversionRate(1, 4))

	rate := ConversionRate(3, 0)
	assert.False(t, math.IsNaN(rate) || math.IsInf(rate, 0))
}

func TestTopJobs(t *testing.T) {
	jobs := []models.Job{
		{ID: "a", ViewCount: 10, ApplicationCount: 1},
		{ID: "b", ViewCount: 30, ApplicationCount: 3},
		{ID: "c", ViewCount: 10, ApplicationCount: 0},
		{ID: "d", ViewCount: 0, ApplicationCount: 2},
	}

	top := TopJobs(jobs, 3)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{top[0].JobID, top[1].JobID, top[2].JobID})
	assert.Equal(t, 10.0, top[0].ConversionRate)

	all := TopJobs(jobs, 10)
	assert.Len(t, all, 4)
	assert.Zero(t, all[3].ConversionRate)
	assert.Equal(t, "a", jobs[0].ID, "input is not reordered")

	assert.Empty(t, TopJobs(jobs, 0))
}

func TestApplicationTrend(t *testing.T) {
	var apps []models.Application
	for i := 0; i < 40; i++ {
		apps = append(apps, app(models.ApplicationNew, now.AddDate(0, 0, -i), nil))
	}
	apps = append(apps,
		app(models.ApplicationNew, now.Add(-time.Minute), nil),
		app(models.ApplicationNew, now.AddDate(0, 0, 1), nil),
	)

	trend := ApplicationTrend(apps, 30, now, time.UTC)
	require.Len(t, trend, 30)
	assert.Equal(t, "2024-05-17", trend[0].Date)
	assert.Equal(t, "2024-06-15", trend[29].Date)
	assert.Equal(t, 2, trend[29].Count)

	sum := 0
	for i, p := range trend {
		_, err := time.Parse("2006-01-02", p.Date)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p.Count, 0)
		if i > 0 {
			assert.Less(t, trend[i-1].Date, p.Date)
		}
		sum += p.Count
	}
	assert.Equal(t, 31, sum)
}

func TestApplicationTrendZeroFillAndLocation(t *testing.T) {
	trend := ApplicationTrend(nil, 7, now, nil)
	require.Len(t, trend, 7)
	for _, p := range trend {
		assert.Zero(t, p.Count)
	}

	assert.Empty(t, ApplicationTrend(nil, 0, now, time.UTC))

	// 02:00 UTC 15 июня - это ещё 14 июня в Лос-Анджелесе
	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skip("tzdata not available")
	}
	late := time.Date(2024, 6, 15, 2, 0, 0, 0, time.UTC)
	got := ApplicationTrend([]models.Application{app(models.ApplicationNew, late, nil)}, 2, now, la)
	assert.Equal(t, []models.TrendPoint{{Date: "2024-06-14", Count: 1}, {Date: "2024-06-15", Count: 0}}, got)
}

func TestRecentActivity(t *testing.T) {
	jobs := []models.Job{{ID: "j1", Title: "Welder"}}
	apps := []models.Application{
		{ID: "a1", JobID: "j1", AppliedAt: now.AddDate(0, 0, -3), Applicant: models.Applicant{Name: "Ann"}},
		{ID: "a2", JobID: "j1", AppliedAt: now.AddDate(0, 0, -1), Applicant: models.Applicant{Name: "Bob"}},
		{ID: "a3", JobID: "j1", AppliedAt: now.AddDate(0, 0, -2), Applicant: models.Applicant{Name: "Cy"}},
	}

	got := RecentActivity(jobs, apps, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "a2", got[0].ApplicationID)
	assert.Equal(t, "a3", got[1].ApplicationID)
	assert.Equal(t, "Welder", got[0].JobTitle)
}
