package models

import (
	"net/url"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJobFilter(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    JobFilter
		wantErr bool
	}{
		{
			name:  "empty query leaves every dimension unset",
			query: "",
			want: JobFilter{
				Category: mo.None[string](), Location: mo.None[string](), JobType: mo.None[JobType](),
				ExperienceLevel: mo.None[ExperienceLevel](), SalaryMin: mo.None[int](), Search: mo.None[string](),
				Page: 1, PageSize: 12,
			},
		},
		{
			name:  "all dimensions",
			query: "category=healthcare&location=Fresno&jobType=full-time&experienceLevel=senior&salaryMin=30&search=nurse&page=3&pageSize=5",
			want: JobFilter{
				Category: mo.Some("healthcare"), Location: mo.Some("Fresno"), JobType: mo.Some(JobFullTime),
				ExperienceLevel: mo.Some(LevelSenior), SalaryMin: mo.Some(30), Search: mo.Some("nurse"),
				Page: 3, PageSize: 5,
			},
		},
		{
			name:  "zero salary floor is no floor",
			query: "salaryMin=0&page=0&search=%20%20",
			want: JobFilter{
				Category: mo.None[string](), Location: mo.None[string](), JobType: mo.None[JobType](),
				ExperienceLevel: mo.None[ExperienceLevel](), SalaryMin: mo.None[int](), Search: mo.None[string](),
				Page: 1, PageSize: 12,
			},
		},
		{
			name:    "negative salary",
			query:   "salaryMin=-5",
			wantErr: true,
		},
		{
			name:    "non-numeric page size",
			query:   "pageSize=ten",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			got, err := ParseJobFilter(values, 12)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJobIsPublic(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, Job{Status: JobPublished}.IsPublic(now))
	assert.True(t, Job{Status: JobPublished, ExpiresAt: &future}.IsPublic(now))
	assert.False(t, Job{Status: JobPublished, ExpiresAt: &past}.IsPublic(now))
	assert.False(t, Job{Status: JobDraft}.IsPublic(now))
}
