package sampledata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobboard/board_service/internal/docstore"
	"jobboard/board_service/internal/docstore/memstore"
	"jobboard/board_service/internal/domain/docmap"
	"jobboard/board_service/internal/domain/models"
)

// StatsSource отдаёт демонстрационные вакансии и отклики независимо от компании
type StatsSource struct {
	Now func() time.Time
}

func (s StatsSource) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s StatsSource) CompanyJobs(ctx context.Context, _ string) ([]models.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Jobs(s.now()), nil
}

func (s StatsSource) CompanyApplications(ctx context.Context, _ string) ([]models.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Applications(s.now()), nil
}

// SeedResult - сколько документов создано
type SeedResult struct {
	Categories   int
	Companies    int
	Jobs         int
	Applications int
}

func (r SeedResult) String() string {
	return fmt.Sprintf("categories=%d companies=%d jobs=%d applications=%d",
		r.Categories, r.Companies, r.Jobs, r.Applications)
}

// Seed загружает набор в хранилище одной транзакцией. Повторный запуск упрётся
// в уникальность slug и откатится целиком
func Seed(ctx context.Context, store docstore.Store, now time.Time) (SeedResult, error) {
	var res SeedResult

	err := store.Transact(ctx, func(tx docstore.Store) error {
		res = SeedResult{}
		categoryIDs := map[string]string{}
		for _, c := range categories {
			d, err := tx.Create(ctx, models.DocCategory, map[string]any{
				"name":        c.name,
				"slug":        c.slug,
				"description": c.description,
			})
			if err != nil {
				return fmt.Errorf("seed category %s: %w", c.slug, err)
			}
			categoryIDs[c.slug] = d.ID
			res.Categories++
		}

		companyIDs := map[string]string{}
		for _, c := range Companies() {
			fields := docmap.CompanyFields(models.CompanyInput{
				Name:        c.Name,
				Description: c.Description,
				Size:        c.Size,
				Locations:   c.Locations,
				Benefits:    c.Benefits,
				Email:       "hiring@" + c.Slug + ".example.com",
			})
			fields["slug"] = c.Slug
			fields["verified"] = c.Verified
			fields["owner"] = nil

			d, err := tx.Create(ctx, models.DocCompany, fields)
			if err != nil {
				return fmt.Errorf("seed company %s: %w", c.Slug, err)
			}
			companyIDs[c.Slug] = d.ID
			res.Companies++
		}

		jobIDs := map[string]string{}
		for _, j := range Jobs(now) {
			fields := docmap.JobFields(models.JobDraftInput{
				Title:           j.Title,
				CategoryID:      categoryIDs[j.Category.Slug],
				Description:     j.Description,
				Salary:          j.Salary,
				Location:        j.Location,
				Remote:          j.Remote,
				JobType:         j.JobType,
				ExperienceLevel: j.ExperienceLevel,
				Benefits:        j.Benefits,
				Skills:          j.Skills,
				Certifications:  j.Certifications,
				Urgent:          j.Urgent,
				Featured:        j.Featured,
				Status:          j.Status,
			})
			fields["slug"] = j.Slug
			fields["company"] = companyIDs[j.Company.Slug]
			fields["viewCount"] = j.ViewCount
			fields["applicationCount"] = j.ApplicationCount
			fields["publishedAt"] = j.PublishedAt

			d, err := tx.Create(ctx, models.DocJob, fields)
			if err != nil {
				return fmt.Errorf("seed job %s: %w", j.Slug, err)
			}
			jobIDs[j.ID] = d.ID
			res.Jobs++
		}

		for _, a := range Applications(now) {
			fields := docmap.ApplicationFields(jobIDs[a.JobID], models.ApplicationInput{Applicant: a.Applicant}, a.AppliedAt)
			fields["status"] = string(a.Status)
			fields["rating"] = a.Rating
			fields["interviewAt"] = a.InterviewAt

			if _, err := tx.Create(ctx, models.DocApplication, fields); err != nil {
				return fmt.Errorf("seed application %s: %w", strings.TrimPrefix(a.ID, IDPrefix), err)
			}
			res.Applications++
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}
	return res, nil
}

// NewStore - хранилище в памяти, заполненное демонстрационным набором
func NewStore(now time.Time) (*memstore.Store, error) {
	store := memstore.New()
	if _, err := Seed(context.Background(), store, now); err != nil {
		return nil, err
	}
	return store, nil
}
