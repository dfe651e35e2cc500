package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"jobboard/board_service/configs"
	"jobboard/board_service/internal/board_server/repository"
	"jobboard/board_service/internal/docstore"
	"jobboard/board_service/internal/docstore/memstore"
	"jobboard/board_service/internal/domain/models"
	"jobboard/board_service/internal/sampledata"

	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("store unavailable")

// flakyStore - хранилище, которое по флагу перестаёт отвечать на чтения
type flakyStore struct {
	docstore.Store
	down  atomic.Bool
	reads atomic.Int32
}

func (s *flakyStore) Fetch(ctx context.Context, q docstore.Query) ([]docstore.Document, error) {
	s.reads.Add(1)
	if s.down.Load() {
		return nil, errStoreDown
	}
	return s.Store.Fetch(ctx, q)
}

func (s *flakyStore) Count(ctx context.Context, q docstore.Query) (int, error) {
	if s.down.Load() {
		return 0, errStoreDown
	}
	return s.Store.Count(ctx, q)
}

func (s *flakyStore) Get(ctx context.Context, id string) (docstore.Document, error) {
	if s.down.Load() {
		return docstore.Document{}, errStoreDown
	}
	return s.Store.Get(ctx, id)
}

// passBreaker пропускает все вызовы
type passBreaker struct{}

func (passBreaker) Execute(fn func() error) error { return fn() }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	store    *flakyStore
	repo     *repository.BoardRepository
	fallback *repository.BoardRepository
	company  models.Company
	other    models.Company
	category models.Category
	employer models.Identity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := &flakyStore{Store: memstore.New()}
	repo, err := repository.NewBoardRepository(store)
	require.NoError(t, err)

	sample, err := sampledata.NewStore(time.Now())
	require.NoError(t, err)
	fallback, err := repository.NewBoardRepository(sample)
	require.NoError(t, err)

	_, err = store.Create(ctx, models.DocCategory, map[string]any{"name": "Skilled Trades", "slug": "skilled-trades"})
	require.NoError(t, err)
	category, err := repo.Categories.GetBySlug(ctx, "skilled-trades")
	require.NoError(t, err)

	company, err := repo.Companies.Create(ctx, "owner-1", models.CompanyInput{Name: "Valley Fabrication", Description: "Steel"})
	require.NoError(t, err)
	other, err := repo.Companies.Create(ctx, "owner-2", models.CompanyInput{Name: "Kings Logistics", Description: "Freight"})
	require.NoError(t, err)

	return &fixture{
		store:    store,
		repo:     repo,
		fallback: fallback,
		company:  company,
		other:    other,
		category: category,
		employer: models.Identity{ID: "owner-1", Email: "boss@valley.test", Role: models.RoleEmployer, CompanyID: company.ID},
	}
}

func (f *fixture) job(t *testing.T, companyID, title string, status models.JobStatus) models.Job {
	t.Helper()
	job, err := f.repo.Jobs.Create(context.Background(), companyID, models.JobDraftInput{
		Title:       title,
		CategoryID:  f.category.ID,
		Description: "Shop floor work",
		Salary:      models.Salary{Type: models.SalaryHourly, Min: 25},
		Location:    models.Location{City: "Fresno", County: "Fresno County"},
		JobType:     models.JobFullTime,
		Status:      status,
	})
	require.NoError(t, err)
	return job
}

func (f *fixture) publicService() *PublicService {
	return NewPublicService(f.repo, f.fallback, passBreaker{}, nil, configs.UseDefaultListingConfig(), discardLogger())
}
