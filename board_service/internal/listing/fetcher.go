package listing

import (
	"context"
	"fmt"
	"time"

	"jobboard/board_service/internal/docstore"
	"jobboard/board_service/internal/domain/docmap"
	"jobboard/board_service/internal/domain/models"

	"golang.org/x/sync/errgroup"
)

// Fetcher выполняет запросы листинга
type Fetcher struct {
	store       docstore.Store
	maxPageSize int
	now         func() time.Time
}

// конструктор; maxPageSize <= 0 - без ограничения
func NewFetcher(store docstore.Store, maxPageSize int) *Fetcher {
	return &Fetcher{store: store, maxPageSize: maxPageSize, now: time.Now}
}

// FetchJobs выполняет запрос страницы и запрос количества параллельно.
// Ошибка любого из них - ошибка всей операции, частичных результатов нет
func (f *Fetcher) FetchJobs(ctx context.Context, filter models.JobFilter) (models.JobPage, error) {
	if f.maxPageSize > 0 && filter.PageSize > f.maxPageSize {
		filter.PageSize = f.maxPageSize
	}

	queries, err := BuildJobQueries(filter, f.now())
	if err != nil {
		return models.JobPage{}, err
	}

	var (
		docs  []docstore.Document
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		docs, err = f.store.Fetch(gctx, queries.Page)
		if err != nil {
			return fmt.Errorf("failed to fetch job page: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		total, err = f.store.Count(gctx, queries.Count)
		if err != nil {
			return fmt.Errorf("failed to count jobs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.JobPage{}, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}

	return models.JobPage{
		Items:    docmap.JobsFromDocuments(docs),
		Total:    total,
		Page:     page,
		PageSize: filter.PageSize,
		Pages:    Pages(total, filter.PageSize),
	}, nil
}
