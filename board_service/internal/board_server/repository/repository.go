// описание слоя репозитория доски вакансий поверх хранилища документов
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobboard/board_service/internal/docstore"
	"jobboard/board_service/internal/domain/models"
)

// описание структуры слоя репозитория
type BoardRepository struct {
	store docstore.Store
	now   func() time.Time

	Jobs         *JobRepository
	Companies    *CompanyRepository
	Categories   *CategoryRepository
	Applications *ApplicationRepository
	Users        *UserRepository
	Follows      *FollowRepository
}

// конструктор для слоя репозиторий
func NewBoardRepository(store docstore.Store) (*BoardRepository, error) {
	if store == nil {
		return nil, fmt.Errorf("document store is required")
	}
	return newBoardRepository(store, time.Now), nil
}

func newBoardRepository(store docstore.Store, now func() time.Time) *BoardRepository {
	return &BoardRepository{
		store:        store,
		now:          now,
		Jobs:         &JobRepository{store: store, now: now},
		Companies:    &CompanyRepository{store: store},
		Categories:   &CategoryRepository{store: store, now: now},
		Applications: &ApplicationRepository{store: store},
		Users:        &UserRepository{store: store},
		Follows:      &FollowRepository{store: store},
	}
}

// WithClock - копия репозитория с другими часами (тесты)
func (r *BoardRepository) WithClock(now func() time.Time) *BoardRepository {
	return newBoardRepository(r.store, now)
}

// Store - хранилище, поверх которого работает репозиторий
func (r *BoardRepository) Store() docstore.Store {
	return r.store
}

// Transact выполняет fn в одной транзакции хранилища; все репозитории tx работают внутри неё
func (r *BoardRepository) Transact(ctx context.Context, fn func(tx *BoardRepository) error) error {
	return r.store.Transact(ctx, func(tx docstore.Store) error {
		return fn(newBoardRepository(tx, r.now))
	})
}

// CompanyJobs - все вакансии компании; источник для статистики
func (r *BoardRepository) CompanyJobs(ctx context.Context, companyID string) ([]models.Job, error) {
	return r.Jobs.ListByCompany(ctx, companyID)
}

// CompanyApplications - все отклики на вакансии компании; источник для статистики
func (r *BoardRepository) CompanyApplications(ctx context.Context, companyID string) ([]models.Application, error) {
	return r.Applications.ListForCompany(ctx, companyID, models.ApplicationFilter{})
}

// translateError переводит ошибки хранилища в доменные
func translateError(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return fmt.Errorf("%w: %v", models.ErrNotFound, err)
	}
	return err
}

// fetchOne - первый документ по запросу или models.ErrNotFound
func fetchOne(ctx context.Context, store docstore.Store, q docstore.Query) (docstore.Document, error) {
	q.Limit = 1
	docs, err := store.Fetch(ctx, q)
	if err != nil {
		return docstore.Document{}, err
	}
	if len(docs) == 0 {
		return docstore.Document{}, models.ErrNotFound
	}
	return docs[0], nil
}

func byID(docType, id string, expand ...string) docstore.Query {
	return docstore.Query{
		Type:   docType,
		Filter: docstore.Eq("_id", "id"),
		Params: docstore.Params{"id": id},
		Expand: expand,
	}
}

func bySlug(docType, slug string, expand ...string) docstore.Query {
	return docstore.Query{
		Type:   docType,
		Filter: docstore.Eq("slug", "slug"),
		Params: docstore.Params{"slug": slug},
		Expand: expand,
	}
}
