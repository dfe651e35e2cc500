package repository

import (
	"context"
	"fmt"
	"time"

	"jobboard/board_service/internal/docstore"
	"jobboard/board_service/internal/domain/docmap"
	"jobboard/board_service/internal/domain/models"
	"jobboard/board_service/internal/listing"
)

// репозиторий компаний
type CompanyRepository struct {
	store docstore.Store
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (models.Company, error) {
	if err := ctx.Err(); err != nil {
		return models.Company{}, err
	}
	d, err := fetchOne(ctx, r.store, byID(models.DocCompany, id))
	if err != nil {
		return models.Company{}, fmt.Errorf("company %s: %w", id, err)
	}
	return docmap.CompanyFromDocument(d), nil
}

func (r *CompanyRepository) GetBySlug(ctx context.Context, slug string) (models.Company, error) {
	if err := ctx.Err(); err != nil {
		return models.Company{}, err
	}
	d, err := fetchOne(ctx, r.store, bySlug(models.DocCompany, slug))
	if err != nil {
		return models.Company{}, fmt.Errorf("company %s: %w", slug, err)
	}
	return docmap.CompanyFromDocument(d), nil
}

// List - все компании: проверенные первыми, затем по имени
func (r *CompanyRepository) List(ctx context.Context) ([]models.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	docs, err := r.store.Fetch(ctx, docstore.Query{
		Type:  models.DocCompany,
		Order: []docstore.Order{{Field: "verified", Desc: true}, {Field: "name"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch companies: %w", err)
	}

	out := make([]models.Company, len(docs))
	for i, d := range docs {
		out[i] = docmap.CompanyFromDocument(d)
	}
	return out, nil
}

// Create - компания пользователя; новая компания не проверена
func (r *CompanyRepository) Create(ctx context.Context, ownerID string, in models.CompanyInput) (models.Company, error) {
	if err := ctx.Err(); err != nil {
		return models.Company{}, err
	}

	fields := docmap.CompanyFields(in)
	fields["owner"] = ownerID
	fields["verified"] = false

	d, err := createWithSlug(ctx, r.store, models.DocCompany, in.Name, "company", fields)
	if err != nil {
		return models.Company{}, fmt.Errorf("failed to create company: %w", err)
	}
	return docmap.CompanyFromDocument(d), nil
}

// Update перезаписывает поля профиля; slug и verified не меняются
func (r *CompanyRepository) Update(ctx context.Context, id string, in models.CompanyInput) (models.Company, error) {
	if err := ctx.Err(); err != nil {
		return models.Company{}, err
	}
	d, err := r.store.Patch(id).SetAll(docmap.CompanyFields(in)).Commit(ctx)
	if err != nil {
		return models.Company{}, fmt.Errorf("failed to update company: %w", translateError(err))
	}
	return docmap.CompanyFromDocument(d), nil
}

// репозиторий категорий
type CategoryRepository struct {
	store docstore.Store
	now   func() time.Time
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (models.Category, error) {
	if err := ctx.Err(); err != nil {
		return models.Category{}, err
	}
	d, err := fetchOne(ctx, r.store, bySlug(models.DocCategory, slug))
	if err != nil {
		return models.Category{}, fmt.Errorf("category %s: %w", slug, err)
	}
	return docmap.CategoryFromDocument(d), nil
}

// List - категории по имени; JobCount считается по открытым вакансиям, не хранится
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docs, err := r.store.Fetch(ctx, docstore.Query{
		Type:  models.DocCategory,
		Order: []docstore.Order{{Field: "name"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	jobs, err := r.store.Fetch(ctx, docstore.Query{
		Type:   models.DocJob,
		Filter: docstore.And{listing.PublicJobPredicate(), docstore.Defined{Field: "category"}},
		Params: listing.PublicJobParams(r.now()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count category jobs: %w", err)
	}
	counts := make(map[string]int, len(docs))
	for _, j := range jobs {
		counts[j.String("category")]++
	}

	out := make([]models.Category, len(docs))
	for i, d := range docs {
		out[i] = docmap.CategoryFromDocument(d)
		out[i].JobCount = counts[d.ID]
	}
	return out, nil
}
