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

// репозиторий вакансий
type JobRepository struct {
	store docstore.Store
	now   func() time.Time
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (models.Job, error) {
	if err := ctx.Err(); err != nil {
		return models.Job{}, err
	}
	d, err := fetchOne(ctx, r.store, byID(models.DocJob, id, docmap.JobRefs...))
	if err != nil {
		return models.Job{}, fmt.Errorf("job %s: %w", id, err)
	}
	return docmap.JobFromDocument(d), nil
}

// GetBySlug - вакансия в любом статусе
func (r *JobRepository) GetBySlug(ctx context.Context, slug string) (models.Job, error) {
	if err := ctx.Err(); err != nil {
		return models.Job{}, err
	}
	d, err := fetchOne(ctx, r.store, bySlug(models.DocJob, slug, docmap.JobRefs...))
	if err != nil {
		return models.Job{}, fmt.Errorf("job %s: %w", slug, err)
	}
	return docmap.JobFromDocument(d), nil
}

// GetPublicBySlug - только опубликованная и не истёкшая вакансия
func (r *JobRepository) GetPublicBySlug(ctx context.Context, slug string) (models.Job, error) {
	if err := ctx.Err(); err != nil {
		return models.Job{}, err
	}
	params := listing.PublicJobParams(r.now())
	params["slug"] = slug

	d, err := fetchOne(ctx, r.store, docstore.Query{
		Type:   models.DocJob,
		Filter: docstore.And{listing.PublicJobPredicate(), docstore.Eq("slug", "slug")},
		Params: params,
		Expand: docmap.JobRefs,
	})
	if err != nil {
		return models.Job{}, fmt.Errorf("public job %s: %w", slug, err)
	}
	return docmap.JobFromDocument(d), nil
}

// GetMany возвращает найденные вакансии; отсутствующие id просто пропускаются
func (r *JobRepository) GetMany(ctx context.Context, ids []string) ([]models.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Job{}, nil
	}
	docs, err := r.store.Fetch(ctx, docstore.Query{
		Type:   models.DocJob,
		Filter: docstore.In{Field: "_id", Param: "ids"},
		Params: docstore.Params{"ids": ids},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jobs: %w", err)
	}
	return docmap.JobsFromDocuments(docs), nil
}

// ListByCompany - все вакансии компании, новые первыми
func (r *JobRepository) ListByCompany(ctx context.Context, companyID string) ([]models.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	docs, err := r.store.Fetch(ctx, docstore.Query{
		Type:   models.DocJob,
		Filter: docstore.Eq("company", "company"),
		Order:  []docstore.Order{{Field: "_createdAt", Desc: true}},
		Params: docstore.Params{"company": companyID},
		Expand: docmap.JobRefs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch company jobs: %w", err)
	}
	return docmap.JobsFromDocuments(docs), nil
}

// ListPublicByCompany - открытые вакансии компании в порядке листинга
func (r *JobRepository) ListPublicByCompany(ctx context.Context, companyID string) ([]models.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	params := listing.PublicJobParams(r.now())
	params["company"] = companyID

	docs, err := r.store.Fetch(ctx, docstore.Query{
		Type:   models.DocJob,
		Filter: docstore.And{listing.PublicJobPredicate(), docstore.Eq("company", "company")},
		Order:  listing.JobOrder,
		Params: params,
		Expand: docmap.JobRefs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch open jobs: %w", err)
	}
	return docmap.JobsFromDocuments(docs), nil
}

// Related - открытые вакансии той же категории, кроме самой вакансии
func (r *JobRepository) Related(ctx context.Context, job models.Job, limit int) ([]models.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if job.CategoryID == "" || limit <= 0 {
		return []models.Job{}, nil
	}
	params := listing.PublicJobParams(r.now())
	params["category"] = job.CategoryID
	params["id"] = job.ID

	docs, err := r.store.Fetch(ctx, docstore.Query{
		Type: models.DocJob,
		Filter: docstore.And{
			listing.PublicJobPredicate(),
			docstore.Eq("category", "category"),
			docstore.Cmp{Field: "_id", Op: docstore.OpNe, Param: "id"},
		},
		Order:  listing.JobOrder,
		Limit:  limit,
		Params: params,
		Expand: docmap.JobRefs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch related jobs: %w", err)
	}
	return docmap.JobsFromDocuments(docs), nil
}

// Create - новая вакансия компании; счётчики с нуля, publishedAt только для сразу опубликованной
func (r *JobRepository) Create(ctx context.Context, companyID string, in models.JobDraftInput) (models.Job, error) {
	if err := ctx.Err(); err != nil {
		return models.Job{}, err
	}

	fields := docmap.JobFields(in)
	fields["company"] = companyID
	fields["viewCount"] = 0
	fields["applicationCount"] = 0
	if in.Status == models.JobPublished {
		fields["publishedAt"] = r.now()
	}

	d, err := createWithSlug(ctx, r.store, models.DocJob, in.Title, "job", fields)
	if err != nil {
		return models.Job{}, fmt.Errorf("failed to create job: %w", err)
	}
	return r.GetByID(ctx, d.ID)
}

// Update перезаписывает редактируемые поля; slug не меняется
func (r *JobRepository) Update(ctx context.Context, id string, in models.JobDraftInput) (models.Job, error) {
	if err := ctx.Err(); err != nil {
		return models.Job{}, err
	}

	patch := r.store.Patch(id).SetAll(docmap.JobFields(in))
	if in.Status == models.JobPublished {
		patch.SetIfMissing("publishedAt", r.now())
	}
	if _, err := patch.Commit(ctx); err != nil {
		return models.Job{}, fmt.Errorf("failed to update job: %w", translateError(err))
	}
	return r.GetByID(ctx, id)
}

// SetStatus меняет статус; при публикации publishedAt ставится только один раз
func (r *JobRepository) SetStatus(ctx context.Context, id string, status models.JobStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	patch := r.store.Patch(id).Set("status", string(status))
	if status == models.JobPublished {
		patch.SetIfMissing("publishedAt", r.now())
	}
	if _, err := patch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to set job status: %w", translateError(err))
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete job: %w", translateError(err))
	}
	return nil
}

// IncViews - атомарный инкремент счётчика просмотров
func (r *JobRepository) IncViews(ctx context.Context, id string) error {
	return r.inc(ctx, id, "viewCount")
}

// IncApplications - атомарный инкремент счётчика откликов
func (r *JobRepository) IncApplications(ctx context.Context, id string) error {
	return r.inc(ctx, id, "applicationCount")
}

func (r *JobRepository) inc(ctx context.Context, id, field string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := r.store.Patch(id).Inc(field, 1).Commit(ctx); err != nil {
		return fmt.Errorf("failed to increment %s: %w", field, translateError(err))
	}
	return nil
}
