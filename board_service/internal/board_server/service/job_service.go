package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"jobboard/board_service/internal/board_server/repository"
	"jobboard/board_service/internal/domain/models"
	"jobboard/board_service/internal/tagcache"
)

// описание интерфейса управления вакансиями работодателя
type JobServiceInterface interface {
	ListOwn(ctx context.Context, ident models.Identity) ([]models.Job, error)
	Get(ctx context.Context, ident models.Identity, id string) (models.Job, error)
	Create(ctx context.Context, ident models.Identity, in models.JobDraftInput) (models.Job, error)
	Update(ctx context.Context, ident models.Identity, id string, in models.JobDraftInput) (models.Job, error)
	Delete(ctx context.Context, ident models.Identity, id string) error
	Bulk(ctx context.Context, ident models.Identity, action models.BulkAction, ids []string) (models.BulkResult, error)
}

// JobService - CRUD вакансий с проверкой принадлежности компании
type JobService struct {
	repo   *repository.BoardRepository
	cache  *tagcache.Cache
	logger *slog.Logger
}

// конструктор сервиса вакансий
func NewJobService(repo *repository.BoardRepository, cache *tagcache.Cache, logger *slog.Logger) *JobService {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobService{repo: repo, cache: cache, logger: logger}
}

func (s *JobService) ListOwn(ctx context.Context, ident models.Identity) ([]models.Job, error) {
	if err := requireCompany(ident); err != nil {
		return nil, err
	}
	return s.repo.Jobs.ListByCompany(ctx, ident.CompanyID)
}

// Get - вакансия работодателя; чужая вакансия даёт ErrForbidden
func (s *JobService) Get(ctx context.Context, ident models.Identity, id string) (models.Job, error) {
	job, err := s.repo.Jobs.GetByID(ctx, id)
	if err != nil {
		return models.Job{}, err
	}
	if !owns(ident, job.CompanyID) {
		return models.Job{}, fmt.Errorf("%w: job %s belongs to another company", models.ErrForbidden, id)
	}
	return job, nil
}

// Create - новая вакансия компании пользователя; без статуса создаётся черновик
func (s *JobService) Create(ctx context.Context, ident models.Identity, in models.JobDraftInput) (models.Job, error) {
	if err := requireCompany(ident); err != nil {
		return models.Job{}, err
	}
	if in.Status == "" {
		in.Status = models.JobDraft
	}

	job, err := s.repo.Jobs.Create(ctx, ident.CompanyID, in)
	if err != nil {
		return models.Job{}, err
	}

	s.logger.InfoContext(ctx, "job created", "job_id", job.ID, "company_id", job.CompanyID, "status", job.Status)
	invalidate(ctx, s.cache, s.logger, tagcache.TagJobs, tagcache.TagCategories)
	return job, nil
}

// Update - полная замена редактируемых полей; пустой статус оставляет текущий
func (s *JobService) Update(ctx context.Context, ident models.Identity, id string, in models.JobDraftInput) (models.Job, error) {
	current, err := s.Get(ctx, ident, id)
	if err != nil {
		return models.Job{}, err
	}
	if in.Status == "" {
		in.Status = current.Status
	}

	job, err := s.repo.Jobs.Update(ctx, id, in)
	if err != nil {
		return models.Job{}, err
	}

	invalidate(ctx, s.cache, s.logger, tagcache.TagJobs, tagcache.TagCategories, tagcache.JobTag(current.Slug))
	return job, nil
}

func (s *JobService) Delete(ctx context.Context, ident models.Identity, id string) error {
	job, err := s.Get(ctx, ident, id)
	if err != nil {
		return err
	}
	if err := s.repo.Jobs.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "job deleted", "job_id", id, "company_id", job.CompanyID)
	invalidate(ctx, s.cache, s.logger, tagcache.TagJobs, tagcache.TagCategories, tagcache.JobTag(job.Slug))
	return nil
}

// Bulk применяет действие ко всем вакансиям или ни к одной: если хотя бы одна
// вакансия не найдена или чужая, изменений нет и возвращается ErrForbidden
func (s *JobService) Bulk(ctx context.Context, ident models.Identity, action models.BulkAction, ids []string) (models.BulkResult, error) {
	if !validBulkAction(action) {
		return models.BulkResult{}, fmt.Errorf("%w: unknown bulk action %q", models.ErrInvalidInput, action)
	}

	ids = dedupe(ids)
	if len(ids) == 0 {
		return models.BulkResult{}, fmt.Errorf("%w: no job ids given", models.ErrInvalidInput)
	}

	jobs, err := s.repo.Jobs.GetMany(ctx, ids)
	if err != nil {
		return models.BulkResult{}, err
	}
	if len(jobs) != len(ids) {
		return models.BulkResult{}, fmt.Errorf("%w: %d of %d jobs not found", models.ErrForbidden, len(ids)-len(jobs), len(ids))
	}
	for _, job := range jobs {
		if !owns(ident, job.CompanyID) {
			return models.BulkResult{}, fmt.Errorf("%w: job %s belongs to another company", models.ErrForbidden, job.ID)
		}
	}

	err = s.repo.Transact(ctx, func(tx *repository.BoardRepository) error {
		for _, id := range ids {
			var err error
			switch action {
			case models.BulkDelete:
				err = tx.Jobs.Delete(ctx, id)
			case models.BulkExpire:
				err = tx.Jobs.SetStatus(ctx, id, models.JobExpired)
			case models.BulkPublish:
				err = tx.Jobs.SetStatus(ctx, id, models.JobPublished)
			}
			if err != nil {
				return fmt.Errorf("bulk %s on job %s: %w", action, id, err)
			}
		}
		return nil
	})
	if err != nil {
		return models.BulkResult{}, err
	}

	tags := []string{tagcache.TagJobs, tagcache.TagCategories}
	for _, job := range jobs {
		tags = append(tags, tagcache.JobTag(job.Slug))
	}
	invalidate(ctx, s.cache, s.logger, tags...)

	s.logger.InfoContext(ctx, "bulk job action applied", "action", action, "affected", len(ids), "company_id", ident.CompanyID)
	return models.BulkResult{Action: action, Affected: len(ids)}, nil
}

func validBulkAction(a models.BulkAction) bool {
	switch a {
	case models.BulkDelete, models.BulkExpire, models.BulkPublish:
		return true
	}
	return false
}

// dedupe убирает пустые и повторяющиеся id, сохраняя порядок
func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}
