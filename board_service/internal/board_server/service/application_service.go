package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"jobboard/board_service/internal/board_server/repository"
	"jobboard/board_service/internal/domain/models"
	"jobboard/board_service/internal/tagcache"
)

// описание интерфейса откликов: подача из публичной формы и работа работодателя с откликами
type ApplicationServiceInterface interface {
	Apply(ctx context.Context, slug string, in models.ApplicationInput) (models.Application, error)
	List(ctx context.Context, ident models.Identity, filter models.ApplicationFilter) ([]models.Application, error)
	Update(ctx context.Context, ident models.Identity, id string, upd models.ApplicationUpdate) (models.Application, error)
}

type ApplicationService struct {
	repo   *repository.BoardRepository
	cache  *tagcache.Cache
	now    func() time.Time
	logger *slog.Logger
}

// конструктор сервиса откликов
func NewApplicationService(repo *repository.BoardRepository, cache *tagcache.Cache, logger *slog.Logger) *ApplicationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ApplicationService{repo: repo, cache: cache, now: time.Now, logger: logger}
}

// Apply - отклик на открытую вакансию. Проверка дубликата, запись отклика
// и счётчик откликов выполняются в одной транзакции
func (s *ApplicationService) Apply(ctx context.Context, slug string, in models.ApplicationInput) (models.Application, error) {
	job, err := s.repo.Jobs.GetPublicBySlug(ctx, slug)
	if err != nil {
		return models.Application{}, err
	}

	now := s.now()
	if job.ApplicationDeadline != nil && job.ApplicationDeadline.Before(now) {
		return models.Application{}, fmt.Errorf("%w: deadline passed at %s", models.ErrJobNotOpen, job.ApplicationDeadline.Format(time.RFC3339))
	}

	in.Applicant.Email = repository.NormalizeEmail(in.Applicant.Email)

	var app models.Application
	err = s.repo.Transact(ctx, func(tx *repository.BoardRepository) error {
		exists, err := tx.Applications.Exists(ctx, job.ID, in.Applicant.Email)
		if err != nil {
			return err
		}
		if exists {
			return models.ErrDuplicateApplication
		}

		app, err = tx.Applications.Create(ctx, job.ID, in, now)
		if err != nil {
			return err
		}
		return tx.Jobs.IncApplications(ctx, job.ID)
	})
	if err != nil {
		return models.Application{}, err
	}

	app.Job = &models.JobRef{ID: job.ID, Title: job.Title, Slug: job.Slug, CompanyID: job.CompanyID}

	s.logger.InfoContext(ctx, "application received", "application_id", app.ID, "job_id", job.ID)
	invalidate(ctx, s.cache, s.logger, tagcache.JobTag(job.Slug))
	return app, nil
}

// List - отклики на вакансии компании пользователя
func (s *ApplicationService) List(ctx context.Context, ident models.Identity, filter models.ApplicationFilter) ([]models.Application, error) {
	if err := requireCompany(ident); err != nil {
		return nil, err
	}
	if filter.JobID != "" {
		job, err := s.repo.Jobs.GetByID(ctx, filter.JobID)
		if err != nil {
			return nil, err
		}
		if !owns(ident, job.CompanyID) {
			return nil, fmt.Errorf("%w: job %s belongs to another company", models.ErrForbidden, job.ID)
		}
	}
	return s.repo.Applications.ListForCompany(ctx, ident.CompanyID, filter)
}

// Update - статус, оценка, заметки и время собеседования; только для своей компании
func (s *ApplicationService) Update(ctx context.Context, ident models.Identity, id string, upd models.ApplicationUpdate) (models.Application, error) {
	app, err := s.repo.Applications.GetByID(ctx, id)
	if err != nil {
		return models.Application{}, err
	}
	if app.Job == nil || !owns(ident, app.Job.CompanyID) {
		return models.Application{}, fmt.Errorf("%w: application %s belongs to another company", models.ErrForbidden, id)
	}
	if upd.Rating != nil && (*upd.Rating < 0 || *upd.Rating > 5) {
		return models.Application{}, fmt.Errorf("%w: rating must be between 0 and 5", models.ErrInvalidInput)
	}

	updated, err := s.repo.Applications.Update(ctx, id, upd)
	if err != nil {
		return models.Application{}, err
	}
	if upd.Status != nil {
		s.logger.InfoContext(ctx, "application status changed", "application_id", id, "status", *upd.Status)
	}
	return updated, nil
}
