package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard/board_service/internal/docstore"
	"jobboard/board_service/internal/domain/docmap"
	"jobboard/board_service/internal/domain/models"
)

// репозиторий откликов
type ApplicationRepository struct {
	store docstore.Store
}

// NormalizeEmail - email хранится в нижнем регистре без пробелов
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (models.Application, error) {
	if err := ctx.Err(); err != nil {
		return models.Application{}, err
	}
	d, err := fetchOne(ctx, r.store, byID(models.DocApplication, id, "job"))
	if err != nil {
		return models.Application{}, fmt.Errorf("application %s: %w", id, err)
	}
	return docmap.ApplicationFromDocument(d), nil
}

// Exists - есть ли уже отклик этого email на вакансию
func (r *ApplicationRepository) Exists(ctx context.Context, jobID, email string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	n, err := r.store.Count(ctx, docstore.Query{
		Type:   models.DocApplication,
		Filter: docstore.And{docstore.Eq("job", "job"), docstore.Eq("applicantEmail", "email")},
		Params: docstore.Params{"job": jobID, "email": NormalizeEmail(email)},
	})
	if err != nil {
		return false, fmt.Errorf("failed to check application: %w", err)
	}
	return n > 0, nil
}

// Create - новый отклик; нарушение уникальности (вакансия, email) даёт ErrDuplicateApplication
func (r *ApplicationRepository) Create(ctx context.Context, jobID string, in models.ApplicationInput, appliedAt time.Time) (models.Application, error) {
	if err := ctx.Err(); err != nil {
		return models.Application{}, err
	}

	in.Applicant.Email = NormalizeEmail(in.Applicant.Email)
	d, err := r.store.Create(ctx, models.DocApplication, docmap.ApplicationFields(jobID, in, appliedAt))
	if errors.Is(err, docstore.ErrConflict) {
		return models.Application{}, models.ErrDuplicateApplication
	}
	if err != nil {
		return models.Application{}, fmt.Errorf("failed to create application: %w", err)
	}
	return docmap.ApplicationFromDocument(d), nil
}

// ListForCompany - отклики на вакансии компании, новые первыми
func (r *ApplicationRepository) ListForCompany(ctx context.Context, companyID string, f models.ApplicationFilter) ([]models.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filter := docstore.And{docstore.Eq("job->company", "company")}
	params := docstore.Params{"company": companyID}
	if f.JobID != "" {
		filter = append(filter, docstore.Eq("job", "job"))
		params["job"] = f.JobID
	}
	if f.Status != "" {
		filter = append(filter, docstore.Eq("status", "status"))
		params["status"] = string(f.Status)
	}

	docs, err := r.store.Fetch(ctx, docstore.Query{
		Type:   models.DocApplication,
		Filter: filter,
		Order:  []docstore.Order{{Field: "appliedAt", Desc: true}},
		Params: params,
		Expand: []string{"job"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch applications: %w", err)
	}
	return docmap.ApplicationsFromDocuments(docs), nil
}

// Update меняет только переданные поля отклика
func (r *ApplicationRepository) Update(ctx context.Context, id string, upd models.ApplicationUpdate) (models.Application, error) {
	if err := ctx.Err(); err != nil {
		return models.Application{}, err
	}

	patch := r.store.Patch(id)
	if upd.Status != nil {
		patch.Set("status", string(*upd.Status))
	}
	if upd.Rating != nil {
		patch.Set("rating", *upd.Rating)
	}
	if upd.Notes != nil {
		patch.Set("notes", *upd.Notes)
	}
	if upd.InterviewAt != nil {
		patch.Set("interviewAt", *upd.InterviewAt)
	}
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}

	if _, err := patch.Commit(ctx); err != nil {
		return models.Application{}, fmt.Errorf("failed to update application: %w", translateError(err))
	}
	return r.GetByID(ctx, id)
}
