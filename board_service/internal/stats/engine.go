package stats

import (
	"context"
	"log/slog"
	"time"

	"jobboard/board_service/internal/domain/models"
)

// Source - откуда движок берёт сырые документы компании
type Source interface {
	CompanyJobs(ctx context.Context, companyID string) ([]models.Job, error)
	CompanyApplications(ctx context.Context, companyID string) ([]models.Application, error)
}

// Result - данные и признак деградации: Degraded=true значит, что Data взяты
// из демонстрационного набора, а Err хранит исходную ошибку хранилища
type Result[T any] struct {
	Data     T
	Degraded bool
	Err      error
}

// Engine считает статистику по данным из Source, при ошибке - по запасному Source
type Engine struct {
	source   Source
	fallback Source
	loc      *time.Location
	now      func() time.Time
	logger   *slog.Logger
}

// конструктор движка статистики
func NewEngine(source, fallback Source, loc *time.Location, logger *slog.Logger) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{source: source, fallback: fallback, loc: loc, now: time.Now, logger: logger}
}

type dataset struct {
	jobs []models.Job
	apps []models.Application
}

// load читает данные компании; при ошибке переключается на запасной набор
func (e *Engine) load(ctx context.Context, op, companyID string, needApps bool) (dataset, bool, error) {
	ds, err := fetch(ctx, e.source, companyID, needApps)
	if err == nil {
		return ds, false, nil
	}

	e.logger.WarnContext(ctx, "stats source failed, serving sample data",
		"operation", op,
		"company_id", companyID,
		"degraded", true,
		"error", err,
	)

	fb, fbErr := fetch(ctx, e.fallback, companyID, needApps)
	if fbErr != nil {
		e.logger.ErrorContext(ctx, "stats fallback failed", "operation", op, "error", fbErr)
		return dataset{}, true, err
	}
	return fb, true, err
}

func fetch(ctx context.Context, src Source, companyID string, needApps bool) (dataset, error) {
	var ds dataset
	jobs, err := src.CompanyJobs(ctx, companyID)
	if err != nil {
		return ds, err
	}
	ds.jobs = jobs

	if needApps {
		apps, err := src.CompanyApplications(ctx, companyID)
		if err != nil {
			return ds, err
		}
		ds.apps = apps
	}
	return ds, nil
}

func (e *Engine) Overview(ctx context.Context, companyID string) Result[models.DashboardOverview] {
	ds, degraded, err := e.load(ctx, "overview", companyID, true)
	return Result[models.DashboardOverview]{Data: Overview(ds.jobs, ds.apps, e.now()), Degraded: degraded, Err: err}
}

func (e *Engine) TopJobs(ctx context.Context, companyID string, n int) Result[[]models.JobPerformance] {
	ds, degraded, err := e.load(ctx, "top_jobs", companyID, false)
	return Result[[]models.JobPerformance]{Data: TopJobs(ds.jobs, n), Degraded: degraded, Err: err}
}

func (e *Engine) ApplicationTrend(ctx context.Context, companyID string, days int) Result[[]models.TrendPoint] {
	ds, degraded, err := e.load(ctx, "application_trend", companyID, true)
	return Result[[]models.TrendPoint]{Data: ApplicationTrend(ds.apps, days, e.now(), e.loc), Degraded: degraded, Err: err}
}

func (e *Engine) RecentActivity(ctx context.Context, companyID string, n int) Result[[]models.ActivityItem] {
	ds, degraded, err := e.load(ctx, "recent_activity", companyID, true)
	return Result[[]models.ActivityItem]{Data: RecentActivity(ds.jobs, ds.apps, n), Degraded: degraded, Err: err}
}
