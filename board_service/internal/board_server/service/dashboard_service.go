package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"jobboard/board_service/configs"
	"jobboard/board_service/internal/domain/models"
	"jobboard/board_service/internal/stats"
)

// описание интерфейса дашборда работодателя
type DashboardServiceInterface interface {
	Dashboard(ctx context.Context, ident models.Identity, days, top int) (models.Dashboard, error)
}

type DashboardService struct {
	engine *stats.Engine
	cfg    *configs.StatsConfig
	logger *slog.Logger
}

// конструктор сервиса дашборда
func NewDashboardService(engine *stats.Engine, cfg *configs.StatsConfig, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{engine: engine, cfg: cfg, logger: logger}
}

// Dashboard собирает четыре раздела параллельно; каждый раздел деградирует отдельно.
// days и top равные нулю заменяются значениями из конфигурации
func (s *DashboardService) Dashboard(ctx context.Context, ident models.Identity, days, top int) (models.Dashboard, error) {
	if err := requireCompany(ident); err != nil {
		return models.Dashboard{}, err
	}
	if days == 0 {
		days = s.cfg.DefaultDays
	}
	if top == 0 {
		top = s.cfg.TopN
	}
	if days < 1 || days > s.cfg.MaxDays {
		return models.Dashboard{}, fmt.Errorf("%w: days must be between 1 and %d", models.ErrInvalidInput, s.cfg.MaxDays)
	}
	if top < 1 || top > 50 {
		return models.Dashboard{}, fmt.Errorf("%w: top must be between 1 and 50", models.ErrInvalidInput)
	}

	companyID := ident.CompanyID
	var d models.Dashboard

	// разделы не возвращают ошибок: отказ хранилища даёт деградированный раздел
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r := s.engine.Overview(gctx, companyID)
		d.Overview = models.DashboardSection[models.DashboardOverview]{Data: r.Data, Degraded: r.Degraded}
		return nil
	})
	g.Go(func() error {
		r := s.engine.RecentActivity(gctx, companyID, s.cfg.RecentItems)
		d.RecentActivity = models.DashboardSection[[]models.ActivityItem]{Data: nonNil(r.Data), Degraded: r.Degraded}
		return nil
	})
	g.Go(func() error {
		r := s.engine.TopJobs(gctx, companyID, top)
		d.TopJobs = models.DashboardSection[[]models.JobPerformance]{Data: nonNil(r.Data), Degraded: r.Degraded}
		return nil
	})
	g.Go(func() error {
		r := s.engine.ApplicationTrend(gctx, companyID, days)
		d.Trend = models.DashboardSection[[]models.TrendPoint]{Data: nonNil(r.Data), Degraded: r.Degraded}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.Dashboard{}, err
	}
	if err := ctx.Err(); err != nil {
		return models.Dashboard{}, err
	}

	if d.Degraded() {
		s.logger.WarnContext(ctx, "dashboard served with sample data", "company_id", companyID, "degraded", true)
	}
	return d, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// BreakerSource - источник статистики за circuit breaker
type BreakerSource struct {
	Source  stats.Source
	Breaker Breaker
}

func (b BreakerSource) CompanyJobs(ctx context.Context, companyID string) ([]models.Job, error) {
	var jobs []models.Job
	err := b.Breaker.Execute(func() error {
		var err error
		jobs, err = b.Source.CompanyJobs(ctx, companyID)
		return err
	})
	return jobs, err
}

func (b BreakerSource) CompanyApplications(ctx context.Context, companyID string) ([]models.Application, error) {
	var apps []models.Application
	err := b.Breaker.Execute(func() error {
		var err error
		apps, err = b.Source.CompanyApplications(ctx, companyID)
		return err
	})
	return apps, err
}
