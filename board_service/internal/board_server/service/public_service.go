package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"jobboard/board_service/configs"
	"jobboard/board_service/internal/board_server/repository"
	"jobboard/board_service/internal/domain/models"
	"jobboard/board_service/internal/fuzzy"
	"jobboard/board_service/internal/listing"
	"jobboard/board_service/internal/tagcache"
)

// описание интерфейса публичной части: листинг, страницы вакансий и компаний.
// bool в ответах - данные взяты из демонстрационного набора
type PublicServiceInterface interface {
	ListJobs(ctx context.Context, filter models.JobFilter, query string) (models.JobListing, error)
	GetJob(ctx context.Context, slug string) (models.JobDetails, bool, error)
	ListCompanies(ctx context.Context) ([]models.Company, bool, error)
	GetCompany(ctx context.Context, slug string) (models.CompanyDetails, bool, error)
	ListCategories(ctx context.Context) ([]models.Category, bool, error)
}

// readSource - репозиторий и листинг поверх одного хранилища
type readSource struct {
	repo    *repository.BoardRepository
	fetcher *listing.Fetcher
}

func newReadSource(repo *repository.BoardRepository, maxPageSize int) readSource {
	return readSource{repo: repo, fetcher: listing.NewFetcher(repo.Store(), maxPageSize)}
}

// PublicService читает основное хранилище через circuit breaker и кэш;
// при отказе хранилища тот же запрос выполняется по демонстрационному набору
type PublicService struct {
	primary      readSource
	fallback     readSource
	breaker      Breaker
	cache        *tagcache.Cache
	index        *fuzzy.Index[models.Job]
	maxPageSize  int
	relatedLimit int
	logger       *slog.Logger
}

// конструктор публичного сервиса; fallback - репозиторий над демонстрационными данными
func NewPublicService(repo, fallback *repository.BoardRepository, breaker Breaker, cache *tagcache.Cache, cfg *configs.ListingConfig, logger *slog.Logger) *PublicService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PublicService{
		primary:      newReadSource(repo, cfg.MaxPageSize),
		fallback:     newReadSource(fallback, cfg.MaxPageSize),
		breaker:      breaker,
		cache:        cache,
		index:        listing.NewJobIndex(cfg.FuzzyThreshold),
		maxPageSize:  cfg.MaxPageSize,
		relatedLimit: cfg.RelatedJobs,
		logger:       logger,
	}
}

// readWithFallback выполняет чтение через breaker; ошибка хранилища (или открытый breaker)
// переключает чтение на демонстрационный набор с Degraded=true и WARN в логе
func readWithFallback[T any](ctx context.Context, s *PublicService, op string, read func(ctx context.Context, src readSource) (T, error)) (T, bool, error) {
	var (
		data    T
		readErr error
	)
	err := s.breaker.Execute(func() error {
		data, readErr = read(ctx, s.primary)
		if readErr != nil && !isClientError(readErr) {
			return readErr
		}
		return nil
	})
	if err == nil {
		return data, false, readErr
	}

	s.logger.WarnContext(ctx, "document store unavailable, serving sample data",
		"operation", op,
		"degraded", true,
		"error", err,
	)

	fb, fbErr := read(ctx, s.fallback)
	if fbErr != nil {
		s.logger.ErrorContext(ctx, "sample data read failed", "operation", op, "error", fbErr)
		var zero T
		return zero, false, fmt.Errorf("%s: %w", op, err)
	}
	return fb, true, nil
}

// cachedRead - readWithFallback за кэшем; деградированные данные не кэшируются
func cachedRead[T any](ctx context.Context, s *PublicService, op, name string, tags []string, read func(ctx context.Context, src readSource) (T, error)) (T, bool, error) {
	var degraded bool
	data, err := tagcache.Remember(ctx, s.cache, name, tags, func(ctx context.Context) (T, bool, error) {
		v, d, err := readWithFallback(ctx, s, op, read)
		degraded = d
		return v, !d, err
	})
	return data, degraded, err
}

// ListJobs - страница листинга; непустой query уточняет её нечётким поиском
func (s *PublicService) ListJobs(ctx context.Context, filter models.JobFilter, query string) (models.JobListing, error) {
	if filter.PageSize <= 0 {
		return models.JobListing{}, fmt.Errorf("%w: got %d", models.ErrInvalidPageSize, filter.PageSize)
	}
	if s.maxPageSize > 0 && filter.PageSize > s.maxPageSize {
		filter.PageSize = s.maxPageSize
	}
	if filter.Page < 1 {
		filter.Page = 1
	}

	page, degraded, err := cachedRead(ctx, s, "list_jobs", "jobs:"+filterCacheKey(filter), []string{tagcache.TagJobs},
		func(ctx context.Context, src readSource) (models.JobPage, error) {
			return src.fetcher.FetchJobs(ctx, filter)
		})
	if err != nil {
		return models.JobListing{}, err
	}

	result := models.JobListing{JobPage: page, Degraded: degraded}
	if q := strings.TrimSpace(query); q != "" {
		result.Items = s.index.Search(page.Items, q)
		result.RefinedWithinPage = true
	}
	if result.Items == nil {
		result.Items = []models.Job{}
	}
	return result, nil
}

// GetJob - открытая вакансия и похожие; просмотр засчитывается только для реальных данных
func (s *PublicService) GetJob(ctx context.Context, slug string) (models.JobDetails, bool, error) {
	details, degraded, err := cachedRead(ctx, s, "get_job", "job:"+slug, []string{tagcache.TagJobs, tagcache.JobTag(slug)},
		func(ctx context.Context, src readSource) (models.JobDetails, error) {
			job, err := src.repo.Jobs.GetPublicBySlug(ctx, slug)
			if err != nil {
				return models.JobDetails{}, err
			}

			// похожие вакансии - второстепенный блок, его ошибка не ломает страницу
			related, err := src.repo.Jobs.Related(ctx, job, s.relatedLimit)
			if err != nil {
				s.logger.WarnContext(ctx, "related jobs unavailable", "slug", slug, "error", err)
				related = []models.Job{}
			}
			return models.JobDetails{Job: job, Related: related}, nil
		})
	if err != nil {
		return models.JobDetails{}, false, err
	}

	if !degraded {
		if err := s.primary.repo.Jobs.IncViews(ctx, details.Job.ID); err != nil {
			s.logger.WarnContext(ctx, "failed to count job view", "slug", slug, "error", err)
		}
	}
	return details, degraded, nil
}

func (s *PublicService) ListCompanies(ctx context.Context) ([]models.Company, bool, error) {
	return cachedRead(ctx, s, "list_companies", "companies", []string{tagcache.TagCompanies},
		func(ctx context.Context, src readSource) ([]models.Company, error) {
			return src.repo.Companies.List(ctx)
		})
}

// GetCompany - компания и её открытые вакансии
func (s *PublicService) GetCompany(ctx context.Context, slug string) (models.CompanyDetails, bool, error) {
	return cachedRead(ctx, s, "get_company", "company:"+slug, []string{tagcache.TagCompanies, tagcache.TagJobs},
		func(ctx context.Context, src readSource) (models.CompanyDetails, error) {
			company, err := src.repo.Companies.GetBySlug(ctx, slug)
			if err != nil {
				return models.CompanyDetails{}, err
			}
			jobs, err := src.repo.Jobs.ListPublicByCompany(ctx, company.ID)
			if err != nil {
				return models.CompanyDetails{}, err
			}
			return models.CompanyDetails{Company: company, OpenJobs: jobs}, nil
		})
}

func (s *PublicService) ListCategories(ctx context.Context) ([]models.Category, bool, error) {
	return cachedRead(ctx, s, "list_categories", "categories", []string{tagcache.TagCategories, tagcache.TagJobs},
		func(ctx context.Context, src readSource) ([]models.Category, error) {
			return src.repo.Categories.List(ctx)
		})
}

// filterCacheKey - детерминированное представление фильтра для ключа кэша
func filterCacheKey(f models.JobFilter) string {
	parts := []string{
		"c=" + f.Category.OrEmpty(),
		"l=" + f.Location.OrEmpty(),
		"t=" + string(f.JobType.OrEmpty()),
		"e=" + string(f.ExperienceLevel.OrEmpty()),
		"s=" + strconv.Itoa(f.SalaryMin.OrEmpty()),
		"q=" + f.Search.OrEmpty(),
		"p=" + strconv.Itoa(f.Page),
		"n=" + strconv.Itoa(f.PageSize),
	}
	return strings.Join(parts, "&")
}
