// описание сервисного слоя доски вакансий
package service

import (
	"context"
	"errors"
	"log/slog"

	"jobboard/board_service/internal/domain/models"
	"jobboard/board_service/internal/tagcache"
)

// Breaker - защита обращений к хранилищу (circuitbreaker.CircuitBreaker)
type Breaker interface {
	Execute(fn func() error) error
}

// isClientError - ошибки запроса, а не хранилища: они не переключают на резервные данные
// и не считаются отказами для circuit breaker
func isClientError(err error) bool {
	return errors.Is(err, models.ErrNotFound) ||
		errors.Is(err, models.ErrInvalidPageSize) ||
		errors.Is(err, models.ErrInvalidInput) ||
		errors.Is(err, context.Canceled)
}

// owns - вакансия принадлежит компании пользователя; администратор управляет любыми
func owns(ident models.Identity, companyID string) bool {
	if ident.Role == models.RoleAdmin {
		return true
	}
	return ident.CompanyID != "" && ident.CompanyID == companyID
}

// requireCompany - действие работодателя требует привязанной компании
func requireCompany(ident models.Identity) error {
	if ident.CompanyID == "" {
		return models.ErrCompanyRequired
	}
	return nil
}

// invalidate сбрасывает теги кэша; ошибка кэша не отменяет уже выполненную запись
func invalidate(ctx context.Context, cache *tagcache.Cache, logger *slog.Logger, tags ...string) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, tags...); err != nil {
		logger.WarnContext(ctx, "cache invalidation failed", "tags", tags, "error", err)
	}
}
