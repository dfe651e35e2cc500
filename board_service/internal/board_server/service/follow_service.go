package service

import (
	"context"
	"log/slog"

	"jobboard/board_service/internal/board_server/repository"
	"jobboard/board_service/internal/domain/models"
)

// описание интерфейса подписок пользователя на компании
type FollowServiceInterface interface {
	List(ctx context.Context, ident models.Identity) ([]models.Follow, error)
	Get(ctx context.Context, ident models.Identity, companyID string) (bool, error)
	Set(ctx context.Context, ident models.Identity, companyID string, following bool) (bool, error)
	Toggle(ctx context.Context, ident models.Identity, companyID string) (bool, error)
}

type FollowService struct {
	repo   *repository.BoardRepository
	logger *slog.Logger
}

// конструктор сервиса подписок
func NewFollowService(repo *repository.BoardRepository, logger *slog.Logger) *FollowService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FollowService{repo: repo, logger: logger}
}

func (s *FollowService) List(ctx context.Context, ident models.Identity) ([]models.Follow, error) {
	return s.repo.Follows.List(ctx, ident.ID)
}

func (s *FollowService) Get(ctx context.Context, ident models.Identity, companyID string) (bool, error) {
	return s.repo.Follows.IsFollowing(ctx, ident.ID, companyID)
}

// Set - идемпотентная установка подписки; подписаться можно только на существующую компанию
func (s *FollowService) Set(ctx context.Context, ident models.Identity, companyID string, following bool) (bool, error) {
	if !following {
		if err := s.repo.Follows.Unfollow(ctx, ident.ID, companyID); err != nil {
			return false, err
		}
		return false, nil
	}

	if _, err := s.repo.Companies.GetByID(ctx, companyID); err != nil {
		return false, err
	}
	if err := s.repo.Follows.Follow(ctx, ident.ID, companyID); err != nil {
		return false, err
	}
	return true, nil
}

// Toggle меняет подписку на противоположную и возвращает новое состояние
func (s *FollowService) Toggle(ctx context.Context, ident models.Identity, companyID string) (bool, error) {
	following, err := s.Get(ctx, ident, companyID)
	if err != nil {
		return false, err
	}
	return s.Set(ctx, ident, companyID, !following)
}
