package repository

import (
	"context"
	"errors"
	"fmt"

	"jobboard/board_service/internal/docstore"
	"jobboard/board_service/internal/domain/docmap"
	"jobboard/board_service/internal/domain/models"

	"github.com/samber/mo"
)

// репозиторий пользователей
type UserRepository struct {
	store docstore.Store
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	d, err := fetchOne(ctx, r.store, byID(models.DocUser, id))
	if err != nil {
		return models.User{}, fmt.Errorf("user %s: %w", id, err)
	}
	return docmap.UserFromDocument(d), nil
}

// FindByEmail - None, если пользователя ещё нет
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (mo.Option[models.User], error) {
	if err := ctx.Err(); err != nil {
		return mo.None[models.User](), err
	}
	d, err := fetchOne(ctx, r.store, docstore.Query{
		Type:   models.DocUser,
		Filter: docstore.Eq("email", "email"),
		Params: docstore.Params{"email": NormalizeEmail(email)},
	})
	if errors.Is(err, models.ErrNotFound) {
		return mo.None[models.User](), nil
	}
	if err != nil {
		return mo.None[models.User](), fmt.Errorf("failed to find user: %w", err)
	}
	return mo.Some(docmap.UserFromDocument(d)), nil
}

// FindOrCreate возвращает пользователя по email, создавая его соискателем при первом входе.
// created=false, если пользователь уже был (или его параллельно создал другой запрос)
func (r *UserRepository) FindOrCreate(ctx context.Context, email, name string) (user models.User, created bool, err error) {
	found, err := r.FindByEmail(ctx, email)
	if err != nil {
		return models.User{}, false, err
	}
	if u, ok := found.Get(); ok {
		return u, false, nil
	}

	d, err := r.store.Create(ctx, models.DocUser, map[string]any{
		"email":   NormalizeEmail(email),
		"name":    name,
		"role":    string(models.RoleJobseeker),
		"company": nil,
	})
	if errors.Is(err, docstore.ErrConflict) {
		found, err := r.FindByEmail(ctx, email)
		if err != nil {
			return models.User{}, false, err
		}
		u, ok := found.Get()
		if !ok {
			return models.User{}, false, fmt.Errorf("user %s vanished after conflict", email)
		}
		return u, false, nil
	}
	if err != nil {
		return models.User{}, false, fmt.Errorf("failed to create user: %w", err)
	}
	return docmap.UserFromDocument(d), true, nil
}

// AttachCompany делает пользователя работодателем указанной компании
func (r *UserRepository) AttachCompany(ctx context.Context, userID, companyID string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	d, err := r.store.Patch(userID).
		Set("company", companyID).
		Set("role", string(models.RoleEmployer)).
		Commit(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to attach company: %w", translateError(err))
	}
	return docmap.UserFromDocument(d), nil
}

// репозиторий подписок на компании
type FollowRepository struct {
	store docstore.Store
}

func followQuery(userID, companyID string) docstore.Query {
	return docstore.Query{
		Type:   models.DocFollow,
		Filter: docstore.And{docstore.Eq("user", "user"), docstore.Eq("company", "company")},
		Params: docstore.Params{"user": userID, "company": companyID},
	}
}

// List - подписки пользователя, новые первыми
func (r *FollowRepository) List(ctx context.Context, userID string) ([]models.Follow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	docs, err := r.store.Fetch(ctx, docstore.Query{
		Type:   models.DocFollow,
		Filter: docstore.Eq("user", "user"),
		Order:  []docstore.Order{{Field: "_createdAt", Desc: true}},
		Params: docstore.Params{"user": userID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch follows: %w", err)
	}

	out := make([]models.Follow, len(docs))
	for i, d := range docs {
		out[i] = docmap.FollowFromDocument(d)
	}
	return out, nil
}

func (r *FollowRepository) IsFollowing(ctx context.Context, userID, companyID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	n, err := r.store.Count(ctx, followQuery(userID, companyID))
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return n > 0, nil
}

// Follow идемпотентна: повторная подписка не ошибка
func (r *FollowRepository) Follow(ctx context.Context, userID, companyID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := r.store.Create(ctx, models.DocFollow, map[string]any{"user": userID, "company": companyID})
	if err != nil && !errors.Is(err, docstore.ErrConflict) {
		return fmt.Errorf("failed to follow company: %w", err)
	}
	return nil
}

// Unfollow идемпотентна: отписка от неотслеживаемой компании не ошибка
func (r *FollowRepository) Unfollow(ctx context.Context, userID, companyID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	docs, err := r.store.Fetch(ctx, followQuery(userID, companyID))
	if err != nil {
		return fmt.Errorf("failed to find follow: %w", err)
	}
	for _, d := range docs {
		if err := r.store.Delete(ctx, d.ID); err != nil && !errors.Is(err, docstore.ErrNotFound) {
			return fmt.Errorf("failed to unfollow company: %w", err)
		}
	}
	return nil
}
