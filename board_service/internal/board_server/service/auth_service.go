package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"jobboard/board_service/configs"
	"jobboard/board_service/internal/board_server/repository"
	"jobboard/board_service/internal/domain/models"
	"jobboard/board_service/internal/tagcache"
	"jobboard/shared/jwt_service"
)

// описание интерфейса входа через OAuth и профиля компании
type AuthServiceInterface interface {
	LoginURL(state string) string
	CompleteLogin(ctx context.Context, code string) (models.User, error)
	IssueSession(user models.User) (string, time.Time, error)
	Me(ctx context.Context, ident models.Identity) (models.User, error)
	Onboard(ctx context.Context, ident models.Identity, in models.CompanyInput) (models.Company, models.User, error)
	UpdateCompany(ctx context.Context, ident models.Identity, in models.CompanyInput) (models.Company, error)
}

// ответ userinfo провайдера; используются только email и имя
type userInfo struct {
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified"`
	Name          string `json:"name"`
}

type AuthService struct {
	repo        *repository.BoardRepository
	cache       *tagcache.Cache
	oauth       *oauth2.Config
	userInfoURL string
	tokens      jwt_service.SessionTokens
	httpClient  *http.Client
	logger      *slog.Logger
}

// конструктор сервиса авторизации; httpClient может быть nil
func NewAuthService(repo *repository.BoardRepository, cache *tagcache.Cache, cfg *configs.OAuthConfig, tokens jwt_service.SessionTokens, httpClient *http.Client, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		repo:        repo,
		cache:       cache,
		oauth:       cfg.OAuth2(),
		userInfoURL: cfg.UserInfoURL,
		tokens:      tokens,
		httpClient:  httpClient,
		logger:      logger,
	}
}

// LoginURL - адрес страницы согласия провайдера
func (s *AuthService) LoginURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// CompleteLogin обменивает код на токен, читает профиль у провайдера
// и находит пользователя по email, создавая его при первом входе
func (s *AuthService) CompleteLogin(ctx context.Context, code string) (models.User, error) {
	if code == "" {
		return models.User{}, fmt.Errorf("%w: missing authorization code", models.ErrUnauthorized)
	}
	if s.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	}

	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		s.logger.WarnContext(ctx, "oauth code exchange failed", "error", err)
		return models.User{}, fmt.Errorf("%w: code exchange failed", models.ErrUnauthorized)
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		return models.User{}, err
	}

	user, created, err := s.repo.Users.FindOrCreate(ctx, info.Email, info.Name)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to resolve user: %w", err)
	}
	if created {
		s.logger.InfoContext(ctx, "user created on first sign-in", "user_id", user.ID)
	}
	return user, nil
}

func (s *AuthService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (userInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return userInfo{}, fmt.Errorf("failed to build userinfo request: %w", err)
	}

	resp, err := s.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return userInfo{}, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return userInfo{}, fmt.Errorf("%w: userinfo returned %d: %s", models.ErrUnauthorized, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return userInfo{}, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	if info.Email == "" {
		return userInfo{}, fmt.Errorf("%w: provider returned no email", models.ErrUnauthorized)
	}
	if info.EmailVerified != nil && !*info.EmailVerified {
		return userInfo{}, fmt.Errorf("%w: email is not verified", models.ErrUnauthorized)
	}
	return info, nil
}

// IssueSession выпускает сессионный токен для пользователя
func (s *AuthService) IssueSession(user models.User) (string, time.Time, error) {
	return s.tokens.GenerateSessionToken(jwt_service.Subject{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		CompanyID: user.CompanyID,
	})
}

func (s *AuthService) Me(ctx context.Context, ident models.Identity) (models.User, error) {
	user, err := s.repo.Users.GetByID(ctx, ident.ID)
	if errors.Is(err, models.ErrNotFound) {
		// пользователь удалён, а токен ещё жив
		return models.User{}, fmt.Errorf("%w: user no longer exists", models.ErrUnauthorized)
	}
	return user, err
}

// Onboard - пользователь без компании создаёт её и становится работодателем
func (s *AuthService) Onboard(ctx context.Context, ident models.Identity, in models.CompanyInput) (models.Company, models.User, error) {
	current, err := s.Me(ctx, ident)
	if err != nil {
		return models.Company{}, models.User{}, err
	}
	if current.CompanyID != "" {
		return models.Company{}, models.User{}, models.ErrAlreadyOnboarded
	}

	var (
		company models.Company
		user    models.User
	)
	err = s.repo.Transact(ctx, func(tx *repository.BoardRepository) error {
		var err error
		company, err = tx.Companies.Create(ctx, current.ID, in)
		if err != nil {
			return err
		}
		user, err = tx.Users.AttachCompany(ctx, current.ID, company.ID)
		return err
	})
	if err != nil {
		return models.Company{}, models.User{}, err
	}

	s.logger.InfoContext(ctx, "company onboarded", "company_id", company.ID, "user_id", user.ID)
	invalidate(ctx, s.cache, s.logger, tagcache.TagCompanies)
	return company, user, nil
}

// UpdateCompany - правка профиля компании пользователя
func (s *AuthService) UpdateCompany(ctx context.Context, ident models.Identity, in models.CompanyInput) (models.Company, error) {
	if err := requireCompany(ident); err != nil {
		return models.Company{}, err
	}
	company, err := s.repo.Companies.Update(ctx, ident.CompanyID, in)
	if err != nil {
		return models.Company{}, err
	}
	// вакансии несут краткие данные компании
	invalidate(ctx, s.cache, s.logger, tagcache.TagCompanies, tagcache.TagJobs)
	return company, nil
}
