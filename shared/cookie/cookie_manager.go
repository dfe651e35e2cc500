package cookie

import (
	"errors"
	"fmt"
	"jobboard/shared/config"
	"net/http"

	"github.com/gin-gonic/gin"
)

// интерфейс для использования в хэндлерах и middleware
type CookieManagerInterface interface {
	SetCookie(c *gin.Context, opts CookieOptions) error
	GetCookie(c *gin.Context, name string) (string, error)
	DeleteCookie(c *gin.Context, name, path string)
	SessionName() string
	SessionMaxAge() int
}

var ErrCookieNotFound = errors.New("cookie not found")

// опции отдельной куки
type CookieOptions struct {
	Name     string // имя куки без префикса
	Value    string
	MaxAge   int    // в секундах
	Path     string // пусто - путь по умолчанию из конфига
	HttpOnly *bool  // nil - true
}

// Manager - установка и чтение кук по общим правилам безопасности
type Manager struct {
	config config.CookieManagerConfig
}

// конструктор менеджера кук
func NewManager(config config.CookieManagerConfig) *Manager {
	return &Manager{config: config}
}

// SetCookie устанавливает куку согласно переданным параметрам
func (m *Manager) SetCookie(c *gin.Context, opts CookieOptions) error {
	if opts.Name == "" {
		return fmt.Errorf("cookie name must not be empty")
	}

	path := opts.Path
	if path == "" {
		path = m.config.DefaultPath
	}

	httpOnly := true
	if opts.HttpOnly != nil {
		httpOnly = *opts.HttpOnly
	}

	c.SetSameSite(m.parseSameSite())
	c.SetCookie(m.cookieName(opts.Name), opts.Value, opts.MaxAge, path, m.getDomain(), m.config.Secure, httpOnly)
	return nil
}

// GetCookie возвращает значение куки или ErrCookieNotFound
func (m *Manager) GetCookie(c *gin.Context, name string) (string, error) {
	value, err := c.Cookie(m.cookieName(name))
	if errors.Is(err, http.ErrNoCookie) || (err == nil && value == "") {
		return "", fmt.Errorf("%w: %s", ErrCookieNotFound, m.cookieName(name))
	}
	if err != nil {
		return "", fmt.Errorf("failed to get cookie %s: %w", m.cookieName(name), err)
	}
	return value, nil
}

// DeleteCookie очищает куку по имени и пути
func (m *Manager) DeleteCookie(c *gin.Context, name, path string) {
	if path == "" {
		path = m.config.DefaultPath
	}
	c.SetSameSite(m.parseSameSite())
	c.SetCookie(m.cookieName(name), "", -1, path, m.getDomain(), m.config.Secure, true)
}

// имя сессионной куки (без префикса)
func (m *Manager) SessionName() string {
	return m.config.SessionName
}

// время жизни сессионной куки в секундах
func (m *Manager) SessionMaxAge() int {
	return int(m.config.SessionMaxAge.Seconds())
}

// префикс разделяет куки нескольких приложений на одном домене
func (m *Manager) cookieName(name string) string {
	if m.config.Prefix != "" {
		return m.config.Prefix + "_" + name
	}
	return name
}

func (m *Manager) getDomain() string {
	if m.config.ProjectMode == "production" && m.config.Domain != "" {
		return m.config.Domain
	}
	return ""
}

func (m *Manager) parseSameSite() http.SameSite {
	switch m.config.SameSite {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
