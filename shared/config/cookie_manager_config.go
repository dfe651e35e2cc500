package config

import "time"

// настройки менеджера кук (сессионная кука и state для OAuth)
type CookieManagerConfig struct {
	Domain        string        `yaml:"domain"`         // домен для production (пусто для localhost)
	ProjectMode   string        `yaml:"project_mode"`   // production, staging, development
	Secure        bool          `yaml:"secure"`         // true в production
	SameSite      string        `yaml:"same_site"`      // lax, strict, none
	DefaultPath   string        `yaml:"default_path"`   // путь по умолчанию
	SessionName   string        `yaml:"session_name"`   // имя сессионной куки
	SessionMaxAge time.Duration `yaml:"session_max_age"` // время жизни сессионной куки
	Prefix        string        `yaml:"prefix"`         // префикс имён, чтобы не конфликтовать с соседними приложениями
}

// конфиг кук по умолчанию
func DefaultCookieConfig() *CookieManagerConfig {
	return &CookieManagerConfig{
		ProjectMode:   "development",
		SameSite:      "lax",
		DefaultPath:   "/",
		SessionName:   "session",
		SessionMaxAge: 7 * 24 * time.Hour,
	}
}
