package configs

import (
	"fmt"
	"time"
)

// настройки дашборда работодателя
type StatsConfig struct {
	Timezone    string `yaml:"timezone"`     // IANA зона для границ дней в тренде
	DefaultDays int    `yaml:"default_days"` // длина тренда по умолчанию
	MaxDays     int    `yaml:"max_days"`
	TopN        int    `yaml:"top_n"`        // размер топа вакансий
	RecentItems int    `yaml:"recent_items"` // длина ленты активности
}

// конфиг статистики по умолчанию
func UseDefaultStatsConfig() *StatsConfig {
	return &StatsConfig{
		Timezone:    "UTC",
		DefaultDays: 30,
		MaxDays:     365,
		TopN:        5,
		RecentItems: 10,
	}
}

// Location - зона для группировки откликов по дням
func (c *StatsConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid stats timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// проверка значений статистики
func (c *StatsConfig) Validate() error {
	switch {
	case c.DefaultDays <= 0:
		return &configError{field: "default_days", msg: "must be positive"}
	case c.MaxDays < c.DefaultDays:
		return &configError{field: "max_days", msg: "must not be less than default_days"}
	case c.TopN <= 0:
		return &configError{field: "top_n", msg: "must be positive"}
	case c.RecentItems <= 0:
		return &configError{field: "recent_items", msg: "must be positive"}
	}
	return nil
}
