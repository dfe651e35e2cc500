package configs

import "time"

// настройки публичного листинга вакансий
type ListingConfig struct {
	DefaultPageSize int           `yaml:"default_page_size"`
	MaxPageSize     int           `yaml:"max_page_size"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`       // время жизни записей кэша чтения
	FuzzyThreshold  float64       `yaml:"fuzzy_threshold"` // 0..1, выше - строже
	RelatedJobs     int           `yaml:"related_jobs"`    // сколько похожих вакансий на странице вакансии
}

// конфиг листинга по умолчанию
func UseDefaultListingConfig() *ListingConfig {
	return &ListingConfig{
		DefaultPageSize: 12,
		MaxPageSize:     50,
		CacheTTL:        30 * time.Second,
		FuzzyThreshold:  0.6,
		RelatedJobs:     3,
	}
}

// проверка значений листинга
func (c *ListingConfig) Validate() error {
	switch {
	case c.DefaultPageSize <= 0:
		return &configError{field: "default_page_size", msg: "must be positive"}
	case c.MaxPageSize < c.DefaultPageSize:
		return &configError{field: "max_page_size", msg: "must not be less than default_page_size"}
	case c.FuzzyThreshold < 0 || c.FuzzyThreshold > 1:
		return &configError{field: "fuzzy_threshold", msg: "must be within [0, 1]"}
	case c.CacheTTL < 0:
		return &configError{field: "cache_ttl", msg: "must not be negative"}
	}
	return nil
}

type configError struct {
	field string
	msg   string
}

func (e *configError) Error() string {
	return "config error in field '" + e.field + "': " + e.msg
}
