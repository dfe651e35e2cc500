// описание общего конфига для сервиса доски вакансий
package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"jobboard/shared/config"
	"jobboard/shared/jwt_service"

	"github.com/joho/godotenv"
)

// драйверы хранилища документов и кэша
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// StorageConfig - где лежат документы; нужен и серверу, и CLI
type StorageConfig struct {
	Driver         string                   // DOCSTORE_DRIVER: memory | postgres
	PostgresDBConf *config.PostgresDBConfig // только для postgres
}

type BoardServiceConfig struct {
	Storage     StorageConfig
	CacheDriver string              // CACHE_DRIVER: memory | redis
	RedisConf   *config.RedisConfig // только для redis
	CORSOrigins []string

	ServerConf  *config.ServerConfig
	JWTConf     *jwt_service.JWTConfig // секрет подписи и время жизни сессии
	CookieConf  *config.CookieManagerConfig
	BreakerConf *config.CircuitBreakerConfig
	ListingConf *ListingConfig
	StatsConf   *StatsConfig
	OAuthConf   *OAuthConfig
}

// LoadEnv подгружает .env (путь из ENV_FILE); отсутствие файла не ошибка
func LoadEnv() error {
	path := config.GetEnvWithDefault("ENV_FILE", ".env")
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Info("env file not found, using process environment", "path", path)
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// LoadStorageConfig читает настройки хранилища документов
func LoadStorageConfig() (StorageConfig, error) {
	storage := StorageConfig{Driver: config.GetEnvWithDefault("DOCSTORE_DRIVER", DriverMemory)}

	switch storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		pgConf, err := config.NewPostgresDBConfigFromEnv()
		if err != nil {
			return StorageConfig{}, fmt.Errorf("postgres config: %w", err)
		}
		storage.PostgresDBConf = pgConf
	default:
		return StorageConfig{}, fmt.Errorf("unknown DOCSTORE_DRIVER %q", storage.Driver)
	}
	return storage, nil
}

// загружаем конфиг-данные из .env и .yml файлов
func LoadConfig() (*BoardServiceConfig, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}

	storage, err := LoadStorageConfig()
	if err != nil {
		return nil, err
	}

	conf := &BoardServiceConfig{
		Storage:     storage,
		CacheDriver: config.GetEnvWithDefault("CACHE_DRIVER", DriverMemory),
		CORSOrigins: config.GetEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	switch conf.CacheDriver {
	case DriverMemory:
	case DriverRedis:
		conf.RedisConf, err = config.NewRedisConfigFromEnv()
		if err != nil {
			return nil, fmt.Errorf("redis config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown CACHE_DRIVER %q", conf.CacheDriver)
	}

	// загружаем данные из .yml файла для serverConfig
	conf.ServerConf, err = config.LoadYAMLConfig(os.Getenv("SERVER_CONFIG_PATH"), config.UseDefaultServerConfig)
	if err != nil {
		return nil, fmt.Errorf("server config: %w", err)
	}
	if err := conf.ServerConf.ValidateTLS(); err != nil {
		return nil, err
	}

	// загружаем данные из .yml файла для jwtConfig
	conf.JWTConf, err = jwt_service.LoadJWTConfig(os.Getenv("JWT_CONFIG_PATH"))
	if err != nil {
		return nil, fmt.Errorf("jwt config: %w", err)
	}

	conf.CookieConf, err = config.LoadYAMLConfig(os.Getenv("COOKIE_CONFIG_PATH"), config.DefaultCookieConfig)
	if err != nil {
		return nil, fmt.Errorf("cookie config: %w", err)
	}

	conf.BreakerConf, err = config.LoadYAMLConfig(os.Getenv("BREAKER_CONFIG_PATH"), config.UseDefaultCircuitBreakerConfig)
	if err != nil {
		return nil, fmt.Errorf("circuit breaker config: %w", err)
	}

	conf.ListingConf, err = config.LoadYAMLConfig(os.Getenv("LISTING_CONFIG_PATH"), UseDefaultListingConfig)
	if err != nil {
		return nil, fmt.Errorf("listing config: %w", err)
	}
	if err := conf.ListingConf.Validate(); err != nil {
		return nil, err
	}

	conf.StatsConf, err = config.LoadYAMLConfig(os.Getenv("STATS_CONFIG_PATH"), UseDefaultStatsConfig)
	if err != nil {
		return nil, fmt.Errorf("stats config: %w", err)
	}
	if err := conf.StatsConf.Validate(); err != nil {
		return nil, err
	}

	conf.OAuthConf, err = config.LoadYAMLConfig(os.Getenv("OAUTH_CONFIG_PATH"), UseDefaultOAuthConfig)
	if err != nil {
		return nil, fmt.Errorf("oauth config: %w", err)
	}
	if secret := os.Getenv("OAUTH_CLIENT_SECRET"); secret != "" {
		conf.OAuthConf.ClientSecret = secret
	}

	return conf, nil
}
