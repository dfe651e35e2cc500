// конфиг подключения к PostgreSQL (хранилище документов)
package config

import (
	"fmt"
	"strings"
	"time"
)

// структура конфига для базы
type PostgresDBConfig struct {
	DSN string

	// пул соединений
	MaxConns int32
	MinConns int32

	// проверки соединений и время жизни
	HealthCheckPeriod time.Duration
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration

	ConnectTimeout time.Duration
}

// NewPostgresDBConfigFromEnv собирает конфиг из переменных окружения.
// DATABASE_URL имеет приоритет над DB_HOST/DB_USER/DB_PASSWORD/DB_NAME.
// Все ошибки валидации накапливаются и возвращаются одной ошибкой.
func NewPostgresDBConfigFromEnv() (*PostgresDBConfig, error) {
	var errs []string

	dsn := GetEnvWithDefault("DATABASE_URL", "")
	if dsn == "" {
		var missing []string
		required := map[string]string{}
		for _, key := range []string{"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME"} {
			val, err := getRequiredEnv(key)
			if err != nil {
				missing = append(missing, err.Error())
				continue
			}
			required[key] = val
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
		}

		dsn = buildDSN(
			required["DB_HOST"],
			GetEnvWithDefault("DB_PORT", "5432"),
			required["DB_USER"],
			required["DB_PASSWORD"],
			required["DB_NAME"],
			GetEnvWithDefault("DB_SSL_MODE", "disable"),
		)
	}

	maxConns, err := getEnvAsInt32WithValidation("DB_MAX_CONNS", 10, 1, 100)
	if err != nil {
		errs = append(errs, err.Error())
	}

	minConns, err := getEnvAsInt32WithValidation("DB_MIN_CONNS", 2, 0, 50)
	if err != nil {
		errs = append(errs, err.Error())
	}

	if minConns > maxConns {
		errs = append(errs, fmt.Sprintf("DB_MIN_CONNS (%d) cannot be greater than DB_MAX_CONNS (%d)", minConns, maxConns))
	}

	healthCheckPeriod, err := GetEnvAsDurationWithValidation("DB_HEALTH_CHECK_PERIOD", time.Minute, time.Second, 5*time.Minute)
	if err != nil {
		errs = append(errs, err.Error())
	}

	maxConnLifetime, err := GetEnvAsDurationWithValidation("DB_MAX_CONN_LIFETIME", time.Hour, time.Second, 24*time.Hour)
	if err != nil {
		errs = append(errs, err.Error())
	}

	maxConnIdleTime, err := GetEnvAsDurationWithValidation("DB_MAX_CONN_IDLE_TIME", 30*time.Minute, time.Second, 24*time.Hour)
	if err != nil {
		errs = append(errs, err.Error())
	}

	if maxConnIdleTime > maxConnLifetime {
		errs = append(errs, fmt.Sprintf("DB_MAX_CONN_IDLE_TIME (%v) cannot be greater than DB_MAX_CONN_LIFETIME (%v)", maxConnIdleTime, maxConnLifetime))
	}

	connectTimeout, err := GetEnvAsDurationWithValidation("DB_CONNECT_TIMEOUT", 5*time.Second, time.Second, time.Minute)
	if err != nil {
		errs = append(errs, err.Error())
	}

	if err := joinConfigErrors(errs); err != nil {
		return nil, err
	}

	return &PostgresDBConfig{
		DSN:               dsn,
		MaxConns:          maxConns,
		MinConns:          minConns,
		HealthCheckPeriod: healthCheckPeriod,
		MaxConnLifetime:   maxConnLifetime,
		MaxConnIdleTime:   maxConnIdleTime,
		ConnectTimeout:    connectTimeout,
	}, nil
}

// buildDSN собирает DSN строку в формате key=value
func buildDSN(host, port, user, password, dbName, sslMode string) string {
	return strings.Join([]string{
		"host=" + host,
		"port=" + port,
		"user=" + user,
		"password=" + password,
		"dbname=" + dbName,
		"sslmode=" + sslMode,
	}, " ")
}
