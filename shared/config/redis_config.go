package config

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// структура конфига для Redis (кэш чтения листингов)
type RedisConfig struct {
	Host         string
	Port         string
	Password     string // может быть пустым для локального redis
	DB           int32  // номер базы 0-15
	PoolSize     int32  // максимум одновременных соединений
	MinIdleConns int32  // сколько соединений держать открытыми
	MaxRetries   int32  // повторы при временных сетевых сбоях

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	PoolTimeout  time.Duration
}

// NewRedisConfigFromEnv создает конфиг Redis из переменных окружения (REDIS_*)
func NewRedisConfigFromEnv() (*RedisConfig, error) {
	var errs []string

	host, err := getRequiredEnv("REDIS_HOST")
	if err != nil {
		return nil, fmt.Errorf("missing required environment variables: %w", err)
	}

	db, err := getEnvAsInt32WithValidation("REDIS_DB", 0, 0, 15)
	if err != nil {
		errs = append(errs, err.Error())
	}

	poolSize, err := getEnvAsInt32WithValidation("REDIS_POOL_SIZE", 20, 1, 1000)
	if err != nil {
		errs = append(errs, err.Error())
	}

	minIdleConns, err := getEnvAsInt32WithValidation("REDIS_MIN_IDLE_CONNS", 4, 0, 1000)
	if err != nil {
		errs = append(errs, err.Error())
	}

	if minIdleConns > poolSize {
		errs = append(errs, fmt.Sprintf("REDIS_MIN_IDLE_CONNS (%d) cannot be greater than REDIS_POOL_SIZE (%d)", minIdleConns, poolSize))
	}

	maxRetries, err := getEnvAsInt32WithValidation("REDIS_MAX_RETRIES", 2, 0, 3)
	if err != nil {
		errs = append(errs, err.Error())
	}

	dialTimeout, err := GetEnvAsDurationWithValidation("REDIS_DIAL_TIMEOUT", 5*time.Second, time.Second, 30*time.Second)
	if err != nil {
		errs = append(errs, err.Error())
	}

	readTimeout, err := GetEnvAsDurationWithValidation("REDIS_READ_TIMEOUT", 3*time.Second, 100*time.Millisecond, 30*time.Second)
	if err != nil {
		errs = append(errs, err.Error())
	}

	writeTimeout, err := GetEnvAsDurationWithValidation("REDIS_WRITE_TIMEOUT", 3*time.Second, 100*time.Millisecond, 30*time.Second)
	if err != nil {
		errs = append(errs, err.Error())
	}

	idleTimeout, err := GetEnvAsDurationWithValidation("REDIS_IDLE_TIMEOUT", 5*time.Minute, time.Minute, 24*time.Hour)
	if err != nil {
		errs = append(errs, err.Error())
	}

	poolTimeout, err := GetEnvAsDurationWithValidation("REDIS_POOL_TIMEOUT", 4*time.Second, time.Second, time.Minute)
	if err != nil {
		errs = append(errs, err.Error())
	}

	if err := joinConfigErrors(errs); err != nil {
		return nil, err
	}

	return &RedisConfig{
		Host:         host,
		Port:         GetEnvWithDefault("REDIS_PORT", "6379"),
		Password:     GetEnvWithDefault("REDIS_PASSWORD", ""),
		DB:           db,
		PoolSize:     poolSize,
		MinIdleConns: minIdleConns,
		MaxRetries:   maxRetries,
		DialTimeout:  dialTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		PoolTimeout:  poolTimeout,
	}, nil
}

// опции для redis.NewClient
func (r *RedisConfig) ToRedisOptions() *redis.Options {
	return &redis.Options{
		Addr:         r.Host + ":" + r.Port,
		Password:     r.Password,
		DB:           int(r.DB),
		PoolSize:     int(r.PoolSize),
		MinIdleConns: int(r.MinIdleConns),
		MaxRetries:   int(r.MaxRetries),
		DialTimeout:  r.DialTimeout,
		ReadTimeout:  r.ReadTimeout,
		WriteTimeout: r.WriteTimeout,
		IdleTimeout:  r.IdleTimeout,
		PoolTimeout:  r.PoolTimeout,
	}
}
