package config

import "time"

// CircuitBreakerConfig - конфигурация circuit breaker для обращений к хранилищу
type CircuitBreakerConfig struct {
	FailureThreshold    uint32        `yaml:"failure_threshold"`      // ошибок подряд до перехода в Open
	SuccessThreshold    uint32        `yaml:"success_threshold"`      // успехов в Half-Open для возврата в Closed
	HalfOpenMaxRequests uint32        `yaml:"half_open_max_requests"` // пробных запросов в Half-Open
	ResetTimeout        time.Duration `yaml:"reset_timeout"`          // время в Open до пробных запросов
}

// конфиг circuit breaker по умолчанию
func UseDefaultCircuitBreakerConfig() *CircuitBreakerConfig {
	return &CircuitBreakerConfig{
		FailureThreshold:    5,
		SuccessThreshold:    2,
		HalfOpenMaxRequests: 2,
		ResetTimeout:        15 * time.Second,
	}
}
