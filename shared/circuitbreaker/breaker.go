// circuit breaker для обращений к хранилищу документов:
// после серии ошибок перестаёт ходить в хранилище и сразу отдаёт ErrCircuitOpen,
// чтобы публичные страницы быстрее уходили на резервные данные
package circuitbreaker

import (
	"errors"
	"jobboard/shared/config"
	"sync"
	"time"
)

// состояния Circuit Breaker
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

var (
	ErrCircuitOpen     = errors.New("circuit breaker is open")
	ErrTooManyRequests = errors.New("too many requests in half-open state")
)

// Stats - счётчики для логов и отладки
type Stats struct {
	State          State
	TotalRequests  uint32
	TotalSuccesses uint32
	TotalFailures  uint32
	Rejected       uint32
}

type CircuitBreaker struct {
	mu sync.Mutex

	name string

	// конфигурация
	failureThreshold    uint32
	successThreshold    uint32
	halfOpenMaxRequests uint32
	resetTimeout        time.Duration

	// состояние
	state            State
	failures         uint32
	successes        uint32
	halfOpenInFlight uint32
	openedAt         time.Time

	stats Stats

	now func() time.Time
}

// конструктор, нулевые значения конфига заменяются значениями по умолчанию
func NewCircuitBreaker(name string, cfg config.CircuitBreakerConfig) *CircuitBreaker {
	defaults := config.UseDefaultCircuitBreakerConfig()
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.SuccessThreshold == 0 {
		cfg.SuccessThreshold = defaults.SuccessThreshold
	}
	if cfg.HalfOpenMaxRequests == 0 {
		cfg.HalfOpenMaxRequests = defaults.HalfOpenMaxRequests
	}
	if cfg.ResetTimeout <= 0 {
		cfg.ResetTimeout = defaults.ResetTimeout
	}

	return &CircuitBreaker{
		name:                name,
		failureThreshold:    cfg.FailureThreshold,
		successThreshold:    cfg.SuccessThreshold,
		halfOpenMaxRequests: cfg.HalfOpenMaxRequests,
		resetTimeout:        cfg.ResetTimeout,
		state:               StateClosed,
		now:                 time.Now,
	}
}
