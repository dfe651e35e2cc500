package circuitbreaker

import "log/slog"

// Execute выполняет fn под защитой breaker.
// В Open сразу возвращает ErrCircuitOpen, в Half-Open пропускает ограниченное число пробных вызовов.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	halfOpen, err := cb.beforeCall()
	if err != nil {
		return err
	}

	err = fn()
	cb.afterCall(halfOpen, err)
	return err
}

// решаем, можно ли выполнять вызов, и резервируем слот в Half-Open
func (cb *CircuitBreaker) beforeCall() (bool, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen {
		if cb.now().Sub(cb.openedAt) < cb.resetTimeout {
			cb.stats.Rejected++
			return false, ErrCircuitOpen
		}
		cb.setState(StateHalfOpen)
	}

	if cb.state == StateHalfOpen {
		if cb.halfOpenInFlight >= cb.halfOpenMaxRequests {
			cb.stats.Rejected++
			return false, ErrTooManyRequests
		}
		cb.halfOpenInFlight++
		cb.stats.TotalRequests++
		return true, nil
	}

	cb.stats.TotalRequests++
	return false, nil
}

// учитываем результат вызова
func (cb *CircuitBreaker) afterCall(halfOpen bool, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if halfOpen && cb.halfOpenInFlight > 0 {
		cb.halfOpenInFlight--
	}

	if err != nil {
		cb.stats.TotalFailures++
		cb.onFailure()
		return
	}
	cb.stats.TotalSuccesses++
	cb.onSuccess()
}

// мьютекс уже захвачен вызывающим кодом
func (cb *CircuitBreaker) onFailure() {
	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.failureThreshold {
			cb.setState(StateOpen)
		}
	case StateHalfOpen:
		// любая ошибка пробного вызова возвращает в Open
		cb.setState(StateOpen)
	}
}

// мьютекс уже захвачен вызывающим кодом
func (cb *CircuitBreaker) onSuccess() {
	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.successThreshold {
			cb.setState(StateClosed)
		}
	}
}

// смена состояния со сбросом счётчиков
func (cb *CircuitBreaker) setState(state State) {
	if cb.state == state {
		return
	}
	slog.Warn("circuit breaker state changed", "breaker", cb.name, "from", cb.state.String(), "to", state.String())

	cb.state = state
	cb.failures = 0
	cb.successes = 0
	cb.halfOpenInFlight = 0
	if state == StateOpen {
		cb.openedAt = cb.now()
	}
}

// State возвращает текущее состояние
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// GetStats возвращает копию счётчиков
func (cb *CircuitBreaker) GetStats() Stats {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	stats := cb.stats
	stats.State = cb.state
	return stats
}
