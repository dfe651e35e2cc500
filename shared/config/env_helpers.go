// вспомогательные функции чтения переменных окружения с валидацией
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// getRequiredEnv - обязательная переменная окружения
func getRequiredEnv(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return val, nil
}

// GetEnvWithDefault - переменная окружения или значение по умолчанию
func GetEnvWithDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

// GetEnvList - список значений через запятую, пустые элементы отбрасываются
func GetEnvList(key string, defaultValue []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}

	var result []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// GetEnvAsIntWithValidation - целое число в диапазоне [min, max]
func GetEnvAsIntWithValidation(key string, defaultValue, min, max int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue, nil
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: must be an integer, got %q", key, val)
	}
	if i < min || i > max {
		return defaultValue, fmt.Errorf("%s: value %d is out of range [%d, %d]", key, i, min, max)
	}
	return i, nil
}

// getEnvAsInt32WithValidation - то же самое для int32 полей пулов соединений
func getEnvAsInt32WithValidation(key string, defaultValue, min, max int32) (int32, error) {
	i, err := GetEnvAsIntWithValidation(key, int(defaultValue), int(min), int(max))
	return int32(i), err
}

// GetEnvAsDurationWithValidation - длительность ('1m', '30s') или число секунд в диапазоне [min, max]
func GetEnvAsDurationWithValidation(key string, defaultValue, min, max time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue, nil
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		secs, convErr := strconv.ParseInt(val, 10, 64)
		if convErr != nil {
			return defaultValue, fmt.Errorf("%s: must be a duration (like '1m', '1h') or number of seconds, got %q", key, val)
		}
		d = time.Duration(secs) * time.Second
	}

	if d < min || d > max {
		return defaultValue, fmt.Errorf("%s: duration %v is out of range [%v, %v]", key, d, min, max)
	}
	return d, nil
}

// joinConfigErrors - общий формат ошибки для накопленных проблем конфигурации
func joinConfigErrors(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("configuration errors:\n%s", strings.Join(errs, "\n"))
}
