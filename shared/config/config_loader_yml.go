package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// универсальная функция загрузки конфига из .yml файла
// fn - конструктор конфига со значениями по умолчанию
//
// пустой путь или отсутствующий файл - не ошибка, возвращаются значения по умолчанию;
// файл, который не читается или не парсится - ошибка
func LoadYAMLConfig[T any](configPath string, fn func() *T) (*T, error) {
	config := fn()

	if configPath == "" {
		return config, nil
	}

	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		slog.Warn("config file not found, using defaults", "path", configPath)
		return config, nil
	}

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// значения из файла перекрывают дефолтные, отсутствующие поля остаются как есть
	if err := yaml.Unmarshal(yamlFile, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", configPath, err)
	}

	return config, nil
}
