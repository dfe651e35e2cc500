package config

import (
	"time"
)

// структура для конфига HTTP сервера
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           string        `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	MaxHeaderBytes int           `yaml:"max_header_bytes"`

	// HTTPS без внешнего прокси (nginx и т.п.)
	EnableTLS   bool   `yaml:"enable_tls"`
	TLSCertFile string `yaml:"tls_cert_file"`
	TLSKeyFile  string `yaml:"tls_key_file"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// конфиг сервера по умолчанию
func UseDefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Host:            "localhost",
		Port:            "8080",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     60 * time.Second,
		MaxHeaderBytes:  1 << 20,
		ShutdownTimeout: 30 * time.Second,
	}
}

// адрес для прослушивания
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// проверка TLS части конфига
func (c *ServerConfig) ValidateTLS() error {
	if !c.EnableTLS {
		return nil
	}
	if c.TLSCertFile == "" {
		return &ConfigError{Field: "TLSCertFile", Msg: "TLS certificate file is required when TLS is enabled"}
	}
	if c.TLSKeyFile == "" {
		return &ConfigError{Field: "TLSKeyFile", Msg: "TLS key file is required when TLS is enabled"}
	}
	return nil
}

// ошибка конкретного поля конфигурации
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Msg
}
