package jwt_service

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// LoadJWTConfig читает конфиг JWT. Секрет можно переопределить переменной JWT_SECRET.
// Дефолтов для секрета нет: без него сервис не стартует.
func LoadJWTConfig(configPath string) (*JWTConfig, error) {
	config := JWTConfig{
		Issuer:          "jobboard",
		SessionTokenExp: 24 * time.Hour,
	}

	if configPath != "" {
		yamlFile, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read JWT config: %w", err)
		}
		if err := yaml.Unmarshal(yamlFile, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JWT config: %w", err)
		}
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.SecretKey = secret
	}

	if err := validateJWTConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid JWT config: %w", err)
	}
	return &config, nil
}

// строгая валидация конфига
func validateJWTConfig(cfg *JWTConfig) error {
	if cfg.SecretKey == "" {
		return fmt.Errorf("secret is required")
	}
	if len(cfg.SecretKey) < 32 {
		return fmt.Errorf("secret too short (min 32 chars)")
	}
	if cfg.SessionTokenExp <= 0 {
		return fmt.Errorf("session_token_expiry must be positive")
	}
	if cfg.SessionTokenExp > 30*24*time.Hour {
		return fmt.Errorf("session_token_expiry too long (max 30 days)")
	}
	return nil
}

// claims для сессионного токена
func newClaims(subject Subject, issuer string, now time.Time, exp time.Duration) CustomClaims {
	return CustomClaims{
		UserID:    subject.UserID,
		Email:     subject.Email,
		Role:      subject.Role,
		CompanyID: subject.CompanyID,
		TokenType: sessionTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(exp)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			ID:        uuid.NewString(),
		},
	}
}
