package jwt_service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTService - выпуск и проверка сессионных токенов
type JWTService struct {
	config *JWTConfig
	parser *jwt.Parser // только HS256 и обязательный срок действия
	now    func() time.Time
}

// конфигурация JWT
type JWTConfig struct {
	SecretKey       string        `yaml:"secret"`               // ключ подписи HS256
	Issuer          string        `yaml:"issuer"`               // значение iss
	SessionTokenExp time.Duration `yaml:"session_token_expiry"` // время жизни сессионного токена
}

// Subject - данные пользователя, которые кладутся в токен
type Subject struct {
	UserID    string
	Email     string
	Role      string
	CompanyID string
}

// CustomClaims для JWT
type CustomClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CompanyID string `json:"company_id,omitempty"`
	TokenType string `json:"type"` // всегда "session"
	jwt.RegisteredClaims
}

// Subject восстанавливает данные пользователя из claims
func (c *CustomClaims) Subject() Subject {
	return Subject{
		UserID:    c.UserID,
		Email:     c.Email,
		Role:      c.Role,
		CompanyID: c.CompanyID,
	}
}

const sessionTokenType = "session"
