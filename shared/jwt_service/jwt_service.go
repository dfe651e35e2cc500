package jwt_service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

// SessionTokens - интерфейс для слоёв, которым нужен выпуск/проверка токенов
type SessionTokens interface {
	GenerateSessionToken(subject Subject) (string, time.Time, error)
	ParseSessionToken(tokenString string) (*CustomClaims, error)
}

// NewJWTService создаёт сервис с конфигом
func NewJWTService(config *JWTConfig) *JWTService {
	j := &JWTService{
		config: config,
		now:    time.Now,
	}
	// часы берутся из сервиса, чтобы срок действия проверялся по тому же времени, что и выпуск
	j.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return j.now() }),
	)
	return j
}

// GenerateSessionToken выпускает подписанный токен и возвращает момент его истечения
func (j *JWTService) GenerateSessionToken(subject Subject) (string, time.Time, error) {
	if subject.UserID == "" || subject.Email == "" {
		return "", time.Time{}, fmt.Errorf("session subject must have user id and email")
	}

	now := j.now()
	claims := newClaims(subject, j.config.Issuer, now, j.config.SessionTokenExp)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(j.config.SecretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, claims.ExpiresAt.Time, nil
}

// ParseSessionToken проверяет подпись, срок действия и тип токена
func (j *JWTService) ParseSessionToken(tokenString string) (*CustomClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := j.parser.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.config.SecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != sessionTokenType || claims.UserID == "" {
		return nil, fmt.Errorf("%w: unexpected claims", ErrInvalidToken)
	}
	return claims, nil
}
