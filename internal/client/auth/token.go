package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry в токене нет claim exp
var ErrNoExpiry = errors.New("token has no expiration claim")

var unverifiedParser = jwt.NewParser()

// TokenExpiry читает claim exp без проверки подписи.
// Подпись проверяет только backend, клиенту нужен лишь срок действия.
func TokenExpiry(token string) (time.Time, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := unverifiedParser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}

// IsExpired сообщает, истек ли токен на момент now.
// Нечитаемый токен и токен без exp считаются истекшими.
func IsExpired(token string, now time.Time) bool {
	exp, err := TokenExpiry(token)
	if err != nil {
		return true
	}
	return !now.Before(exp)
}
