package api

import (
	"encoding/json"
	"strings"

	"github.com/iudanet/storefront/internal/models"
)

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"` // опционально
}

// AuthResponse ответ на успешный login/register
type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	Message     string       `json:"message,omitempty"`
}

// Messages сообщение об ошибке от backend.
// Backend отдает либо строку, либо массив строк (ошибки валидации DTO).
type Messages []string

// UnmarshalJSON принимает как строку, так и массив строк
func (m *Messages) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*m = nil
			return nil
		}
		*m = Messages{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*m = list
	return nil
}

// String склеивает сообщения через ". "
func (m Messages) String() string {
	return strings.Join(m, ". ")
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error      string   `json:"error"`             // краткое описание ошибки
	Message    Messages `json:"message,omitempty"` // сообщение или список сообщений
	StatusCode int      `json:"statusCode,omitempty"`
}
