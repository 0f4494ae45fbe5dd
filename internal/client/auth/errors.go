package auth

import (
	"errors"

	"github.com/iudanet/storefront/internal/client/api"
	"github.com/iudanet/storefront/internal/validation"
)

// ErrorKind категория ошибки аутентификации
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidCredentials
	KindServerUnreachable
	KindValidationFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindServerUnreachable:
		return "server_unreachable"
	case KindValidationFailed:
		return "validation_failed"
	default:
		return "unknown"
	}
}

// AuthError ошибка входа или регистрации с сообщением для пользователя
type AuthError struct {
	Err     error
	Message string
	Kind    ErrorKind
}

// Sentinel значения для errors.Is: сравнивается только Kind
var (
	ErrInvalidCredentials = &AuthError{Kind: KindInvalidCredentials}
	ErrServerUnreachable  = &AuthError{Kind: KindServerUnreachable}
	ErrValidationFailed   = &AuthError{Kind: KindValidationFailed}
)

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "authentication error: " + e.Kind.String()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Is позволяет писать errors.Is(err, auth.ErrInvalidCredentials)
func (e *AuthError) Is(target error) bool {
	t, ok := target.(*AuthError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

const (
	msgUnreachable      = "could not connect to the server, check that the backend is running"
	msgInvalidLogin     = "invalid credentials"
	msgLoginFailed      = "login failed, please try again"
	msgEmailTaken       = "email is already registered, try another email or log in"
	msgInvalidData      = "invalid data"
	msgRegisterFailed   = "registration failed, please try again"
	msgMalformedSession = "server returned an incomplete session"
)

func validationError(err error) *AuthError {
	return &AuthError{Kind: KindValidationFailed, Message: validation.Message(err), Err: err}
}

// loginError раскладывает ошибку POST /auth/login
func loginError(err error) *AuthError {
	var httpErr *api.HTTPError
	switch {
	case errors.As(err, &httpErr) && httpErr.StatusCode == 401:
		msg := httpErr.Message
		if msg == "" {
			msg = msgInvalidLogin
		}
		return &AuthError{Kind: KindInvalidCredentials, Message: msg, Err: err}
	case errors.Is(err, api.ErrServerUnreachable):
		return &AuthError{Kind: KindServerUnreachable, Message: msgUnreachable, Err: err}
	default:
		return &AuthError{Kind: KindUnknown, Message: msgLoginFailed, Err: err}
	}
}

// registerError раскладывает ошибку POST /auth/register
func registerError(err error) *AuthError {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case 409:
			return &AuthError{Kind: KindValidationFailed, Message: msgEmailTaken, Err: err}
		case 400:
			msg := httpErr.Message
			if msg == "" {
				msg = msgInvalidData
			}
			return &AuthError{Kind: KindValidationFailed, Message: msg, Err: err}
		}
	}
	if errors.Is(err, api.ErrServerUnreachable) {
		return &AuthError{Kind: KindServerUnreachable, Message: msgUnreachable, Err: err}
	}
	return &AuthError{Kind: KindUnknown, Message: msgRegisterFailed, Err: err}
}
