package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrServerUnreachable запрос не дошел до сервера (нет соединения, DNS, таймаут транспорта)
var ErrServerUnreachable = errors.New("server unreachable")

// HTTPError представляет non-2xx ответ backend
type HTTPError struct {
	Message    string
	StatusCode int
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// Kind категория ошибки запроса
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindUnauthorized
	KindServerUnreachable
	KindValidation
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	case KindServerUnreachable:
		return "server_unreachable"
	case KindValidation:
		return "validation_failed"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// RequestError ошибка запроса с сообщением для пользователя.
// Message - текст от backend, если он есть, иначе дефолтный текст для категории.
type RequestError struct {
	Err     error
	Message string
	Kind    Kind
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Classify раскладывает ошибку клиента по категориям.
// Возвращает nil для nil.
func Classify(err error) *RequestError {
	if err == nil {
		return nil
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		kind := kindForStatus(httpErr.StatusCode)
		msg := httpErr.Message
		if msg == "" {
			msg = defaultMessage(kind)
		}
		return &RequestError{Kind: kind, Message: msg, Err: err}
	}

	if errors.Is(err, ErrServerUnreachable) {
		return &RequestError{Kind: KindServerUnreachable, Message: defaultMessage(KindServerUnreachable), Err: err}
	}

	if errors.Is(err, context.Canceled) {
		return &RequestError{Kind: KindUnknown, Message: "request cancelled", Err: err}
	}

	return &RequestError{Kind: KindUnknown, Message: defaultMessage(KindUnknown), Err: err}
}

func kindForStatus(code int) Kind {
	switch code {
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusConflict:
		return KindConflict
	default:
		return KindUnknown
	}
}

func defaultMessage(kind Kind) string {
	switch kind {
	case KindNotFound:
		return "resource not found"
	case KindForbidden:
		return "access denied"
	case KindUnauthorized:
		return "session expired, please log in again"
	case KindServerUnreachable:
		return "could not connect to the server, check that the backend is running"
	case KindValidation:
		return "invalid data"
	case KindConflict:
		return "resource already exists"
	default:
		return "request failed, please try again"
	}
}
