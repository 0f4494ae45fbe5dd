package validation

import (
	"errors"
	"strings"
)

// ErrInvalid общая причина всех ошибок валидации
var ErrInvalid = errors.New("invalid input")

// FieldError ошибка валидации конкретного поля
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	return ErrInvalid
}

func fieldError(field, message string) error {
	return &FieldError{Field: field, Message: message}
}

// Errors несколько ошибок полей формы
type Errors []*FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Error())
	}
	return strings.Join(parts, "; ")
}

func (e Errors) Unwrap() error {
	return ErrInvalid
}

// Message первое сообщение, которое стоит показать пользователю
func Message(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Message
	}
	var list Errors
	if errors.As(err, &list) && len(list) > 0 {
		return list[0].Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
