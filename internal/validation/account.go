package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// MinPasswordLen минимальная длина пароля при регистрации
const MinPasswordLen = 6

// emailPattern минимальная проверка формата, окончательно email проверяет backend
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

// Registration данные формы регистрации
type Registration struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
}

// ValidateEmail проверяет, что email непустой и похож на адрес
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fieldError("email", "email is required")
	}
	if !emailPattern.MatchString(email) {
		return fieldError("email", "email is not valid")
	}
	return nil
}

// ValidateCredentials проверяет форму входа: оба поля обязательны
func ValidateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return fieldError("credentials", "email and password are required")
	}
	return nil
}

// ValidatePassword проверяет требования к паролю:
// минимум 6 символов, строчная и заглавная буква, цифра
func ValidatePassword(password string) error {
	if password == "" {
		return fieldError("password", "password is required")
	}
	if len([]rune(password)) < MinPasswordLen {
		return fieldError("password", "password must be at least 6 characters long")
	}

	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !lower || !upper || !digit {
		return fieldError("password", "password must include an uppercase letter, a lowercase letter and a digit")
	}
	return nil
}

// ValidateRegistration проверяет форму регистрации в том же порядке, что и форма:
// обязательные поля, совпадение паролей, требования к паролю
func ValidateRegistration(r Registration) error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" || r.Password == "" || r.ConfirmPassword == "" {
		return fieldError("form", "please fill in all required fields")
	}
	if r.Password != r.ConfirmPassword {
		return fieldError("confirmPassword", "passwords do not match")
	}
	if err := ValidatePassword(r.Password); err != nil {
		return err
	}
	return ValidateEmail(r.Email)
}
