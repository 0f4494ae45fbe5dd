package validation

import (
	"regexp"
	"strings"

	"github.com/iudanet/storefront/internal/models"
)

var expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)

// ValidatePaymentForm проверяет форму оплаты.
// Возвращается первая ошибка, как в форме checkout.
func ValidatePaymentForm(f models.PaymentForm) error {
	switch {
	case len(NormalizeCardNumber(f.CardNumber)) < 13:
		return fieldError("cardNumber", "invalid card number (at least 13 digits)")
	case len([]rune(strings.TrimSpace(f.CardHolder))) < 2:
		return fieldError("cardHolder", "invalid card holder name")
	case !expiryPattern.MatchString(f.ExpiryDate):
		return fieldError("expiryDate", "invalid expiry date (MM/YY)")
	case len(f.CVV) < 3:
		return fieldError("cvv", "invalid CVV")
	case !strings.Contains(f.Email, "@"):
		return fieldError("email", "invalid email")
	case len([]rune(strings.TrimSpace(f.Address))) < 5:
		return fieldError("address", "invalid address")
	case len([]rune(strings.TrimSpace(f.City))) < 2:
		return fieldError("city", "invalid city")
	}
	return nil
}

// NormalizeCardNumber убирает пробелы из номера карты
func NormalizeCardNumber(number string) string {
	return strings.Join(strings.Fields(number), "")
}

// MaskCardNumber оставляет только 4 последние цифры: ****1234
func MaskCardNumber(number string) string {
	number = NormalizeCardNumber(number)
	if len(number) <= 4 {
		return "****" + number
	}
	return "****" + number[len(number)-4:]
}
