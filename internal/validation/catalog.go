package validation

import (
	"strings"

	"github.com/iudanet/storefront/internal/models"
)

// Ограничения формы товара
const (
	MinTitleLen       = 3
	MaxTitleLen       = 200
	MaxDescriptionLen = 2000
	MinPrice          = 1000
	MaxPrice          = 999999999
	MaxStock          = 10000
)

// ProductDraft поля формы товара
type ProductDraft struct {
	Title       string
	Description string
	CategoryID  string
	Condition   models.ProductCondition
	Price       float64
	Stock       int
}

// ValidateProduct проверяет все поля формы товара и возвращает все ошибки сразу
func ValidateProduct(p ProductDraft) error {
	var errs Errors

	title := len([]rune(strings.TrimSpace(p.Title)))
	switch {
	case title == 0:
		errs = append(errs, &FieldError{Field: "title", Message: "title is required"})
	case title < MinTitleLen:
		errs = append(errs, &FieldError{Field: "title", Message: "title must be at least 3 characters long"})
	case title > MaxTitleLen:
		errs = append(errs, &FieldError{Field: "title", Message: "title must not exceed 200 characters"})
	}

	if len([]rune(p.Description)) > MaxDescriptionLen {
		errs = append(errs, &FieldError{Field: "description", Message: "description must not exceed 2000 characters"})
	}
	if p.Price < MinPrice || p.Price > MaxPrice {
		errs = append(errs, &FieldError{Field: "price", Message: "price must be between 1000 and 999999999"})
	}
	if p.Stock < 0 || p.Stock > MaxStock {
		errs = append(errs, &FieldError{Field: "stock", Message: "stock must be between 0 and 10000"})
	}
	if strings.TrimSpace(p.CategoryID) == "" {
		errs = append(errs, &FieldError{Field: "categoryId", Message: "category is required"})
	}
	if p.Condition != "" && !p.Condition.Valid() {
		errs = append(errs, &FieldError{Field: "condition", Message: "unknown condition"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateCategoryName имя категории обязательно
func ValidateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fieldError("name", "category name is required")
	}
	return nil
}
