package usecase

import (
	"net/mail"
	"strings"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

const minPasswordLength = 6

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRegistration checks the signup form. Credentials problems return
// ErrInvalidCredentials, missing business data returns ErrInvalidProfile.
func ValidateRegistration(r model.Registration) error {
	if _, err := mail.ParseAddress(r.Email); err != nil || r.Email == "" {
		return domainErrors.ErrInvalidCredentials
	}
	if len(r.Password) < minPasswordLength {
		return domainErrors.ErrInvalidCredentials
	}
	for _, field := range []string{r.FullName, r.CompanyName, r.Phone, r.Sector} {
		if strings.TrimSpace(field) == "" {
			return domainErrors.ErrInvalidProfile
		}
	}
	return nil
}

// ValidateItems checks that every item can be ordered.
func ValidateItems(items []model.OrderItem) error {
	if len(items) == 0 {
		return domainErrors.ErrEmptyCart
	}
	for _, item := range items {
		if item.Quantity < 1 || item.Price.IsNegative() || item.VATRate < 0 {
			return domainErrors.ErrInvalidQuantity
		}
	}
	return nil
}

// ValidateQuantities checks an admin quantity change.
func ValidateQuantities(items []model.ItemQuantity) error {
	if len(items) == 0 {
		return domainErrors.ErrInvalidQuantity
	}
	for _, item := range items {
		if item.ItemID == "" || item.Quantity < 1 {
			return domainErrors.ErrInvalidQuantity
		}
	}
	return nil
}
