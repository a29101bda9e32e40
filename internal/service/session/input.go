package session

import (
	"net/mail"
	"strings"

	"github.com/heartmarshall/serenity-backend/internal/domain"
)

// SignInInput holds credentials for password sign-in.
type SignInInput struct {
	Email    string
	Password string
}

// Validate validates the sign-in input.
func (i SignInInput) Validate() error {
	var errs []domain.FieldError

	email := strings.TrimSpace(i.Email)
	if email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	} else if len(email) > 254 {
		errs = append(errs, domain.FieldError{Field: "email", Message: "too long"})
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid format"})
	}

	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	} else if len(i.Password) > 72 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RefreshInput holds parameters for token refresh operation.
type RefreshInput struct {
	RefreshToken string
}

// Validate validates the refresh input.
func (i RefreshInput) Validate() error {
	var errs []domain.FieldError

	if i.RefreshToken == "" {
		errs = append(errs, domain.FieldError{Field: "refresh_token", Message: "required"})
	} else if len(i.RefreshToken) > 512 {
		errs = append(errs, domain.FieldError{Field: "refresh_token", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
