package intake

import (
	"net/mail"
	"strings"
	"time"

	"github.com/heartmarshall/serenity-backend/internal/domain"
)

const (
	maxNameLen    = 255
	maxEmailLen   = 254
	maxPhoneLen   = 50
	maxSubjectLen = 255
	maxMessageLen = 5000
)

// InquiryInput is a contact-form submission.
type InquiryInput struct {
	Name    string
	Email   string
	Phone   *string
	Subject *string
	Message string
	Urgency *string
}

// Validate validates the contact-form input.
func (i InquiryInput) Validate() error {
	var errs []domain.FieldError

	errs = appendName(errs, i.Name)
	errs = appendEmail(errs, i.Email)
	errs = appendMaxLen(errs, "phone", i.Phone, maxPhoneLen)
	errs = appendMaxLen(errs, "subject", i.Subject, maxSubjectLen)

	msg := strings.TrimSpace(i.Message)
	if msg == "" {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	} else if len(msg) > maxMessageLen {
		errs = append(errs, domain.FieldError{Field: "message", Message: "too long"})
	}

	if u := domain.TrimToNil(i.Urgency); u != nil && !domain.Urgency(*u).IsValid() {
		errs = append(errs, domain.FieldError{Field: "urgency", Message: "must be one of general, urgent, crisis"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// BookingInput is a booking-form submission.
type BookingInput struct {
	Name          string
	Email         string
	Phone         *string
	SessionType   string
	PreferredDate *string // YYYY-MM-DD
	PreferredTime *string
	Notes         *string
	Consent       bool
}

// Validate validates the booking-form input.
func (i BookingInput) Validate() error {
	var errs []domain.FieldError

	errs = appendName(errs, i.Name)
	errs = appendEmail(errs, i.Email)
	errs = appendMaxLen(errs, "phone", i.Phone, maxPhoneLen)
	errs = appendMaxLen(errs, "preferred_time", i.PreferredTime, maxPhoneLen)
	errs = appendMaxLen(errs, "notes", i.Notes, maxMessageLen)

	st := strings.TrimSpace(i.SessionType)
	if st == "" {
		errs = append(errs, domain.FieldError{Field: "session_type", Message: "required"})
	} else if len(st) > maxSubjectLen {
		errs = append(errs, domain.FieldError{Field: "session_type", Message: "too long"})
	}

	if d := domain.TrimToNil(i.PreferredDate); d != nil {
		if _, err := time.Parse(domain.PreferredDateLayout, *d); err != nil {
			errs = append(errs, domain.FieldError{Field: "preferred_date", Message: "must be a date in YYYY-MM-DD format"})
		}
	}

	if !i.Consent {
		errs = append(errs, domain.FieldError{Field: "consent", Message: "must be accepted"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func appendName(errs []domain.FieldError, name string) []domain.FieldError {
	name = strings.TrimSpace(name)
	if name == "" {
		return append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > maxNameLen {
		return append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}
	return errs
}

func appendEmail(errs []domain.FieldError, email string) []domain.FieldError {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		return append(errs, domain.FieldError{Field: "email", Message: "required"})
	case len(email) > maxEmailLen:
		return append(errs, domain.FieldError{Field: "email", Message: "too long"})
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return append(errs, domain.FieldError{Field: "email", Message: "invalid format"})
	}
	return errs
}

func appendMaxLen(errs []domain.FieldError, field string, v *string, limit int) []domain.FieldError {
	if v != nil && len(*v) > limit {
		return append(errs, domain.FieldError{Field: field, Message: "too long"})
	}
	return errs
}
