package domain

import (
	"time"

	"github.com/google/uuid"
)

// Inquiry is a message submitted through the public contact form.
type Inquiry struct {
	ID            uuid.UUID
	Name          string
	Email         string
	Phone         *string
	Subject       *string
	Message       string
	Urgency       *Urgency
	Status        InquiryStatus
	AdminResponse *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (i Inquiry) RecordID() uuid.UUID { return i.ID }

func (i Inquiry) SearchFields() []string {
	return []string{i.Name, i.Email, i.Message}
}

func (i Inquiry) FilterKey() string { return i.Status.String() }

// SubjectOrDefault returns the subject or "No subject".
func (i Inquiry) SubjectOrDefault() string {
	return orPlaceholder(i.Subject, PlaceholderNoSubject)
}

// PhoneOrDefault returns the phone number or "Not specified".
func (i Inquiry) PhoneOrDefault() string {
	return orPlaceholder(i.Phone, PlaceholderNotSpecified)
}

// UrgencyOrDefault returns the urgency or "Not specified".
func (i Inquiry) UrgencyOrDefault() string {
	if i.Urgency == nil || *i.Urgency == "" {
		return PlaceholderNotSpecified
	}
	return i.Urgency.String()
}
