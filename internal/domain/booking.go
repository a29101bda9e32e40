package domain

import (
	"time"

	"github.com/google/uuid"
)

// PreferredDateLayout is the wire and storage layout of Booking.PreferredDate.
const PreferredDateLayout = "2006-01-02"

// Booking is a session request submitted through the public booking form.
// UserID is set only when the requester was signed in.
type Booking struct {
	ID            uuid.UUID
	UserID        *uuid.UUID
	Name          string
	Email         string
	Phone         *string
	SessionType   string
	PreferredDate *time.Time
	PreferredTime *string
	Notes         *string
	Status        BookingStatus
	AdminNotes    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (b Booking) RecordID() uuid.UUID { return b.ID }

func (b Booking) SearchFields() []string {
	return []string{b.Name, b.Email, b.SessionType}
}

func (b Booking) FilterKey() string { return b.Status.String() }

// PhoneOrDefault returns the phone number or "Not specified".
func (b Booking) PhoneOrDefault() string {
	return orPlaceholder(b.Phone, PlaceholderNotSpecified)
}

// PreferredDateOrDefault returns the formatted preferred date or "Not specified".
func (b Booking) PreferredDateOrDefault() string {
	if b.PreferredDate == nil {
		return PlaceholderNotSpecified
	}
	return b.PreferredDate.Format(PreferredDateLayout)
}

// PreferredTimeOrDefault returns the preferred time slot or "Not specified".
func (b Booking) PreferredTimeOrDefault() string {
	return orPlaceholder(b.PreferredTime, PlaceholderNotSpecified)
}
