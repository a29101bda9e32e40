package moderation

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/serenity-backend/internal/domain"
	"github.com/heartmarshall/serenity-backend/pkg/ctxutil"
)

type (
	// Inquiries moderates contact-form inquiries.
	Inquiries = Workflow[domain.Inquiry, domain.InquiryPatch]
	// Bookings moderates session bookings.
	Bookings = Workflow[domain.Booking, domain.BookingPatch]
	// Profiles moderates user profiles and their roles.
	Profiles = Workflow[domain.Profile, domain.ProfilePatch]
)

type (
	inquiryStore = store[domain.Inquiry, domain.InquiryPatch]
	bookingStore = store[domain.Booking, domain.BookingPatch]
	profileStore = store[domain.Profile, domain.ProfilePatch]
)

// NewInquiries creates the inquiry workflow.
func NewInquiries(logger *slog.Logger, repo inquiryStore) *Inquiries {
	return newWorkflow[domain.Inquiry, domain.InquiryPatch](logger, repo, "inquiries", func(v string) bool {
		return domain.InquiryStatus(v).IsValid()
	})
}

// NewBookings creates the booking workflow.
func NewBookings(logger *slog.Logger, repo bookingStore) *Bookings {
	return newWorkflow[domain.Booking, domain.BookingPatch](logger, repo, "bookings", func(v string) bool {
		return domain.BookingStatus(v).IsValid()
	})
}

// NewProfiles creates the profile workflow. An admin cannot demote themselves.
func NewProfiles(logger *slog.Logger, repo profileStore) *Profiles {
	w := newWorkflow[domain.Profile, domain.ProfilePatch](logger, repo, "users", func(v string) bool {
		return domain.Role(v).IsValid()
	})
	w.guard = preventSelfDemotion
	return w
}

func preventSelfDemotion(ctx context.Context, id uuid.UUID, patch domain.ProfilePatch) error {
	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if callerID == id && patch.Role != nil && !patch.Role.IsAdmin() {
		return domain.NewValidationError("role", "cannot demote yourself")
	}
	return nil
}
