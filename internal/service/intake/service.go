// Package intake accepts public contact-form inquiries and booking requests.
package intake

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/serenity-backend/internal/domain"
	"github.com/heartmarshall/serenity-backend/pkg/ctxutil"
)

type inquiryRepo interface {
	Create(ctx context.Context, inq *domain.Inquiry) (*domain.Inquiry, error)
}

type bookingRepo interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
}

// Service implements public form submission.
type Service struct {
	log       *slog.Logger
	inquiries inquiryRepo
	bookings  bookingRepo
}

// NewService creates a new intake service instance.
func NewService(logger *slog.Logger, inquiries inquiryRepo, bookings bookingRepo) *Service {
	return &Service{
		log:       logger.With("service", "intake"),
		inquiries: inquiries,
		bookings:  bookings,
	}
}

// SubmitInquiry stores a contact-form inquiry with status new.
// Blank optional fields are stored as NULL.
func (s *Service) SubmitInquiry(ctx context.Context, input InquiryInput) (*domain.Inquiry, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	inq := &domain.Inquiry{
		Name:    strings.TrimSpace(input.Name),
		Email:   domain.NormalizeEmail(input.Email),
		Phone:   domain.TrimToNil(input.Phone),
		Subject: domain.TrimToNil(input.Subject),
		Message: strings.TrimSpace(input.Message),
		Status:  domain.InquiryStatusNew,
	}
	if u := domain.TrimToNil(input.Urgency); u != nil {
		urgency := domain.Urgency(*u)
		inq.Urgency = &urgency
	}

	created, err := s.inquiries.Create(ctx, inq)
	if err != nil {
		s.log.ErrorContext(ctx, "inquiry submission failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("intake.SubmitInquiry: %w", err)
	}

	s.log.InfoContext(ctx, "inquiry submitted",
		slog.String("inquiry_id", created.ID.String()),
		slog.String("urgency", created.UrgencyOrDefault()))
	return created, nil
}

// SubmitBooking stores a booking request with status pending. The booking is
// linked to the caller when one is signed in.
func (s *Service) SubmitBooking(ctx context.Context, input BookingInput) (*domain.Booking, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	b := &domain.Booking{
		Name:          strings.TrimSpace(input.Name),
		Email:         domain.NormalizeEmail(input.Email),
		Phone:         domain.TrimToNil(input.Phone),
		SessionType:   strings.TrimSpace(input.SessionType),
		PreferredTime: domain.TrimToNil(input.PreferredTime),
		Notes:         domain.TrimToNil(input.Notes),
		Status:        domain.BookingStatusPending,
	}
	if d := domain.TrimToNil(input.PreferredDate); d != nil {
		// Already checked by Validate.
		date, _ := time.Parse(domain.PreferredDateLayout, *d)
		b.PreferredDate = &date
	}
	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		b.UserID = &userID
	}

	created, err := s.bookings.Create(ctx, b)
	if err != nil {
		s.log.ErrorContext(ctx, "booking submission failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("intake.SubmitBooking: %w", err)
	}

	s.log.InfoContext(ctx, "booking submitted",
		slog.String("booking_id", created.ID.String()),
		slog.String("session_type", created.SessionType))
	return created, nil
}
