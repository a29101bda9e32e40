package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/serenity-backend/internal/domain"
	"github.com/heartmarshall/serenity-backend/internal/service/intake"
)

type intakeService interface {
	SubmitInquiry(ctx context.Context, input intake.InquiryInput) (*domain.Inquiry, error)
	SubmitBooking(ctx context.Context, input intake.BookingInput) (*domain.Booking, error)
}

// IntakeHandler serves the public contact and booking forms.
type IntakeHandler struct {
	svc intakeService
	log *slog.Logger
}

// NewIntakeHandler creates an IntakeHandler.
func NewIntakeHandler(svc intakeService, logger *slog.Logger) *IntakeHandler {
	return &IntakeHandler{svc: svc, log: logger.With("handler", "intake")}
}

type contactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Subject *string `json:"subject"`
	Message string  `json:"message"`
	Urgency *string `json:"urgency"`
}

type bookingRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone"`
	SessionType   string  `json:"sessionType"`
	PreferredDate *string `json:"preferredDate"`
	PreferredTime *string `json:"preferredTime"`
	Notes         *string `json:"notes"`
	Consent       bool    `json:"consent"`
}

type submittedResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SubmitInquiry handles POST /api/contact.
func (h *IntakeHandler) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inq, err := h.svc.SubmitInquiry(r.Context(), intake.InquiryInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		Urgency: req.Urgency,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, submittedResponse{
		ID:      inq.ID.String(),
		Status:  inq.Status.String(),
		Message: "Thank you for your message. We'll get back to you within 24 hours.",
	})
}

// SubmitBooking handles POST /api/bookings.
func (h *IntakeHandler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.svc.SubmitBooking(r.Context(), intake.BookingInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		SessionType:   req.SessionType,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Notes:         req.Notes,
		Consent:       req.Consent,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, submittedResponse{
		ID:      b.ID.String(),
		Status:  b.Status.String(),
		Message: "Your request has been received. We'll contact you within 24 hours to confirm your appointment.",
	})
}
