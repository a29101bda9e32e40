package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/serenity-backend/internal/domain"
	"github.com/heartmarshall/serenity-backend/internal/service/moderation"
	dl "github.com/heartmarshall/serenity-backend/internal/transport/dataloader"
)

// workflow is the moderation contract for one record kind.
type workflow[K moderation.Record, P any] interface {
	List(ctx context.Context, filter domain.RecordFilter) ([]K, error)
	Get(ctx context.Context, id uuid.UUID) (K, error)
	UpdateAndRelist(ctx context.Context, id uuid.UUID, patch P, filter domain.RecordFilter) (moderation.UpdateResult[K], error)
}

type dashboardService interface {
	Stats(ctx context.Context) (domain.DashboardStats, error)
}

// AdminHandler serves the admin console endpoints. Every route is mounted
// behind the admin gate.
type AdminHandler struct {
	inquiries workflow[domain.Inquiry, domain.InquiryPatch]
	bookings  workflow[domain.Booking, domain.BookingPatch]
	profiles  workflow[domain.Profile, domain.ProfilePatch]
	dashboard dashboardService
	log       *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(
	inquiries workflow[domain.Inquiry, domain.InquiryPatch],
	bookings workflow[domain.Booking, domain.BookingPatch],
	profiles workflow[domain.Profile, domain.ProfilePatch],
	dashboard dashboardService,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		inquiries: inquiries,
		bookings:  bookings,
		profiles:  profiles,
		dashboard: dashboard,
		log:       logger.With("handler", "admin"),
	}
}

type statsResponse struct {
	InquiriesLast30Days int `json:"inquiriesLast30Days"`
	NewInquiries        int `json:"newInquiries"`
	BookingsLast30Days  int `json:"bookingsLast30Days"`
	PendingBookings     int `json:"pendingBookings"`
	NewUsersLast30Days  int `json:"newUsersLast30Days"`
	TotalUsers          int `json:"totalUsers"`
}

type inquiryPatchRequest struct {
	Status        *string `json:"status"`
	AdminResponse *string `json:"adminResponse"`
}

type bookingPatchRequest struct {
	Status     *string `json:"status"`
	AdminNotes *string `json:"adminNotes"`
}

type profilePatchRequest struct {
	Role *string `json:"role"`
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	s, err := h.dashboard.Stats(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		InquiriesLast30Days: s.InquiriesLast30Days,
		NewInquiries:        s.NewInquiries,
		BookingsLast30Days:  s.BookingsLast30Days,
		PendingBookings:     s.PendingBookings,
		NewUsersLast30Days:  s.NewUsersLast30Days,
		TotalUsers:          s.TotalUsers,
	})
}

// ListInquiries handles GET /api/admin/inquiries?search=&status=.
func (h *AdminHandler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	items, err := h.inquiries.List(r.Context(), filterFromQuery(r, "status"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(items, "inquiries", toInquiryResponse))
}

// GetInquiry handles GET /api/admin/inquiries/{id}.
func (h *AdminHandler) GetInquiry(w http.ResponseWriter, r *http.Request) {
	getRecord(h, w, r, h.inquiries, toInquiryResponse)
}

// UpdateInquiry handles PATCH /api/admin/inquiries/{id}.
func (h *AdminHandler) UpdateInquiry(w http.ResponseWriter, r *http.Request) {
	var req inquiryPatchRequest
	id, ok := h.parsePatch(w, r, &req)
	if !ok {
		return
	}

	patch := domain.InquiryPatch{AdminResponse: req.AdminResponse}
	if req.Status != nil {
		s := domain.InquiryStatus(*req.Status)
		patch.Status = &s
	}

	res, err := h.inquiries.UpdateAndRelist(r.Context(), id, patch, filterFromQuery(r, "status"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newUpdateResponse(res, "inquiries", toInquiryResponse))
}

// ListBookings handles GET /api/admin/bookings?search=&status=.
func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	items, err := h.bookings.List(r.Context(), filterFromQuery(r, "status"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	convert, err := h.bookingConverter(r.Context(), items)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(items, "bookings", convert))
}

// GetBooking handles GET /api/admin/bookings/{id}.
func (h *AdminHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b, err := h.bookings.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	convert, err := h.bookingConverter(r.Context(), []domain.Booking{b})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convert(b))
}

// UpdateBooking handles PATCH /api/admin/bookings/{id}.
func (h *AdminHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingPatchRequest
	id, ok := h.parsePatch(w, r, &req)
	if !ok {
		return
	}

	patch := domain.BookingPatch{AdminNotes: req.AdminNotes}
	if req.Status != nil {
		s := domain.BookingStatus(*req.Status)
		patch.Status = &s
	}

	res, err := h.bookings.UpdateAndRelist(r.Context(), id, patch, filterFromQuery(r, "status"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	convert, err := h.bookingConverter(r.Context(), append([]domain.Booking{res.Record}, res.Items...))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newUpdateResponse(res, "bookings", convert))
}

// ListUsers handles GET /api/admin/users?search=&role=.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	items, err := h.profiles.List(r.Context(), filterFromQuery(r, "role"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newListResponse(items, "users", toProfileResponse))
}

// GetUser handles GET /api/admin/users/{id}.
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	getRecord(h, w, r, h.profiles, toProfileResponse)
}

// UpdateUser handles PATCH /api/admin/users/{id}.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req profilePatchRequest
	id, ok := h.parsePatch(w, r, &req)
	if !ok {
		return
	}

	var patch domain.ProfilePatch
	if req.Role != nil {
		role := domain.Role(*req.Role)
		patch.Role = &role
	}

	res, err := h.profiles.UpdateAndRelist(r.Context(), id, patch, filterFromQuery(r, "role"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newUpdateResponse(res, "users", toProfileResponse))
}

// bookingConverter batch-loads the owner profiles of bookings.
func (h *AdminHandler) bookingConverter(ctx context.Context, bookings []domain.Booking) (func(domain.Booking) bookingResponse, error) {
	owners, err := dl.FromContext(ctx).OwnerProfiles(ctx, bookings)
	if err != nil {
		return nil, err
	}
	return withOwners(owners), nil
}

func (h *AdminHandler) parsePatch(w http.ResponseWriter, r *http.Request, dst any) (uuid.UUID, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return uuid.Nil, false
	}
	if err := decodeJSON(r, dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return uuid.Nil, false
	}
	return id, true
}

func getRecord[K moderation.Record, P any, T any](
	h *AdminHandler,
	w http.ResponseWriter,
	r *http.Request,
	wf workflow[K, P],
	convert func(K) T,
) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	rec, err := wf.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, convert(rec))
}

// filterFromQuery reads search and the named status parameter.
func filterFromQuery(r *http.Request, statusParam string) domain.RecordFilter {
	q := r.URL.Query()
	return domain.RecordFilter{
		Search: q.Get("search"),
		Status: q.Get(statusParam),
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
