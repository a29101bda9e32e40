package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/serenity-backend/internal/domain"
	"github.com/heartmarshall/serenity-backend/internal/service/moderation"
)

// listResponse wraps a moderation list. Message is set only for an empty list.
type listResponse[T any] struct {
	Items   []T    `json:"items"`
	Total   int    `json:"total"`
	Empty   bool   `json:"empty"`
	Message string `json:"message,omitempty"`
}

func newListResponse[K any, T any](records []K, kind string, convert func(K) T) listResponse[T] {
	items := make([]T, 0, len(records))
	for _, rec := range records {
		items = append(items, convert(rec))
	}
	resp := listResponse[T]{Items: items, Total: len(items), Empty: len(items) == 0}
	if resp.Empty {
		resp.Message = "No " + kind + " found"
	}
	return resp
}

// noticeListStale tells the operator the save went through but the table
// shown is out of date.
const noticeListStale = "Changes saved, but the list could not be refreshed"

// updateResponse carries the updated record and the refreshed list. List is
// omitted when the refresh failed after a successful write.
type updateResponse[T any] struct {
	Record T                `json:"record"`
	List   *listResponse[T] `json:"list,omitempty"`
	Notice string           `json:"notice,omitempty"`
}

func newUpdateResponse[K moderation.Record, T any](res moderation.UpdateResult[K], kind string, convert func(K) T) updateResponse[T] {
	resp := updateResponse[T]{Record: convert(res.Record)}
	if res.Stale() {
		resp.Notice = noticeListStale
		return resp
	}
	list := newListResponse(res.Items, kind, convert)
	resp.List = &list
	return resp
}

type inquiryResponse struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Phone         *string        `json:"phone"`
	Subject       *string        `json:"subject"`
	Message       string         `json:"message"`
	Urgency       *string        `json:"urgency"`
	Status        string         `json:"status"`
	AdminResponse *string        `json:"adminResponse"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	Display       inquiryDisplay `json:"display"`
}

type inquiryDisplay struct {
	Subject string `json:"subject"`
	Phone   string `json:"phone"`
	Urgency string `json:"urgency"`
}

func toInquiryResponse(i domain.Inquiry) inquiryResponse {
	var urgency *string
	if i.Urgency != nil {
		u := i.Urgency.String()
		urgency = &u
	}
	return inquiryResponse{
		ID:            i.ID.String(),
		Name:          i.Name,
		Email:         i.Email,
		Phone:         i.Phone,
		Subject:       i.Subject,
		Message:       i.Message,
		Urgency:       urgency,
		Status:        i.Status.String(),
		AdminResponse: i.AdminResponse,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
		Display: inquiryDisplay{
			Subject: i.SubjectOrDefault(),
			Phone:   i.PhoneOrDefault(),
			Urgency: i.UrgencyOrDefault(),
		},
	}
}

type bookingResponse struct {
	ID            string           `json:"id"`
	UserID        *string          `json:"userId"`
	Owner         *profileResponse `json:"owner,omitempty"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	Phone         *string          `json:"phone"`
	SessionType   string           `json:"sessionType"`
	PreferredDate *string          `json:"preferredDate"`
	PreferredTime *string          `json:"preferredTime"`
	Notes         *string          `json:"notes"`
	Status        string           `json:"status"`
	AdminNotes    *string          `json:"adminNotes"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
	Display       bookingDisplay   `json:"display"`
}

type bookingDisplay struct {
	Phone         string `json:"phone"`
	PreferredDate string `json:"preferredDate"`
	PreferredTime string `json:"preferredTime"`
}

func toBookingResponse(b domain.Booking) bookingResponse {
	resp := bookingResponse{
		ID:            b.ID.String(),
		Name:          b.Name,
		Email:         b.Email,
		Phone:         b.Phone,
		SessionType:   b.SessionType,
		PreferredTime: b.PreferredTime,
		Notes:         b.Notes,
		Status:        b.Status.String(),
		AdminNotes:    b.AdminNotes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
		Display: bookingDisplay{
			Phone:         b.PhoneOrDefault(),
			PreferredDate: b.PreferredDateOrDefault(),
			PreferredTime: b.PreferredTimeOrDefault(),
		},
	}
	if b.UserID != nil {
		id := b.UserID.String()
		resp.UserID = &id
	}
	if b.PreferredDate != nil {
		d := b.PreferredDate.Format(domain.PreferredDateLayout)
		resp.PreferredDate = &d
	}
	return resp
}

// withOwners returns a converter that attaches loaded owner profiles.
func withOwners(owners map[uuid.UUID]*domain.Profile) func(domain.Booking) bookingResponse {
	return func(b domain.Booking) bookingResponse {
		resp := toBookingResponse(b)
		if b.UserID != nil {
			if p, ok := owners[*b.UserID]; ok {
				pr := toProfileResponse(*p)
				resp.Owner = &pr
			}
		}
		return resp
	}
}

type profileResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    *string   `json:"fullName"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toProfileResponse(p domain.Profile) profileResponse {
	return profileResponse{
		ID:          p.ID.String(),
		Email:       p.Email,
		FullName:    p.FullName,
		DisplayName: p.DisplayName(),
		Role:        p.Role.String(),
		CreatedAt:   p.CreatedAt,
	}
}
