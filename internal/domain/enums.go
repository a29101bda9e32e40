package domain

// Role represents the authorization level stored on a profile.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Urgency is the self-reported urgency of a contact inquiry.
type Urgency string

const (
	UrgencyGeneral Urgency = "general"
	UrgencyUrgent  Urgency = "urgent"
	UrgencyCrisis  Urgency = "crisis"
)

func (u Urgency) String() string { return string(u) }

func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyGeneral, UrgencyUrgent, UrgencyCrisis:
		return true
	}
	return false
}

// InquiryStatus tracks an inquiry through the operator's follow-up.
type InquiryStatus string

const (
	InquiryStatusNew        InquiryStatus = "new"
	InquiryStatusInProgress InquiryStatus = "in_progress"
	InquiryStatusResolved   InquiryStatus = "resolved"
	InquiryStatusClosed     InquiryStatus = "closed"
)

func (s InquiryStatus) String() string { return string(s) }

func (s InquiryStatus) IsValid() bool {
	switch s {
	case InquiryStatusNew, InquiryStatusInProgress, InquiryStatusResolved, InquiryStatusClosed:
		return true
	}
	return false
}

// BookingStatus tracks a session booking request.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) String() string { return string(s) }

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}
