package domain

// DashboardStats holds the counters shown on the admin overview.
type DashboardStats struct {
	InquiriesLast30Days int
	NewInquiries        int
	BookingsLast30Days  int
	PendingBookings     int
	NewUsersLast30Days  int
	TotalUsers          int
}
