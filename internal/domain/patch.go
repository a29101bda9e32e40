package domain

const maxOperatorTextLen = 5000

// InquiryPatch holds the operator-editable fields of an inquiry.
// A nil field keeps the stored value.
type InquiryPatch struct {
	Status        *InquiryStatus
	AdminResponse *string
}

// Normalize drops blank fields so that they keep the stored value.
func (p InquiryPatch) Normalize() InquiryPatch {
	if p.Status != nil && *p.Status == "" {
		p.Status = nil
	}
	p.AdminResponse = TrimToNil(p.AdminResponse)
	return p
}

func (p InquiryPatch) IsEmpty() bool {
	return p.Status == nil && p.AdminResponse == nil
}

func (p InquiryPatch) Validate() error {
	var errs []FieldError

	if p.IsEmpty() {
		errs = append(errs, FieldError{Field: "patch", Message: "at least one of status, admin_response is required"})
	}
	if p.Status != nil && !p.Status.IsValid() {
		errs = append(errs, FieldError{Field: "status", Message: "must be one of new, in_progress, resolved, closed"})
	}
	if p.AdminResponse != nil && len(*p.AdminResponse) > maxOperatorTextLen {
		errs = append(errs, FieldError{Field: "admin_response", Message: "too long"})
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// BookingPatch holds the operator-editable fields of a booking.
type BookingPatch struct {
	Status     *BookingStatus
	AdminNotes *string
}

func (p BookingPatch) Normalize() BookingPatch {
	if p.Status != nil && *p.Status == "" {
		p.Status = nil
	}
	p.AdminNotes = TrimToNil(p.AdminNotes)
	return p
}

func (p BookingPatch) IsEmpty() bool {
	return p.Status == nil && p.AdminNotes == nil
}

func (p BookingPatch) Validate() error {
	var errs []FieldError

	if p.IsEmpty() {
		errs = append(errs, FieldError{Field: "patch", Message: "at least one of status, admin_notes is required"})
	}
	if p.Status != nil && !p.Status.IsValid() {
		errs = append(errs, FieldError{Field: "status", Message: "must be one of pending, confirmed, cancelled, completed"})
	}
	if p.AdminNotes != nil && len(*p.AdminNotes) > maxOperatorTextLen {
		errs = append(errs, FieldError{Field: "admin_notes", Message: "too long"})
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// ProfilePatch holds the operator-editable fields of a profile.
type ProfilePatch struct {
	Role *Role
}

func (p ProfilePatch) Normalize() ProfilePatch {
	if p.Role != nil && *p.Role == "" {
		p.Role = nil
	}
	return p
}

func (p ProfilePatch) IsEmpty() bool {
	return p.Role == nil
}

func (p ProfilePatch) Validate() error {
	if p.Role == nil {
		return NewValidationError("role", "required")
	}
	if !p.Role.IsValid() {
		return NewValidationError("role", "invalid role: must be 'user' or 'admin'")
	}
	return nil
}
