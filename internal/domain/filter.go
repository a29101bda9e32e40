package domain

// FilterAll is the sentinel filter value that disables status/role matching.
const FilterAll = "all"

// RecordFilter narrows a moderation list. Search is matched
// case-insensitively against the record kind's designated text fields; Status
// is matched exactly against the record's status (or role) unless it is empty
// or FilterAll.
type RecordFilter struct {
	Search string
	Status string
}

// IsPassThrough reports whether the filter keeps every record.
func (f RecordFilter) IsPassThrough() bool {
	return f.Search == "" && (f.Status == "" || f.Status == FilterAll)
}
