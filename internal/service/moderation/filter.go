package moderation

import "github.com/heartmarshall/serenity-backend/internal/domain"

// applyFilter returns the records of all that match filter, in order.
func applyFilter[K Record](all []K, filter domain.RecordFilter) []K {
	if filter.IsPassThrough() {
		return all
	}

	out := make([]K, 0, len(all))
	for _, rec := range all {
		if matches(rec, filter) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec Record, filter domain.RecordFilter) bool {
	if filter.Status != "" && filter.Status != domain.FilterAll && rec.FilterKey() != filter.Status {
		return false
	}
	if filter.Search == "" {
		return true
	}
	for _, field := range rec.SearchFields() {
		if domain.ContainsFold(field, filter.Search) {
			return true
		}
	}
	return false
}
