package booking

import "sort"

// TimeSlots maps a date string (YYYY-MM-DD) to the ordered list of times the
// creator proposed for that date. Only relevant while a booking is pending on
// a listing that requires scheduling; once a slot is confirmed it is ignored.
type TimeSlots map[string][]string

// IsEmpty returns true if no date carries at least one proposed time.
func (ts TimeSlots) IsEmpty() bool {
	for _, times := range ts {
		if len(times) > 0 {
			return false
		}
	}
	return true
}

// Dates returns the proposed dates in sorted order.
func (ts TimeSlots) Dates() []string {
	dates := make([]string, 0, len(ts))
	for d := range ts {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
