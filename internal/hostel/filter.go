package hostel

import "strings"

// Visible derives the listing subset for the current filter. Pure and stable:
// no side effects, catalog order preserved, recomputed in full on every call.
//
// A hostel passes when the search text matches its name or description
// (case-insensitive substring, empty search always matches), its price is at
// or under the ceiling, and the active view admits it: favorites requires
// membership in the favorite set, bookings requires at least one booking
// record for the hostel id.
func Visible(hostels []Hostel, f Filter, favorites map[string]bool, booked map[string]bool) []Hostel {
	result := make([]Hostel, 0, len(hostels))

	search := strings.ToLower(f.Search)

	for _, h := range hostels {
		matchesSearch := search == "" ||
			strings.Contains(strings.ToLower(h.Name), search) ||
			strings.Contains(strings.ToLower(h.Description), search)

		if !matchesSearch || h.Price > f.MaxPrice {
			continue
		}

		switch f.View {
		case ViewFavorites:
			if !favorites[h.ID] {
				continue
			}
		case ViewBookings:
			if !booked[h.ID] {
				continue
			}
		case ViewDiscover:
		}

		result = append(result, h)
	}

	return result
}
