package store

// BookingRecord is a persisted record of a simulated reservation. Name and
// price are captured at booking time so history stays readable even if the
// catalog changes.
//
// JSON field names match the slot format the browser original wrote, so an
// existing slot carries over as-is.
type BookingRecord struct {
	ID         string  `json:"id"`
	HostelID   string  `json:"hostelId"`
	HostelName string  `json:"hostelName"`
	Date       string  `json:"date"`
	Ref        string  `json:"ref"`
	Price      float64 `json:"price"`
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)
