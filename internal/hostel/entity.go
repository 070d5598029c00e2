package hostel

// Type distinguishes the two room arrangements in the catalog.
type Type string

const (
	TypePrivate Type = "Private"
	TypeShared  Type = "Shared"
)

// Hostel is a single housing option. Loaded once at startup, never mutated.
type Hostel struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Distance    float64  `json:"distance"` // km from campus
	Rating      float64  `json:"rating"`
	Amenities   []string `json:"amenities"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Type        Type     `json:"type"`
}

// View selects one of the three top-level filtered presentations.
type View string

const (
	ViewDiscover  View = "discover"
	ViewFavorites View = "favorites"
	ViewBookings  View = "bookings"
)

// DefaultMaxPrice is the price ceiling before the user moves the slider.
const DefaultMaxPrice = 600

// Filter is the transient view state the UI filters with. Not persisted.
type Filter struct {
	Search   string  `json:"search"`
	MaxPrice float64 `json:"max_price"`
	View     View    `json:"view"`
}

// DefaultFilter is also what an explicit reset returns to.
func DefaultFilter() Filter {
	return Filter{
		Search:   "",
		MaxPrice: DefaultMaxPrice,
		View:     ViewDiscover,
	}
}
