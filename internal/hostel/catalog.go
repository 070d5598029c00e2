package hostel

// Catalog returns the fixed listing set. There is no inventory service behind
// this application, so the catalog is seeded in code the same way every run.
func Catalog() []Hostel {
	return []Hostel{
		{
			ID:          "1",
			Name:        "Academic Heights",
			Price:       350,
			Distance:    0.5,
			Rating:      4.8,
			Amenities:   []string{"Wifi", "AC", "Laundry", "Meals"},
			Description: "A premium stay right across the main library. Perfect for students who value proximity.",
			Image:       "https://images.unsplash.com/photo-1555854877-bab0e564b8d5?auto=format&fit=crop&q=80&w=800",
			Type:        TypePrivate,
		},
		{
			ID:          "2",
			Name:        "Quiet Corner Stay",
			Price:       220,
			Distance:    2.1,
			Rating:      4.5,
			Amenities:   []string{"Wifi", "Laundry", "Kitchen"},
			Description: "Tucked away in a quiet neighborhood. Best for serious studiers and budget seekers.",
			Image:       "https://images.unsplash.com/photo-1522771739844-6a9f6d5f14af?auto=format&fit=crop&q=80&w=800",
			Type:        TypeShared,
		},
		{
			ID:          "3",
			Name:        "The Social Hub",
			Price:       280,
			Distance:    1.2,
			Rating:      4.2,
			Amenities:   []string{"Wifi", "Gym", "Meals", "Game Room"},
			Description: "Vibrant atmosphere with regular community events. Great for networking.",
			Image:       "https://images.unsplash.com/photo-1595526114035-0d45ed16cfbf?auto=format&fit=crop&q=80&w=800",
			Type:        TypeShared,
		},
		{
			ID:          "4",
			Name:        "Luxe Student Suites",
			Price:       500,
			Distance:    0.8,
			Rating:      4.9,
			Amenities:   []string{"Wifi", "AC", "Gym", "Pool", "Private Kitchen"},
			Description: "Ultra-modern suites with high-end furniture and panoramic campus views.",
			Image:       "https://images.unsplash.com/photo-1502672260266-1c1ef2d93688?auto=format&fit=crop&q=80&w=800",
			Type:        TypePrivate,
		},
		{
			ID:          "5",
			Name:        "Green View Dorms",
			Price:       180,
			Distance:    3.5,
			Rating:      3.9,
			Amenities:   []string{"Wifi", "Meals"},
			Description: "Affordable housing surrounded by greenery. Dedicated shuttle service available.",
			Image:       "https://images.unsplash.com/photo-1512918728675-ed5a9ecdebfd?auto=format&fit=crop&q=80&w=800",
			Type:        TypeShared,
		},
		{
			ID:          "6",
			Name:        "Tech Haven Residency",
			Price:       320,
			Distance:    1.5,
			Rating:      4.6,
			Amenities:   []string{"High-speed Wifi", "AC", "Power Backup", "Study Pods"},
			Description: "Specially designed for IT and Engineering students with 24/7 technical support.",
			Image:       "https://images.unsplash.com/photo-1513694203232-719a280e022f?auto=format&fit=crop&q=80&w=800",
			Type:        TypePrivate,
		},
	}
}

// ByID looks a hostel up in the given catalog slice.
func ByID(hostels []Hostel, id string) (Hostel, bool) {
	for _, h := range hostels {
		if h.ID == id {
			return h, true
		}
	}

	return Hostel{}, false
}
