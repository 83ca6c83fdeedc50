package domain

// ShippingProfile is a user's saved delivery address. Field names follow the
// backend's column naming.
type ShippingProfile struct {
	Name       string `json:"shipping_name"`
	Mobile     string `json:"shipping_mobile"`
	Line1      string `json:"shipping_line1"`
	Line2      string `json:"shipping_line2,omitempty"`
	City       string `json:"shipping_city"`
	State      string `json:"shipping_state"`
	PostalCode string `json:"shipping_postal_code"`
	Country    string `json:"shipping_country"`
}

// MissingFields lists the required fields that are empty. Line2 is optional.
func (p ShippingProfile) MissingFields() []string {
	var missing []string
	required := []struct {
		name, value string
	}{
		{"shipping_name", p.Name},
		{"shipping_mobile", p.Mobile},
		{"shipping_line1", p.Line1},
		{"shipping_city", p.City},
		{"shipping_state", p.State},
		{"shipping_postal_code", p.PostalCode},
		{"shipping_country", p.Country},
	}
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Complete reports whether every required field is filled in. Checkout must
// not proceed while this is false.
func (p ShippingProfile) Complete() bool {
	return len(p.MissingFields()) == 0
}
