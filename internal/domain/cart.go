package domain

// CartLine is one entry of the server-held cart. The backend owns quantities
// and prices; the gateway only mirrors what the last successful response said.
type CartLine struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// CartTotal recomputes the total from the given lines. Totals are never
// stored so they cannot drift from the line data.
func CartTotal(lines []CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}
