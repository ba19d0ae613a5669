package cart

// Line is one product's accumulated quantity inside the cart. Name and price
// are snapshots taken when the product was first added; a later catalog price
// change does not retroactively reprice the cart.
type Line struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// Subtotal is the line's price times quantity.
func (l Line) Subtotal() int {
	return l.Price * l.Quantity
}
