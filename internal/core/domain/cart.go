package domain

// A CartLine pairs a product snapshot with a quantity.
//
// The product price is frozen at add time: later catalog price changes
// do not alter totals for already-added lines. Quantity is always
// positive, a line with quantity zero must not exist.
type CartLine struct {
	Product  Product
	Quantity int
}

func (l CartLine) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

type CartSummary struct {
	Lines         []CartLine
	TotalQuantity int
	TotalPrice    float64
	Open          bool
}
