package service

import (
	"slices"

	"github.com/toybox/storefront/internal/core/domain"
)

// A CartLedger maps product identity to quantity for one shopping
// session. Lines keep insertion order: new lines append at the end,
// updates keep position. At most one line exists per product ID.
//
// The ledger is not safe for concurrent use, the owning [Storefront]
// serializes access.
type CartLedger struct {
	lines []domain.CartLine
}

// AddItem merges into an existing line for the product, incrementing
// its quantity by one, or appends a new line with quantity one.
func (l *CartLedger) AddItem(p domain.Product) {
	for i := range l.lines {
		if l.lines[i].Product.ID == p.ID {
			l.lines[i].Quantity++
			return
		}
	}
	l.lines = append(l.lines, domain.CartLine{Product: p, Quantity: 1})
}

// SetQuantity replaces the quantity of an existing line. Zero removes
// the line. It never creates a line: an absent ID is a no-op, as is a
// negative quantity.
func (l *CartLedger) SetQuantity(productID, quantity int) {
	if quantity == 0 {
		l.RemoveItem(productID)
		return
	}
	if quantity < 0 {
		return
	}
	for i := range l.lines {
		if l.lines[i].Product.ID == productID {
			l.lines[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem deletes the line for the product if present and reports
// the removed line.
func (l *CartLedger) RemoveItem(productID int) (domain.CartLine, bool) {
	for i := range l.lines {
		if l.lines[i].Product.ID == productID {
			removed := l.lines[i]
			l.lines = append(l.lines[:i], l.lines[i+1:]...)
			return removed, true
		}
	}
	return domain.CartLine{}, false
}

func (l *CartLedger) TotalQuantity() (n int) {
	for _, line := range l.lines {
		n += line.Quantity
	}
	return n
}

// TotalPrice sums line subtotals using prices frozen at add time.
func (l *CartLedger) TotalPrice() (sum float64) {
	for _, line := range l.lines {
		sum += line.Subtotal()
	}
	return sum
}

func (l *CartLedger) Lines() []domain.CartLine {
	return slices.Clone(l.lines)
}

func (l *CartLedger) Len() int {
	return len(l.lines)
}
