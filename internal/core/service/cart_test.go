package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toybox/storefront/internal/core/domain"
	"github.com/toybox/storefront/internal/core/service"
)

func TestCartLedger(t *testing.T) {
	car := domain.Product{ID: 1, Name: "Red Car", Price: 10}
	doll := domain.Product{ID: 2, Name: "Blue Doll", Price: 19.99}

	t.Run("AddMergesExistingLine", func(t *testing.T) {
		var l service.CartLedger
		l.AddItem(car)
		l.AddItem(car)

		require.Equal(t, 1, l.Len())
		assert.Equal(t, 2, l.TotalQuantity())
	})

	t.Run("NewLinesAppendAtEnd", func(t *testing.T) {
		var l service.CartLedger
		l.AddItem(car)
		l.AddItem(doll)
		l.AddItem(car)

		lines := l.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, 1, lines[0].Product.ID)
		assert.Equal(t, 2, lines[1].Product.ID)
		assert.Equal(t, 2, lines[0].Quantity)
	})

	t.Run("SetQuantityZeroRemoves", func(t *testing.T) {
		var l service.CartLedger
		l.AddItem(car)
		l.AddItem(doll)

		l.SetQuantity(car.ID, 0)

		require.Equal(t, 1, l.Len())
		assert.Equal(t, 1, l.TotalQuantity())
		assert.Equal(t, 2, l.Lines()[0].Product.ID)
	})

	t.Run("SetQuantityNeverCreatesLine", func(t *testing.T) {
		var l service.CartLedger
		l.SetQuantity(42, 3)
		assert.Zero(t, l.Len())

		l.SetQuantity(42, 0)
		assert.Zero(t, l.Len())
	})

	t.Run("SetQuantityIgnoresNegative", func(t *testing.T) {
		var l service.CartLedger
		l.AddItem(car)
		l.SetQuantity(car.ID, -1)
		assert.Equal(t, 1, l.TotalQuantity())
	})

	t.Run("RemoveItem", func(t *testing.T) {
		var l service.CartLedger
		l.AddItem(car)

		removed, ok := l.RemoveItem(car.ID)
		require.True(t, ok)
		assert.Equal(t, car.ID, removed.Product.ID)
		assert.Zero(t, l.Len())

		_, ok = l.RemoveItem(car.ID)
		assert.False(t, ok)
	})

	t.Run("TotalPriceUsesFrozenPrices", func(t *testing.T) {
		var l service.CartLedger
		l.AddItem(doll)
		l.SetQuantity(doll.ID, 3)

		assert.InDelta(t, 59.97, l.TotalPrice(), 0.005)
	})

	t.Run("AddAddSetScenario", func(t *testing.T) {
		var l service.CartLedger
		l.AddItem(car)
		l.AddItem(car)
		l.SetQuantity(car.ID, 5)

		assert.Equal(t, 5, l.TotalQuantity())
		assert.InDelta(t, 50, l.TotalPrice(), 0.005)
	})

	t.Run("UpdateKeepsLinePosition", func(t *testing.T) {
		var l service.CartLedger
		l.AddItem(car)
		l.AddItem(doll)
		l.SetQuantity(car.ID, 7)

		lines := l.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, 1, lines[0].Product.ID)
		assert.Equal(t, 7, lines[0].Quantity)
	})
}
