package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toybox/storefront/internal/core/domain"
	"github.com/toybox/storefront/internal/core/service"
)

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Red Car", Price: 10, Category: "Vehicles"},
		{ID: 2, Name: "Blue Doll", Price: 50, Category: "Dolls"},
		{ID: 3, Name: "Robot Kit", Price: 79.99, Category: "Electronic"},
		{ID: 4, Name: "Toy car deluxe", Price: 25, Category: "Vehicles"},
	}
}

func TestFilterProducts(t *testing.T) {
	t.Run("IdentityLaw", func(t *testing.T) {
		ps := testCatalog()
		c := domain.FilterCriteria{
			Category: domain.CategoryAll,
			MinPrice: 0,
			MaxPrice: 1_000_000,
		}
		assert.Equal(t, ps, service.FilterProducts(ps, c))
	})

	t.Run("PreservesOrder", func(t *testing.T) {
		ps := testCatalog()
		c := domain.FilterCriteria{
			SearchTerm: "car",
			Category:   domain.CategoryAll,
			MaxPrice:   100,
		}
		got := service.FilterProducts(ps, c)
		require.Len(t, got, 2)
		assert.Equal(t, 1, got[0].ID)
		assert.Equal(t, 4, got[1].ID)
	})

	t.Run("Idempotent", func(t *testing.T) {
		ps := testCatalog()
		c := domain.FilterCriteria{
			SearchTerm: "o",
			Category:   domain.CategoryAll,
			MaxPrice:   60,
		}
		once := service.FilterProducts(ps, c)
		twice := service.FilterProducts(once, c)
		assert.Equal(t, once, twice)
	})

	t.Run("CategoryScenario", func(t *testing.T) {
		ps := []domain.Product{
			{ID: 1, Name: "Red Car", Price: 10, Category: "Vehicles"},
			{ID: 2, Name: "Blue Doll", Price: 50, Category: "Dolls"},
		}
		c := domain.FilterCriteria{
			Category: "Vehicles",
			MinPrice: 0,
			MaxPrice: 100,
		}
		got := service.FilterProducts(ps, c)
		require.Len(t, got, 1)
		assert.Equal(t, 1, got[0].ID)
	})

	t.Run("PriceExcludesNameMatch", func(t *testing.T) {
		ps := []domain.Product{
			{ID: 1, Name: "Red Car", Price: 10, Category: "Vehicles"},
			{ID: 2, Name: "Blue Doll", Price: 50, Category: "Dolls"},
		}
		c := domain.FilterCriteria{
			SearchTerm: "doll",
			Category:   domain.CategoryAll,
			MinPrice:   0,
			MaxPrice:   20,
		}
		assert.Empty(t, service.FilterProducts(ps, c))
	})

	t.Run("SearchIsCaseInsensitive", func(t *testing.T) {
		c := domain.FilterCriteria{
			SearchTerm: "RED",
			Category:   domain.CategoryAll,
			MaxPrice:   100,
		}
		got := service.FilterProducts(testCatalog(), c)
		require.Len(t, got, 1)
		assert.Equal(t, "Red Car", got[0].Name)
	})

	t.Run("MalformedBoundsYieldEmpty", func(t *testing.T) {
		c := domain.FilterCriteria{
			Category: domain.CategoryAll,
			MinPrice: 100,
			MaxPrice: 10,
		}
		assert.Empty(t, service.FilterProducts(testCatalog(), c))
	})

	t.Run("BoundsAreInclusive", func(t *testing.T) {
		c := domain.FilterCriteria{
			Category: domain.CategoryAll,
			MinPrice: 10,
			MaxPrice: 50,
		}
		got := service.FilterProducts(testCatalog(), c)
		require.Len(t, got, 3)
	})

	t.Run("EmptyCatalog", func(t *testing.T) {
		assert.Empty(t, service.FilterProducts(nil, domain.DefaultCriteria()))
	})
}
