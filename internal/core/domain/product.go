package domain

const CategoryAll = "All"

// Categories is the fixed category set, "All" sentinel first.
func Categories() []string {
	return []string{
		CategoryAll,
		"Action Figures",
		"Dolls",
		"Educational",
		"Building Blocks",
		"Vehicles",
		"Plush Toys",
		"Board Games",
		"Electronic",
		"Sports",
	}
}

type Product struct {
	ID            int
	Name          string
	Price         float64
	OriginalPrice float64
	Discount      int
	Category      string
	Image         string
	Description   string
	InStock       bool
	Rating        float64
}

// Savings is the absolute discount amount for a discounted product.
func (p Product) Savings() float64 {
	if p.Discount == 0 {
		return 0
	}
	orig := p.OriginalPrice
	if orig == 0 {
		orig = p.Price
	}
	return orig - p.Price
}

// A ProductDraft carries product fields for create and update operations.
// The repository collaborator assigns the ID.
type ProductDraft struct {
	Name          string
	Price         float64
	OriginalPrice float64
	Discount      int
	Category      string
	Image         string
	Description   string
	InStock       bool
	Rating        float64
}

type FilterCriteria struct {
	SearchTerm string
	Category   string
	MinPrice   float64
	MaxPrice   float64
}

func DefaultCriteria() FilterCriteria {
	return FilterCriteria{Category: CategoryAll, MinPrice: 0, MaxPrice: 1000}
}
