package httphandler

import "github.com/toybox/storefront/internal/core/domain"

type (
	Product struct {
		ID            int     `json:"id"`
		Name          string  `json:"name"`
		Price         float64 `json:"price"`
		OriginalPrice float64 `json:"originalPrice,omitempty"`
		Discount      int     `json:"discount,omitempty"`
		Category      string  `json:"category"`
		Image         string  `json:"image"`
		Description   string  `json:"description"`
		InStock       bool    `json:"inStock"`
		Rating        float64 `json:"rating"`
	}

	// ProductDraft is the admin form payload. InStock is a pointer so
	// an omitted value defaults to true while an explicit false sticks.
	ProductDraft struct {
		Name          string  `json:"name"`
		Price         float64 `json:"price"`
		OriginalPrice float64 `json:"originalPrice"`
		Discount      int     `json:"discount"`
		Category      string  `json:"category"`
		Image         string  `json:"image"`
		Description   string  `json:"description"`
		InStock       *bool   `json:"inStock"`
		Rating        float64 `json:"rating"`
	}

	Criteria struct {
		SearchTerm string  `json:"searchTerm"`
		Category   string  `json:"category"`
		MinPrice   float64 `json:"minPrice"`
		MaxPrice   float64 `json:"maxPrice"`
	}

	CatalogView struct {
		Products   []Product `json:"products"`
		Total      int       `json:"total"`
		Categories []string  `json:"categories"`
		Criteria   Criteria  `json:"criteria"`
		Loading    bool      `json:"loading"`
	}

	CartLine struct {
		Product  Product `json:"product"`
		Quantity int     `json:"quantity"`
		Subtotal float64 `json:"subtotal"`
	}

	CartView struct {
		Items         []CartLine `json:"items"`
		TotalQuantity int        `json:"totalQuantity"`
		TotalPrice    float64    `json:"totalPrice"`
		Open          bool       `json:"open"`
	}

	AddCartItem struct {
		ProductID int `json:"product_id"`
	}

	SetCartQuantity struct {
		Quantity int `json:"quantity"`
	}

	AdminSessionRequest struct {
		Secret string `json:"secret"`
	}

	AdminSessionResponse struct {
		Token string `json:"token"`
	}

	Popularity struct {
		ProductName string `json:"product_name"`
		Count       int64  `json:"count"`
	}
)

func toProductView(p domain.Product) Product {
	return Product{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Discount:      p.Discount,
		Category:      p.Category,
		Image:         p.Image,
		Description:   p.Description,
		InStock:       p.InStock,
		Rating:        p.Rating,
	}
}

func toProductViews(ps []domain.Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductView(p))
	}
	return out
}

func toCriteriaView(c domain.FilterCriteria) Criteria {
	return Criteria{
		SearchTerm: c.SearchTerm,
		Category:   c.Category,
		MinPrice:   c.MinPrice,
		MaxPrice:   c.MaxPrice,
	}
}

func (d ProductDraft) toDomain() domain.ProductDraft {
	inStock := true
	if d.InStock != nil {
		inStock = *d.InStock
	}
	return domain.ProductDraft{
		Name:          d.Name,
		Price:         d.Price,
		OriginalPrice: d.OriginalPrice,
		Discount:      d.Discount,
		Category:      d.Category,
		Image:         d.Image,
		Description:   d.Description,
		InStock:       inStock,
		Rating:        d.Rating,
	}
}

func toCartView(s domain.CartSummary) CartView {
	items := make([]CartLine, 0, len(s.Lines))
	for _, line := range s.Lines {
		items = append(items, CartLine{
			Product:  toProductView(line.Product),
			Quantity: line.Quantity,
			Subtotal: line.Subtotal(),
		})
	}
	return CartView{
		Items:         items,
		TotalQuantity: s.TotalQuantity,
		TotalPrice:    s.TotalPrice,
		Open:          s.Open,
	}
}
