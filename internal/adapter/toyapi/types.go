package toyapi

import "github.com/toybox/storefront/internal/core/domain"

// Wire shape of the upstream /toys resource.
type toy struct {
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

// toyPayload is the body for create and update requests, without the
// server-assigned id.
type toyPayload struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	Discount      int     `json:"discount"`
	Category      string  `json:"category"`
	Image         string  `json:"image"`
	Description   string  `json:"description"`
	InStock       bool    `json:"inStock"`
	Rating        float64 `json:"rating"`
}

func (t toy) toDomain() domain.Product {
	return domain.Product{
		ID:            t.ID,
		Name:          t.Name,
		Price:         t.Price,
		OriginalPrice: t.OriginalPrice,
		Discount:      t.Discount,
		Category:      t.Category,
		Image:         t.Image,
		Description:   t.Description,
		InStock:       t.InStock,
		Rating:        t.Rating,
	}
}

func toPayload(d domain.ProductDraft) toyPayload {
	return toyPayload{
		Name:          d.Name,
		Price:         d.Price,
		OriginalPrice: d.OriginalPrice,
		Discount:      d.Discount,
		Category:      d.Category,
		Image:         d.Image,
		Description:   d.Description,
		InStock:       d.InStock,
		Rating:        d.Rating,
	}
}
