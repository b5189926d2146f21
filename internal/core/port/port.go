package port

import (
	"context"
	"sync"

	"github.com/toybox/storefront/internal/core/domain"
)

// ProductRepository is the upstream product store collaborator.
// The storefront never mutates products locally before a call succeeds.
type ProductRepository interface {
	ListAll(context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int) (p domain.Product, found bool, err error)
	Create(context.Context, domain.ProductDraft) (domain.Product, error)
	Update(ctx context.Context, id int, d domain.ProductDraft) (p domain.Product, found bool, err error)
	Delete(ctx context.Context, id int) (bool, error)
}

// Notifier is the user-facing message sink, fire-and-forget.
type Notifier interface {
	Notify(domain.Notification)
}

type ClientEventsProducer interface {
	ProduceEvent(context.Context, domain.ClientEvent) error
}

// AdminGate issues and verifies admin session credentials.
type AdminGate interface {
	IssueToken(secret string) (string, error)
	VerifyToken(token string) error
}

type CatalogBrowser interface {
	LoadCatalog(context.Context) error
	VisibleProducts() []domain.Product
	Catalog() []domain.Product
	Categories() []string
	Criteria() domain.FilterCriteria
	SetSearchTerm(string)
	SetCategory(string)
	SetPriceBounds(min, max float64)
	ResetFilters()
	ProductDetails(ctx context.Context, id int) (domain.Product, bool, error)
	Loading() bool
}

type CartEditor interface {
	AddToCart(ctx context.Context, productID int) error
	SetCartQuantity(productID, quantity int)
	RemoveFromCart(productID int)
	CartSummary() domain.CartSummary
	OpenCart()
	CloseCart()
}

type AdminManager interface {
	EnterAdmin(secret string) (string, error)
	ExitAdmin()
	Screen() domain.Screen
	SaveProduct(ctx context.Context, id int, d domain.ProductDraft) (domain.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

type PopularityReader interface {
	Popularity(productName string) (int64, bool)
}

type PopularityProcessor interface {
	Run(context.Context, context.CancelFunc, *sync.WaitGroup)
	Close()
}
