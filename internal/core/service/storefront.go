package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/toybox/storefront/internal/core/domain"
	"github.com/toybox/storefront/internal/core/port"
)

var _ port.CatalogBrowser = (*Storefront)(nil)
var _ port.CartEditor = (*Storefront)(nil)
var _ port.AdminManager = (*Storefront)(nil)

const (
	defaultImage       = "https://images.unsplash.com/photo-1558877171-d2e1005c4d6a?w=400&h=400&fit=crop"
	defaultDescription = "Amazing toy for kids!"
	defaultRating      = 4.5
)

// A Storefront owns the catalog snapshot, the filter criteria, the cart
// ledger and the view state as one coherent unit. Every operation runs
// to completion under a single mutex, so an operation's effects are
// fully visible before the next one starts and the snapshot is never
// mutated while a repository call is outstanding.
type Storefront struct {
	mu sync.Mutex

	repo     port.ProductRepository
	notifier port.Notifier
	events   port.ClientEventsProducer
	gate     port.AdminGate

	sessionID string
	catalog   []domain.Product
	criteria  domain.FilterCriteria
	cart      CartLedger
	screen    domain.Screen
	cartOpen  bool

	// loading is atomic, not mutex-guarded: a reload holds the mutex
	// for its whole duration, so the flag must stay readable while the
	// fetch is in flight.
	loading atomic.Bool
}

func NewStorefront(
	repo port.ProductRepository,
	notifier port.Notifier,
	events port.ClientEventsProducer,
	gate port.AdminGate,
) *Storefront {
	if repo == nil || notifier == nil {
		panic("storefront: nil collaborator") // develop mistake
	}
	return &Storefront{
		repo:      repo,
		notifier:  notifier,
		events:    events,
		gate:      gate,
		sessionID: uuid.NewString(),
		criteria:  domain.DefaultCriteria(),
		screen:    domain.ScreenCatalog,
	}
}

// LoadCatalog fetches all products and replaces the snapshot wholesale.
// On failure the snapshot stays unchanged and the error is reported
// through the notifier.
func (s *Storefront) LoadCatalog(ctx context.Context) error {
	const op = "Storefront.LoadCatalog"

	s.loading.Store(true)
	defer s.loading.Store(false)

	s.mu.Lock()
	defer s.mu.Unlock()

	ps, err := s.repo.ListAll(ctx)
	if err != nil {
		s.notifier.Notify(domain.Notification{
			Title:    "Error Loading Products",
			Message:  "Failed to load products from the store",
			Severity: domain.SeverityError,
		})
		return fmt.Errorf("%s: %w", op, err)
	}

	s.catalog = ps
	s.notifier.Notify(domain.Notification{
		Title:    "Products Loaded",
		Message:  fmt.Sprintf("Successfully loaded %d products", len(ps)),
		Severity: domain.SeverityInfo,
	})
	s.emitEvent(ctx, domain.EventCatalogLoaded, domain.Product{})
	return nil
}

// VisibleProducts recomputes the filtered view from the current
// snapshot and criteria.
func (s *Storefront) VisibleProducts() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FilterProducts(s.catalog, s.criteria)
}

func (s *Storefront) Catalog() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.catalog)
}

// Categories lists the "All" sentinel followed by the distinct
// categories present in the snapshot, in first-seen order.
func (s *Storefront) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs := []string{domain.CategoryAll}
	for _, p := range s.catalog {
		if !slices.Contains(cs, p.Category) {
			cs = append(cs, p.Category)
		}
	}
	return cs
}

func (s *Storefront) Criteria() domain.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

func (s *Storefront) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.SearchTerm = term
}

func (s *Storefront) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Category = category
}

// SetPriceBounds accepts any bounds, including min > max: malformed
// ranges degrade to an empty view instead of failing.
func (s *Storefront) SetPriceBounds(min, max float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.MinPrice = min
	s.criteria.MaxPrice = max
}

func (s *Storefront) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = domain.DefaultCriteria()
}

func (s *Storefront) Loading() bool {
	return s.loading.Load()
}

// ProductDetails fetches a single product from the repository. An
// absent product is reported distinctly from a transport failure.
func (s *Storefront) ProductDetails(ctx context.Context, id int) (domain.Product, bool, error) {
	const op = "Storefront.ProductDetails"

	s.mu.Lock()
	defer s.mu.Unlock()

	p, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return domain.Product{}, false, nil
	}

	s.emitEvent(ctx, domain.EventProductViewed, p)
	return p, true, nil
}

// AddToCart adds the snapshot product to the ledger, merging into an
// existing line. The line keeps the price current at add time.
func (s *Storefront) AddToCart(ctx context.Context, productID int) error {
	const op = "Storefront.AddToCart"

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.catalog, func(p domain.Product) bool {
		return p.ID == productID
	})
	if i < 0 {
		s.notifier.Notify(domain.Notification{
			Title:    "Not Available",
			Message:  "This product is no longer in the catalog",
			Severity: domain.SeverityError,
		})
		return fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
	}

	p := s.catalog[i]
	s.cart.AddItem(p)
	s.notifier.Notify(domain.Notification{
		Title:    "Added to Cart",
		Message:  p.Name + " has been added to your cart",
		Severity: domain.SeverityInfo,
	})
	s.emitEvent(ctx, domain.EventAddedToCart, p)
	return nil
}

func (s *Storefront) SetCartQuantity(productID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetQuantity(productID, quantity)
}

func (s *Storefront) RemoveFromCart(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, removed := s.cart.RemoveItem(productID)
	if !removed {
		return
	}
	s.notifier.Notify(domain.Notification{
		Title:    "Removed from Cart",
		Message:  "Item has been removed from your cart",
		Severity: domain.SeverityInfo,
	})
	s.emitEvent(context.Background(), domain.EventRemovedFromCart, line.Product)
}

func (s *Storefront) CartSummary() domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CartSummary{
		Lines:         s.cart.Lines(),
		TotalQuantity: s.cart.TotalQuantity(),
		TotalPrice:    s.cart.TotalPrice(),
		Open:          s.cartOpen,
	}
}

func (s *Storefront) OpenCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartOpen = true
}

func (s *Storefront) CloseCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartOpen = false
}

// EnterAdmin delegates the credential check to the admin gate and
// switches to the admin screen on success. The storefront itself never
// compares secrets.
func (s *Storefront) EnterAdmin(secret string) (string, error) {
	const op = "Storefront.EnterAdmin"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gate == nil {
		return "", fmt.Errorf("%s: no admin gate configured", op)
	}

	token, err := s.gate.IssueToken(secret)
	if err != nil {
		s.notifier.Notify(domain.Notification{
			Title:    "Access Denied",
			Message:  "Invalid admin credential",
			Severity: domain.SeverityError,
		})
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.screen = domain.ScreenAdmin
	s.notifier.Notify(domain.Notification{
		Title:    "Admin Access Granted",
		Message:  "Welcome to the admin panel",
		Severity: domain.SeverityInfo,
	})
	return token, nil
}

func (s *Storefront) ExitAdmin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = domain.ScreenCatalog
}

func (s *Storefront) Screen() domain.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

// SaveProduct creates (id == 0) or updates a product through the
// repository. Validation failures block the operation before any
// network call. The snapshot is replaced only after the collaborator
// reports success.
func (s *Storefront) SaveProduct(ctx context.Context, id int, d domain.ProductDraft) (domain.Product, error) {
	const op = "Storefront.SaveProduct"

	s.mu.Lock()
	defer s.mu.Unlock()

	if missing := missingFields(d); len(missing) > 0 {
		s.notifier.Notify(domain.Notification{
			Title:    "Error",
			Message:  "Please fill in all required fields",
			Severity: domain.SeverityError,
		})
		return domain.Product{}, &domain.ValidationError{Missing: missing}
	}
	d = withDefaults(d)

	if id == 0 {
		p, err := s.repo.Create(ctx, d)
		if err != nil {
			s.notifyAPIError("Failed to save product")
			return domain.Product{}, fmt.Errorf("%s: %w", op, err)
		}
		s.catalog = append(slices.Clone(s.catalog), p)
		s.notifier.Notify(domain.Notification{
			Title:    "Product Added",
			Message:  p.Name + " has been added",
			Severity: domain.SeverityInfo,
		})
		s.emitEvent(ctx, domain.EventAdminSaved, p)
		return p, nil
	}

	p, found, err := s.repo.Update(ctx, id, d)
	if err != nil {
		s.notifyAPIError("Failed to save product")
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		s.notifyAPIError("Product no longer exists")
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
	}

	next := slices.Clone(s.catalog)
	for i := range next {
		if next[i].ID == id {
			next[i] = p
			break
		}
	}
	s.catalog = next
	s.notifier.Notify(domain.Notification{
		Title:    "Product Updated",
		Message:  p.Name + " has been updated",
		Severity: domain.SeverityInfo,
	})
	s.emitEvent(ctx, domain.EventAdminSaved, p)
	return p, nil
}

// DeleteProduct removes a product through the repository and drops it
// from the snapshot only after success. A failed delete is reported,
// not retried.
func (s *Storefront) DeleteProduct(ctx context.Context, id int) error {
	const op = "Storefront.DeleteProduct"

	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted domain.Product
	if i := slices.IndexFunc(s.catalog, func(p domain.Product) bool {
		return p.ID == id
	}); i >= 0 {
		deleted = s.catalog[i]
	}

	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.notifyAPIError("Failed to delete product")
		return fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		s.notifyAPIError("Product could not be deleted")
		return fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
	}

	s.catalog = slices.DeleteFunc(slices.Clone(s.catalog), func(p domain.Product) bool {
		return p.ID == id
	})

	msg := deleted.Name + " has been removed"
	if deleted.Name == "" {
		msg = fmt.Sprintf("Product %d has been removed", id)
	}
	s.notifier.Notify(domain.Notification{
		Title:    "Product Deleted",
		Message:  msg,
		Severity: domain.SeverityInfo,
	})
	s.emitEvent(ctx, domain.EventAdminDeleted, deleted)
	return nil
}

func (s *Storefront) notifyAPIError(msg string) {
	s.notifier.Notify(domain.Notification{
		Title:    "API Error",
		Message:  msg,
		Severity: domain.SeverityError,
	})
}

// emitEvent hands shopper activity to the analytics pipeline. Delivery
// is best effort and never fails the calling operation.
func (s *Storefront) emitEvent(ctx context.Context, kind domain.EventKind, p domain.Product) {
	if s.events == nil {
		return
	}
	evt := domain.ClientEvent{
		EventID:     uuid.NewString(),
		SessionID:   s.sessionID,
		Kind:        kind,
		ProductID:   p.ID,
		ProductName: p.Name,
		At:          time.Now(),
	}
	if err := s.events.ProduceEvent(ctx, evt); err != nil {
		slog.Warn("failed to produce client event", "kind", kind, "err", err)
	}
}

func missingFields(d domain.ProductDraft) (missing []string) {
	if d.Name == "" {
		missing = append(missing, "name")
	}
	if d.Price == 0 {
		missing = append(missing, "price")
	}
	if d.Category == "" {
		missing = append(missing, "category")
	}
	return missing
}

func withDefaults(d domain.ProductDraft) domain.ProductDraft {
	if d.Image == "" {
		d.Image = defaultImage
	}
	if d.Description == "" {
		d.Description = defaultDescription
	}
	if d.Rating == 0 {
		d.Rating = defaultRating
	}
	return d
}
