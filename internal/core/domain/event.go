package domain

import "time"

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// A Notification is an ephemeral user-facing message.
type Notification struct {
	Title    string
	Message  string
	Severity Severity
}

type Screen string

const (
	ScreenCatalog Screen = "catalog"
	ScreenAdmin   Screen = "admin"
)

type EventKind string

const (
	EventCatalogLoaded   EventKind = "catalog_loaded"
	EventProductViewed   EventKind = "product_viewed"
	EventAddedToCart     EventKind = "added_to_cart"
	EventRemovedFromCart EventKind = "removed_from_cart"
	EventAdminSaved      EventKind = "admin_saved"
	EventAdminDeleted    EventKind = "admin_deleted"
)

// A ClientEvent records shopper activity for the analytics pipeline.
type ClientEvent struct {
	EventID     string
	SessionID   string
	Kind        EventKind
	ProductID   int
	ProductName string
	At          time.Time
}
