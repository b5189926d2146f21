package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/toybox/storefront/internal/core/domain"
	"github.com/toybox/storefront/internal/core/port"
)

// GET v1/catalog, v1/catalog/{id}, v1/categories (200 OK, 404 Not found)
// PUT v1/criteria JSON, DELETE v1/criteria resets to defaults.
// Refresh forces a wholesale snapshot reload and is admin-gated.

type CatalogHandler struct {
	browser port.CatalogBrowser
}

func RegisterCatalog(mux *http.ServeMux, browser port.CatalogBrowser, gate port.AdminGate) {
	h := CatalogHandler{browser}
	mux.HandleFunc("GET /v1/catalog", h.GetCatalog)
	mux.HandleFunc("GET /v1/catalog/{id}", h.GetProduct)
	mux.HandleFunc("GET /v1/categories", h.GetCategories)
	mux.HandleFunc("PUT /v1/criteria", h.PutCriteria)
	mux.HandleFunc("DELETE /v1/criteria", h.ResetCriteria)
	mux.Handle("POST /v1/admin/catalog/refresh",
		RequireAdmin(gate, http.HandlerFunc(h.Refresh)))
}

func (h CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	view := CatalogView{
		Products:   toProductViews(h.browser.VisibleProducts()),
		Categories: h.browser.Categories(),
		Criteria:   toCriteriaView(h.browser.Criteria()),
		Loading:    h.browser.Loading(),
	}
	view.Total = len(view.Products)
	writeJSON(w, http.StatusOK, view)
}

func (h CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProduct"
	log := slog.With("op", op)

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	p, found, err := h.browser.ProductDetails(r.Context(), id)
	if err != nil {
		http.Error(w, "product store unavailable", http.StatusBadGateway)
		log.Error("failed to fetch product", "id", id, "err", err)
		return
	}
	if !found {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, toProductView(p))
}

func (h CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.browser.Categories())
}

func (h CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.Refresh"
	log := slog.With("op", op)

	if err := h.browser.LoadCatalog(r.Context()); err != nil {
		http.Error(w, "product store unavailable", http.StatusBadGateway)
		log.Error("failed to refresh catalog", "err", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h CatalogHandler) PutCriteria(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.PutCriteria"
	log := slog.With("op", op)

	var c Criteria
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	h.browser.SetSearchTerm(c.SearchTerm)
	h.browser.SetCategory(c.Category)
	h.browser.SetPriceBounds(c.MinPrice, c.MaxPrice)

	writeJSON(w, http.StatusOK, toCriteriaView(h.browser.Criteria()))
}

func (h CatalogHandler) ResetCriteria(w http.ResponseWriter, r *http.Request) {
	h.browser.ResetFilters()
	writeJSON(w, http.StatusOK, toCriteriaView(h.browser.Criteria()))
}

// GET v1/cart, POST v1/cart/items, PUT/DELETE v1/cart/items/{id}
// POST v1/cart/open, POST v1/cart/close toggle the drawer view state

type CartHandler struct {
	cart port.CartEditor
}

func RegisterCart(mux *http.ServeMux, cart port.CartEditor) {
	h := CartHandler{cart}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PUT /v1/cart/items/{id}", h.PutItem)
	mux.HandleFunc("DELETE /v1/cart/items/{id}", h.DeleteItem)
	mux.HandleFunc("POST /v1/cart/open", h.OpenCart)
	mux.HandleFunc("POST /v1/cart/close", h.CloseCart)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCartView(h.cart.CartSummary()))
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var body AddCartItem
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	err := h.cart.AddToCart(r.Context(), body.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to add item", http.StatusInternalServerError)
		log.Error("failed to add item", "productID", body.ProductID, "err", err)
		return
	}

	writeJSON(w, http.StatusCreated, toCartView(h.cart.CartSummary()))
}

func (h CartHandler) PutItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	var body SetCartQuantity
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		return
	}

	h.cart.SetCartQuantity(id, body.Quantity)
	writeJSON(w, http.StatusOK, toCartView(h.cart.CartSummary()))
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	h.cart.RemoveFromCart(id)
	writeJSON(w, http.StatusOK, toCartView(h.cart.CartSummary()))
}

func (h CartHandler) OpenCart(w http.ResponseWriter, r *http.Request) {
	h.cart.OpenCart()
	w.WriteHeader(http.StatusNoContent)
}

func (h CartHandler) CloseCart(w http.ResponseWriter, r *http.Request) {
	h.cart.CloseCart()
	w.WriteHeader(http.StatusNoContent)
}

// POST v1/admin/session exchanges the admin secret for a session token.
// Product mutations require a valid Bearer token (see RequireAdmin).

type AdminHandler struct {
	admin port.AdminManager
}

func RegisterAdmin(mux *http.ServeMux, admin port.AdminManager, gate port.AdminGate) {
	h := AdminHandler{admin}
	mux.HandleFunc("POST /v1/admin/session", h.PostSession)
	mux.HandleFunc("DELETE /v1/admin/session", h.DeleteSession)
	mux.Handle("POST /v1/admin/products",
		RequireAdmin(gate, http.HandlerFunc(h.PostProduct)))
	mux.Handle("PUT /v1/admin/products/{id}",
		RequireAdmin(gate, http.HandlerFunc(h.PutProduct)))
	mux.Handle("DELETE /v1/admin/products/{id}",
		RequireAdmin(gate, http.HandlerFunc(h.DeleteProduct)))
}

func (h AdminHandler) PostSession(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.PostSession"
	log := slog.With("op", op)

	var body AdminSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		return
	}

	token, err := h.admin.EnterAdmin(body.Secret)
	if err != nil {
		http.Error(w, "access denied", http.StatusUnauthorized)
		log.Warn("admin session rejected")
		return
	}

	writeJSON(w, http.StatusOK, AdminSessionResponse{Token: token})
}

func (h AdminHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	h.admin.ExitAdmin()
	w.WriteHeader(http.StatusNoContent)
}

func (h AdminHandler) PostProduct(w http.ResponseWriter, r *http.Request) {
	h.saveProduct(w, r, 0)
}

func (h AdminHandler) PutProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id == 0 {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	h.saveProduct(w, r, id)
}

func (h AdminHandler) saveProduct(w http.ResponseWriter, r *http.Request, id int) {
	const op = "AdminHandler.saveProduct"
	log := slog.With("op", op)

	var body ProductDraft
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	p, err := h.admin.SaveProduct(r.Context(), id, body.toDomain())
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			http.Error(w, vErr.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		default:
			http.Error(w, "product store unavailable", http.StatusBadGateway)
			log.Error("failed to save product", "err", err)
		}
		return
	}

	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, toProductView(p))
}

func (h AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	const op = "AdminHandler.DeleteProduct"
	log := slog.With("op", op)

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	if err := h.admin.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "product store unavailable", http.StatusBadGateway)
		log.Error("failed to delete product", "id", id, "err", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET v1/popularity/{name} (200 OK, 404 Not found)

type PopularityHandler struct {
	reader port.PopularityReader
}

func RegisterPopularity(mux *http.ServeMux, reader port.PopularityReader) {
	h := PopularityHandler{reader}
	mux.HandleFunc("GET /v1/popularity/{name}", h.GetPopularity)
}

func (h PopularityHandler) GetPopularity(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	count, ok := h.reader.Popularity(name)
	if !ok {
		http.Error(w, "no data for product", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, Popularity{ProductName: name, Count: count})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	const op = "httphandler.writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}
