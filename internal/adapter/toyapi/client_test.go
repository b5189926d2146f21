package toyapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toybox/storefront/internal/adapter/toyapi"
	"github.com/toybox/storefront/internal/core/domain"
)

func newClient(t *testing.T, h http.HandlerFunc) toyapi.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return toyapi.NewClient(toyapi.Config{BaseURL: srv.URL})
}

func TestListAll(t *testing.T) {
	t.Run("DecodesProducts", func(t *testing.T) {
		cl := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/toys", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"id":1,"name":"Red Car","price":10,"category":"Vehicles","inStock":true,"rating":4.2},
				{"id":2,"name":"Blue Doll","price":50,"originalPrice":60,"discount":17,"category":"Dolls","inStock":false,"rating":4.8}
			]`))
		})

		ps, err := cl.ListAll(t.Context())
		require.NoError(t, err)
		require.Len(t, ps, 2)
		assert.Equal(t, "Red Car", ps[0].Name)
		assert.True(t, ps[0].InStock)
		assert.Equal(t, 17, ps[1].Discount)
		assert.InDelta(t, 60, ps[1].OriginalPrice, 0.005)
	})

	t.Run("NonSuccessStatusIsTransportError", func(t *testing.T) {
		cl := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusServiceUnavailable)
		})

		_, err := cl.ListAll(t.Context())
		var tErr *domain.TransportError
		require.ErrorAs(t, err, &tErr)
		assert.Equal(t, http.StatusServiceUnavailable, tErr.Status)
	})

	t.Run("RetriesTransportFailures", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls < 2 {
				http.Error(w, "boom", http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`[]`))
		}))
		t.Cleanup(srv.Close)

		cl := toyapi.NewClient(toyapi.Config{BaseURL: srv.URL, RetryAttempts: 3})
		_, err := cl.ListAll(t.Context())
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})
}

func TestGetByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		cl := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/toys/7", r.URL.Path)
			_, _ = w.Write([]byte(`{"id":7,"name":"Robot Kit","price":79.99,"category":"Electronic"}`))
		})

		p, found, err := cl.GetByID(t.Context(), 7)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, 7, p.ID)
	})

	t.Run("AbsentIsNotAnError", func(t *testing.T) {
		cl := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})

		_, found, err := cl.GetByID(t.Context(), 7)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestCreate(t *testing.T) {
	t.Run("ServerAssignsID", func(t *testing.T) {
		cl := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Robot Kit", body["name"])
			_, ok := body["id"]
			assert.False(t, ok, "draft must not carry an id")

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":11,"name":"Robot Kit","price":79.99,"category":"Electronic"}`))
		})

		p, err := cl.Create(t.Context(), domain.ProductDraft{
			Name: "Robot Kit", Price: 79.99, Category: "Electronic",
		})
		require.NoError(t, err)
		assert.Equal(t, 11, p.ID)
	})

	t.Run("FailureIsTransportError", func(t *testing.T) {
		cl := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		_, err := cl.Create(t.Context(), domain.ProductDraft{Name: "x"})
		assert.ErrorAs(t, err, new(*domain.TransportError))
	})
}

func TestUpdate(t *testing.T) {
	t.Run("AbsentIsNotAnError", func(t *testing.T) {
		cl := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			http.NotFound(w, r)
		})

		_, found, err := cl.Update(t.Context(), 3, domain.ProductDraft{Name: "x"})
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestDelete(t *testing.T) {
	t.Run("SuccessStatus", func(t *testing.T) {
		cl := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			w.WriteHeader(http.StatusOK)
		})

		ok, err := cl.Delete(t.Context(), 3)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("NonSuccessStatusIsFalseNotError", func(t *testing.T) {
		cl := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})

		ok, err := cl.Delete(t.Context(), 3)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
