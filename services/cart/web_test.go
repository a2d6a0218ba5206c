package cart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/noodly/storefront/lib/mylog"
	"github.com/noodly/storefront/lib/mystore"
)

func TestCartService(t *testing.T) {

	t.Run("Cart page shows lines and total", func(t *testing.T) {
		// setup
		ctx, router, storer, _ := setup(t)

		// given
		storer.Put(ctx, currentCartKey, Cart{Lines: []Line{lineA, lineB}})

		// when
		request, err := http.NewRequest(http.MethodGet, "/cart", nil)
		assert.NoError(t, err)
		request.Host = "localhost:8888"
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		got := response.Body.String()
		assert.Contains(t, got, "<td>Korean</td>")
		assert.Contains(t, got, "<td>Soya</td>")
		assert.Contains(t, got, "Total: 25.00 AED")
	})

	t.Run("Empty cart page", func(t *testing.T) {
		// setup
		_, router, _, _ := setup(t)

		// when
		request, err := http.NewRequest(http.MethodGet, "/cart", nil)
		assert.NoError(t, err)
		request.Host = "localhost:8888"
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "Your cart is empty")
	})

	t.Run("Update quantity persists new cart", func(t *testing.T) {
		// setup
		ctx, router, storer, _ := setup(t)

		// given
		storer.Put(ctx, currentCartKey, Cart{Lines: []Line{lineA}})

		// when
		request, err := http.NewRequest(http.MethodPost, "/cart/A/quantity", strings.NewReader("quantity=5"))
		assert.NoError(t, err)
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		request.Host = "localhost:8888"
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 303, response.Code)
		stored, exists, _ := storer.Get(ctx, currentCartKey)
		assert.True(t, exists)
		assert.Equal(t, 5, stored.Lines[0].Quantity)
	})

	t.Run("Update quantity to zero removes line", func(t *testing.T) {
		// setup
		ctx, router, storer, _ := setup(t)

		// given
		storer.Put(ctx, currentCartKey, Cart{Lines: []Line{lineA, lineB}})

		// when
		request, err := http.NewRequest(http.MethodPost, "/cart/A/quantity", strings.NewReader("quantity=0"))
		assert.NoError(t, err)
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		request.Host = "localhost:8888"
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 303, response.Code)
		stored, _, _ := storer.Get(ctx, currentCartKey)
		assert.Len(t, stored.Lines, 1)
		assert.Equal(t, "B", stored.Lines[0].ProductID)
	})

	t.Run("Clear erases persisted snapshot", func(t *testing.T) {
		// setup
		ctx, router, storer, svc := setup(t)

		// given
		storer.Put(ctx, currentCartKey, Cart{Lines: []Line{lineA}})

		// when
		request, err := http.NewRequest(http.MethodPost, "/cart/clear", nil)
		assert.NoError(t, err)
		request.Host = "localhost:8888"
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then: a fresh load sees the cleared state, not a stale snapshot
		assert.Equal(t, 303, response.Code)
		_, exists, _ := storer.Get(ctx, currentCartKey)
		assert.False(t, exists)
		assert.True(t, svc.Get(ctx).IsEmpty())
	})
}

func setup(t *testing.T) (context.Context, *mux.Router, mystore.Store[Cart], *service) {
	c := context.TODO()

	storer, _, err := mystore.NewInMemoryStore[Cart](c)
	assert.NoError(t, err)

	logger := mylog.New("cart")
	svc := NewService(NewRepository(storer, logger), logger)

	router := mux.NewRouter()
	svc.RegisterEndpoints(c, router)

	return c, router, storer, svc
}
