package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/iudanet/storefront/internal/client/api"
	"github.com/iudanet/storefront/internal/models"
	"github.com/iudanet/storefront/internal/validation"
	"github.com/iudanet/storefront/pkg/api"
)

// fakeBackend хранит корзину в памяти и отвечает как backend
type fakeBackend struct {
	items map[string]int
	price map[string]string
	order []string
	mu    sync.Mutex
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		items: map[string]int{"i1": 2, "i2": 1},
		price: map[string]string{"i1": "1500.50", "i2": "not-a-number"},
		order: []string{"i1", "i2"},
	}
}

func (b *fakeBackend) cart() models.Cart {
	c := models.Cart{ID: "cart-1", UserID: "u1"}
	for _, id := range b.order {
		qty, ok := b.items[id]
		if !ok {
			continue
		}
		c.Items = append(c.Items, models.CartItem{
			ID:        id,
			ProductID: "p-" + id,
			Quantity:  qty,
			Product:   models.CartProduct{ID: "p-" + id, Title: "Product " + id, Price: b.price[id]},
		})
	}
	return c
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/cart":
	case r.Method == http.MethodGet && r.URL.Path == "/cart/total":
		_, _ = w.Write([]byte(`{"total":3001}`))
		return
	case r.Method == http.MethodPost && r.URL.Path == "/cart/add":
		var req api.AddToCartRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		id := "i-" + req.ProductID
		if _, ok := b.items[id]; !ok {
			b.order = append(b.order, id)
			b.price[id] = "100"
		}
		b.items[id] += req.Quantity
	case r.Method == http.MethodPatch && len(r.URL.Path) > len("/cart/items/"):
		var req api.UpdateCartItemRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.items[r.URL.Path[len("/cart/items/"):]] = req.Quantity
	case r.Method == http.MethodDelete && r.URL.Path == "/cart/clear":
		b.items = map[string]int{}
	case r.Method == http.MethodDelete && len(r.URL.Path) > len("/cart/items/"):
		delete(b.items, r.URL.Path[len("/cart/items/"):])
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(b.cart())
}

func newService(t *testing.T) (*Service, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend()
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)
	return NewService(clientapi.NewClient(server.URL), nil), backend
}

func TestService_GetAndTotals(t *testing.T) {
	svc, _ := newService(t)
	assert.Nil(t, svc.Current())
	assert.Zero(t, svc.ItemCount())

	c, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, c.Items, 2)

	assert.Equal(t, 3, svc.ItemCount())
	// нечисловая цена считается нулевой
	assert.InDelta(t, 3001.0, svc.LocalTotal(), 0.001)

	total, err := svc.ServerTotal(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 3001.0, total, 0.001)
}

func TestService_Add(t *testing.T) {
	svc, _ := newService(t)

	c, err := svc.Add(context.Background(), "p9", 3)
	require.NoError(t, err)
	item, ok := c.FindItem("i-p9")
	require.True(t, ok)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 6, svc.ItemCount())

	_, err = svc.Add(context.Background(), " ", 1)
	assert.ErrorIs(t, err, validation.ErrInvalid)
	_, err = svc.Add(context.Background(), "p9", 0)
	assert.ErrorIs(t, err, validation.ErrInvalid)
}

func TestService_ChangeQuantity(t *testing.T) {
	svc, backend := newService(t)
	_, err := svc.Get(context.Background())
	require.NoError(t, err)

	c, err := svc.ChangeQuantity(context.Background(), "i1", 1)
	require.NoError(t, err)
	item, _ := c.FindItem("i1")
	assert.Equal(t, 3, item.Quantity)

	// количество уходит в ноль - позиция удаляется
	c, err = svc.ChangeQuantity(context.Background(), "i2", -1)
	require.NoError(t, err)
	_, ok := c.FindItem("i2")
	assert.False(t, ok)

	backend.mu.Lock()
	_, stillThere := backend.items["i2"]
	backend.mu.Unlock()
	assert.False(t, stillThere)

	_, err = svc.ChangeQuantity(context.Background(), "missing", 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestService_ClearAndSubscribe(t *testing.T) {
	svc, _ := newService(t)

	var seen []int
	unsubscribe := svc.Subscribe(func(c *models.Cart) {
		seen = append(seen, c.ItemCount())
	})

	_, err := svc.Get(context.Background())
	require.NoError(t, err)
	_, err = svc.Clear(context.Background())
	require.NoError(t, err)

	unsubscribe()
	svc.Reset()

	assert.Equal(t, []int{3, 0}, seen)
	assert.Nil(t, svc.Current())
}

func TestService_CurrentIsCopy(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Get(context.Background())
	require.NoError(t, err)

	c := svc.Current()
	c.Items[0].Quantity = 100
	assert.Equal(t, 3, svc.ItemCount())
}

func TestService_UnauthorizedIsClassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	svc := NewService(clientapi.NewClient(server.URL), nil)
	_, err := svc.Get(context.Background())
	require.Error(t, err)
	assert.Equal(t, clientapi.KindUnauthorized, clientapi.Classify(err).Kind)
	assert.Nil(t, svc.Current())
}
