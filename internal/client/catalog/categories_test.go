package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/iudanet/storefront/internal/client/api"
	"github.com/iudanet/storefront/internal/models"
	"github.com/iudanet/storefront/internal/validation"
)

func newCategoryService(t *testing.T, handler http.HandlerFunc) *CategoryService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewCategoryService(clientapi.NewClient(server.URL), nil)
}

func TestCategoryService_List(t *testing.T) {
	svc := newCategoryService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/categories", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"c1","name":"Hogar","isActive":true},{"id":"c2","name":"Deportes","isActive":false}]`))
	})

	categories, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Hogar", categories[0].Name)
	assert.False(t, categories[1].IsActive)
}

func TestCategoryService_CreateRequiresName(t *testing.T) {
	called := false
	svc := newCategoryService(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := svc.Create(context.Background(), CategoryInput{Name: "   "})
	assert.ErrorIs(t, err, validation.ErrInvalid)
	_, err = svc.Update(context.Background(), "c1", CategoryInput{})
	assert.ErrorIs(t, err, validation.ErrInvalid)
	assert.False(t, called)
}

func TestCategoryService_CreateAndUpdate(t *testing.T) {
	svc := newCategoryService(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Libros", body["name"])
		assert.NotContains(t, body, "isActive")

		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "/categories", r.URL.Path)
			w.WriteHeader(http.StatusCreated)
		case http.MethodPatch:
			assert.Equal(t, "/categories/c7", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":"c7","name":"Libros","isActive":true}`))
	})

	created, err := svc.Create(context.Background(), CategoryInput{Name: " Libros ", Description: "papel"})
	require.NoError(t, err)
	assert.Equal(t, "c7", created.ID)

	updated, err := svc.Update(context.Background(), "c7", CategoryInput{Name: "Libros"})
	require.NoError(t, err)
	assert.True(t, updated.IsActive)
}

func TestCategoryService_ActivateAndDeactivate(t *testing.T) {
	svc := newCategoryService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/categories/c1", r.URL.Path)
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusOK)
		case http.MethodPatch:
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]any{"isActive": true}, body)
			_, _ = w.Write([]byte(`{"id":"c1","name":"Hogar","isActive":true}`))
		}
	})

	require.NoError(t, svc.Deactivate(context.Background(), "c1"))

	category, err := svc.Activate(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, category.IsActive)
}

func TestCategoryService_GetForbidden(t *testing.T) {
	svc := newCategoryService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := svc.Get(context.Background(), "c1")
	require.Error(t, err)
	assert.Equal(t, clientapi.KindForbidden, clientapi.Classify(err).Kind)
}

func TestFilter(t *testing.T) {
	categories := []models.Category{
		{ID: "c1", Name: "Electrónica", Description: "Celulares y computadores"},
		{ID: "c2", Name: "Hogar", Description: "Muebles"},
		{ID: "c3", Name: "Deportes"},
	}

	assert.Len(t, Filter(categories, ""), 3)
	assert.Equal(t, []models.Category{categories[0]}, Filter(categories, "ELECTR"))
	assert.Equal(t, []models.Category{categories[1]}, Filter(categories, "muebles"))
	assert.Empty(t, Filter(categories, "juguetes"))
}
