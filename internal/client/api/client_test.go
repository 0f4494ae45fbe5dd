package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/storefront/internal/models"
	"github.com/iudanet/storefront/pkg/api"
)

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:3000/"
	client := NewClient(baseURL)

	assert.NotNil(t, client)
	assert.Equal(t, "http://localhost:3000", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)

	client = NewClient(baseURL, WithTimeout(5*time.Second))
	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
}

// TestClient_Login проверяет успешный логин
func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Проверяем метод и путь
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@b.com", req.Email)
		assert.Equal(t, "secret", req.Password)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.AuthResponse{
			AccessToken: "token-123",
			User:        &models.User{ID: "u1", Email: "a@b.com", Role: "user"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Login(context.Background(), api.LoginRequest{Email: "a@b.com", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "token-123", resp.AccessToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, "u1", resp.User.ID)
}

// TestClient_Register_Error проверяет обработку ошибок при регистрации
func TestClient_Register_Error(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		expectedMsg  string
		expectedKind Kind
		statusCode   int
	}{
		{
			name:         "email already registered",
			statusCode:   http.StatusConflict,
			body:         `{"statusCode":409,"message":"Email already exists","error":"Conflict"}`,
			expectedMsg:  "Email already exists",
			expectedKind: KindConflict,
		},
		{
			name:         "validation list",
			statusCode:   http.StatusBadRequest,
			body:         `{"statusCode":400,"message":["email must be an email","name should not be empty"],"error":"Bad Request"}`,
			expectedMsg:  "email must be an email. name should not be empty",
			expectedKind: KindValidation,
		},
		{
			name:         "plain text internal error",
			statusCode:   http.StatusInternalServerError,
			body:         "Internal Server Error",
			expectedMsg:  "Internal Server Error",
			expectedKind: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL)
			resp, err := client.Register(context.Background(), api.RegisterRequest{Name: "n", Email: "e@x.com", Password: "Passw0rd"})

			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, IsStatus(err, tt.statusCode))

			reqErr := Classify(err)
			require.NotNil(t, reqErr)
			assert.Equal(t, tt.expectedKind, reqErr.Kind)
			assert.Equal(t, tt.expectedMsg, reqErr.Message)
		})
	}
}

// TestClient_ServerUnreachable проверяет классификацию сетевой ошибки
func TestClient_ServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close() // сервер больше не слушает

	client := NewClient(url)
	_, err := client.Login(context.Background(), api.LoginRequest{Email: "a@b.com", Password: "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServerUnreachable)
	assert.Equal(t, KindServerUnreachable, Classify(err).Kind)
}

func TestClient_ListProducts_BothShapes(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantTotal int
	}{
		{
			name:      "bare array",
			body:      `[{"id":"p1","title":"Laptop","price":100},{"id":"p2","title":"Mouse","price":5}]`,
			wantTotal: 2,
		},
		{
			name:      "wrapped",
			body:      `{"products":[{"id":"p1","title":"Laptop","price":100}],"total":42}`,
			wantTotal: 42,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/products", r.URL.Path)
				assert.Equal(t, "10", r.URL.Query().Get("limit"))
				assert.Equal(t, "20", r.URL.Query().Get("offset"))
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL)
			resp, err := client.ListProducts(context.Background(), 10, 20)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, resp.Total)
			assert.Equal(t, "Laptop", resp.Products[0].Title)
		})
	}
}

func TestEncodeSearchParams(t *testing.T) {
	// только обязательные поля
	values := EncodeSearchParams(api.SearchParams{SortBy: "relevant", Page: 1, Limit: 12})
	assert.Equal(t, "limit=12&page=1&sortBy=relevant", values.Encode())

	// все поля
	values = EncodeSearchParams(api.SearchParams{
		Search:     "laptop",
		Categories: []string{"c1", "c2"},
		MinPrice:   10.5,
		MaxPrice:   200,
		Condition:  "USED",
		SortBy:     "price_asc",
		Page:       3,
		Limit:      12,
	})
	assert.Equal(t, []string{"c1", "c2"}, values["categories"])
	assert.Equal(t, "laptop", values.Get("search"))
	assert.Equal(t, "10.5", values.Get("minPrice"))
	assert.Equal(t, "200", values.Get("maxPrice"))
	assert.Equal(t, "USED", values.Get("condition"))
	assert.Equal(t, "3", values.Get("page"))
}

func TestClient_SearchProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/search", r.URL.Path)
		assert.Equal(t, "phone", r.URL.Query().Get("search"))
		_, _ = w.Write([]byte(`{"products":[{"id":"p1","title":"Phone","price":300}],"total":1,"page":1,"limit":12,"totalPages":1}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.SearchProducts(context.Background(), api.SearchParams{Search: "phone", SortBy: "relevant", Page: 1, Limit: 12})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Len(t, resp.Products, 1)
}

func TestClient_GetCartTotal(t *testing.T) {
	for _, body := range []string{`1250.5`, `{"total":1250.5}`} {
		t.Run(body, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/cart/total", r.URL.Path)
				_, _ = w.Write([]byte(body))
			}))
			defer server.Close()

			total, err := NewClient(server.URL).GetCartTotal(context.Background())
			require.NoError(t, err)
			assert.InDelta(t, 1250.5, total, 0.0001)
		})
	}
}

func TestClient_UploadImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload/image", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		content, err := io.ReadAll(file)
		require.NoError(t, err)

		assert.Equal(t, "photo.png", header.Filename)
		assert.Equal(t, "png-bytes", string(content))

		_ = json.NewEncoder(w).Encode(api.UploadResponse{URL: "https://cdn/photo.png", Message: "ok"})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).UploadImage(context.Background(), File{
		Name:        "photo.png",
		ContentType: "image/png",
		Content:     strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/photo.png", resp.URL)
}

func TestClient_DeleteEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := NewClient(server.URL).DeleteProduct(context.Background(), "p1")
	assert.NoError(t, err)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want Kind
	}{
		{name: "not found", err: &HTTPError{StatusCode: 404}, want: KindNotFound},
		{name: "forbidden", err: &HTTPError{StatusCode: 403}, want: KindForbidden},
		{name: "unauthorized", err: fmt.Errorf("wrapped: %w", &HTTPError{StatusCode: 401}), want: KindUnauthorized},
		{name: "unreachable", err: fmt.Errorf("x: %w", ErrServerUnreachable), want: KindServerUnreachable},
		{name: "cancelled", err: context.Canceled, want: KindUnknown},
		{name: "other", err: errors.New("boom"), want: KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Kind)
			assert.NotEmpty(t, got.Message)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	assert.Nil(t, Classify(nil))
}
