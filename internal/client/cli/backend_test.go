package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/storefront/internal/client/iocli"
	"github.com/iudanet/storefront/internal/models"
)

const testPassword = "Secret1"

var testUser = models.User{ID: "u1", Email: "ana@example.com", Name: "Ana", Role: "user", IsActive: true}

func signToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   testUser.ID,
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

// backend фейковый marketplace API с корзиной в памяти
type backend struct {
	*http.ServeMux
	t        *testing.T
	token    string
	requests []string
	cart     models.Cart
	mu       sync.Mutex
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{ServeMux: http.NewServeMux(), t: t, token: signToken(t, time.Now().Add(time.Hour))}
	b.cart = models.Cart{ID: "cart1", UserID: testUser.ID}

	b.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Email, Password string }
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Email != testUser.Email || req.Password != testPassword {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid credentials", "statusCode": 401})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": testUser, "access_token": b.token})
	})

	b.HandleFunc("GET /cart", b.authorized(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, b.cart)
	}))
	b.HandleFunc("POST /cart/add", b.authorized(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		b.cart.Items = append(b.cart.Items, models.CartItem{
			ID:        "item-" + req.ProductID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			Product:   models.CartProduct{ID: req.ProductID, Title: "Lamp", Price: "125000.00"},
		})
		writeJSON(w, http.StatusOK, b.cart)
	}))
	b.HandleFunc("DELETE /cart/clear", b.authorized(func(w http.ResponseWriter, r *http.Request) {
		b.cart.Items = nil
		writeJSON(w, http.StatusOK, b.cart)
	}))
	return b
}

// authorized пропускает только запросы с выданным токеном
func (b *backend) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+b.token {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthorized", "statusCode": 401})
			return
		}
		next(w, r)
	}
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, r.Method+" "+r.URL.Path)
	b.ServeMux.ServeHTTP(w, r)
}

func (b *backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// env один клиент: backend и локальная база, общие для нескольких запусков
type env struct {
	t       *testing.T
	backend *backend
	server  *httptest.Server
	dbPath  string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	for _, key := range []string{
		"STOREFRONT_CONFIG", "STOREFRONT_SERVER_URL", "STOREFRONT_DB_PATH",
		"STOREFRONT_SESSION_PASSPHRASE", "STOREFRONT_LOG_LEVEL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	b := newBackend(t)
	server := httptest.NewServer(b)
	t.Cleanup(server.Close)
	return &env{
		t:       t,
		backend: b,
		server:  server,
		dbPath:  filepath.Join(t.TempDir(), "storefront.db"),
	}
}

// run выполняет команду, input - строки ввода пользователя
func (e *env) run(input string, args ...string) (int, string) {
	e.t.Helper()
	var out bytes.Buffer
	io := iocli.NewStdioFrom(strings.NewReader(input), &out)
	full := append([]string{"--server", e.server.URL, "--db", e.dbPath, "--log-level", "error"}, args...)
	code := Execute(context.Background(), BuildInfo{Version: "test"}, io, full)
	return code, out.String()
}

func (e *env) login() {
	e.t.Helper()
	code, out := e.run(testPassword+"\n", "login", "--email", testUser.Email)
	require.Equal(e.t, 0, code, out)
}
