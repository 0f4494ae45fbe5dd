package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStatusLogout(t *testing.T) {
	e := newEnv(t)

	code, out := e.run("", "status")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Status: Not authenticated")

	e.login()

	code, out = e.run("", "status")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Status: Authenticated")
	assert.Contains(t, out, "User:   Ana (ana@example.com)")
	assert.Contains(t, out, "Token expires:")
	assert.Contains(t, out, "Server: "+e.server.URL)

	code, out = e.run("", "logout")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "✓ Logout successful!")

	code, out = e.run("", "status")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Status: Not authenticated")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	e := newEnv(t)

	code, out := e.run("wrong\n", "login", "--email", testUser.Email)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Error: Invalid credentials")

	_, out = e.run("", "status")
	assert.Contains(t, out, "Status: Not authenticated")
}

func TestLogin_PromptsForEmail(t *testing.T) {
	e := newEnv(t)

	code, out := e.run(testUser.Email+"\n"+testPassword+"\n", "login")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Email: ")
	assert.Contains(t, out, "✓ Login successful!")
}

func TestLogin_AlreadyLoggedIn(t *testing.T) {
	e := newEnv(t)
	e.login()

	code, out := e.run(testPassword+"\n", "login", "--email", testUser.Email)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Run 'storefront status' to see your account.")
	assert.Contains(t, out, "already logged in")
}

func TestGuard_RedirectsToLogin(t *testing.T) {
	e := newEnv(t)

	code, out := e.run("", "cart")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Run 'storefront login' to sign in.")
	assert.Contains(t, out, "Then retry 'storefront cart'.")
	assert.Contains(t, out, "Error: access denied")
	assert.Empty(t, e.backend.Requests(), "guard must stop the command before any request")
}

func TestGuard_AdminOnly(t *testing.T) {
	e := newEnv(t)
	e.login()

	code, out := e.run("", "categories", "create", "--name", "Lamps")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "admin role required")
	assert.NotContains(t, e.backend.Requests(), "POST /categories")
}

func TestVersion_DoesNotOpenStorage(t *testing.T) {
	e := newEnv(t)
	e.dbPath = "/nonexistent/dir/storefront.db"

	code, out := e.run("", "version")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Version:    test")
}
