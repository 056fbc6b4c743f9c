//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/bissquit/task-garden/internal/pkg/httputil"
	"github.com/bissquit/task-garden/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_Login_SetsSessionCookie(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.POST("/api/v1/auth/login", map[string]string{
		"email": "meganlewis@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var hasSessionCookie bool
	for _, c := range resp.Cookies() {
		if c.Name == httputil.SessionCookie {
			hasSessionCookie = true
			assert.True(t, c.HttpOnly)
			assert.NotEmpty(t, c.Value)
		}
	}
	assert.True(t, hasSessionCookie, "session cookie should be set")

	var loginResult struct {
		Data struct {
			UserName  string `json:"userName"`
			UserEmail string `json:"userEmail"`
			UserRole  string `json:"userRole"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &loginResult)
	assert.Equal(t, "Megan Lewis", loginResult.Data.UserName)
	assert.Equal(t, "meganlewis@example.com", loginResult.Data.UserEmail)
	assert.Equal(t, "Admin", loginResult.Data.UserRole)
}

func TestAuth_Login_CaseInsensitiveEmail(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.POST("/api/v1/auth/login", map[string]string{
		"email": "MeganLewis@Example.COM",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAuth_Login_UnknownEmail(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.POST("/api/v1/auth/login", map[string]string{
		"email": "nonexistent@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var errResult struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	testutil.DecodeJSON(t, resp, &errResult)
	assert.Equal(t, "invalid credentials", errResult.Error.Message)
}

func TestAuth_Login_MalformedEmail(t *testing.T) {
	client := newTestClientWithoutValidation()

	resp, err := client.POST("/api/v1/auth/login", map[string]string{
		"email": "not-an-email",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAuth_Me_RequiresSession(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/api/v1/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAuth_Me_ReturnsSessionUser(t *testing.T) {
	client := newTestClient(t)
	client.LoginAs(t, "nlynch@example.org")

	resp, err := client.GET("/api/v1/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var meResult struct {
		Data struct {
			UserName string `json:"userName"`
			UserRole string `json:"userRole"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &meResult)
	assert.Equal(t, "James Hanson", meResult.Data.UserName)
	assert.Equal(t, "Viewer", meResult.Data.UserRole)
}

func TestAuth_Logout_InvalidatesSession(t *testing.T) {
	client := newTestClient(t)
	client.LoginAs(t, "meganlewis@example.com")

	resp, err := client.POST("/api/v1/auth/logout", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// The cleared cookie may linger in the jar with an empty value; either
	// way the session itself must be gone.
	resp, err = client.GET("/api/v1/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAuth_Logout_WithoutSession(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.POST("/api/v1/auth/logout", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}
