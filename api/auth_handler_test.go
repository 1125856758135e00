package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	rec := request(t, h, http.MethodPost, "/auth/login", LoginRequest{Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code)
	first := decode[LoginResponse](t, rec)
	assert.True(t, first.Success)
	assert.NotEmpty(t, first.Token)

	// the token is fixed for a given secret
	rec = request(t, h, http.MethodPost, "/api/auth/login", LoginRequest{Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, first.Token, decode[LoginResponse](t, rec).Token)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	for _, body := range []any{LoginRequest{Password: "nope"}, LoginRequest{}, "not json"} {
		rec := request(t, h, http.MethodPost, "/auth/login", body)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, LoginResponse{Success: false, Error: "invalid password"}, decode[LoginResponse](t, rec))
	}
}

func TestLoginWithoutConfiguredPassword(t *testing.T) {
	h, _ := newTestHandler(t, map[string]string{"ADMIN_PASSWORD": ""})

	rec := request(t, h, http.MethodPost, "/auth/login", LoginRequest{Password: ""})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRateLimit(t *testing.T) {
	h, _ := newTestHandler(t, map[string]string{"LOGIN_RATE_LIMIT": "2-M"})

	for i := 0; i < 2; i++ {
		rec := request(t, h, http.MethodPost, "/auth/login", LoginRequest{Password: "nope"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec := request(t, h, http.MethodPost, "/auth/login", LoginRequest{Password: testPassword})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRequireAdminToken(t *testing.T) {
	h, _ := newTestHandler(t, map[string]string{"REQUIRE_ADMIN_TOKEN": "true"})

	rec := request(t, h, http.MethodPost, "/projects", map[string]string{"name": "P"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = request(t, h, http.MethodPost, "/projects", map[string]string{"name": "P"}, "Authorization", "Bearer forged")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = request(t, h, http.MethodPost, "/auth/login", LoginRequest{Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code)
	token := decode[LoginResponse](t, rec).Token

	rec = request(t, h, http.MethodPost, "/projects", map[string]string{"name": "P"}, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// reads stay public
	rec = request(t, h, http.MethodGet, "/projects", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTokenIssuer(t *testing.T) {
	issuer := newTokenIssuer("secret")
	token, err := issuer.issue()
	require.NoError(t, err)

	subject, err := issuer.verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)

	_, err = newTokenIssuer("other").verify(token)
	assert.Error(t, err)

	_, err = newTokenIssuer("").issue()
	assert.Error(t, err)
}
