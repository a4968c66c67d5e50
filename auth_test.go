package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginBuiltInAdmin(t *testing.T) {
	r := setupTest(t)

	w := doJSON(r, http.MethodPost, "/auth/login", map[string]string{
		"login":      "Admin",
		"motDePasse": "Admin",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID        int    `json:"id"`
			Matricule string `json:"matricule"`
			IsAdmin   bool   `json:"isAdmin"`
		} `json:"user"`
	}
	decodeBody(t, w, &body)
	assert.NotEmpty(t, body.AccessToken)
	assert.Equal(t, 0, body.User.ID)
	assert.Equal(t, "ADMIN-001", body.User.Matricule)
	assert.True(t, body.User.IsAdmin)

	// the admin token passes the middleware
	w = doJSON(r, http.MethodGet, "/auth/profile", nil, body.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	var profile struct {
		IsAdmin bool `json:"is_admin"`
	}
	decodeBody(t, w, &profile)
	assert.True(t, profile.IsAdmin)
}

func TestLoginUserBcrypt(t *testing.T) {
	r := setupTest(t)
	u := seedUser(t, "A1234", "karim", "s3cret", "karim@example.tn")

	w := doJSON(r, http.MethodPost, "/auth/login", map[string]string{
		"login":      "karim",
		"motDePasse": "s3cret",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID        uint   `json:"id"`
			Matricule string `json:"matricule"`
			IsAdmin   bool   `json:"isAdmin"`
		} `json:"user"`
	}
	decodeBody(t, w, &body)
	assert.Equal(t, u.ID, body.User.ID)
	assert.Equal(t, "A1234", body.User.Matricule)
	assert.False(t, body.User.IsAdmin)

	// wrong password
	w = doJSON(r, http.MethodPost, "/auth/login", map[string]string{
		"login":      "karim",
		"motDePasse": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// unknown login
	w = doJSON(r, http.MethodPost, "/auth/login", map[string]string{
		"login":      "nobody",
		"motDePasse": "s3cret",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	r := setupTest(t)

	w := doJSON(r, http.MethodGet, "/clubs", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := doJSON(r, http.MethodGet, "/clubs", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, req.Code)
}

func TestAdminOnlyGate(t *testing.T) {
	r := setupTest(t)
	u := seedUser(t, "B2345", "lina", "pw", "lina@example.tn")

	w := doJSON(r, http.MethodGet, "/inscription", nil, userToken(t, u.ID, u.Matricule))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodGet, "/inscription", nil, adminToken(t))
	assert.Equal(t, http.StatusOK, w.Code)
}
