package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneybook/internal/api"
	"moneybook/internal/config"
)

func testConfig(apiURL string) *config.Config {
	return &config.Config{
		APIURL:           apiURL,
		APITimeout:       5 * time.Second,
		CacheTTL:         time.Minute,
		CacheSize:        16,
		StoreBackend:     "memory",
		SettlementPolicy: "ignore",
		SortTieBreak:     "stable",
		LogLevel:         "error",
		LogFormat:        "text",
	}
}

func signedToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":       "user-1",
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
	s, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestAppDropsSessionOnUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token revoked"}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	a, err := newApp(ctx, testConfig(srv.URL), &bytes.Buffer{})
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	_, err = a.session.Login(ctx, signedToken(t))
	require.NoError(t, err)
	require.NoError(t, a.requireSession())

	_, err = a.dashboard.Load(ctx)
	require.Error(t, err)

	err = a.apiError(ctx, err)
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.False(t, a.session.IsAuthenticated())
	assert.ErrorIs(t, a.requireSession(), errNotLoggedIn)
}

func TestAppSendsSessionToken(t *testing.T) {
	token := signedToken(t)
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["INCOME","EXPENSE"]`))
	}))
	defer srv.Close()

	ctx := context.Background()
	a, err := newApp(ctx, testConfig(srv.URL), &bytes.Buffer{})
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	_, err = a.session.Login(ctx, token)
	require.NoError(t, err)

	types, err := a.client.ListTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 2)
	assert.Equal(t, "Bearer "+token, gotAuth)
}

func TestAppKeepsOtherErrors(t *testing.T) {
	a := &app{}
	err := assert.AnError
	assert.Same(t, err, a.apiError(context.Background(), err))
}
