package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dimitrije/teamsync-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2/google"
)

func TestGoogleProvider_Name(t *testing.T) {
	provider := NewGoogleProvider(config.OAuthConfig{})
	assert.Equal(t, "google", provider.Name())
}

func TestGoogleProvider_GetConsentURL(t *testing.T) {
	provider := NewGoogleProvider(config.OAuthConfig{
		ClientID:    "test-client-id",
		RedirectURL: "http://localhost/callback",
	})

	url := provider.GetConsentURL("test-state")

	assert.Contains(t, url, "accounts.google.com")
	assert.Contains(t, url, "client_id=test-client-id")
	assert.Contains(t, url, "state=test-state")
}

func TestGoogleProvider_Config(t *testing.T) {
	provider := NewGoogleProvider(config.OAuthConfig{ClientID: "id", ClientSecret: "secret"})

	assert.Contains(t, provider.config.Scopes, "https://www.googleapis.com/auth/userinfo.email")
	assert.Contains(t, provider.config.Scopes, "https://www.googleapis.com/auth/userinfo.profile")
	assert.Equal(t, google.Endpoint.AuthURL, provider.config.Endpoint.AuthURL)
	assert.Equal(t, google.Endpoint.TokenURL, provider.config.Endpoint.TokenURL)
}

func TestGoogleProvider_FetchUserInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"g-123","email":"jane@example.com","verified_email":true,"name":"Jane","picture":"https://img/jane.png"}`))
	}))
	defer server.Close()

	provider := NewGoogleProvider(config.OAuthConfig{})
	provider.userInfoURL = server.URL

	info, err := provider.fetchUserInfo(context.Background(), server.Client())

	require.NoError(t, err)
	assert.Equal(t, "g-123", info.ID)
	assert.Equal(t, "jane@example.com", info.Email)
	assert.Equal(t, "Jane", info.Name)
	assert.Equal(t, "https://img/jane.png", info.PictureURL)
	assert.Equal(t, "google", info.Provider)
}

func TestGoogleProvider_FetchUserInfo_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	provider := NewGoogleProvider(config.OAuthConfig{})
	provider.userInfoURL = server.URL

	_, err := provider.fetchUserInfo(context.Background(), server.Client())

	assert.ErrorContains(t, err, "status 401")
}

func TestGoogleProvider_FetchUserInfo_MissingEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"g-123","verified_email":true}`))
	}))
	defer server.Close()

	provider := NewGoogleProvider(config.OAuthConfig{})
	provider.userInfoURL = server.URL

	_, err := provider.fetchUserInfo(context.Background(), server.Client())

	assert.ErrorIs(t, err, ErrIncompleteProfile)
}

func TestGoogleProvider_FetchUserInfo_UnverifiedEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"g-123","email":"jane@example.com","verified_email":false}`))
	}))
	defer server.Close()

	provider := NewGoogleProvider(config.OAuthConfig{})
	provider.userInfoURL = server.URL

	_, err := provider.fetchUserInfo(context.Background(), server.Client())

	assert.ErrorContains(t, err, "not verified")
}
