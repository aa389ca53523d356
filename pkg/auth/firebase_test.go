package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedIDToken(t *testing.T, uid string, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uid,
		"email":   uid + "@example.com",
		"exp":     exp.Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}

func TestSignInWithCustomToken(t *testing.T) {
	idToken := signedIDToken(t, "u1", time.Now().Add(time.Hour))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts:signInWithCustomToken", r.URL.Path)
		assert.Equal(t, "web-key", r.URL.Query().Get("key"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "custom-123", body["token"])
		assert.Equal(t, true, body["returnSecureToken"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"idToken":      idToken,
			"refreshToken": "refresh-1",
			"expiresIn":    "3600",
		})
	}))
	defer srv.Close()

	fb := NewFirebase("web-key")
	fb.IdentityToolkitURL = srv.URL + "/v1"

	creds, err := fb.SignInWithCustomToken(context.Background(), "custom-123")
	require.NoError(t, err)
	assert.Equal(t, idToken, creds.IDToken)
	assert.Equal(t, "refresh-1", creds.RefreshToken)
	assert.Equal(t, "u1", creds.UID)
	assert.True(t, creds.IsValid())
}

func TestSignInWithCustomToken_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":400,"message":"INVALID_CUSTOM_TOKEN"}}`))
	}))
	defer srv.Close()

	fb := NewFirebase("web-key")
	fb.IdentityToolkitURL = srv.URL

	_, err := fb.SignInWithCustomToken(context.Background(), "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_CUSTOM_TOKEN")
}

func TestRefresh(t *testing.T) {
	idToken := signedIDToken(t, "u1", time.Now().Add(time.Hour))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "refresh-1", r.PostForm.Get("refresh_token"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id_token":      idToken,
			"refresh_token": "refresh-2",
			"expires_in":    "3600",
			"user_id":       "u1",
		})
	}))
	defer srv.Close()

	fb := NewFirebase("web-key")
	fb.SecureTokenURL = srv.URL

	creds, err := fb.Refresh(context.Background(), "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, "refresh-2", creds.RefreshToken)
	assert.Equal(t, idToken, creds.IDToken)
}

func TestMissingAPIKey(t *testing.T) {
	fb := NewFirebase("")
	_, err := fb.SignInWithCustomToken(context.Background(), "x")
	assert.Error(t, err)
	_, err = fb.Refresh(context.Background(), "x")
	assert.Error(t, err)
}
