// Package auth talks to Firebase Authentication's REST endpoints: it turns
// the one-time custom token handed out by the backend's OAuth flow into an
// ID token, and renews ID tokens from a refresh token.
package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	json "github.com/json-iterator/go"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/config"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/credentials"
	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/logger"
)

const (
	DefaultIdentityToolkitURL = "https://identitytoolkit.googleapis.com/v1"
	DefaultSecureTokenURL     = "https://securetoken.googleapis.com/v1"
)

// Firebase exchanges and refreshes Firebase ID tokens.
type Firebase struct {
	APIKey             string
	IdentityToolkitURL string
	SecureTokenURL     string

	http *resty.Client
}

// NewFirebase creates a client for the given web API key.
func NewFirebase(apiKey string) *Firebase {
	h := resty.New().SetTimeout(30 * time.Second)
	h.JSONMarshal = json.Marshal
	h.JSONUnmarshal = json.Unmarshal
	return &Firebase{
		APIKey:             apiKey,
		IdentityToolkitURL: DefaultIdentityToolkitURL,
		SecureTokenURL:     DefaultSecureTokenURL,
		http:               h,
	}
}

// FirebaseFromConfig reads auth.firebase_api_key.
func FirebaseFromConfig() *Firebase {
	return NewFirebase(config.GetString("auth.firebase_api_key"))
}

type customTokenResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type refreshResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
	UserID       string `json:"user_id"`
}

type firebaseError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignInWithCustomToken exchanges a custom token for credentials.
func (f *Firebase) SignInWithCustomToken(ctx context.Context, customToken string) (*credentials.Credentials, error) {
	if f.APIKey == "" {
		return nil, fmt.Errorf("auth.firebase_api_key is not configured")
	}
	logger.Debug("Exchanging custom token")

	var out customTokenResponse
	var fbErr firebaseError
	resp, err := f.http.R().
		SetContext(ctx).
		SetQueryParam("key", f.APIKey).
		SetBody(map[string]interface{}{
			"token":             customToken,
			"returnSecureToken": true,
		}).
		SetResult(&out).
		SetError(&fbErr).
		Post(f.IdentityToolkitURL + "/accounts:signInWithCustomToken")
	if err != nil {
		return nil, fmt.Errorf("custom token exchange failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("custom token exchange failed: %s", describe(resp, fbErr))
	}

	return build(out.IDToken, out.RefreshToken, out.ExpiresIn)
}

// Refresh renews an ID token.
func (f *Firebase) Refresh(ctx context.Context, refreshToken string) (*credentials.Credentials, error) {
	if f.APIKey == "" {
		return nil, fmt.Errorf("auth.firebase_api_key is not configured")
	}
	logger.Debug("Refreshing ID token")

	var out refreshResponse
	var fbErr firebaseError
	resp, err := f.http.R().
		SetContext(ctx).
		SetQueryParam("key", f.APIKey).
		SetFormData(map[string]string{
			"grant_type":    "refresh_token",
			"refresh_token": refreshToken,
		}).
		SetResult(&out).
		SetError(&fbErr).
		Post(f.SecureTokenURL + "/token")
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("token refresh failed: %s", describe(resp, fbErr))
	}

	return build(out.IDToken, out.RefreshToken, out.ExpiresIn)
}

func build(idToken, refreshToken, expiresIn string) (*credentials.Credentials, error) {
	creds, err := credentials.FromIDToken(idToken)
	if err != nil {
		return nil, err
	}
	creds.RefreshToken = refreshToken
	if creds.ExpiresAt.IsZero() {
		if secs, err := strconv.Atoi(expiresIn); err == nil {
			creds.ExpiresAt = time.Now().Add(time.Duration(secs) * time.Second)
		}
	}
	return creds, nil
}

func describe(resp *resty.Response, fbErr firebaseError) string {
	if fbErr.Error.Message != "" {
		return fbErr.Error.Message
	}
	return resp.Status()
}
