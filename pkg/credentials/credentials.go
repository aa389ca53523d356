package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zalando/go-keyring"

	"github.com/VisheshVGR/do-i-deserve-it-website/pkg/config"
)

// TokenName is the name the web client used for its session cookie.
const TokenName = "firebaseToken"

const keyringService = "deserve"

// Credentials is the persisted session. IDToken is sent as the bearer token.
type Credentials struct {
	IDToken      string    `json:"firebaseToken"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
	UID          string    `json:"uid,omitempty"`
	Email        string    `json:"email,omitempty"`
	DisplayName  string    `json:"display_name,omitempty"`
}

// IsExpired checks if the ID token is expired. A zero ExpiresAt never expires.
func (c *Credentials) IsExpired() bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(c.ExpiresAt)
}

// IsValid checks if credentials are valid
func (c *Credentials) IsValid() bool {
	return c.IDToken != "" && !c.IsExpired()
}

// CanRefresh reports whether an expired token can be renewed.
func (c *Credentials) CanRefresh() bool {
	return c.RefreshToken != ""
}

// Store persists credentials between runs.
type Store interface {
	// Load returns nil, nil when nothing is stored.
	Load() (*Credentials, error)
	Save(creds *Credentials) error
	// Delete is a no-op when nothing is stored.
	Delete() error
}

// NewStore returns the store selected by auth.store ("file" or "keyring").
func NewStore() Store {
	if config.GetString("auth.store") == "keyring" {
		return &KeyringStore{Service: keyringService, User: TokenName}
	}
	return &FileStore{Path: config.GetCredentialsPath()}
}

// FileStore keeps credentials in a JSON file readable only by the owner.
type FileStore struct {
	Path string
}

// Load loads credentials from disk
func (s *FileStore) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}

	return &creds, nil
}

// Save saves credentials to disk
func (s *FileStore) Save(creds *Credentials) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}

	// Write with restricted permissions (owner read/write only)
	return os.WriteFile(s.Path, data, 0600)
}

// Delete deletes credentials from disk
func (s *FileStore) Delete() error {
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// KeyringStore keeps credentials in the OS keyring.
type KeyringStore struct {
	Service string
	User    string
}

// Load reads credentials from the keyring
func (s *KeyringStore) Load() (*Credentials, error) {
	raw, err := keyring.Get(s.Service, s.User)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("keyring unavailable: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Save writes credentials to the keyring
func (s *KeyringStore) Save(creds *Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	if err := keyring.Set(s.Service, s.User, string(data)); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// Delete removes credentials from the keyring
func (s *KeyringStore) Delete() error {
	err := keyring.Delete(s.Service, s.User)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// FromIDToken builds credentials from a Firebase ID token. The signature is
// not verified here; the backend does that on every request.
func FromIDToken(idToken string) (*Credentials, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return nil, fmt.Errorf("malformed id token: %w", err)
	}

	creds := &Credentials{IDToken: idToken}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		creds.ExpiresAt = exp.Time
	}
	if uid, ok := claims["user_id"].(string); ok {
		creds.UID = uid
	} else if sub, err := claims.GetSubject(); err == nil {
		creds.UID = sub
	}
	if email, ok := claims["email"].(string); ok {
		creds.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		creds.DisplayName = name
	}
	return creds, nil
}

// TokenSource reads the bearer token from a Store on every call so that a
// logout or re-login in another process is picked up immediately.
type TokenSource struct {
	Store Store
}

// Token returns the stored ID token, or "" when there is none.
func (ts TokenSource) Token() (string, error) {
	if ts.Store == nil {
		return "", nil
	}
	creds, err := ts.Store.Load()
	if err != nil || creds == nil {
		return "", err
	}
	return creds.IDToken, nil
}
