// Package auth manages the OAuth credential lifecycle: the on-disk token
// record, the client-secret configuration, and the authorization state
// machine that decides between reuse, silent refresh, and the interactive
// browser flow.
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"

	"tubelist/internal/shared"
)

// expiryLeeway guards against a token expiring mid-run.
const expiryLeeway = 30 * time.Second

// Record is the credential persisted between runs.
type Record struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry"`
	Scopes       []string  `json:"scopes"`
}

// RecordFromToken builds a Record from an exchanged or refreshed token.
func RecordFromToken(tok *oauth2.Token, scopes []string) *Record {
	return &Record{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
		Scopes:       scopes,
	}
}

// Token converts the record back to an [oauth2.Token].
func (r *Record) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  r.AccessToken,
		TokenType:    r.TokenType,
		RefreshToken: r.RefreshToken,
		Expiry:       r.Expiry,
	}
}

// Valid reports whether the record is unexpired at now and covers every
// required scope.
func (r *Record) Valid(now time.Time, required []string) bool {
	if r.AccessToken == "" {
		return false
	}
	if !r.Expiry.IsZero() && !now.Add(expiryLeeway).Before(r.Expiry) {
		return false
	}
	return r.HasScopes(required)
}

// HasScopes reports whether the granted scope set is a superset of required.
func (r *Record) HasScopes(required []string) bool {
	granted := make(map[string]bool, len(r.Scopes))
	for _, s := range r.Scopes {
		granted[s] = true
	}
	for _, s := range required {
		if !granted[s] {
			return false
		}
	}
	return true
}

// Store reads and writes the credential record at a fixed path.
type Store struct {
	path string
}

// NewStore creates a Store persisting to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the stored record. A missing file returns (nil, nil); a file
// that cannot be parsed returns [shared.ErrCredentialCorrupt] so the caller
// can log it, discard the record, and continue.
func (s *Store) Load() (*Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrCredentialCorrupt, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrCredentialCorrupt, err)
	}

	return &rec, nil
}

// Save serializes the record and overwrites the token file. The file handle
// is closed even when the write fails.
func (s *Store) Save(rec *Record) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create credential directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open credential file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to write credential file: %w", err)
	}

	return nil
}
