package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"tubelist/internal/shared"
)

// Flow performs the interactive authorization step: it sends the user to the
// provider's consent page and returns the exchanged token.
//
// The production implementation lives in the server package; tests stub it.
type Flow interface {
	Authorize(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error)
}

// Authenticator drives the credential state machine:
//
//	NoCredential            -> interactive flow
//	Expired without refresh -> interactive flow
//	Expired with refresh    -> silent refresh, then interactive flow once on failure
//	Valid                   -> reuse
//
// On every successful transition to Valid the record is persisted via the
// Store. The client-secret configuration is only loaded when the refresh or
// interactive paths actually need it, so a run with a valid stored token
// works without a secrets file.
type Authenticator struct {
	secretsPath string
	scopes      []string
	store       *Store
	flow        Flow
	log         shared.Reporter

	config *oauth2.Config
	now    func() time.Time
}

// NewAuthenticator wires an Authenticator from its collaborators.
func NewAuthenticator(secretsPath string, scopes []string, store *Store, flow Flow, logger shared.Reporter) *Authenticator {
	return &Authenticator{
		secretsPath: secretsPath,
		scopes:      scopes,
		store:       store,
		flow:        flow,
		log:         logger,
		now:         time.Now,
	}
}

// Token returns a valid access token, walking the state machine as needed.
func (a *Authenticator) Token(ctx context.Context) (*oauth2.Token, error) {
	rec, err := a.store.Load()
	if err != nil {
		if !errors.Is(err, shared.ErrCredentialCorrupt) {
			return nil, err
		}
		// Recoverable: discard and fall through to a fresh authorization.
		a.log.Error("discarding unreadable credential file", "path", a.store.path, "error", err)
		rec = nil
	}

	if rec != nil {
		if rec.Valid(a.now(), a.scopes) {
			return rec.Token(), nil
		}

		if rec.RefreshToken != "" {
			tok, err := a.refresh(ctx, rec)
			if err == nil {
				return tok, nil
			}
			a.log.Warn("token refresh failed, starting new authorization", "error", err)
		}
	}

	return a.Login(ctx)
}

// Login runs the interactive authorization flow unconditionally and persists
// the resulting credential.
func (a *Authenticator) Login(ctx context.Context) (*oauth2.Token, error) {
	config, err := a.oauthConfig()
	if err != nil {
		return nil, err
	}

	tok, err := a.flow.Authorize(ctx, config)
	if err != nil {
		if errors.Is(err, shared.ErrFlowAborted) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrFlowAborted, err)
	}

	a.persist(tok)
	return tok, nil
}

// Inspect loads the stored credential without triggering a refresh or flow.
// A nil record with nil error means no credential has been stored yet.
func (a *Authenticator) Inspect() (*Record, error) {
	return a.store.Load()
}

// Client returns an HTTP client whose requests carry a valid access token.
func (a *Authenticator) Client(ctx context.Context) (*http.Client, error) {
	tok, err := a.Token(ctx)
	if err != nil {
		return nil, err
	}

	if a.config != nil {
		return a.config.Client(ctx, tok), nil
	}
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(tok)), nil
}

// refresh exchanges the refresh token for a new access token and persists it.
func (a *Authenticator) refresh(ctx context.Context, rec *Record) (*oauth2.Token, error) {
	config, err := a.oauthConfig()
	if err != nil {
		return nil, err
	}

	a.log.Info("refreshing access token")

	tok, err := config.TokenSource(ctx, rec.Token()).Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	// Scopes do not change on refresh.
	a.persistRecord(RecordFromToken(tok, rec.Scopes))
	return tok, nil
}

func (a *Authenticator) persist(tok *oauth2.Token) {
	a.persistRecord(RecordFromToken(tok, a.scopes))
}

func (a *Authenticator) persistRecord(rec *Record) {
	if err := a.store.Save(rec); err != nil {
		a.log.Warn("failed to save credential", "path", a.store.path, "error", err)
		return
	}
	a.log.Info("credential saved", "path", a.store.path)
}

func (a *Authenticator) oauthConfig() (*oauth2.Config, error) {
	if a.config != nil {
		return a.config, nil
	}

	config, err := LoadClientSecrets(a.secretsPath, a.scopes)
	if err != nil {
		return nil, err
	}

	a.config = config
	return config, nil
}
