package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"tubelist/internal/shared"
)

// defaultFlowTimeout bounds how long we wait for the user to authorize.
const defaultFlowTimeout = 2 * time.Minute

// BrowserFlow runs the interactive authorization-code flow against a
// loopback callback server. It satisfies the auth package's Flow interface.
type BrowserFlow struct {
	Host    string
	Port    int
	Timeout time.Duration
	Log     shared.Reporter

	// OpenURL opens the consent page; defaults to [shared.OpenBrowser].
	OpenURL func(url string) error
}

// NewBrowserFlow creates a flow listening on host:port.
func NewBrowserFlow(host string, port int, logger shared.Reporter) *BrowserFlow {
	return &BrowserFlow{
		Host:    host,
		Port:    port,
		Timeout: defaultFlowTimeout,
		Log:     logger,
		OpenURL: shared.OpenBrowser,
	}
}

// Authorize opens the provider's consent page and blocks until the callback
// delivers a token, the flow times out, or ctx is cancelled. Failures are
// reported as [shared.ErrFlowAborted].
func (f *BrowserFlow) Authorize(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, err
	}

	addr := fmt.Sprintf("%s:%d", f.Host, f.Port)
	config.RedirectURL = fmt.Sprintf("http://%s/callback", addr)

	handler := NewCallbackHandler(config, state)
	router := NewRouter()
	router.Handler(handler)

	httpServer := &http.Server{Addr: addr, Handler: router}
	serverErrors := make(chan error, 1)
	go func() {
		f.Log.Info("starting OAuth callback server", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	// Give the listener a moment before sending the user to the consent page.
	time.Sleep(100 * time.Millisecond)

	authURL := config.AuthCodeURL(state, oauth2.AccessTypeOffline)
	f.Log.Info("opening browser for authorization")
	if err := f.OpenURL(authURL); err != nil {
		f.Log.Warn("could not open browser automatically", "error", err)
		f.Log.Infof("open this URL in your browser:\n%s", authURL)
	}

	timeout := f.Timeout
	if timeout <= 0 {
		timeout = defaultFlowTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var result CallbackResult
	select {
	case result = <-handler.Result():
	case err := <-serverErrors:
		return nil, fmt.Errorf("%w: callback server error: %v", shared.ErrFlowAborted, err)
	case <-timer.C:
		f.shutdown(httpServer)
		return nil, fmt.Errorf("%w: authorization timed out after %s", shared.ErrFlowAborted, timeout)
	case <-ctx.Done():
		f.shutdown(httpServer)
		return nil, fmt.Errorf("%w: %v", shared.ErrFlowAborted, ctx.Err())
	}

	f.shutdown(httpServer)

	if result.Err() != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrFlowAborted, result.Err())
	}
	if result.Token == nil {
		return nil, fmt.Errorf("%w: no token received", shared.ErrFlowAborted)
	}

	return result.Token, nil
}

func (f *BrowserFlow) shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		f.Log.Warn("error shutting down callback server", "error", err)
	}
}
