package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
)

// CallbackResult carries the outcome of an OAuth authorization flow.
type CallbackResult struct {
	Token *oauth2.Token
	err   error
}

func (c *CallbackResult) Err() error {
	return c.err
}

// CallbackHandler handles the OAuth2 redirect for the authorization-code
// flow. Implements [Handler] for registration with a [Router].
//
// The callback is processed at most once; later hits get a 400.
type CallbackHandler struct {
	config     *oauth2.Config
	state      string
	resultChan chan CallbackResult
	once       sync.Once
	hit        bool
	mu         sync.Mutex
}

// NewCallbackHandler creates a handler expecting the given CSRF state token.
func NewCallbackHandler(config *oauth2.Config, state string) *CallbackHandler {
	return &CallbackHandler{
		config:     config,
		state:      state,
		resultChan: make(chan CallbackResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{"/callback"}
}

// ServeHTTP validates the state parameter, exchanges the authorization code
// for tokens, and sends the result through the result channel.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.hit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.hit = true
	h.mu.Unlock()

	if state := r.URL.Query().Get("state"); state != h.state {
		err := fmt.Errorf("invalid state parameter")
		h.send(CallbackResult{err: err})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		errParam := r.URL.Query().Get("error")
		errDesc := r.URL.Query().Get("error_description")
		err := fmt.Errorf("authorization denied: %s - %s", errParam, errDesc)
		h.send(CallbackResult{err: err})
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	token, err := h.config.Exchange(context.Background(), code)
	if err != nil {
		h.send(CallbackResult{err: fmt.Errorf("token exchange failed: %w", err)})
		http.Error(w, "Token exchange failed", http.StatusInternalServerError)
		return
	}

	h.send(CallbackResult{Token: token})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, successPage)
}

// send delivers the result exactly once and closes the channel.
func (h *CallbackHandler) send(result CallbackResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the channel receiving the single flow outcome.
func (h *CallbackHandler) Result() <-chan CallbackResult {
	return h.resultChan
}

const successPage = `
<!DOCTYPE html>
<html>
<head>
    <title>Authorization Successful</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #FF0000; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>&#10003; Authorization Successful</h1>
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`
