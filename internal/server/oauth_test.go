package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"tubelist/internal/shared"
)

func newTokenServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token": "exchanged", "token_type": "Bearer", "expires_in": 3600, "refresh_token": "refresh"}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testOAuthConfig(tokenURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "id",
		ClientSecret: "secret",
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://example.com/auth",
			TokenURL: tokenURL,
		},
	}
}

func TestCallbackHandler(t *testing.T) {
	t.Run("successful callback exchanges the code", func(t *testing.T) {
		tokenSrv := newTokenServer(t)
		handler := NewCallbackHandler(testOAuthConfig(tokenSrv.URL), "expected-state")

		req := httptest.NewRequest(http.MethodGet, "/callback?state=expected-state&code=authcode", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if !strings.Contains(rec.Body.String(), "Authorization Successful") {
			t.Error("expected success page in response body")
		}

		select {
		case result := <-handler.Result():
			if result.Err() != nil {
				t.Fatalf("unexpected result error: %v", result.Err())
			}
			if result.Token == nil || result.Token.AccessToken != "exchanged" {
				t.Errorf("unexpected token: %+v", result.Token)
			}
		case <-time.After(time.Second):
			t.Fatal("no result delivered")
		}
	})

	t.Run("state mismatch is rejected", func(t *testing.T) {
		handler := NewCallbackHandler(testOAuthConfig("http://unused"), "expected-state")

		req := httptest.NewRequest(http.MethodGet, "/callback?state=forged&code=authcode", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}

		result := <-handler.Result()
		if result.Err() == nil {
			t.Error("expected a state error")
		}
	})

	t.Run("denied consent reports the error params", func(t *testing.T) {
		handler := NewCallbackHandler(testOAuthConfig("http://unused"), "expected-state")

		query := url.Values{
			"state":             {"expected-state"},
			"error":             {"access_denied"},
			"error_description": {"The user denied the request"},
		}
		req := httptest.NewRequest(http.MethodGet, "/callback?"+query.Encode(), nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}

		result := <-handler.Result()
		if result.Err() == nil || !strings.Contains(result.Err().Error(), "access_denied") {
			t.Errorf("expected access_denied in error, got %v", result.Err())
		}
	})

	t.Run("second hit gets a 400", func(t *testing.T) {
		tokenSrv := newTokenServer(t)
		handler := NewCallbackHandler(testOAuthConfig(tokenSrv.URL), "expected-state")

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/callback?state=expected-state&code=authcode", nil))

		second := httptest.NewRecorder()
		handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/callback?state=expected-state&code=authcode", nil))

		if second.Code != http.StatusBadRequest {
			t.Errorf("second hit status = %d, want %d", second.Code, http.StatusBadRequest)
		}
	})

	t.Run("failed exchange returns a server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			http.Error(w, `{"error": "invalid_grant"}`, http.StatusBadRequest)
		}))
		defer srv.Close()

		handler := NewCallbackHandler(testOAuthConfig(srv.URL), "expected-state")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=expected-state&code=badcode", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
		}
		result := <-handler.Result()
		if result.Err() == nil {
			t.Error("expected an exchange error")
		}
	})
}

func TestRouter(t *testing.T) {
	t.Run("routes requests and applies middleware in order", func(t *testing.T) {
		var order []string

		router := NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, "first")
				next.ServeHTTP(w, req)
			})
		})
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, "second")
				next.ServeHTTP(w, req)
			})
		})

		tokenSrv := newTokenServer(t)
		router.Handler(NewCallbackHandler(testOAuthConfig(tokenSrv.URL), "s"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=s&code=c", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d", rec.Code)
		}
		if len(order) != 2 || order[0] != "first" || order[1] != "second" {
			t.Errorf("middleware order = %v", order)
		}
	})

	t.Run("unknown path is a 404", func(t *testing.T) {
		router := NewRouter()
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestBrowserFlow(t *testing.T) {
	t.Run("completes when the callback is hit", func(t *testing.T) {
		tokenSrv := newTokenServer(t)

		flow := NewBrowserFlow("127.0.0.1", 42873, shared.NewLogger(nil))
		flow.OpenURL = func(authURL string) error {
			// Simulate the user completing consent by hitting the callback
			// with the state the flow embedded in the auth URL.
			parsed, err := url.Parse(authURL)
			if err != nil {
				return err
			}
			state := parsed.Query().Get("state")
			go func() {
				time.Sleep(50 * time.Millisecond)
				resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:42873/callback?state=%s&code=authcode", state))
				if err == nil {
					resp.Body.Close()
				}
			}()
			return nil
		}

		tok, err := flow.Authorize(context.Background(), testOAuthConfig(tokenSrv.URL))
		if err != nil {
			t.Fatalf("Authorize failed: %v", err)
		}
		if tok.AccessToken != "exchanged" {
			t.Errorf("access token = %q", tok.AccessToken)
		}
	})

	t.Run("times out when the user never authorizes", func(t *testing.T) {
		flow := NewBrowserFlow("127.0.0.1", 42874, shared.NewLogger(nil))
		flow.Timeout = 200 * time.Millisecond
		flow.OpenURL = func(string) error { return nil }

		_, err := flow.Authorize(context.Background(), testOAuthConfig("http://unused"))
		if !errors.Is(err, shared.ErrFlowAborted) {
			t.Errorf("expected ErrFlowAborted, got %v", err)
		}
	})

	t.Run("cancelled context aborts the flow", func(t *testing.T) {
		flow := NewBrowserFlow("127.0.0.1", 42875, shared.NewLogger(nil))
		flow.OpenURL = func(string) error { return nil }

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(150 * time.Millisecond)
			cancel()
		}()

		_, err := flow.Authorize(ctx, testOAuthConfig("http://unused"))
		if !errors.Is(err, shared.ErrFlowAborted) {
			t.Errorf("expected ErrFlowAborted, got %v", err)
		}
	})
}
