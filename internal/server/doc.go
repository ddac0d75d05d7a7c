// Package server hosts the local HTTP surface used during the OAuth
// authorization-code flow.
//
// The flow is: start a loopback server, open the provider's consent page in
// the user's browser, receive the redirect on /callback, validate the CSRF
// state parameter, exchange the authorization code for tokens, and shut the
// server down. [BrowserFlow] owns the server lifecycle so callers only see a
// single blocking Authorize call.
package server
