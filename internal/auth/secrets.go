package auth

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"

	"tubelist/internal/shared"
)

// Google OAuth endpoints, used when the secrets file omits them.
const (
	defaultAuthURI  = "https://accounts.google.com/o/oauth2/auth"
	defaultTokenURI = "https://oauth2.googleapis.com/token"
)

// clientSecrets mirrors the client_secrets.json a "Desktop app" OAuth client
// downloads from the Google Cloud Console.
type clientSecrets struct {
	Installed struct {
		ClientID     string   `json:"client_id"`
		ClientSecret string   `json:"client_secret"`
		AuthURI      string   `json:"auth_uri"`
		TokenURI     string   `json:"token_uri"`
		RedirectURIs []string `json:"redirect_uris"`
	} `json:"installed"`
}

// LoadClientSecrets reads a client-secret configuration and builds the
// [oauth2.Config] for the authorization-code flow. A missing file returns
// [shared.ErrConfigMissing] with instructions for obtaining one.
func LoadClientSecrets(path string, scopes []string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(
				"%w: %s (download the OAuth client JSON for a Desktop app from the Google Cloud Console and place it at this path)",
				shared.ErrConfigMissing, path)
		}
		return nil, fmt.Errorf("failed to read client secrets: %w", err)
	}

	var secrets clientSecrets
	if err := json.Unmarshal(data, &secrets); err != nil {
		return nil, fmt.Errorf("%w: failed to parse client secrets: %v", shared.ErrInvalidConfig, err)
	}

	installed := secrets.Installed
	if installed.ClientID == "" || installed.ClientSecret == "" {
		return nil, fmt.Errorf("%w: client secrets must contain an \"installed\" client id and secret", shared.ErrInvalidConfig)
	}

	authURI := installed.AuthURI
	if authURI == "" {
		authURI = defaultAuthURI
	}
	tokenURI := installed.TokenURI
	if tokenURI == "" {
		tokenURI = defaultTokenURI
	}

	return &oauth2.Config{
		ClientID:     installed.ClientID,
		ClientSecret: installed.ClientSecret,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURI,
			TokenURL: tokenURI,
		},
	}, nil
}
