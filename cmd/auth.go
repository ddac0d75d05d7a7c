package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"
)

// AuthLogin runs the browser authorization flow and stores the resulting token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	r.writePlain("Opening browser for YouTube authorization...\n")

	token, err := r.authenticator().Login(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("authorization complete", "expires", token.Expiry.Format(time.RFC3339))
	r.writePlainln("Authorization complete. Token stored at %s.", r.config.Credentials.YouTube.TokenPath)
	return nil
}

// AuthStatus reports the state of the stored credential without touching the network.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	creds := r.config.Credentials.YouTube
	rec, err := r.authenticator().Inspect()
	if err != nil {
		r.writePlain("Credential file %s is unreadable: %v\n", creds.TokenPath, err)
		r.writePlain("Run 'tubelist auth login' to re-authorize.\n")
		return nil
	}
	if rec == nil {
		r.writePlain("No stored credential at %s.\n", creds.TokenPath)
		r.writePlain("Run 'tubelist auth login' to authorize.\n")
		return nil
	}

	switch {
	case rec.Valid(time.Now(), creds.Scopes):
		r.writePlain("Credential valid until %s.\n", rec.Expiry.Format(time.RFC3339))
	case rec.RefreshToken != "":
		r.writePlain("Access token expired; a refresh token is available and will be used on the next run.\n")
	default:
		r.writePlain("Credential expired with no refresh token. Run 'tubelist auth login' to re-authorize.\n")
	}
	return nil
}
