package service

import (
	"context"
	"errors"
	"fmt"

	"gardencam/internal/config"
	"gardencam/internal/core/ports"
)

// ErrNoSession is returned when startup authentication yields no token.
var ErrNoSession = errors.New("no session token")

// Authenticate resolves the session token used for every cycle.
// It is called once at startup; the token is never refreshed.
func Authenticate(ctx context.Context, auth ports.Authenticator, creds config.AuthConfig) (string, error) {
	switch creds.Mode {
	case config.AuthToken:
		if creds.AccessToken == "" {
			return "", ErrNoSession
		}
		return creds.AccessToken, nil
	case config.AuthLogin:
		token, err := auth.Login(ctx, creds.Email, creds.Password)
		if err != nil {
			return "", fmt.Errorf("login as %s: %w", creds.Email, err)
		}
		if token == "" {
			return "", ErrNoSession
		}
		return token, nil
	default:
		return "", fmt.Errorf("unknown auth mode %q", creds.Mode)
	}
}
