package zesty

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// AuthClient implements ports.Authenticator.
type AuthClient struct {
	authURL string
	client  *http.Client
}

// NewAuthClient creates an AuthClient. client should not add credentials.
func NewAuthClient(authURL string, client *http.Client) *AuthClient {
	return &AuthClient{
		authURL: strings.TrimRight(authURL, "/"),
		client:  client,
	}
}

// Login exchanges an email and password for a session token.
func (a *AuthClient) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.authURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("zesty login: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("zesty login: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "login"); err != nil {
		return "", err
	}

	var result struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Meta    struct {
			Token string `json:"token"`
		} `json:"meta"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("zesty login: decode response: %w", err)
	}

	// A 202 code means a second factor is pending; no token is issued yet.
	if result.Meta.Token == "" {
		return "", fmt.Errorf("zesty login: no token in response (code %d: %s)", result.Code, result.Message)
	}
	return result.Meta.Token, nil
}
