package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// LoginRequest is the body sent to the auth endpoint
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is a successful login payload, kept verbatim
type LoginResponse struct {
	Raw json.RawMessage
}

// Login posts the credentials to the auth endpoint. Unlike the status fetch
// this never falls back: every failure is returned to the caller.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrMissingField("username")
	}
	if password == "" {
		return nil, ErrMissingField("password")
	}

	body, err := json.Marshal(LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode login request: %w", err)
	}

	c.logger.Debug("requesting login", "username", username)

	data, err := c.doRequest(ctx, http.MethodPost, c.authURL, body)
	if err != nil {
		c.logger.Error("login request failed", "username", username, "error", err)
		return nil, err
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: login response is not JSON", ErrMalformedResponse)
	}

	return &LoginResponse{Raw: json.RawMessage(data)}, nil
}
