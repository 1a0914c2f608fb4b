// Package avatar issues session tokens for the streaming-avatar
// provider. The browser drives the avatar directly; the server only
// keeps the provider API key off the client.
package avatar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrMissingAPIKey is returned when the client is built without a key.
	ErrMissingAPIKey = errors.New("avatar: api key not configured")
	// ErrEmptyToken is returned when the provider response carries no token.
	ErrEmptyToken = errors.New("avatar: empty session token in response")
)

const defaultTimeout = 10 * time.Second

// Client requests avatar session tokens.
type Client struct {
	http     *resty.Client
	apiKey   string
	avatarID string
}

// ClientParams configures the avatar Client. BaseURL and APIKey are
// required; AvatarID selects the provider-side character.
type ClientParams struct {
	BaseURL  string
	APIKey   string
	AvatarID string
	Timeout  time.Duration
}

// NewClient creates an avatar token client.
func NewClient(p ClientParams) *Client {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		http: resty.New().
			SetBaseURL(p.BaseURL).
			SetTimeout(timeout),
		apiKey:   p.APIKey,
		avatarID: p.AvatarID,
	}
}

type sessionTokenRequest struct {
	Mode          string        `json:"mode"`
	AvatarID      string        `json:"avatar_id"`
	AvatarPersona avatarPersona `json:"avatar_persona"`
}

type avatarPersona struct {
	Language string `json:"language"`
}

type sessionTokenResponse struct {
	Data struct {
		SessionToken string `json:"session_token"`
	} `json:"data"`
}

// SessionToken requests a short-lived token the browser uses to open its
// own streaming session.
func (c *Client) SessionToken(ctx context.Context) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	var out sessionTokenResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-API-KEY", c.apiKey).
		SetBody(sessionTokenRequest{
			Mode:          "FULL",
			AvatarID:      c.avatarID,
			AvatarPersona: avatarPersona{Language: "it"},
		}).
		SetResult(&out).
		Post("/v1/sessions/token")
	if err != nil {
		return "", fmt.Errorf("avatar session token: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("avatar session token: provider returned %s", resp.Status())
	}

	if out.Data.SessionToken == "" {
		return "", ErrEmptyToken
	}

	return out.Data.SessionToken, nil
}
