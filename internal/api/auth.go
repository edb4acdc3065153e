package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/altinukshini/dnafinder/internal/model"
)

var ErrNoToken = errors.New("login response carried no token")

// LoginResponse covers the token field names the backend has used.
type LoginResponse struct {
	AccessToken      string `json:"access_token"`
	AccessTokenCamel string `json:"accessToken"`
	Token            string `json:"token"`
	TokenType        string `json:"token_type,omitempty"`
}

// BearerToken returns the first non-empty of access_token, accessToken
// and token.
func (r LoginResponse) BearerToken() string {
	switch {
	case r.AccessToken != "":
		return r.AccessToken
	case r.AccessTokenCamel != "":
		return r.AccessTokenCamel
	default:
		return r.Token
	}
}

func (c *Client) Login(ctx context.Context, creds model.Credentials) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.Post(ctx, "login", creds, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.BearerToken() == "" {
		return nil, ErrNoToken
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, creds model.Credentials) error {
	if err := c.Post(ctx, "register", creds, nil); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}
