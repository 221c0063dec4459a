package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Login exchanges credentials for a bearer token. The email is sent
// lower-cased.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	creds := Credentials{Email: strings.ToLower(strings.TrimSpace(email)), Password: password}
	if creds.Email == "" || password == "" {
		return "", errors.New("email and password are required")
	}
	var raw json.RawMessage
	if err := c.send(ctx, http.MethodPost, pathLogin, creds, &raw); err != nil {
		return "", err
	}
	return extractToken(raw)
}

func (c *Client) Register(ctx context.Context, r Registration) error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" || r.Password == "" {
		return errors.New("email and password are required")
	}
	return c.send(ctx, http.MethodPost, pathRegister, r, nil)
}

// extractToken accepts token, accessToken, jwt or data.token, in that order.
func extractToken(raw json.RawMessage) (string, error) {
	var body struct {
		Token       string `json:"token"`
		AccessToken string `json:"accessToken"`
		JWT         string `json:"jwt"`
		Data        *struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if len(raw) == 0 {
		return "", ErrMissingToken
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMissingToken, err)
	}
	for _, tok := range []string{body.Token, body.AccessToken, body.JWT} {
		if tok != "" {
			return tok, nil
		}
	}
	if body.Data != nil && body.Data.Token != "" {
		return body.Data.Token, nil
	}
	return "", ErrMissingToken
}
