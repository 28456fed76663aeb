// Package api is the HTTP client of the goldmanager REST endpoint. Server
// rejections come back as the sentinel errors of package common.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/goldmanager/internal/common"
)

// ErrUnavailable means the server could not be reached at all.
var ErrUnavailable = errors.New("server unavailable")

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// WithToken returns a copy of c that sends token as its bearer credential.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Identity struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type User struct {
	Username string `json:"username"`
	Active   bool   `json:"active"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) Login(ctx context.Context, userName, password string) (*Session, error) {
	var s Session
	body := map[string]string{"username": userName, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil)
}

func (c *Client) WhoAmI(ctx context.Context) (*Identity, error) {
	var id Identity
	if err := c.do(ctx, http.MethodGet, "/whoami", nil, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var resp struct {
		Users []User `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/userService", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (c *Client) CreateUser(ctx context.Context, userName, password string) (*User, error) {
	var u User
	body := map[string]string{"username": userName, "password": password}
	if err := c.do(ctx, http.MethodPost, "/userService", body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdatePassword(ctx context.Context, userName, newPassword string) error {
	path := "/userService/updatePassword/" + url.PathEscape(userName)
	return c.do(ctx, http.MethodPut, path, map[string]string{"newPassword": newPassword}, nil)
}

func (c *Client) SetActive(ctx context.Context, userName string, active bool) error {
	path := "/userService/userStatus/" + url.PathEscape(userName)
	return c.do(ctx, http.MethodPut, path, map[string]bool{"active": active}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	var eb errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&eb)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", common.ErrorValidation, eb.Error)
	case http.StatusNotFound:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("%w: status %d", common.ErrorInternal, resp.StatusCode)
	}
}
