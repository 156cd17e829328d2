package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"tastehaven/internal/domain"
)

// ErrNotConfigured is returned when no provider URL was supplied. Admin
// login is simply unavailable in that case.
var ErrNotConfigured = errors.New("identity provider not configured")

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to a GoTrue-compatible identity provider (Supabase auth):
// password sign-in, signup with user metadata, sign-out and a point-in-time
// user query. It keeps the access token of the active session so follow-up
// calls can authenticate.
type Client struct {
	BaseURL string
	APIKey  string
	client  HTTPClient

	mu          sync.Mutex
	accessToken string
}

func NewClient(baseURL, apiKey string, client HTTPClient) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		client:  client,
	}
}

type userPayload struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
}

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	User        userPayload `json:"user"`
}

type errorResponse struct {
	Message          string `json:"msg"`
	ErrorDescription string `json:"error_description"`
}

func (u userPayload) toSession() *domain.Session {
	sess := &domain.Session{
		UserID: u.ID,
		Email:  u.Email,
	}
	if name, ok := u.UserMetadata["restaurant_name"].(string); ok {
		sess.RestaurantName = name
	}
	return sess
}

func (c *Client) do(ctx context.Context, method, path, token string, body interface{}) ([]byte, int, error) {
	if c.BaseURL == "" {
		return nil, 0, ErrNotConfigured
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.APIKey)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return raw, resp.StatusCode, nil
}

// providerError extracts the provider's message so the caller can show it.
func providerError(raw []byte, status int) error {
	var er errorResponse
	if err := json.Unmarshal(raw, &er); err == nil {
		if er.ErrorDescription != "" {
			return errors.New(er.ErrorDescription)
		}
		if er.Message != "" {
			return errors.New(er.Message)
		}
	}
	return fmt.Errorf("identity provider rejected the request (status %d)", status)
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	raw, status, err := c.do(ctx, http.MethodPost, "/token?grant_type=password", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, providerError(raw, status)
	}

	var tr tokenResponse
	if err := json.Unmarshal(raw, &tr); err != nil {
		return nil, fmt.Errorf("decode sign-in response: %w", err)
	}

	c.mu.Lock()
	c.accessToken = tr.AccessToken
	c.mu.Unlock()

	return tr.User.toSession(), nil
}

func (c *Client) SignUp(ctx context.Context, email, password, restaurantName string) (*domain.Session, error) {
	raw, status, err := c.do(ctx, http.MethodPost, "/signup", "", map[string]interface{}{
		"email":    email,
		"password": password,
		"data": map[string]string{
			"restaurant_name": restaurantName,
		},
	})
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, providerError(raw, status)
	}

	// With autoconfirm the provider returns a session, otherwise a bare
	// user object.
	var tr tokenResponse
	if err := json.Unmarshal(raw, &tr); err != nil {
		return nil, fmt.Errorf("decode signup response: %w", err)
	}
	if tr.User.ID == "" {
		var user userPayload
		if err := json.Unmarshal(raw, &user); err != nil {
			return nil, fmt.Errorf("decode signup response: %w", err)
		}
		return user.toSession(), nil
	}

	c.mu.Lock()
	c.accessToken = tr.AccessToken
	c.mu.Unlock()

	return tr.User.toSession(), nil
}

func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	token := c.accessToken
	c.mu.Unlock()

	if token == "" {
		return nil
	}

	raw, status, err := c.do(ctx, http.MethodPost, "/logout", token, nil)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent && status != http.StatusOK {
		return providerError(raw, status)
	}

	c.mu.Lock()
	c.accessToken = ""
	c.mu.Unlock()
	return nil
}

// CurrentUser returns the session for the held token, or (nil, nil) when
// nobody is signed in.
func (c *Client) CurrentUser(ctx context.Context) (*domain.Session, error) {
	c.mu.Lock()
	token := c.accessToken
	c.mu.Unlock()

	if token == "" || c.BaseURL == "" {
		return nil, nil
	}

	raw, status, err := c.do(ctx, http.MethodGet, "/user", token, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, providerError(raw, status)
	}

	var user userPayload
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decode user response: %w", err)
	}
	return user.toSession(), nil
}
