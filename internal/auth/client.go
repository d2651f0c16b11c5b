package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Client is the HTTP-backed auth gateway. The session token is kept in
// a file under the user config dir so the CLI stays logged in across
// invocations.
type Client struct {
	baseURL   string
	http      *http.Client
	tokenPath string
}

// NewClient creates an auth client; tokenPath is where the session
// token is persisted (0600).
func NewClient(baseURL string, httpClient *http.Client, tokenPath string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      httpClient,
		tokenPath: tokenPath,
	}
}

// SendOTP asks the backend to email a one-time code.
func (c *Client) SendOTP(ctx context.Context, email string) error {
	return c.post(ctx, "/api/auth/otp/send", map[string]string{"email": email}, nil)
}

// VerifyOTP exchanges the code for a session token and stores it.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) (*User, error) {
	var resp struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	err := c.post(ctx, "/api/auth/otp/verify", map[string]string{"email": email, "code": code}, &resp)
	if err != nil {
		return nil, err
	}
	if err := c.saveToken(resp.Token); err != nil {
		return nil, fmt.Errorf("store session token: %w", err)
	}
	return &resp.User, nil
}

// CurrentUser resolves the stored token into a user.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	token, err := c.loadToken()
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/auth/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrNotAuthenticated
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth/me returned status %d", resp.StatusCode)
	}

	var u User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Logout drops the local token. The server session expires on its own.
func (c *Client) Logout(_ context.Context) error {
	err := os.Remove(c.tokenPath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) saveToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(c.tokenPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.tokenPath, []byte(token), 0o600)
}

func (c *Client) loadToken() (string, error) {
	data, err := os.ReadFile(c.tokenPath)
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNotAuthenticated
	}
	return token, nil
}
