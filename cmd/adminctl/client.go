// AngelaMos | 2026
// client.go

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwt"
)

// Client talks to the API the way the web client does: it keeps the
// issued token locally and attaches it as a bearer header on every call.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string) (*Client, error) {
	token, err := loadToken()
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load token: %w", err)
	}

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		token:   token,
	}, nil
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Do sends a request and unmarshals the envelope's data into out. API
// errors come back as a single human-readable message, which the CLI
// prints as-is (the web client's transient notification equivalent).
func (c *Client) Do(method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("server returned %s", resp.Status)
	}

	if !envelope.Success {
		if envelope.Error != nil {
			return fmt.Errorf("%s", envelope.Error.Message)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) SetToken(token string) error {
	c.token = token
	return saveToken(token)
}

func (c *Client) ClearToken() error {
	c.token = ""
	return removeToken()
}

func (c *Client) HasToken() bool {
	return c.token != ""
}

// Claims holds the locally decoded identity from the stored token. The
// decode skips signature verification on purpose: the CLI only uses it
// to decide which commands to offer, the server re-verifies everything.
type Claims struct {
	UserID    string
	Email     string
	Role      string
	ExpiresAt time.Time
}

func (c *Client) DecodeClaims() (*Claims, error) {
	if c.token == "" {
		return nil, fmt.Errorf("not logged in")
	}

	token, err := jwt.Parse(
		[]byte(c.token),
		jwt.WithVerify(false),
		jwt.WithValidate(false),
	)
	if err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	claims := &Claims{}
	if sub, ok := token.Subject(); ok {
		claims.UserID = sub
	}
	if exp, ok := token.Expiration(); ok {
		claims.ExpiresAt = exp
	}
	//nolint:errcheck // claims may be absent on foreign tokens
	_ = token.Get("email", &claims.Email)
	//nolint:errcheck // claims may be absent on foreign tokens
	_ = token.Get("role", &claims.Role)

	return claims, nil
}

func (c *Claims) IsExpired() bool {
	return !c.ExpiresAt.IsZero() && time.Now().After(c.ExpiresAt)
}

func (c *Claims) IsAdmin() bool {
	return c.Role == "admin"
}

func tokenPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(configDir, "adminctl", "token"), nil
}

func loadToken() (string, error) {
	path, err := tokenPath()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return string(bytes.TrimSpace(data)), nil
}

func saveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if err := os.WriteFile(path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}

	return nil
}

func removeToken() error {
	path, err := tokenPath()
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}

	return nil
}
