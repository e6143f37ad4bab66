package portalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client is a small HTTP client for the portal authentication endpoint. The
// console backend uses it to proxy portal actions; the service's own HTTP
// tests use it as the caller of record.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a portal API client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login exchanges a client code and password for a session token.
func (c *Client) Login(ctx context.Context, clientCode, password string) (*LoginResponse, error) {
	req := ActionRequest{Action: ActionLogin, ClientCode: clientCode, Password: password}

	var resp LoginResponse
	if err := c.do(ctx, req, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Verify checks a session token and returns the owning client's profile.
// An invalid session is not an error; it comes back as Valid=false.
func (c *Client) Verify(ctx context.Context, sessionToken string) (*VerifyResponse, error) {
	req := ActionRequest{Action: ActionVerify}
	headers := map[string]string{SessionHeader: sessionToken}

	var resp VerifyResponse
	if err := c.do(ctx, req, headers, &resp); err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return &VerifyResponse{Valid: false}, nil
		}
		return nil, err
	}
	return &resp, nil
}

// Logout revokes a session token. Always succeeds from the caller's view.
func (c *Client) Logout(ctx context.Context, sessionToken string) error {
	req := ActionRequest{Action: ActionLogout}
	headers := map[string]string{SessionHeader: sessionToken}

	var resp LogoutResponse
	return c.do(ctx, req, headers, &resp)
}

// CreateCredentials provisions or resets a client's portal credential.
// Requires a staff bearer token with the administrator role.
func (c *Client) CreateCredentials(ctx context.Context, staffToken, clientID, password string) (*CreateCredentialsResponse, error) {
	req := ActionRequest{Action: ActionCreateCredentials, ClientID: clientID, Password: password}
	headers := bearerHeader(staffToken)

	var resp CreateCredentialsResponse
	if err := c.do(ctx, req, headers, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ToggleActive enables or disables a client's portal credential. Disabling
// also revokes every live session for that client.
func (c *Client) ToggleActive(ctx context.Context, staffToken, clientID string, active bool) error {
	req := ActionRequest{Action: ActionToggleActive, ClientID: clientID, Active: &active}
	headers := bearerHeader(staffToken)

	var resp ToggleActiveResponse
	return c.do(ctx, req, headers, &resp)
}

func bearerHeader(token string) map[string]string {
	if token == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

func (c *Client) do(ctx context.Context, body ActionRequest, headers map[string]string, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("portalapi: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/portal", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("portalapi: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("portalapi: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Code == "" {
			apiErr.Code = ErrorCodeServerError
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("portalapi: failed to decode response: %w", err)
	}
	return nil
}
