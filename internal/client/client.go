// Package client is the frontend's HTTP client for the flowchart backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ziadkadry99/flowgen/internal/flowchart"
)

// APIError is a non-200 response from the backend.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error: %d - %s", e.Status, e.Detail)
}

// Client calls the backend at BaseURL.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the backend at baseURL. A zero timeout means
// requests are bounded only by their context.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the backend address.
func (c *Client) BaseURL() string { return c.baseURL }

// Health calls GET / and returns the backend's status message.
func (c *Client) Health(ctx context.Context) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodGet, "/", nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Mermaid requests a Mermaid flowchart.
func (c *Client) Mermaid(ctx context.Context, req flowchart.Request) (string, error) {
	return c.Generate(ctx, flowchart.GrammarMermaid, req)
}

// D2 requests a D2 flowchart.
func (c *Client) D2(ctx context.Context, req flowchart.Request) (string, error) {
	return c.Generate(ctx, flowchart.GrammarD2, req)
}

// Generate requests a flowchart in grammar g and returns its code.
func (c *Client) Generate(ctx context.Context, g flowchart.Grammar, req flowchart.Request) (string, error) {
	var out map[string]string
	if err := c.do(ctx, http.MethodPost, "/flowchart/"+string(g), req, &out); err != nil {
		return "", err
	}
	code, ok := out[g.ResponseField()]
	if !ok {
		return "", fmt.Errorf("response missing %q", g.ResponseField())
	}
	return code, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Status: resp.StatusCode, Detail: strings.TrimSpace(string(respBody))}
		var e struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(respBody, &e) == nil && e.Detail != "" {
			apiErr.Detail = e.Detail
		}
		return apiErr
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
