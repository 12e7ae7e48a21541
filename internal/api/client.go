package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client is the shared HTTP plumbing for the backend clients: a name for
// error messages, a parsed base URL and an injected http.Client (the caller
// decides timeouts there).
type Client struct {
	Name    string
	BaseURL *url.URL
	HTTP    *http.Client
}

func NewClient(name string, baseURL string, httpClient *http.Client) *Client {
	u, err := url.Parse(baseURL)
	if err != nil {
		// Fail fast: config error
		panic(fmt.Sprintf("invalid %s base url %q: %v", name, baseURL, err))
	}
	return &Client{Name: name, BaseURL: u, HTTP: httpClient}
}

func (c *Client) Do(ctx context.Context, method, path, rawQuery string, body io.Reader) (*http.Response, error) {
	rel := &url.URL{Path: path, RawQuery: rawQuery}
	u := c.BaseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.HTTP.Do(req)
}

func (c *Client) getJSON(ctx context.Context, path, rawQuery string, out any) error {
	resp, err := c.Do(ctx, http.MethodGet, path, rawQuery, nil)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", c.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s returned %s: %s", c.Name, resp.Status, serverMessage(resp))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", c.Name, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, in any) (*http.Response, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", c.Name, err)
	}
	resp, err := c.Do(ctx, http.MethodPost, path, "", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", c.Name, err)
	}
	return resp, nil
}

func decodeBody(resp *http.Response, out any) error {
	return json.NewDecoder(resp.Body).Decode(out)
}

// serverMessage pulls the backend's {"error": "..."} text out of an error
// response; empty when the body carries none.
func serverMessage(resp *http.Response) string {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return body.Error
}
