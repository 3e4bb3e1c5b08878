// Package api speaks the chat server's HTTP surface: the NDJSON history
// and submission endpoints, the history clear, and the context file
// listing. Bodies of streaming endpoints are returned raw; decoding
// belongs to the stream package.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// StatusError is a non-2xx response. Body carries the server's plain
// text diagnostics verbatim.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Body)
}

// File is one server-held context file.
type File struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Client talks to one chat server. The configured timeout bounds the
// non-streaming operations only; streaming bodies live as long as the
// caller's context.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return NewClientWithTimeout(baseURL, 90*time.Second)
}

func NewClientWithTimeout(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// History returns the streaming body of the full message log. The
// caller owns the body and must close it.
func (c *Client) History(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/chat/", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Send submits a prompt, with the names of any attached context files,
// and returns the streaming NDJSON body. The caller owns the body and
// must close it.
func (c *Client) Send(ctx context.Context, prompt string, files []string) (io.ReadCloser, error) {
	form := url.Values{}
	form.Set("prompt", prompt)
	for _, name := range files {
		form.Add("selected_files", name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// ClearHistory drops the server-held message log.
func (c *Client) ClearHistory(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/clear", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Files lists the names of the server's context files.
func (c *Client) Files(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/files/", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var payload struct {
		Files []string `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode file list: %w", err)
	}
	return payload.Files, nil
}

// FileContent fetches one context file by name.
func (c *Client) FileContent(ctx context.Context, name string) (File, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/files/"+url.PathEscape(name), nil)
	if err != nil {
		return File{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return File{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return File{}, err
	}

	var file File
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return File{}, fmt.Errorf("failed to decode file: %w", err)
	}
	return file, nil
}

// checkStatus reads and closes the body on a non-2xx response so its
// plain text diagnostics travel with the error.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
	if err != nil {
		return &StatusError{StatusCode: resp.StatusCode, Body: fmt.Sprintf("(unreadable error body: %v)", err)}
	}
	return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}
