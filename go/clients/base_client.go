package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxErrorBody bounds how much of a failed response is kept for the error message
const maxErrorBody = 512

type BaseClient struct {
	baseURL string
	client  *http.Client
	headers map[string]string
}

func NewBaseClient(baseURL string) *BaseClient {
	return &BaseClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		headers: make(map[string]string),
	}
}

func (c *BaseClient) BaseURL() string {
	return c.baseURL
}

func (c *BaseClient) SetHeader(key, value string) {
	c.headers[key] = value
}

func (c *BaseClient) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// SetHTTPClient swaps the underlying client, e.g. for an httptest server's client.
func (c *BaseClient) SetHTTPClient(client *http.Client) {
	c.client = client
}

// MakeRequest performs the request and returns the body of a 2xx response.
// Transport failures wrap ErrNetwork; any other status is a *BadResponseError.
func (c *BaseClient) MakeRequest(ctx context.Context, method, endpoint string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Method: method, Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &BadResponseError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       string(responseBody),
		}
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: method, Endpoint: endpoint, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return responseBody, nil
}

func (c *BaseClient) Get(ctx context.Context, endpoint string) ([]byte, error) {
	return c.MakeRequest(ctx, http.MethodGet, endpoint, nil)
}

// GetJSON fetches endpoint and decodes the body into out. A body that does
// not decode is reported as a bad response with the status it came with.
func (c *BaseClient) GetJSON(ctx context.Context, endpoint string, out interface{}) error {
	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &BadResponseError{
			Endpoint:   endpoint,
			StatusCode: http.StatusOK,
			Body:       truncate(string(body), maxErrorBody),
			Err:        fmt.Errorf("failed to unmarshal response: %w", err),
		}
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
