package screenplay

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

	"mythus/internal/services"
)

const (
	component          = "screenplay"
	defaultHTTPTimeout = 30 * time.Second
)

// Doer describes the HTTP client used by the screenplay service.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config carries client construction parameters.
type Config struct {
	BaseURL    string
	APIToken   string
	HTTPClient Doer
	Timeout    time.Duration
}

// Client talks to the screenplay backend REST API.
type Client struct {
	baseURL  *url.URL
	apiToken string
	http     Doer
}

// New validates the configuration and constructs a client.
func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "new", "base URL is required", nil)
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "new", fmt.Sprintf("invalid base URL %q", cfg.BaseURL), err)
	}

	doer := cfg.HTTPClient
	if doer == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		doer = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:  parsed,
		apiToken: strings.TrimSpace(cfg.APIToken),
		http:     doer,
	}, nil
}

// endpoint joins path segments onto the base URL, escaping each segment.
func (c *Client) endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, segment := range segments {
		escaped[i] = url.PathEscape(segment)
	}
	joined := *c.baseURL
	joined.Path = strings.TrimRight(joined.Path, "/") + "/" + strings.Join(escaped, "/")
	return joined.String()
}

// doJSON issues a request with an optional JSON body and decodes the JSON
// response into out (when out is non-nil). Non-2xx statuses are classified
// into the sentinel error taxonomy.
func (c *Client) doJSON(ctx context.Context, method, operation, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return services.Wrap(services.ErrValidation, component, operation, "encode request", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return services.Wrap(services.ErrValidation, component, operation, "build request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return services.Wrap(services.ErrTimeout, component, operation, "request timed out", err)
		}
		return services.Wrap(services.ErrTransient, component, operation, "request failed", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return services.Wrap(services.ErrTransient, component, operation, "read response", err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return c.statusError(operation, resp.StatusCode, payload)
	}
	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return services.Wrap(services.ErrTransient, component, operation, "decode response", err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}
}

// statusError maps an HTTP status to a sentinel-tagged error, preferring the
// backend's own message when the body carries an error envelope.
func (c *Client) statusError(operation string, status int, payload []byte) error {
	message := fmt.Sprintf("http %d", status)
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(payload, &envelope); err == nil {
		for _, candidate := range []string{envelope.Message, envelope.Error, envelope.Detail} {
			if candidate = strings.TrimSpace(candidate); candidate != "" {
				message = fmt.Sprintf("http %d: %s", status, candidate)
				break
			}
		}
	}

	marker := services.ErrTransient
	switch {
	case status == http.StatusNotFound:
		marker = services.ErrNotFound
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		marker = services.ErrTimeout
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError:
		marker = services.ErrValidation
	}
	return services.Wrap(marker, component, operation, message, nil)
}
