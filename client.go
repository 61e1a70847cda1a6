package rossum

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	// EnvAPIKey names the environment variable holding the API key.
	EnvAPIKey = "ROSSUM_API_KEY"
	// EnvAPIURL names the environment variable overriding the base URL.
	EnvAPIURL = "ROSSUM_API_URL"

	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "https://all.rir.rossum.ai"

	// DefaultLocale is sent with submissions that carry no explicit locale.
	DefaultLocale = "en_GB"

	defaultPollInterval = 5 * time.Second
	defaultMaxAttempts  = 120
)

// Client is an explicit handle on the Elis Extraction API. Construct it once
// with NewClient and share it freely; it holds no per-call state.
type Client struct {
	apiKey       string
	baseURL      string
	transport    Transport
	httpClient   *http.Client
	log          *slog.Logger
	pollInterval time.Duration
	maxAttempts  uint
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API key explicitly, bypassing the environment.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) { c.apiKey = key }
}

// WithBaseURL sets the service base URL. A trailing slash is trimmed.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithHTTPClient supplies the *http.Client used by the default transport.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger lets the caller supply their own logger.
func WithLogger(log *slog.Logger) ClientOption {
	return func(c *Client) { c.log = log }
}

// WithPollInterval sets the sleep between status queries.
func WithPollInterval(d time.Duration) ClientOption {
	return func(c *Client) { c.pollInterval = d }
}

// WithMaxAttempts sets the number of status queries before the wait times
// out. The overall budget is roughly maxAttempts times the poll interval.
func WithMaxAttempts(n uint) ClientOption {
	return func(c *Client) { c.maxAttempts = n }
}

// WithTransport replaces the HTTP transport entirely, e.g. with a fake for
// tests. API key and base URL options are ignored by a custom transport.
func WithTransport(t Transport) ClientOption {
	return func(c *Client) { c.transport = t }
}

// NewClient builds a Client. The API key is taken from WithAPIKey or the
// ROSSUM_API_KEY environment variable; without one NewClient fails with
// ErrMissingAPIKey before any network activity. The base URL falls back to
// ROSSUM_API_URL and then to DefaultBaseURL.
func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		pollInterval: defaultPollInterval,
		maxAttempts:  defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if c.apiKey == "" {
		c.apiKey = os.Getenv(EnvAPIKey)
	}
	if c.baseURL == "" {
		if env := os.Getenv(EnvAPIURL); env != "" {
			c.baseURL = strings.TrimSuffix(env, "/")
		} else {
			c.baseURL = DefaultBaseURL
		}
	}
	if c.transport == nil {
		if c.apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		c.transport = NewHTTPTransport(c.apiKey, c.baseURL, c.httpClient, c.log)
	}
	c.log.Debug("client configured", "base_url", c.baseURL,
		"poll_interval", c.pollInterval, "max_attempts", c.maxAttempts)
	return c, nil
}

// PreviewURL returns the web preview address for a submitted document.
func (c *Client) PreviewURL(jobID string) string {
	return "https://rossum.ai/document/" + jobID + "?apikey=" + c.apiKey
}
