package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"runtime"
	"strconv"
	"time"

	"github.com/handiism/bcdl/internal/errs"
)

// Version is reported in the User-Agent header.
const Version = "0.3.0"

// UserAgent identifies this program on every request. It is computed once
// when the package is initialized and never changes afterwards.
var UserAgent = fmt.Sprintf("bcdl/%s (%s; %s) %s", Version, runtime.GOOS, runtime.GOARCH, runtime.Version())

// StatusError is returned when a server answers with a non-2xx status.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Status)
}

// ProxyConfig selects how outgoing connections are proxied.
//
// Type is one of "none", "system" (environment variables) or "manual"
// (Address and Port).
type ProxyConfig struct {
	Type    string
	Address string
	Port    int
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds page and API requests. Audio transfers are bounded only
// by their context, since a large file can legitimately take minutes.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithProxy applies a proxy configuration to the shared transport.
func WithProxy(p ProxyConfig) Option {
	return func(c *Client) {
		c.transport.Proxy = proxyFunc(p)
	}
}

// Client wraps HTTP operations with Bandcamp-specific configuration.
//
// Client provides:
//   - The process User-Agent header on every request
//   - Timeout handling for page and API requests
//   - Streaming transfers for audio files
//
// Example usage:
//
//	client := NewClient(WithTimeout(30 * time.Second))
//
//	// Fetch HTML content
//	html, err := client.Get(ctx, "https://artist.bandcamp.com/album/name")
//
//	// Stream an audio file
//	t, err := client.Prepare(ctx, mp3URL)
//	body, total, err := client.Start(t)
type Client struct {
	transport      *http.Transport
	httpClient     *http.Client
	transferClient *http.Client
}

// NewClient creates a new HTTP client configured for Bandcamp.
//
// The client is configured with:
//   - 60 second timeout for pages
//   - proxies taken from the environment
func NewClient(opts ...Option) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = 30 * time.Second

	c := &Client{
		transport: transport,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   60 * time.Second,
		},
		transferClient: &http.Client{Transport: transport},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns an error of kind errs.KindHTTP if:
//   - The request fails
//   - The response status is not 2xx
//   - Reading the body fails
//
// Example:
//
//	data, err := client.Get(ctx, "https://example.com/image.jpg")
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.do(c.httpClient, req)
}

// GetString performs a GET request and returns the response body as a string.
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Post sends body with the given content type and returns the response body.
func (c *Client) Post(ctx context.Context, url, contentType string, body []byte) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(c.httpClient, req)
}

// Transfer is a prepared, not yet started, audio download.
type Transfer struct {
	URL string
	req *http.Request
}

// Prepare validates rawURL and builds the request for a transfer. Nothing is
// sent until Start.
func (c *Client) Prepare(ctx context.Context, rawURL string) (*Transfer, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errs.New(errs.KindHTTP, rawURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errs.Errorf(errs.KindHTTP, "%s: not an absolute http(s) url", rawURL)
	}

	req, err := c.newRequest(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	return &Transfer{URL: rawURL, req: req}, nil
}

// Start sends a prepared transfer and returns the response body together
// with the expected length (-1 when unknown). The caller must close the body.
func (c *Client) Start(t *Transfer) (io.ReadCloser, int64, error) {
	resp, err := c.transferClient.Do(t.req)
	if err != nil {
		return nil, 0, errs.New(errs.KindHTTP, t.URL, err)
	}
	if err := checkStatus(t.URL, resp); err != nil {
		resp.Body.Close()
		return nil, 0, err
	}
	return resp.Body, resp.ContentLength, nil
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errs.New(errs.KindHTTP, url, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	return req, nil
}

func (c *Client) do(hc *http.Client, req *http.Request) ([]byte, error) {
	url := req.URL.String()

	resp, err := hc.Do(req)
	if err != nil {
		return nil, errs.New(errs.KindHTTP, url, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(url, resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.New(errs.KindHTTP, url, fmt.Errorf("read body: %w", err))
	}
	return data, nil
}

func checkStatus(url string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return errs.New(errs.KindHTTP, url, &StatusError{URL: url, Code: resp.StatusCode, Status: resp.Status})
}

// IsStatus reports whether err carries a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

func proxyFunc(p ProxyConfig) func(*http.Request) (*url.URL, error) {
	switch p.Type {
	case "none":
		return nil
	case "manual":
		if p.Address == "" {
			return nil
		}
		host := p.Address
		if p.Port > 0 {
			host = net.JoinHostPort(p.Address, strconv.Itoa(p.Port))
		}
		return http.ProxyURL(&url.URL{Scheme: "http", Host: host})
	default:
		return http.ProxyFromEnvironment
	}
}
