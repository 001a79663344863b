package director

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/directorctl/internal/logger"
	dcerrors "github.com/alexisbeaulieu97/directorctl/pkg/errors"
)

// Options configures the Director HTTP client. Authentication, TLS and proxy
// handling live here so the reconciliation engine stays transport-agnostic.
type Options struct {
	BaseURL       string
	Username      string
	Password      string
	ClientCert    string
	ClientKey     string
	ValidateCerts bool
	UseProxy      bool
	Timeout       time.Duration
}

// Response is the structured result of a single API call. The body is kept
// raw; interpretation of status codes belongs to the caller.
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// Client issues JSON requests against the Director API base URL.
type Client struct {
	baseURL  *url.URL
	http     *http.Client
	username string
	password string
	log      *logger.Logger
}

// New builds a Client from Options. The TLS and proxy configuration is fixed
// at construction time; the client is safe for reuse across calls.
func New(opts Options, log *logger.Logger) (*Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, dcerrors.NewTransportError("configure", opts.BaseURL, err)
	}

	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: !opts.ValidateCerts, //nolint:gosec // operator opt-out for self-signed Directors
	}

	if opts.ClientCert != "" {
		keyPath := opts.ClientKey
		if keyPath == "" {
			// The cert file may bundle the private key.
			keyPath = opts.ClientCert
		}
		cert, err := tls.LoadX509KeyPair(opts.ClientCert, keyPath)
		if err != nil {
			return nil, dcerrors.NewTransportError("configure", opts.BaseURL, err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	transport := &http.Transport{TLSClientConfig: tlsConfig}
	if opts.UseProxy {
		transport.Proxy = http.ProxyFromEnvironment
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:  base,
		http:     &http.Client{Transport: transport, Timeout: timeout},
		username: opts.Username,
		password: opts.Password,
		log:      log,
	}, nil
}

// Get issues a GET request for the given path and query.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST request carrying body encoded as JSON.
func (c *Client) Post(ctx context.Context, path string, query url.Values, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, query, body)
}

// Delete issues a DELETE request for the given path and query.
func (c *Client) Delete(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, query, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	target := c.endpoint(path, query)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, dcerrors.NewTransportError(method, target, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, dcerrors.NewTransportError(method, target, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Credentials are sent preemptively; http.Client does not replay a
	// request after a 401 challenge.
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	c.log.WithFields(map[string]any{
		"method": method,
		"url":    target,
	}).Debug("issuing Director API request")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, dcerrors.NewTransportError(method, target, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, dcerrors.NewTransportError(method, target, err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: payload}, nil
}

// endpoint joins the base URL with a relative path and an individually
// percent-encoded query string.
func (c *Client) endpoint(path string, query url.Values) string {
	joined := *c.baseURL
	joined.Path = strings.TrimRight(joined.Path, "/") + "/" + strings.TrimLeft(path, "/")
	joined.RawQuery = query.Encode()
	return joined.String()
}
