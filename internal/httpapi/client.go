package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/storefront-go/internal/domain"
	"github.com/nikolayk812/storefront-go/internal/port"
)

// ErrSessionExpired is returned when a 401 response could not be recovered
// by a token refresh. Callers are expected to send the user back to login.
var ErrSessionExpired = errors.New("session expired")

// Client talks to the storefront backend over REST with JSON bodies.
// It attaches a bearer token when a session exists and transparently
// retries a request exactly once after refreshing the token on a 401.
type Client struct {
	baseURL  string
	hc       *http.Client
	session  port.SessionProvider
	breaker  *gobreaker.CircuitBreaker[*http.Response]
	currency currency.Unit
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. Timeouts belong here,
// not to the stores.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithBreaker wraps outgoing requests in a circuit breaker.
func WithBreaker(settings gobreaker.Settings) Option {
	return func(c *Client) {
		if settings.Name == "" {
			settings.Name = "storefront-api"
		}
		c.breaker = gobreaker.NewCircuitBreaker[*http.Response](settings)
	}
}

// WithCurrency sets the currency bare wire prices decode into.
func WithCurrency(unit currency.Unit) Option {
	return func(c *Client) { c.currency = unit }
}

func New(baseURL string, session port.SessionProvider, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is empty")
	}
	if session == nil {
		return nil, fmt.Errorf("session is nil")
	}

	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		session:  session,
		currency: domain.DefaultCurrency,
		hc: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// do issues one request and decodes a 2xx response body into out when out is
// non-nil. The request body is buffered so it can be replayed after a token
// refresh.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}
	}

	resp, err := c.send(ctx, method, path, payload, false)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && c.session.Authenticated() {
		_ = resp.Body.Close()

		resp, err = c.send(ctx, method, path, payload, true)
		if err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return responseError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, forceRefresh bool) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if !publicEndpoint(method, path) && c.session.Authenticated() {
		token, err := c.session.Token(ctx, forceRefresh)
		if err != nil {
			if forceRefresh {
				return nil, fmt.Errorf("%w: %v", ErrSessionExpired, err)
			}
			return nil, fmt.Errorf("session.Token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.roundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	return resp, nil
}

func (c *Client) roundTrip(req *http.Request) (*http.Response, error) {
	if c.breaker == nil {
		return c.hc.Do(req)
	}
	return c.breaker.Execute(func() (*http.Response, error) {
		return c.hc.Do(req)
	})
}

// publicEndpoint reports whether the request needs no bearer token.
// Catalog reads are public, everything under the admin surface is not.
func publicEndpoint(method, path string) bool {
	if method != http.MethodGet {
		return false
	}
	return strings.HasPrefix(path, "/api/products") && !strings.Contains(path, "/admin")
}

// responseError surfaces the server's error message verbatim when present.
func responseError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b, &body); err == nil {
		if body.Error != "" {
			return errors.New(body.Error)
		}
		if body.Message != "" {
			return errors.New(body.Message)
		}
	}

	return fmt.Errorf("unexpected status %s", resp.Status)
}
