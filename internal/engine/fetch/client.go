package fetch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	utls "github.com/refraction-networking/utls"
)

const (
	defaultRetries = 3
	baseBackoff    = 500 * time.Millisecond
	maxBackoff     = 10 * time.Second
	jitterFactor   = 0.5

	// maxBodyBytes bounds a dataset download.
	maxBodyBytes = 64 << 20
)

const userAgent = "geopaint/0.1 (country map renderer)"

// StatusError is a non-200 response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// Retryable reports whether the request may succeed if repeated.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Options tune a Client. Zero values pick defaults.
type Options struct {
	ProxyURL   string
	Timeout    time.Duration
	MaxRetries int
	// Backoff overrides the delay before retry attempt n (0-based).
	Backoff func(attempt int) time.Duration
}

// Client downloads static assets over HTTPS with a Chrome TLS fingerprint,
// retrying transient failures with exponential backoff.
type Client struct {
	http     *http.Client
	retries  int
	backoff  func(int) time.Duration
	failures atomic.Int64
}

func NewClient(opts Options) *Client {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}

			host, _, err := net.SplitHostPort(addr)
			if err != nil {
				host = addr
			}

			// Chrome hello, HTTP/1.1 only: the transport does not speak h2 on a custom conn.
			spec, err := utls.UTLSIdToSpec(utls.HelloChrome_Auto)
			if err != nil {
				conn.Close()
				return nil, err
			}
			for i, ext := range spec.Extensions {
				if alpn, ok := ext.(*utls.ALPNExtension); ok {
					alpn.AlpnProtocols = []string{"http/1.1"}
					spec.Extensions[i] = alpn
					break
				}
			}

			tlsConn := utls.UClient(conn, &utls.Config{ServerName: host}, utls.HelloCustom)
			if err := tlsConn.ApplyPreset(&spec); err != nil {
				conn.Close()
				return nil, err
			}
			if err := tlsConn.HandshakeContext(ctx); err != nil {
				conn.Close()
				return nil, err
			}
			return tlsConn, nil
		},
		MaxIdleConns:    10,
		IdleConnTimeout: 90 * time.Second,
	}

	if opts.ProxyURL != "" {
		if proxyParsed, err := url.Parse(opts.ProxyURL); err == nil {
			transport.Proxy = http.ProxyURL(proxyParsed)
			transport.DialTLSContext = nil
			transport.TLSClientConfig = &tls.Config{}
		}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	retries := opts.MaxRetries
	if retries <= 0 {
		retries = defaultRetries
	}
	backoff := opts.Backoff
	if backoff == nil {
		backoff = defaultBackoff
	}

	return &Client{
		http:    &http.Client{Transport: transport, Timeout: timeout},
		retries: retries,
		backoff: backoff,
	}
}

func defaultBackoff(attempt int) time.Duration {
	d := baseBackoff * time.Duration(1<<uint(attempt))
	if d > maxBackoff {
		d = maxBackoff
	}
	return d + time.Duration(float64(d)*jitterFactor*rand.Float64())
}

// Get downloads rawURL. Network errors and retryable statuses are retried;
// other statuses fail at once with a *StatusError.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	var lastErr error
	for attempt := range c.retries {
		body, err := c.doRequest(ctx, rawURL)
		if err == nil {
			c.failures.Store(0)
			return body, nil
		}
		lastErr = err
		c.failures.Add(1)

		var se *StatusError
		if errors.As(err, &se) && !se.Retryable() {
			return nil, err
		}
		if ctx.Err() != nil || attempt == c.retries-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.backoff(attempt)):
		}
	}
	return nil, lastErr
}

// ConsecutiveFailures counts failed attempts since the last success.
func (c *Client) ConsecutiveFailures() int64 {
	return c.failures.Load()
}

func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json,*/*;q=0.8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: reqURL}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	return body, nil
}
