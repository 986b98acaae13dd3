package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// maxBodyBytes caps how much of an upstream body is buffered.
const maxBodyBytes = 10 << 20

// Reply is a complete upstream response.
type Reply struct {
	StatusCode int
	Body       []byte
}

// Client talks to the single configured upstream webhook.
type Client struct {
	httpClient *http.Client
	baseURL    string
	textParam  string
}

type ClientOptions struct {
	URL       string
	TextParam string
	Timeout   time.Duration
	// BearerToken, when set, is attached to every upstream request.
	BearerToken string
}

func NewClient(opts ClientOptions) *Client {
	if opts.TextParam == "" {
		opts.TextParam = "text"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	hc := &http.Client{Timeout: opts.Timeout}
	if strings.TrimSpace(opts.BearerToken) != "" {
		hc.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.BearerToken}),
			Base:   http.DefaultTransport,
		}
	}
	return &Client{
		httpClient: hc,
		baseURL:    opts.URL,
		textParam:  opts.TextParam,
	}
}

// requestURL appends the text as a query parameter, keeping any query already on the base URL.
func (c *Client) requestURL(text string) (string, error) {
	if strings.TrimSpace(c.baseURL) == "" {
		return "", errors.New("webhook url is not configured")
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse webhook url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported webhook url scheme %q", u.Scheme)
	}
	q := u.Query()
	q.Set(c.textParam, text)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Send issues exactly one GET to the upstream. Any failure to obtain a full
// response comes back as a *TransportError; HTTP status is not interpreted here.
func (c *Client) Send(ctx context.Context, text string) (*Reply, error) {
	target, err := c.requestURL(text)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read body: %w", err)}
	}
	if len(b) > maxBodyBytes {
		return nil, &TransportError{Err: fmt.Errorf("body exceeds %d bytes", maxBodyBytes)}
	}
	return &Reply{StatusCode: resp.StatusCode, Body: b}, nil
}
