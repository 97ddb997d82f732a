// Package httpclient es el cliente JSON que usan los adapters salientes.
package httpclient

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
)

const (
	DefaultTimeout = 10 * time.Second

	maxBody = 1 << 20
)

var ErrNilClient = errors.New("httpclient: nil client")

// Client envuelve *http.Client. Header se manda en todos los requests
// (p.ej. la API key del proveedor).
type Client struct {
	HTTP    *http.Client
	BaseURL string
	Header  http.Header
}

type Option func(*Client)

func WithTransport(tr http.RoundTripper) Option {
	return func(c *Client) { c.HTTP.Transport = tr }
}

func WithHeader(key, value string) Option {
	return func(c *Client) {
		if strings.TrimSpace(key) != "" && value != "" {
			c.Header.Set(key, value)
		}
	}
}

// New valida baseURL (puede ser vacío: entonces solo se aceptan URLs absolutas).
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		HTTP:   &http.Client{Timeout: timeout},
		Header: make(http.Header),
	}
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		if _, err := url.ParseRequestURI(baseURL); err != nil {
			return nil, fmt.Errorf("httpclient: invalid base url: %w", err)
		}
		c.BaseURL = strings.TrimRight(baseURL, "/")
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// StatusError es una respuesta no-2xx.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http status %d", e.StatusCode)
	}
	return fmt.Sprintf("http status %d: %s", e.StatusCode, e.Body)
}

// Rejected: 401/403 del upstream.
func (e *StatusError) Rejected() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// DoJSON serializa in (si no es nil), agrega headers y decodifica la respuesta
// 2xx en out (si no es nil). Un status fuera de 2xx devuelve *StatusError.
func (c *Client) DoJSON(ctx context.Context, method, pathOrURL string, headers map[string]string, in, out any) error {
	if c == nil || c.HTTP == nil {
		return ErrNilClient
	}
	target, err := c.resolve(pathOrURL)
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("httpclient: marshal: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("httpclient: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range c.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	for k, v := range headers {
		if strings.TrimSpace(k) != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: decode: %w", err)
	}
	return nil
}

func (c *Client) resolve(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	switch {
	case pathOrURL == "":
		return "", errors.New("httpclient: empty url")
	case strings.HasPrefix(pathOrURL, "http://"), strings.HasPrefix(pathOrURL, "https://"):
		return pathOrURL, nil
	case c.BaseURL == "":
		return "", errors.New("httpclient: relative path requires BaseURL")
	}
	if !strings.HasPrefix(pathOrURL, "/") {
		pathOrURL = "/" + pathOrURL
	}
	return c.BaseURL + pathOrURL, nil
}
