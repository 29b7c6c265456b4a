// Package apiclient wraps calls to the HMC backend REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

const maxResponseBytes = 4 << 20

// RequestEditor mutates an outgoing request right before it is sent.
type RequestEditor func(ctx context.Context, req *http.Request) error

// Observer receives one notification per backend call.
type Observer interface {
	ObserveBackendCall(method string, outcome string, elapsed time.Duration)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default transport client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRequestEditor appends an editor applied to every request.
func WithRequestEditor(editor RequestEditor) Option {
	return func(c *Client) {
		if editor != nil {
			c.editors = append(c.editors, editor)
		}
	}
}

// WithObserver installs a call observer.
func WithObserver(observer Observer) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// Bearer returns an editor that attaches "Authorization: Bearer <token>"
// when token(ctx) is non-empty. The token is resolved at dispatch time.
func Bearer(token func(ctx context.Context) string) RequestEditor {
	return func(ctx context.Context, req *http.Request) error {
		if token == nil {
			return nil
		}
		if value := strings.TrimSpace(token(ctx)); value != "" {
			req.Header.Set("Authorization", "Bearer "+value)
		}
		return nil
	}
}

// API is the surface handlers depend on. *Client implements it.
type API interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

var _ API = (*Client)(nil)

// Client executes JSON requests against a fixed base address.
type Client struct {
	baseURL    string
	httpClient *http.Client
	editors    []RequestEditor
	observer   Observer
	inflight   singleflight.Group
	// writes bumps on every non-GET call so a read issued after a write
	// never joins a read that started before it.
	writes atomic.Uint64
}

// New constructs a Client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get fetches path and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post sends body to path and decodes the response into out when non-nil.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put sends body to path and decodes the response into out when non-nil.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete removes the resource at path.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

type rawResponse struct {
	status int
	body   []byte
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (err error) {
	start := time.Now()
	defer func() {
		if c.observer != nil {
			outcome := "ok"
			if kind := KindOf(err); kind != 0 {
				outcome = kind.String()
			} else if err != nil {
				outcome = "decode"
			}
			c.observer.ObserveBackendCall(method, outcome, time.Since(start))
		}
	}()

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return &Error{Kind: KindRequestSetup, Method: method, Path: path, Err: err}
	}

	var res rawResponse
	if method == http.MethodGet {
		res, err = c.sendShared(ctx, req)
	} else {
		c.writes.Add(1)
		res, err = c.send(req)
	}
	if err != nil {
		return &Error{Kind: KindNoResponse, Method: method, Path: path, Err: err}
	}

	if res.status < 200 || res.status > 299 {
		return newServerError(method, path, res.status, res.body)
	}
	if out == nil || len(bytes.TrimSpace(res.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.body, out); err != nil {
		return fmt.Errorf("apiclient: decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, edit := range c.editors {
		if err := edit(ctx, req); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// sendShared coalesces identical concurrent GETs issued with the same
// credentials since the last write. The shared call runs detached from any
// single caller, bounded by the client timeout. Each waiter still honours
// its own context.
func (c *Client) sendShared(ctx context.Context, req *http.Request) (rawResponse, error) {
	key := strconv.FormatUint(c.writes.Load(), 10) + "|" + req.URL.String() + "|" + req.Header.Get("Authorization")
	shared := req.WithContext(context.WithoutCancel(ctx))
	ch := c.inflight.DoChan(key, func() (any, error) {
		return c.send(shared)
	})
	select {
	case <-ctx.Done():
		return rawResponse{}, ctx.Err()
	case result := <-ch:
		if result.Err != nil {
			return rawResponse{}, result.Err
		}
		return result.Val.(rawResponse), nil
	}
}

func (c *Client) send(req *http.Request) (rawResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return rawResponse{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return rawResponse{}, err
	}
	return rawResponse{status: resp.StatusCode, body: data}, nil
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}
