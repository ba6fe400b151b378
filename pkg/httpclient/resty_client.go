package httpclient

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client       *resty.Client
	maxBodyBytes int64
}

// Option configures a RestyClient.
type Option func(*RestyClient)

// WithMaxBodyBytes stops reading GET response bodies after n bytes. The body
// handed back holds at most n+1 bytes, so callers can still tell that the
// page was larger than n.
func WithMaxBodyBytes(n int64) Option {
	return func(r *RestyClient) {
		if n > 0 {
			r.maxBodyBytes = n
		}
	}
}

// NewRestyClient creates a new RestyClient with the specified timeout.
// A zero timeout leaves requests unbounded.
func NewRestyClient(timeout time.Duration, opts ...Option) *RestyClient {
	r := &RestyClient{client: newRestyBaseClient(timeout)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newRestyBaseClient(timeout)
}

// newRestyBaseClient creates a new resty.Client with the specified timeout.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return c
}

// Get performs an HTTP GET request with the specified context, URL, and headers.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if r.maxBodyBytes > 0 {
		req.SetDoNotParseResponse(true)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	if r.maxBodyBytes <= 0 {
		return &restyResponseAdapter{resp: resp}, nil
	}
	return readLimited(resp, r.maxBodyBytes)
}

func readLimited(resp *resty.Response, limit int64) (Response, error) {
	raw := resp.RawBody()
	if raw == nil {
		return &bufferedResponse{status: resp.StatusCode()}, nil
	}
	defer raw.Close()

	body, err := io.ReadAll(io.LimitReader(raw, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return &bufferedResponse{status: resp.StatusCode(), body: body}, nil
}

// Post performs an HTTP POST with a JSON body.
func (r *RestyClient) Post(ctx context.Context, url string, headers map[string]string, body any) (Response, error) {
	req := r.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Post(url)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }

// bufferedResponse holds a body read under a size limit.
type bufferedResponse struct {
	status int
	body   []byte
}

func (b *bufferedResponse) Body() []byte    { return b.body }
func (b *bufferedResponse) StatusCode() int { return b.status }
