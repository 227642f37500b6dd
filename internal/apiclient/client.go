package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"maison-storefront/internal/auth"
	"maison-storefront/internal/logger"
	"maison-storefront/internal/metrics"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxResponseBytes = 4 << 20

func init() {
	// the backend exchanges money as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

type Options struct {
	BaseURL       string
	Timeout       time.Duration
	MaxRetries    int
	RetryInterval time.Duration
	HTTPClient    *http.Client
}

// Client talks JSON to the storefront backend. Each attempt carries its own
// timeout; idempotent calls are retried with capped exponential backoff.
type Client struct {
	baseURL       *url.URL
	httpClient    *http.Client
	timeout       time.Duration
	maxRetries    int
	retryInterval time.Duration
	validate      *validator.Validate
}

type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header

	// Body is JSON-encoded. Raw with ContentType takes precedence when set.
	Body        any
	Raw         []byte
	ContentType string

	// Idempotent opts a non-idempotent method into the retry policy.
	Idempotent bool
}

func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, ErrNoBaseURL
	}

	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = 200 * time.Millisecond
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}

	return &Client{
		baseURL:       base,
		httpClient:    opts.HTTPClient,
		timeout:       opts.Timeout,
		maxRetries:    opts.MaxRetries,
		retryInterval: opts.RetryInterval,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}

func (c *Client) Do(ctx context.Context, req Request, out any) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "apiclient"),
		zap.String("method", req.Method),
		zap.String("path", req.Path),
	)

	payload, contentType, err := encodeBody(req)
	if err != nil {
		log.Error("failed to encode request body", zap.Error(err))
		return err
	}

	timer := metrics.StartTimer()
	attempt := func() error {
		err := c.once(ctx, req, payload, contentType, out)
		if err != nil && !c.retryable(req, err) {
			return backoff.Permanent(err)
		}
		return err
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.retryInterval
	eb.MaxInterval = 20 * c.retryInterval
	eb.MaxElapsedTime = 0
	eb.Reset()

	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(c.maxRetries)), ctx)

	err = backoff.RetryNotify(attempt, policy, func(err error, wait time.Duration) {
		log.Warn("api call failed, retrying", zap.Error(err), zap.Duration("wait", wait))
	})
	if err != nil {
		log.Error("api call failed", zap.Error(err), zap.Duration("duration", timer.Duration()))
		return err
	}

	log.Debug("api call done", zap.Duration("duration", timer.Duration()))
	return nil
}

func (c *Client) once(ctx context.Context, req Request, payload []byte, contentType string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.endpoint(req.Path, req.Query), body)
	if err != nil {
		return err
	}

	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if token := auth.TokenFrom(ctx); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	if reqID := logger.RequestIDFrom(ctx); reqID != "" {
		httpReq.Header.Set(logger.RequestIDHeader, reqID)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read api response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(req.Method, req.Path, resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrInvalidResponse, req.Method, req.Path, err)
	}

	return c.check(req, out)
}

// check validates a decoded response against its schema tags.
func (c *Client) check(req Request, out any) error {
	v := reflect.ValueOf(out)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	if err := c.validate.Struct(out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrInvalidResponse, req.Method, req.Path, err)
	}
	return nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(c.baseURL.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) retryable(req Request, err error) bool {
	if !req.Idempotent && !isIdempotentMethod(req.Method) {
		return false
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 || apiErr.StatusCode == http.StatusTooManyRequests
	}
	if errors.Is(err, ErrInvalidResponse) || errors.Is(err, context.Canceled) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

func isIdempotentMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func encodeBody(req Request) ([]byte, string, error) {
	if req.Raw != nil {
		return req.Raw, req.ContentType, nil
	}
	if req.Body == nil {
		return nil, "", nil
	}

	payload, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", err
	}
	return payload, "application/json", nil
}
