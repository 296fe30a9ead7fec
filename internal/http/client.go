// Package http is the raw transport: it performs a request against an absolute
// URL and returns the body. It knows nothing about TeamCity paths or payloads.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/tcapi/internal/constants"
	"github.com/fivetwenty-io/tcapi/pkg/tcapi"
)

// Logger receives transport log lines.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Credentials are sent as HTTP basic authentication.
type Credentials struct {
	Username string
	Password string
}

// Request describes one HTTP request.
type Request struct {
	Method    string
	URL       string
	Headers   map[string]string
	BasicAuth *Credentials
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client performs HTTP requests with optional retries.
type Client struct {
	httpClient   *retryablehttp.Client
	logger       Logger
	debug        bool
	userAgent    string
	interceptors *tcapi.InterceptorChain
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig enables retries for connection errors, 429 and 5xx responses.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithTimeout bounds a single attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithInterceptors runs the chain around every round trip.
func WithInterceptors(chain *tcapi.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a transport. Retries are disabled unless WithRetryConfig is given.
func NewClient(opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	// Hand the final response back instead of a generic "giving up" error so
	// the caller sees the real status code.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		httpClient: retryClient,
		userAgent:  constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 && client.logger != nil {
			client.logger.Warn("HTTP Retry", map[string]interface{}{
				"attempt": attempt,
				"url":     req.URL.String(),
			})
		}
	}

	return client
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, rawURL string, credentials *Credentials) (*Response, error) {
	return c.Do(ctx, &Request{
		Method:    http.MethodGet,
		URL:       rawURL,
		BasicAuth: credentials,
	})
}

// Do performs the request. Any non-2xx status is returned as a
// *tcapi.TransportError together with the response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	intercepted := &tcapi.Request{
		Method:  req.Method,
		URL:     req.URL,
		Path:    pathOf(req.URL),
		Headers: make(http.Header),
	}

	for key, value := range req.Headers {
		intercepted.Headers.Set(key, value)
	}

	err := c.interceptors.RunRequest(ctx, intercepted)
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/xml")
	httpReq.Header.Set("User-Agent", c.userAgent)

	for key, values := range intercepted.Headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	if req.BasicAuth != nil {
		httpReq.SetBasicAuth(req.BasicAuth.Username, req.BasicAuth.Password)
	}

	c.logDebug("HTTP Request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL,
	})

	start := time.Now()

	resp, doErr := c.execute(httpReq)

	interceptedResp := &tcapi.Response{Error: doErr}
	if resp != nil {
		interceptedResp.StatusCode = resp.StatusCode
		interceptedResp.Headers = resp.Headers
		interceptedResp.Body = resp.Body
	}

	err = c.interceptors.RunResponse(ctx, intercepted, interceptedResp)
	if err != nil {
		return resp, err
	}

	if doErr != nil {
		return resp, doErr
	}

	c.logDebug("HTTP Response", map[string]interface{}{
		"status":   resp.StatusCode,
		"url":      req.URL,
		"duration": time.Since(start).String(),
	})

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp, &tcapi.TransportError{
			URL:        req.URL,
			StatusCode: resp.StatusCode,
			Body:       string(resp.Body),
		}
	}

	return resp, nil
}

func (c *Client) execute(httpReq *retryablehttp.Request) (*Response, error) {
	httpResp, err := c.httpClient.Do(httpReq)
	if httpResp == nil {
		return nil, &tcapi.TransportError{URL: httpReq.URL.String(), Err: err}
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &tcapi.TransportError{URL: httpReq.URL.String(), Err: fmt.Errorf("reading response body: %w", err)}
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}, nil
}

func (c *Client) logDebug(msg string, fields map[string]interface{}) {
	if c.debug && c.logger != nil {
		c.logger.Debug(msg, fields)
	}
}

func pathOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	return parsed.Path
}
