package tcapi

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"
)

// Request is the outgoing fetch as seen by interceptors. Headers set here are
// sent to the server.
type Request struct {
	Method   string
	URL      string
	Path     string
	Headers  http.Header
	Metadata map[string]interface{}
}

// Response is the outcome of a fetch. Error is set when no response arrived.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
}

// RequestInterceptor runs before a fetch is sent. An error aborts the fetch.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor runs after a fetch completes, successful or not.
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response) error

// InterceptorChain runs interceptors in the order they were added.
type InterceptorChain struct {
	before []RequestInterceptor
	after  []ResponseInterceptor
}

// NewInterceptorChain creates an empty chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{}
}

// AddRequestInterceptor appends a request interceptor.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) *InterceptorChain {
	c.before = append(c.before, interceptor)

	return c
}

// AddResponseInterceptor appends a response interceptor.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) *InterceptorChain {
	c.after = append(c.after, interceptor)

	return c
}

// RunRequest runs the request interceptors, stopping at the first error.
// A nil chain does nothing.
func (c *InterceptorChain) RunRequest(ctx context.Context, req *Request) error {
	if c == nil {
		return nil
	}

	for i, interceptor := range c.before {
		err := interceptor(ctx, req)
		if err != nil {
			return fmt.Errorf("request interceptor %d for %s: %w", i, req.Path, err)
		}
	}

	return nil
}

// RunResponse runs the response interceptors, stopping at the first error.
// A nil chain does nothing.
func (c *InterceptorChain) RunResponse(ctx context.Context, req *Request, resp *Response) error {
	if c == nil {
		return nil
	}

	for i, interceptor := range c.after {
		err := interceptor(ctx, req, resp)
		if err != nil {
			return fmt.Errorf("response interceptor %d for %s: %w", i, req.Path, err)
		}
	}

	return nil
}

// ResourceOf names the REST resource a request path targets, so that
// "/httpAuth/app/rest/builds/id:17" and "/app/rest/builds/18" both count as
// "builds/{locator}" and "/app/rest/projects" as "projects". Paths outside the
// REST root are returned unchanged.
func ResourceOf(path string) string {
	rest := strings.TrimPrefix(path, "/httpAuth")

	rest, ok := strings.CutPrefix(rest, "/app/rest/")
	if !ok {
		return path
	}

	collection, locator, _ := strings.Cut(strings.TrimSuffix(rest, "/"), "/")
	if locator != "" {
		return collection + "/{locator}"
	}

	return collection
}

// RequestLogger logs every fetch at debug level.
func RequestLogger(logger Logger) RequestInterceptor {
	return func(_ context.Context, req *Request) error {
		logger.Debug("TeamCity fetch", map[string]interface{}{
			"resource": ResourceOf(req.Path),
			"url":      req.URL,
		})

		return nil
	}
}

// ResponseLogger logs fetch outcomes: failures and auth rejections at error
// level, everything else at debug level.
func ResponseLogger(logger Logger) ResponseInterceptor {
	return func(_ context.Context, req *Request, resp *Response) error {
		fields := map[string]interface{}{
			"resource": ResourceOf(req.Path),
			"status":   resp.StatusCode,
			"bytes":    len(resp.Body),
		}

		switch {
		case resp.Error != nil:
			fields["error"] = resp.Error.Error()
			logger.Error("TeamCity fetch failed", fields)
		case isAuthRejection(resp.StatusCode):
			logger.Error("TeamCity rejected credentials", fields)
		default:
			logger.Debug("TeamCity fetch completed", fields)
		}

		return nil
	}
}

// StaticHeaders sets the given headers on every fetch.
func StaticHeaders(headers map[string]string) RequestInterceptor {
	return func(_ context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		for key, value := range headers {
			req.Headers.Set(key, value)
		}

		return nil
	}
}

// ResourceMetrics counts fetches of one TeamCity resource.
type ResourceMetrics struct {
	Fetches        int64
	Failures       int64
	AuthRejections int64
	TotalLatency   time.Duration
	AverageLatency time.Duration
	LastFetch      time.Time
}

// MetricsCollector aggregates ResourceMetrics per resource (see ResourceOf).
// It is safe for concurrent use by a LatestBuilds fan-out.
type MetricsCollector struct {
	mutex     sync.Mutex
	resources map[string]*ResourceMetrics
	onFetch   func(resource string, metrics ResourceMetrics)
}

// NewMetricsCollector creates an empty collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		resources: make(map[string]*ResourceMetrics),
	}
}

// OnFetch registers fn to receive a snapshot after every recorded fetch.
func (m *MetricsCollector) OnFetch(fn func(resource string, metrics ResourceMetrics)) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.onFetch = fn
}

// Snapshot returns the metrics of one resource.
func (m *MetricsCollector) Snapshot(resource string) (ResourceMetrics, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	metrics, ok := m.resources[resource]
	if !ok {
		return ResourceMetrics{}, false
	}

	return *metrics, true
}

// Resources returns the resources fetched so far, sorted.
func (m *MetricsCollector) Resources() []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	resources := make([]string, 0, len(m.resources))
	for resource := range m.resources {
		resources = append(resources, resource)
	}

	slices.Sort(resources)

	return resources
}

const fetchStartedAt = "fetch_started_at"

// RequestInterceptor stamps the fetch start time.
func (m *MetricsCollector) RequestInterceptor() RequestInterceptor {
	return func(_ context.Context, req *Request) error {
		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata[fetchStartedAt] = time.Now()

		return nil
	}
}

// ResponseInterceptor records the fetch against its resource.
func (m *MetricsCollector) ResponseInterceptor() ResponseInterceptor {
	return func(_ context.Context, req *Request, resp *Response) error {
		resource := ResourceOf(req.Path)

		m.mutex.Lock()

		metrics, ok := m.resources[resource]
		if !ok {
			metrics = &ResourceMetrics{}
			m.resources[resource] = metrics
		}

		metrics.Fetches++
		metrics.LastFetch = time.Now()

		if started, ok := req.Metadata[fetchStartedAt].(time.Time); ok {
			metrics.TotalLatency += time.Since(started)
			metrics.AverageLatency = metrics.TotalLatency / time.Duration(metrics.Fetches)
		}

		if resp.Error != nil || resp.StatusCode >= http.StatusBadRequest {
			metrics.Failures++
		}

		if isAuthRejection(resp.StatusCode) {
			metrics.AuthRejections++
		}

		snapshot := *metrics
		onFetch := m.onFetch

		m.mutex.Unlock()

		if onFetch != nil {
			onFetch(resource, snapshot)
		}

		return nil
	}
}

func isAuthRejection(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}
