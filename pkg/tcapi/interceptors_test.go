package tcapi_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fivetwenty-io/tcapi/pkg/tcapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mutex sync.Mutex
	logs  []map[string]interface{}
}

func (l *recordingLogger) record(level, msg string, fields map[string]interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg, fields) }
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  { l.record("info", msg, fields) }
func (l *recordingLogger) Warn(msg string, fields map[string]interface{})  { l.record("warn", msg, fields) }
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) { l.record("error", msg, fields) }

func TestInterceptorChain_RunsInOrder(t *testing.T) {
	t.Parallel()

	chain := tcapi.NewInterceptorChain()

	var executionOrder []string

	chain.AddRequestInterceptor(func(ctx context.Context, req *tcapi.Request) error {
		executionOrder = append(executionOrder, "first")

		return nil
	}).AddRequestInterceptor(func(ctx context.Context, req *tcapi.Request) error {
		executionOrder = append(executionOrder, "second")

		return nil
	})

	err := chain.RunRequest(context.Background(), &tcapi.Request{Method: "GET", Path: "/app/rest/projects"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, executionOrder)
}

func TestInterceptorChain_StopsOnError(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	called := false

	chain := tcapi.NewInterceptorChain().
		AddResponseInterceptor(func(ctx context.Context, req *tcapi.Request, resp *tcapi.Response) error {
			return errBoom
		}).
		AddResponseInterceptor(func(ctx context.Context, req *tcapi.Request, resp *tcapi.Response) error {
			called = true

			return nil
		})

	err := chain.RunResponse(context.Background(), &tcapi.Request{Path: "/app/rest/builds"}, &tcapi.Response{})
	require.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "/app/rest/builds")
	assert.False(t, called)
}

func TestInterceptorChain_Nil(t *testing.T) {
	t.Parallel()

	var chain *tcapi.InterceptorChain

	require.NoError(t, chain.RunRequest(context.Background(), &tcapi.Request{}))
	require.NoError(t, chain.RunResponse(context.Background(), &tcapi.Request{}, &tcapi.Response{}))
}

func TestResourceOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected string
	}{
		{"/app/rest/projects", "projects"},
		{"/httpAuth/app/rest/buildTypes", "buildTypes"},
		{"/app/rest/builds/", "builds"},
		{"/app/rest/builds/17", "builds/{locator}"},
		{"/httpAuth/app/rest/builds/id:17", "builds/{locator}"},
		{"/login.html", "/login.html"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tcapi.ResourceOf(tt.path))
		})
	}
}

func TestStaticHeaders(t *testing.T) {
	t.Parallel()

	interceptor := tcapi.StaticHeaders(map[string]string{"X-Request-ID": "123456"})
	req := &tcapi.Request{Method: "GET", Path: "/app/rest/builds"}

	require.NoError(t, interceptor(context.Background(), req))
	assert.Equal(t, "123456", req.Headers.Get("X-Request-ID"))
}

func TestFetchLoggers(t *testing.T) {
	t.Parallel()

	logger := &recordingLogger{}
	req := &tcapi.Request{Method: "GET", URL: "http://tc/httpAuth/app/rest/builds/9", Path: "/httpAuth/app/rest/builds/9"}
	ctx := context.Background()

	require.NoError(t, tcapi.RequestLogger(logger)(ctx, req))
	require.NoError(t, tcapi.ResponseLogger(logger)(ctx, req, &tcapi.Response{StatusCode: 200, Body: []byte("<build/>")}))
	require.NoError(t, tcapi.ResponseLogger(logger)(ctx, req, &tcapi.Response{StatusCode: 401}))
	require.NoError(t, tcapi.ResponseLogger(logger)(ctx, req, &tcapi.Response{Error: errors.New("refused")}))

	require.Len(t, logger.logs, 4)
	assert.Equal(t, "TeamCity fetch", logger.logs[0]["msg"])
	assert.Equal(t, "builds/{locator}", logger.logs[0]["fields"].(map[string]interface{})["resource"])
	assert.Equal(t, "TeamCity fetch completed", logger.logs[1]["msg"])
	assert.Equal(t, 8, logger.logs[1]["fields"].(map[string]interface{})["bytes"])
	assert.Equal(t, "TeamCity rejected credentials", logger.logs[2]["msg"])
	assert.Equal(t, "error", logger.logs[2]["level"])
	assert.Equal(t, "TeamCity fetch failed", logger.logs[3]["msg"])
	assert.Equal(t, "error", logger.logs[3]["level"])
}

func TestMetricsCollector(t *testing.T) {
	t.Parallel()

	collector := tcapi.NewMetricsCollector()

	var notifiedResource string

	var notified tcapi.ResourceMetrics

	collector.OnFetch(func(resource string, metrics tcapi.ResourceMetrics) {
		notifiedResource = resource
		notified = metrics
	})

	requestInterceptor := collector.RequestInterceptor()
	responseInterceptor := collector.ResponseInterceptor()
	ctx := context.Background()

	req := &tcapi.Request{Method: "GET", Path: "/app/rest/builds"}
	require.NoError(t, requestInterceptor(ctx, req))

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, responseInterceptor(ctx, req, &tcapi.Response{StatusCode: 200}))

	assert.Equal(t, "builds", notifiedResource)
	assert.Equal(t, int64(1), notified.Fetches)
	assert.Equal(t, int64(0), notified.Failures)
	assert.Positive(t, notified.AverageLatency)

	require.NoError(t, responseInterceptor(ctx, &tcapi.Request{Method: "GET", Path: "/httpAuth/app/rest/builds"}, &tcapi.Response{StatusCode: 403}))
	require.NoError(t, responseInterceptor(ctx, &tcapi.Request{Method: "GET", Path: "/app/rest/builds/5"}, &tcapi.Response{StatusCode: 500}))

	metrics, ok := collector.Snapshot("builds")
	require.True(t, ok)
	assert.Equal(t, int64(2), metrics.Fetches)
	assert.Equal(t, int64(1), metrics.Failures)
	assert.Equal(t, int64(1), metrics.AuthRejections)

	detail, ok := collector.Snapshot("builds/{locator}")
	require.True(t, ok)
	assert.Equal(t, int64(1), detail.Failures)
	assert.Zero(t, detail.AuthRejections)

	assert.Equal(t, []string{"builds", "builds/{locator}"}, collector.Resources())

	_, ok = collector.Snapshot("projects")
	assert.False(t, ok)
}

func TestMetricsCollector_Concurrent(t *testing.T) {
	t.Parallel()

	collector := tcapi.NewMetricsCollector()
	responseInterceptor := collector.ResponseInterceptor()

	var wg sync.WaitGroup

	for range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_ = responseInterceptor(context.Background(), &tcapi.Request{Method: "GET", Path: "/app/rest/buildTypes"}, &tcapi.Response{StatusCode: 200})
		}()
	}

	wg.Wait()

	metrics, ok := collector.Snapshot("buildTypes")
	require.True(t, ok)
	assert.Equal(t, int64(20), metrics.Fetches)
}
