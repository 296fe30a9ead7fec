package tcapi

import (
	"context"
	"time"
)

// ProjectsClient queries projects and the build types and builds scoped to them.
type ProjectsClient interface {
	List(ctx context.Context) ([]Project, error)
	Get(ctx context.Context, spec string) (*Project, error)
	BuildTypes(ctx context.Context, project *Project, filter Filter) ([]BuildType, error)
	LatestBuilds(ctx context.Context, project *Project, filter Filter) ([]Build, error)
	Builds(ctx context.Context, project *Project, params *Params) ([]Build, error)
}

// BuildTypesClient queries build configurations.
type BuildTypesClient interface {
	List(ctx context.Context) ([]BuildType, error)
	LatestBuild(ctx context.Context, buildTypeID string) (*Build, error)
}

// BuildsClient queries builds.
type BuildsClient interface {
	List(ctx context.Context, params *Params) ([]Build, error)
	Get(ctx context.Context, id string) (*Build, error)
}

// Client is the TeamCity REST client.
type Client interface {
	Projects() ProjectsClient
	BuildTypes() BuildTypesClient
	Builds() BuildsClient

	// URL resolves a server-relative path, such as a record's Href, into an
	// absolute URL for the configured authentication mode.
	URL(path string) string
	String() string
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Client.
//
// # Authentication
//
// When both Username and Password are set the client uses HTTP basic
// authentication: every path is prefixed with /httpAuth and list parameters
// are sent as a single TeamCity locator. Otherwise requests are anonymous and
// parameters are sent as ordinary query pairs.
//
// # Timeouts and retries
//
// Per-request deadlines should be set through the context passed to client
// methods. Retries are off unless RetryMax is positive; they then apply to
// connection errors, 429 and 5xx responses.
type Config struct {
	// Host of the TeamCity server, without scheme or port. Required.
	Host string
	// Port of the TeamCity server. Defaults to 80 for http and 443 for https.
	Port int
	// Scheme is "http" (default) or "https".
	Scheme string

	// Username and Password enable basic authentication when both are set.
	Username string
	Password string

	// HTTPTimeout bounds a single HTTP attempt. Zero uses the default.
	HTTPTimeout time.Duration
	// RetryMax is the maximum number of retries for transient failures.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration
	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger receives transport and client log lines. Nil disables logging.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Concurrency bounds the per-build-type fan-out of LatestBuilds.
	// Zero or one fetches sequentially.
	Concurrency int
	// Interceptors run around every HTTP round trip.
	Interceptors *InterceptorChain
}
