package client

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/fivetwenty-io/tcapi/internal/auth"
	"github.com/fivetwenty-io/tcapi/internal/constants"
	"github.com/fivetwenty-io/tcapi/internal/http"
	"github.com/fivetwenty-io/tcapi/pkg/tcapi"
)

// Static errors for err113 compliance.
var (
	ErrProjectRequired = errors.New("project is required")
)

// TeamCity answers with its login page instead of XML when a resource needs
// credentials the request did not carry.
var htmlPage = regexp.MustCompile(`(?is)<html.*</html>`)

// Client implements the tcapi.Client interface.
type Client struct {
	auth     auth.Authentication
	endpoint auth.Endpoint
	logger   tcapi.Logger

	// Resource clients
	projects   *ProjectsClient
	buildTypes *BuildTypesClient
	builds     *BuildsClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *tcapi.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.ExtendedRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a TeamCity client. The config is expected to be normalized:
// Host, Port and Scheme set.
func New(config *tcapi.Config) (*Client, error) {
	if config.Host == "" {
		return nil, tcapi.ErrHostRequired
	}

	endpoint := auth.Endpoint{Scheme: config.Scheme, Host: config.Host, Port: config.Port}
	transport := http.NewClient(createHTTPClientOptions(config)...)

	return NewWithAuthentication(config, endpoint, auth.New(endpoint, config.Username, config.Password, transport)), nil
}

// NewWithAuthentication creates a client that issues every request through authentication.
func NewWithAuthentication(config *tcapi.Config, endpoint auth.Endpoint, authentication auth.Authentication) *Client {
	client := &Client{
		auth:     authentication,
		endpoint: endpoint,
		logger:   config.Logger,
	}

	client.initializeResourceClients(config.Concurrency)

	return client
}

// Projects implements tcapi.Client.Projects.
func (c *Client) Projects() tcapi.ProjectsClient {
	return c.projects
}

// BuildTypes implements tcapi.Client.BuildTypes.
func (c *Client) BuildTypes() tcapi.BuildTypesClient {
	return c.buildTypes
}

// Builds implements tcapi.Client.Builds.
func (c *Client) Builds() tcapi.BuildsClient {
	return c.builds
}

// URL implements tcapi.Client.URL.
func (c *Client) URL(path string) string {
	return c.auth.URL(path, nil)
}

// String implements fmt.Stringer.
func (c *Client) String() string {
	return "TeamCity @ " + c.URL("/")
}

// Authentication returns the authentication mode in use.
func (c *Client) Authentication() auth.Authentication {
	return c.auth
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients(concurrency int) {
	f := &fetcher{auth: c.auth, logger: c.logger}

	c.builds = NewBuildsClient(f)
	c.buildTypes = NewBuildTypesClient(f, c.builds)
	c.projects = NewProjectsClient(f, c.buildTypes, c.builds, concurrency)
}

// fetcher is shared by the resource clients. It rejects HTML bodies so the
// parsers only ever see what TeamCity meant as XML.
type fetcher struct {
	auth   auth.Authentication
	logger tcapi.Logger
}

func (f *fetcher) get(ctx context.Context, path string, params *tcapi.Params) (string, error) {
	start := time.Now()

	body, err := f.auth.Get(ctx, path, params)
	if err != nil {
		return "", err
	}

	if htmlPage.MatchString(body) {
		f.log(path, start, "html")

		return "", tcapi.ErrAuthenticationRequired
	}

	f.log(path, start, "xml")

	return body, nil
}

func (f *fetcher) log(path string, start time.Time, kind string) {
	if f.logger == nil {
		return
	}

	f.logger.Debug("TeamCity resource fetched", map[string]interface{}{
		"path":     path,
		"body":     kind,
		"duration": time.Since(start).String(),
	})
}

// loggerAdapter adapts tcapi.Logger to http.Logger.
type loggerAdapter struct {
	logger tcapi.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
