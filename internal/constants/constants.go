package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for a single HTTP attempt.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits.
const (
	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// ExtendedRetryWaitMax is the maximum wait time between retries.
	ExtendedRetryWaitMax = 30 * time.Second
)

// Server defaults.
const (
	// SchemeHTTP is the default scheme.
	SchemeHTTP = "http"

	// SchemeHTTPS is the TLS scheme.
	SchemeHTTPS = "https"

	// DefaultHTTPPort is used when no port is configured for http.
	DefaultHTTPPort = 80

	// DefaultHTTPSPort is used when no port is configured for https.
	DefaultHTTPSPort = 443

	// DefaultUserAgent is sent unless overridden.
	DefaultUserAgent = "tcapi-go/1.0"
)

// API path constants.
const (
	// HTTPAuthPrefix is prepended to every path under basic authentication.
	HTTPAuthPrefix = "/httpAuth"

	ProjectsPath   = "/app/rest/projects"
	BuildTypesPath = "/app/rest/buildTypes"
	BuildsPath     = "/app/rest/builds"
)

// Format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for table output format.
	FormatTable = "table"
)

// Argument counts.
const (
	// MinimumArgumentCount is used by commands taking a key and a value.
	MinimumArgumentCount = 2
)
