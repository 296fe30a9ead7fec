// Package tcclient provides the main entry point for creating TeamCity API clients
package tcclient

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/tcapi/internal/client"
	"github.com/fivetwenty-io/tcapi/internal/constants"
	"github.com/fivetwenty-io/tcapi/pkg/tcapi"
)

// New creates a new TeamCity API client. The config is copied; the caller's
// value is never modified.
func New(config *tcapi.Config) (tcapi.Client, error) {
	if config == nil {
		return nil, tcapi.ErrConfigRequired
	}

	normalized, err := Normalize(config)
	if err != nil {
		return nil, err
	}

	c, err := client.New(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// Normalize returns a copy of config with scheme and port defaulted. A Host
// given as a URL ("https://tc.example.com:8111") supplies scheme and port
// unless they are set explicitly, and so does a bare "tc.example.com:8111".
func Normalize(config *tcapi.Config) (*tcapi.Config, error) {
	normalized := *config

	host := strings.TrimSuffix(strings.TrimSpace(normalized.Host), "/")
	if host == "" {
		return nil, tcapi.ErrHostRequired
	}

	switch {
	case strings.Contains(host, "://"):
		parsed, err := url.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("parsing host %q: %w", host, err)
		}

		if normalized.Scheme == "" {
			normalized.Scheme = parsed.Scheme
		}

		err = takePort(&normalized, parsed.Port())
		if err != nil {
			return nil, err
		}

		host = parsed.Hostname()
	case strings.Contains(host, ":"):
		hostname, port, err := net.SplitHostPort(host)
		if err != nil {
			return nil, fmt.Errorf("%w: host %q: %w", constants.ErrInvalidPort, host, err)
		}

		err = takePort(&normalized, port)
		if err != nil {
			return nil, err
		}

		host = hostname
	}

	normalized.Host = host
	normalized.Scheme = strings.ToLower(normalized.Scheme)

	switch normalized.Scheme {
	case "":
		normalized.Scheme = constants.SchemeHTTP
	case constants.SchemeHTTP, constants.SchemeHTTPS:
	default:
		return nil, fmt.Errorf("%w: %q", tcapi.ErrInvalidScheme, normalized.Scheme)
	}

	if normalized.Port == 0 {
		normalized.Port = constants.DefaultHTTPPort
		if normalized.Scheme == constants.SchemeHTTPS {
			normalized.Port = constants.DefaultHTTPSPort
		}
	}

	if normalized.Port < 1 || normalized.Port > 65535 {
		return nil, fmt.Errorf("%w: %d", constants.ErrInvalidPort, normalized.Port)
	}

	return &normalized, nil
}

// takePort fills config.Port from the port part of Host unless Port is set.
func takePort(config *tcapi.Config, port string) error {
	if config.Port != 0 || port == "" {
		return nil
	}

	value, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("%w: %s", constants.ErrInvalidPort, port)
	}

	config.Port = value

	return nil
}

// NewWithEndpoint creates an anonymous client from a server URL such as
// "http://teamcity.local:8111".
func NewWithEndpoint(endpoint string) (tcapi.Client, error) {
	return New(&tcapi.Config{
		Host: endpoint,
	})
}

// NewWithBasicAuth creates a client using HTTP basic authentication.
func NewWithBasicAuth(endpoint, username, password string) (tcapi.Client, error) {
	return New(&tcapi.Config{
		Host:     endpoint,
		Username: username,
		Password: password,
	})
}
