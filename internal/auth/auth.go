// Package auth builds TeamCity request URLs and performs GETs for the two
// supported authentication modes.
package auth

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/tcapi/internal/http"
	"github.com/fivetwenty-io/tcapi/pkg/tcapi"
)

// Authentication builds request URLs and fetches response bodies.
type Authentication interface {
	// URL returns the absolute URL for path with params serialized the way
	// this mode expects.
	URL(path string, params *tcapi.Params) string
	// Get fetches the body at path. Transport errors are returned unchanged.
	Get(ctx context.Context, path string, params *tcapi.Params) (string, error)
	String() string
}

// Endpoint locates a TeamCity server.
type Endpoint struct {
	Scheme string
	Host   string
	Port   int
}

// BaseURL returns scheme://host:port.
func (e Endpoint) BaseURL() string {
	return fmt.Sprintf("%s://%s:%s", e.Scheme, e.Host, strconv.Itoa(e.Port))
}

// New returns Basic when both username and password are set and Open otherwise.
// An empty password counts as unset: a username alone selects Open, so guest
// access works with only TEAMCITY_USERNAME exported.
func New(endpoint Endpoint, username, password string, transport *http.Client) Authentication {
	if username != "" && password != "" {
		return NewBasic(endpoint, username, password, transport)
	}

	return NewOpen(endpoint, transport)
}

func fetch(ctx context.Context, transport *http.Client, rawURL string, credentials *http.Credentials) (string, error) {
	resp, err := transport.Get(ctx, rawURL, credentials)
	if err != nil {
		return "", err
	}

	return string(resp.Body), nil
}
