package auth

import (
	"context"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/tcapi/internal/constants"
	"github.com/fivetwenty-io/tcapi/internal/http"
	"github.com/fivetwenty-io/tcapi/pkg/tcapi"
)

// Basic authenticates with HTTP basic credentials. TeamCity serves
// authenticated requests under /httpAuth and expects list parameters as a
// single locator.
type Basic struct {
	endpoint    Endpoint
	credentials http.Credentials
	transport   *http.Client
}

// NewBasic creates a basic authentication.
func NewBasic(endpoint Endpoint, username, password string, transport *http.Client) *Basic {
	return &Basic{
		endpoint:    endpoint,
		credentials: http.Credentials{Username: username, Password: password},
		transport:   transport,
	}
}

// URL implements Authentication.URL.
func (b *Basic) URL(path string, params *tcapi.Params) string {
	if !hasHTTPAuthPrefix(path) {
		path = constants.HTTPAuthPrefix + path
	}

	rawURL := b.endpoint.BaseURL() + path

	if params.Len() > 0 {
		rawURL += "?locator=" + url.QueryEscape(params.Locator())
	}

	return rawURL
}

// Get implements Authentication.Get.
func (b *Basic) Get(ctx context.Context, path string, params *tcapi.Params) (string, error) {
	credentials := b.credentials

	return fetch(ctx, b.transport, b.URL(path, params), &credentials)
}

// String never includes the password.
func (b *Basic) String() string {
	return "basic authentication as " + b.credentials.Username
}

func hasHTTPAuthPrefix(path string) bool {
	return path == constants.HTTPAuthPrefix || strings.HasPrefix(path, constants.HTTPAuthPrefix+"/")
}
