package auth

import (
	"context"

	"github.com/fivetwenty-io/tcapi/internal/http"
	"github.com/fivetwenty-io/tcapi/pkg/tcapi"
)

// Open sends anonymous requests with ordinary query parameters.
type Open struct {
	endpoint  Endpoint
	transport *http.Client
}

// NewOpen creates an anonymous authentication.
func NewOpen(endpoint Endpoint, transport *http.Client) *Open {
	return &Open{endpoint: endpoint, transport: transport}
}

// URL implements Authentication.URL.
func (o *Open) URL(path string, params *tcapi.Params) string {
	rawURL := o.endpoint.BaseURL() + path

	if params.Len() > 0 {
		rawURL += "?" + params.QueryString()
	}

	return rawURL
}

// Get implements Authentication.Get.
func (o *Open) Get(ctx context.Context, path string, params *tcapi.Params) (string, error) {
	return fetch(ctx, o.transport, o.URL(path, params), nil)
}

// String implements fmt.Stringer.
func (o *Open) String() string {
	return "no authentication"
}
