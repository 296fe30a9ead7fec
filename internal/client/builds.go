package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/tcapi/internal/constants"
	"github.com/fivetwenty-io/tcapi/internal/parser"
	"github.com/fivetwenty-io/tcapi/pkg/tcapi"
)

// BuildsClient implements tcapi.BuildsClient.
type BuildsClient struct {
	fetcher *fetcher
}

// NewBuildsClient creates a new builds client.
func NewBuildsClient(f *fetcher) *BuildsClient {
	return &BuildsClient{fetcher: f}
}

// List implements tcapi.BuildsClient.List. Params are forwarded verbatim.
func (c *BuildsClient) List(ctx context.Context, params *tcapi.Params) ([]tcapi.Build, error) {
	body, err := c.fetcher.get(ctx, constants.BuildsPath, params)
	if err != nil {
		return nil, fmt.Errorf("listing builds: %w", err)
	}

	builds, err := parser.Builds(parser.Sanitize(body))
	if err != nil {
		return nil, fmt.Errorf("parsing builds list: %w", err)
	}

	return builds, nil
}

// Get implements tcapi.BuildsClient.Get.
func (c *BuildsClient) Get(ctx context.Context, id string) (*tcapi.Build, error) {
	body, err := c.fetcher.get(ctx, constants.BuildsPath+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting build %s: %w", id, err)
	}

	build, err := parser.Build(parser.Sanitize(body))
	if err != nil {
		return nil, fmt.Errorf("parsing build %s: %w", id, err)
	}

	return build, nil
}
