package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/tcapi/internal/constants"
	"github.com/fivetwenty-io/tcapi/internal/parser"
	"github.com/fivetwenty-io/tcapi/pkg/tcapi"
)

// BuildTypesClient implements tcapi.BuildTypesClient.
type BuildTypesClient struct {
	fetcher *fetcher
	builds  *BuildsClient
}

// NewBuildTypesClient creates a new build types client.
func NewBuildTypesClient(f *fetcher, builds *BuildsClient) *BuildTypesClient {
	return &BuildTypesClient{fetcher: f, builds: builds}
}

// List implements tcapi.BuildTypesClient.List.
func (c *BuildTypesClient) List(ctx context.Context) ([]tcapi.BuildType, error) {
	body, err := c.fetcher.get(ctx, constants.BuildTypesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("listing build types: %w", err)
	}

	buildTypes, err := parser.BuildTypes(body)
	if err != nil {
		return nil, fmt.Errorf("parsing build types list: %w", err)
	}

	return buildTypes, nil
}

// LatestBuild implements tcapi.BuildTypesClient.LatestBuild. It returns a
// nil build and a nil error when the build type has never run.
func (c *BuildTypesClient) LatestBuild(ctx context.Context, buildTypeID string) (*tcapi.Build, error) {
	builds, err := c.builds.List(ctx, tcapi.NewParams().WithBuildType(buildTypeID).WithCount(1))
	if err != nil {
		return nil, fmt.Errorf("getting latest build of %s: %w", buildTypeID, err)
	}

	if len(builds) == 0 {
		return nil, nil
	}

	return &builds[0], nil
}
