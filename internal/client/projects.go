package client

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/fivetwenty-io/tcapi/internal/constants"
	"github.com/fivetwenty-io/tcapi/internal/parser"
	"github.com/fivetwenty-io/tcapi/pkg/tcapi"
)

// Specs shaped like a TeamCity internal project id are matched against ID,
// anything else against Name. The match is anchored, so "Myproject2" is looked
// up by name even though it contains an id-shaped substring.
var projectIDPattern = regexp.MustCompile(`^project\d+$`)

// ProjectsClient implements tcapi.ProjectsClient.
type ProjectsClient struct {
	fetcher     *fetcher
	buildTypes  *BuildTypesClient
	builds      *BuildsClient
	concurrency int
}

// NewProjectsClient creates a new projects client. Concurrency bounds the
// LatestBuilds fan-out; values below one mean sequential.
func NewProjectsClient(f *fetcher, buildTypes *BuildTypesClient, builds *BuildsClient, concurrency int) *ProjectsClient {
	return &ProjectsClient{
		fetcher:     f,
		buildTypes:  buildTypes,
		builds:      builds,
		concurrency: max(concurrency, 1),
	}
}

// List implements tcapi.ProjectsClient.List.
func (c *ProjectsClient) List(ctx context.Context) ([]tcapi.Project, error) {
	body, err := c.fetcher.get(ctx, constants.ProjectsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	projects, err := parser.Projects(body)
	if err != nil {
		return nil, fmt.Errorf("parsing projects list: %w", err)
	}

	return projects, nil
}

// Get implements tcapi.ProjectsClient.Get.
func (c *ProjectsClient) Get(ctx context.Context, spec string) (*tcapi.Project, error) {
	projects, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := projectIDPattern.MatchString(spec)

	for i := range projects {
		field := projects[i].Name
		if byID {
			field = projects[i].ID
		}

		if field == spec {
			return &projects[i], nil
		}
	}

	return nil, fmt.Errorf("cannot find project with name or id %q: %w", spec, tcapi.ErrNotFound)
}

// BuildTypes implements tcapi.ProjectsClient.BuildTypes.
func (c *ProjectsClient) BuildTypes(ctx context.Context, project *tcapi.Project, filter tcapi.Filter) ([]tcapi.BuildType, error) {
	if project == nil {
		return nil, ErrProjectRequired
	}

	all, err := c.buildTypes.List(ctx)
	if err != nil {
		return nil, err
	}

	owned := make([]tcapi.BuildType, 0, len(all))

	for _, buildType := range all {
		if buildType.ProjectID == project.ID {
			owned = append(owned, buildType)
		}
	}

	filtered, err := tcapi.ApplyFilter(owned, filter)
	if err != nil {
		return nil, fmt.Errorf("filtering build types of %s: %w", project.ID, err)
	}

	return filtered, nil
}

// LatestBuilds implements tcapi.ProjectsClient.LatestBuilds. Results follow
// build type order and build types that never ran are omitted. A single
// failure fails the call; every failure observed is reported.
func (c *ProjectsClient) LatestBuilds(ctx context.Context, project *tcapi.Project, filter tcapi.Filter) ([]tcapi.Build, error) {
	buildTypes, err := c.BuildTypes(ctx, project, filter)
	if err != nil {
		return nil, err
	}

	latest := make([]*tcapi.Build, len(buildTypes))
	failures := make([]error, len(buildTypes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, buildType := range buildTypes {
		g.Go(func() error {
			if gctx.Err() != nil && ctx.Err() == nil {
				return nil
			}

			build, err := c.buildTypes.LatestBuild(gctx, buildType.ID)
			if err != nil {
				if errors.Is(err, context.Canceled) && ctx.Err() == nil {
					return err
				}

				failures[i] = err

				return err
			}

			latest[i] = build

			return nil
		})
	}

	if g.Wait() != nil {
		var result *multierror.Error

		for _, failure := range failures {
			if failure != nil {
				result = multierror.Append(result, failure)
			}
		}

		return nil, result.ErrorOrNil()
	}

	builds := make([]tcapi.Build, 0, len(latest))

	for _, build := range latest {
		if build != nil {
			builds = append(builds, *build)
		}
	}

	return builds, nil
}

// Builds implements tcapi.ProjectsClient.Builds. Params are forwarded to the
// builds listing unchanged; the result keeps builds of this project's build
// types only.
func (c *ProjectsClient) Builds(ctx context.Context, project *tcapi.Project, params *tcapi.Params) ([]tcapi.Build, error) {
	buildTypes, err := c.BuildTypes(ctx, project, nil)
	if err != nil {
		return nil, err
	}

	owned := make(map[string]struct{}, len(buildTypes))
	for _, buildType := range buildTypes {
		owned[buildType.ID] = struct{}{}
	}

	all, err := c.builds.List(ctx, params)
	if err != nil {
		return nil, err
	}

	builds := make([]tcapi.Build, 0, len(all))

	for _, build := range all {
		if _, ok := owned[build.BuildTypeID]; ok {
			builds = append(builds, build)
		}
	}

	return builds, nil
}
