// Package tcapi provides types, interfaces, and helpers for working with the
// TeamCity REST API.
//
// # Overview
//
// The tcapi package defines the records returned by the server (Project,
// BuildType, Build), the interfaces for the resource clients (ProjectsClient,
// BuildTypesClient, BuildsClient), and the build type Filter. A concrete
// implementation is provided by the tcclient package, which wires
// configuration, transport, and authentication.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/tcapi/pkg/tcapi"
//	  "github.com/fivetwenty-io/tcapi/pkg/tcclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := tcclient.New(&tcapi.Config{
//	    Host:     "teamcity.example.com",
//	    Port:     8111,
//	    Username: "user",
//	    Password: "pass",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  project, err := cli.Projects().Get(ctx, "My Project")
//	  if err != nil { log.Fatal(err) }
//
//	  builds, err := cli.Projects().LatestBuilds(ctx, project,
//	    tcapi.NewFilter().Exclude("Nightly"))
//	  if err != nil { log.Fatal(err) }
//	  _ = builds
//	}
//
// # Filters
//
// A Filter narrows a project's build types by id or name through its include
// and exclude keys. Filtering is strict: every token must match a build type,
// otherwise the call fails with a *FilterMismatchError naming the tokens that
// matched nothing. Keys other than include and exclude fail with an
// *UnsupportedOptionError.
//
// # Errors
//
// Errors wrap the sentinels declared in errors.go, so errors.Is works through
// every layer. IsNotFound, IsAuthenticationRequired, and IsFilterMismatch cover
// the common branches. A server that answers with an HTML page instead of XML
// (typically a login form) surfaces as ErrAuthenticationRequired.
package tcapi
