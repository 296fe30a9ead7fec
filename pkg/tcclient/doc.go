// Package tcclient provides the primary entry point for constructing a
// TeamCity REST API client that implements the tcapi.Client interface.
//
// It layers configuration, HTTP transport, and authentication on top of the
// resource interfaces and types defined in the tcapi package. Most
// applications should import tcclient to build a client, then use the
// returned tcapi.Client to reach Projects(), BuildTypes() and Builds().
//
// Quick start
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
//
//	  // Anonymous access to a server that allows guests.
//	  cli, err := tcclient.NewWithEndpoint("http://teamcity.local:8111")
//	  if err != nil { log.Fatal(err) }
//
//	  // HTTP basic authentication. Requests go through /httpAuth.
//	  cli, err = tcclient.New(&tcapi.Config{
//	    Host:     "teamcity.local",
//	    Port:     8111,
//	    Username: "user",
//	    Password: "pass",
//	    RetryMax: 3,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  project, err := cli.Projects().Get(ctx, "Shop")
//	  if err != nil { log.Fatal(err) }
//
//	  builds, err := cli.Projects().LatestBuilds(ctx, project, tcapi.NewFilter().Include("Compile", "bt12"))
//	  if err != nil { log.Fatal(err) }
//
//	  for _, b := range builds {
//	    log.Printf("%s #%s %s", b.BuildTypeID, b.Number, b.Status)
//	  }
//	}
//
// Defaults
//
// Scheme defaults to http, and Port to 80 or 443 depending on the scheme.
// Retries are disabled unless RetryMax is positive.
package tcclient
