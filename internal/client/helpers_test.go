package client_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/tcapi/internal/client"
	"github.com/fivetwenty-io/tcapi/pkg/tcapi"
)

const projectsXML = `<projects>
  <project name="Shop" id="project1" href="/app/rest/projects/id:project1"/>
  <project name="Billing" id="project2" href="/app/rest/projects/id:project2"/>
  <project name="project3" id="project30" href="/app/rest/projects/id:project30"/>
</projects>`

const buildTypesXML = `<buildTypes>
  <buildType id="bt1" name="Compile" href="/app/rest/buildTypes/id:bt1" projectName="Shop" projectId="project1" webUrl="http://tc/viewType.html?buildTypeId=bt1"/>
  <buildType id="bt9" name="Compile" href="/app/rest/buildTypes/id:bt9" projectName="Billing" projectId="project2" webUrl="http://tc/viewType.html?buildTypeId=bt9"/>
  <buildType id="bt2" name="Test" href="/app/rest/buildTypes/id:bt2" projectName="Shop" projectId="project1" webUrl="http://tc/viewType.html?buildTypeId=bt2"/>
  <buildType id="bt3" name="Deploy" href="/app/rest/buildTypes/id:bt3" projectName="Shop" projectId="project1" webUrl="http://tc/viewType.html?buildTypeId=bt3"/>
</buildTypes>`

func buildXML(id, buildTypeID string, status tcapi.BuildStatus) string {
	return `<build id="` + id + `" number="` + id + `" status="` + string(status) + `" buildTypeId="` + buildTypeID +
		`" href="/app/rest/builds/id:` + id + `" webUrl="http://tc/viewLog.html?buildId=` + id + `&buildTypeId=` + buildTypeID + `"/>`
}

// fakeTeamCity serves fixed bodies per path. Latest-build lookups are answered
// from latest, keyed by build type id; a missing key yields an empty list.
type fakeTeamCity struct {
	projects   string
	buildTypes string
	builds     string
	latest     map[string]string
	failing    map[string]int
	detail     map[string]string
}

func (f *fakeTeamCity) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/app/rest/projects":
		_, _ = w.Write([]byte(f.projects))
	case "/app/rest/buildTypes":
		_, _ = w.Write([]byte(f.buildTypes))
	case "/app/rest/builds":
		buildType := r.URL.Query().Get("buildType")
		if buildType == "" {
			_, _ = w.Write([]byte(f.builds))

			return
		}

		id := buildType[len("id:"):]
		if status, ok := f.failing[id]; ok {
			w.WriteHeader(status)

			return
		}

		_, _ = w.Write([]byte(`<builds>` + f.latest[id] + `</builds>`))
	default:
		id := r.URL.Path[len("/app/rest/builds/"):]
		if body, ok := f.detail[id]; ok {
			_, _ = w.Write([]byte(body))

			return
		}

		w.WriteHeader(http.StatusNotFound)
	}
}

func newServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server
}

func configFor(t *testing.T, server *httptest.Server) *tcapi.Config {
	t.Helper()

	parsed, err := url.Parse(server.URL)
	require.NoError(t, err)

	port, err := strconv.Atoi(parsed.Port())
	require.NoError(t, err)

	return &tcapi.Config{Host: parsed.Hostname(), Port: port, Scheme: parsed.Scheme}
}

func newTestClient(t *testing.T, server *httptest.Server, configure ...func(*tcapi.Config)) *client.Client {
	t.Helper()

	config := configFor(t, server)
	for _, fn := range configure {
		fn(config)
	}

	c, err := client.New(config)
	require.NoError(t, err)

	return c
}
