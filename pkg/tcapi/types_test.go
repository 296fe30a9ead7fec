package tcapi_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fivetwenty-io/tcapi/pkg/tcapi"
	"github.com/stretchr/testify/assert"
)

func TestBuild_IsSuccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status   tcapi.BuildStatus
		expected bool
	}{
		{tcapi.StatusSuccess, true},
		{tcapi.StatusFailure, false},
		{tcapi.StatusError, false},
		{tcapi.StatusUnknown, false},
		{tcapi.BuildStatus("success"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()

			build := &tcapi.Build{Status: tt.status}
			assert.Equal(t, tt.expected, build.IsSuccess())
		})
	}
}

func TestBuildStatus_Known(t *testing.T) {
	t.Parallel()

	assert.True(t, tcapi.StatusError.Known())
	assert.False(t, tcapi.BuildStatus("Failure").Known())
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	notFound := fmt.Errorf("finding project: %w", tcapi.ErrNotFound)
	assert.True(t, tcapi.IsNotFound(notFound))
	assert.False(t, tcapi.IsNotFound(tcapi.ErrParse))

	auth := fmt.Errorf("listing projects: %w", tcapi.ErrAuthenticationRequired)
	assert.True(t, tcapi.IsAuthenticationRequired(auth))
}

func TestParseError(t *testing.T) {
	t.Parallel()

	missing := &tcapi.ParseError{Element: "build", Attribute: "status"}
	assert.Equal(t, `malformed TeamCity response: <build> is missing required attribute "status"`, missing.Error())
	assert.ErrorIs(t, missing, tcapi.ErrParse)

	errSyntax := errors.New("unexpected EOF")
	malformed := &tcapi.ParseError{Err: errSyntax}
	assert.Equal(t, "malformed TeamCity response: unexpected EOF", malformed.Error())
	assert.ErrorIs(t, malformed, errSyntax)
	assert.ErrorIs(t, malformed, tcapi.ErrParse)
}

func TestTransportError(t *testing.T) {
	t.Parallel()

	status := &tcapi.TransportError{URL: "http://tc:8111/app/rest/builds", StatusCode: 500, Body: "oops"}
	assert.Equal(t, "TeamCity request failed: GET http://tc:8111/app/rest/builds returned status 500: oops", status.Error())
	assert.ErrorIs(t, status, tcapi.ErrTransport)

	errRefused := errors.New("connection refused")
	network := &tcapi.TransportError{URL: "http://tc:8111/", Err: errRefused}
	assert.ErrorIs(t, network, errRefused)
	assert.Contains(t, network.Error(), "connection refused")
}
