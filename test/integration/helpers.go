//go:build integration

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/fivetwenty-io/tcapi/pkg/tcapi"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Host       string
	Username   string
	Password   string
	Project    string
	BinaryPath string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Host:       os.Getenv("TEAMCITY_HOST"),
		Username:   os.Getenv("TEAMCITY_USERNAME"),
		Password:   os.Getenv("TEAMCITY_PASSWORD"),
		Project:    os.Getenv("TEAMCITY_PROJECT"),
		BinaryPath: getBinaryPath(),
		Verbose:    os.Getenv("TCAPI_VERBOSE") == "true",
	}
}

// getBinaryPath determines the path to the tcapi binary
func getBinaryPath() string {
	if path := os.Getenv("TCAPI_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../tcapi", "./tcapi", "../tcapi"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "tcapi"
}

// LibraryConfig returns the client configuration for the server under test.
func (config *TestConfig) LibraryConfig() *tcapi.Config {
	return &tcapi.Config{
		Host:     config.Host,
		Username: config.Username,
		Password: config.Password,
		RetryMax: 2,
	}
}

// SkipIfMissingServer skips test if no TeamCity server is configured
func (config *TestConfig) SkipIfMissingServer(t *testing.T) {
	t.Helper()

	if config.Host == "" {
		t.Skip("TEAMCITY_HOST not set, skipping integration test")
	}

	if config.Project == "" {
		t.Skip("TEAMCITY_PROJECT not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips test if the tcapi binary cannot be found
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.BinaryPath); err != nil {
		t.Skipf("tcapi binary not found at %s, skipping integration test", config.BinaryPath)
	}
}

// CommandRunner provides utilities for running tcapi commands
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a tcapi command against the configured server and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	cmd := exec.Command(runner.config.BinaryPath, args...)
	cmd.Env = append(os.Environ(),
		"TEAMCITY_HOST="+runner.config.Host,
		"TEAMCITY_USERNAME="+runner.config.Username,
		"TEAMCITY_PASSWORD="+runner.config.Password,
	)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinaryPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}
