package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/tcapi/internal/constants"
	"github.com/fivetwenty-io/tcapi/pkg/tcapi"
	"github.com/fivetwenty-io/tcapi/pkg/tcclient"
)

// CreateClient builds a client from flags, TEAMCITY_* variables and the config file.
func CreateClient() (tcapi.Client, error) {
	config := loadConfig()
	if config.Host == "" {
		return nil, constants.ErrNoHostConfigured
	}

	verbose := viper.GetBool("verbose")

	client, err := tcclient.New(&tcapi.Config{
		Host:        config.Host,
		Port:        config.Port,
		Scheme:      config.Scheme,
		Username:    config.Username,
		Password:    config.Password,
		RetryMax:    config.Retries,
		Concurrency: config.Concurrency,
		Debug:       verbose,
		Logger:      NewLogger(os.Stderr, verbose),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// addFilterFlags registers --include and --exclude.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("include", nil, "build type id or name to include (repeatable)")
	cmd.Flags().StringArray("exclude", nil, "build type id or name to exclude (repeatable)")
}

// filterFromFlags returns nil when neither flag was given.
func filterFromFlags(cmd *cobra.Command) (tcapi.Filter, error) {
	var filter tcapi.Filter

	for _, key := range []string{tcapi.FilterInclude, tcapi.FilterExclude} {
		if !cmd.Flags().Changed(key) {
			continue
		}

		tokens, err := cmd.Flags().GetStringArray(key)
		if err != nil {
			return nil, fmt.Errorf("reading --%s: %w", key, err)
		}

		if filter == nil {
			filter = tcapi.NewFilter()
		}

		filter[key] = tokens
	}

	return filter, nil
}

// parseParams turns key=value pairs into ordered request params.
func parseParams(pairs []string) (*tcapi.Params, error) {
	params := tcapi.NewParams()

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidParam, pair)
		}

		params.Set(key, value)
	}

	return params, nil
}
