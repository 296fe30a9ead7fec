package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/tcapi/cmd/tcapi/commands"
	"github.com/fivetwenty-io/tcapi/internal/constants"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "tcapi",
	Short: "TeamCity REST API CLI",
	Long: `A command-line interface for reading a TeamCity server.

It lists projects, build types, and builds, and reports the latest build of
every build type in a project.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.tcapi/config.yml)")
	rootCmd.PersistentFlags().String("host", "", "TeamCity host, optionally with :port or as a URL")
	rootCmd.PersistentFlags().Int("port", 0, "TeamCity port (default 80, or 443 for https)")
	rootCmd.PersistentFlags().String("scheme", "", "http or https")
	rootCmd.PersistentFlags().StringP("username", "u", "", "username for HTTP basic authentication")
	rootCmd.PersistentFlags().StringP("password", "p", "", "password for HTTP basic authentication")
	rootCmd.PersistentFlags().StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().Int("concurrency", 1, "parallel requests when fetching latest builds")
	rootCmd.PersistentFlags().Int("retries", 0, "retries for transient HTTP failures")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	// Bind flags to viper
	for _, name := range []string{"config", "host", "port", "scheme", "username", "password", "output", "concurrency", "retries", "verbose"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewProjectsCommand())
	rootCmd.AddCommand(commands.NewProjectCommand())
	rootCmd.AddCommand(commands.NewBuildTypesCommand())
	rootCmd.AddCommand(commands.NewLatestBuildsCommand())
	rootCmd.AddCommand(commands.NewBuildsCommand())
	rootCmd.AddCommand(commands.NewBuildCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in ~/.tcapi/config.yml
		viper.AddConfigPath(filepath.Join(home, ".tcapi"))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// TEAMCITY_HOST, TEAMCITY_USERNAME, ...
	viper.SetEnvPrefix("TEAMCITY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
