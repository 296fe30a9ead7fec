package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/tcapi/internal/constants"
)

const (
	passwordKey = "password"
	maskedValue = "********"
)

// Config represents the CLI configuration persisted in ~/.tcapi/config.yml.
type Config struct {
	Host        string `json:"host,omitempty"        yaml:"host,omitempty"`
	Port        int    `json:"port,omitempty"        yaml:"port,omitempty"`
	Scheme      string `json:"scheme,omitempty"      yaml:"scheme,omitempty"`
	Username    string `json:"username,omitempty"    yaml:"username,omitempty"`
	Password    string `json:"password,omitempty"    yaml:"password,omitempty"`
	Output      string `json:"output,omitempty"      yaml:"output,omitempty"`
	Concurrency int    `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	Retries     int    `json:"retries,omitempty"     yaml:"retries,omitempty"`
}

// configKeys lists the keys accepted by config set and unset, in display order.
var configKeys = []string{"host", "port", "scheme", "username", passwordKey, "output", "concurrency", "retries"}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage the TeamCity server and output settings used by the CLI",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration after flags and TEAMCITY_* environment variables are applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.Password != "" {
				config.Password = maskedValue
			}

			return render(cmd.OutOrStdout(), config, func(w io.Writer) error {
				return renderConfigTable(w, config)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY [VALUE]",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Omitting the value of password prompts for it without echo.",
		Args:  cobra.RangeArgs(1, constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			var value string

			switch {
			case len(args) == constants.MinimumArgumentCount:
				value = args[1]
			case key == passwordKey:
				_, _ = fmt.Fprint(cmd.OutOrStdout(), "Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				_, _ = fmt.Fprintln(cmd.OutOrStdout())
				value = string(bytePassword)
			default:
				return fmt.Errorf("config set %s: %w", key, constants.ErrValueRequired)
			}

			configFile, config, err := readConfigFile()
			if err != nil {
				return err
			}

			err = setConfigValue(config, key, value)
			if err != nil {
				return err
			}

			err = writeConfigFile(configFile, config)
			if err != nil {
				return err
			}

			viper.Set(key, value)

			if key == passwordKey {
				value = maskedValue
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", key, value)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			configFile, config, err := readConfigFile()
			if err != nil {
				return err
			}

			err = unsetConfigValue(config, key)
			if err != nil {
				return err
			}

			err = writeConfigFile(configFile, config)
			if err != nil {
				return err
			}

			viper.Set(key, "")

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", key)

			return nil
		},
	}
}

func loadConfig() *Config {
	return &Config{
		Host:        viper.GetString("host"),
		Port:        viper.GetInt("port"),
		Scheme:      viper.GetString("scheme"),
		Username:    viper.GetString("username"),
		Password:    viper.GetString(passwordKey),
		Output:      viper.GetString("output"),
		Concurrency: viper.GetInt("concurrency"),
		Retries:     viper.GetInt("retries"),
	}
}

func configFilePath() (string, error) {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".tcapi", "config.yml"), nil
}

// readConfigFile returns the persisted configuration without flags or
// environment variables applied.
func readConfigFile() (string, *Config, error) {
	configFile, err := configFilePath()
	if err != nil {
		return "", nil, err
	}

	config := &Config{}

	// configFile comes from the --config flag or the user's home directory
	// #nosec G304
	data, err := os.ReadFile(configFile)
	if errors.Is(err, fs.ErrNotExist) {
		return configFile, config, nil
	}

	if err != nil {
		return "", nil, fmt.Errorf("failed to read config file: %w", err)
	}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
	}

	return configFile, config, nil
}

func writeConfigFile(configFile string, config *Config) error {
	err := os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case "host":
		config.Host = value
	case "scheme":
		config.Scheme = value
	case "username":
		config.Username = value
	case passwordKey:
		config.Password = value
	case "output":
		if !slices.Contains([]string{constants.FormatTable, constants.FormatJSON, constants.FormatYAML}, value) {
			return fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, value)
		}

		config.Output = value
	case "port":
		port, err := strconv.Atoi(value)
		if err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("%w: %s", constants.ErrInvalidPort, value)
		}

		config.Port = port
	case "concurrency", "retries":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s %w, got %q", key, constants.ErrInvalidNumber, value)
		}

		if key == "concurrency" {
			config.Concurrency = n
		} else {
			config.Retries = n
		}
	default:
		return fmt.Errorf("%w: %s (valid keys: %v)", constants.ErrUnknownConfigKey, key, configKeys)
	}

	return nil
}

func unsetConfigValue(config *Config, key string) error {
	switch key {
	case "host":
		config.Host = ""
	case "port":
		config.Port = 0
	case "scheme":
		config.Scheme = ""
	case "username":
		config.Username = ""
	case passwordKey:
		config.Password = ""
	case "output":
		config.Output = ""
	case "concurrency":
		config.Concurrency = 0
	case "retries":
		config.Retries = 0
	default:
		return fmt.Errorf("%w: %s (valid keys: %v)", constants.ErrUnknownConfigKey, key, configKeys)
	}

	return nil
}

func renderConfigTable(w io.Writer, config *Config) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	_ = table.Append("Host", config.Host)
	_ = table.Append("Port", strconv.Itoa(config.Port))
	_ = table.Append("Scheme", config.Scheme)
	_ = table.Append("Username", config.Username)
	_ = table.Append("Password", config.Password)
	_ = table.Append("Output", config.Output)
	_ = table.Append("Concurrency", strconv.Itoa(config.Concurrency))
	_ = table.Append("Retries", strconv.Itoa(config.Retries))

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
