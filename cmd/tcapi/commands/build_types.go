package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewBuildTypesCommand creates the build-types command.
func NewBuildTypesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "build-types PROJECT",
		Aliases: []string{"bt"},
		Short:   "List the build types of a project",
		Long: `List the build types of a project, optionally narrowed with --include and
--exclude. Every token must match a build type of the project by id or name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := filterFromFlags(cmd)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			project, err := client.Projects().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			buildTypes, err := client.Projects().BuildTypes(cmd.Context(), project, filter)
			if err != nil {
				return fmt.Errorf("failed to list build types: %w", err)
			}

			return renderBuildTypes(cmd.OutOrStdout(), buildTypes)
		},
	}

	addFilterFlags(cmd)

	return cmd
}

// NewLatestBuildsCommand creates the latest-builds command.
func NewLatestBuildsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "latest-builds PROJECT",
		Short: "Show the latest build of each build type",
		Long: `Show the most recent build of every build type in a project. Build types
that have never run are left out. Accepts the same --include and --exclude
flags as build-types.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := filterFromFlags(cmd)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			project, err := client.Projects().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			builds, err := client.Projects().LatestBuilds(cmd.Context(), project, filter)
			if err != nil {
				return fmt.Errorf("failed to get latest builds: %w", err)
			}

			return renderBuilds(cmd.OutOrStdout(), builds)
		},
	}

	addFilterFlags(cmd)

	return cmd
}
