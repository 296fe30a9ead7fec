package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewBuildsCommand creates the builds command.
func NewBuildsCommand() *cobra.Command {
	var pairs []string

	cmd := &cobra.Command{
		Use:   "builds PROJECT",
		Short: "List the builds of a project",
		Long: `List builds belonging to the build types of a project. Each --param key=value
is passed to the TeamCity builds listing, for example --param status=FAILURE
or --param count=20.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(pairs)
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

			builds, err := client.Projects().Builds(cmd.Context(), project, params)
			if err != nil {
				return fmt.Errorf("failed to list builds: %w", err)
			}

			return renderBuilds(cmd.OutOrStdout(), builds)
		},
	}

	cmd.Flags().StringArrayVar(&pairs, "param", nil, "builds locator parameter as key=value (repeatable)")

	return cmd
}

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build BUILD_ID",
		Short: "Show a build",
		Long:  "Show the details of a single build, including start and finish dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			build, err := client.Builds().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), build, func(w io.Writer) error {
				return renderTable(w, []string{"Property", "Value"}, [][]string{
					{"ID", build.ID},
					{"Number", build.Number},
					{"Status", string(build.Status)},
					{"Build Type", build.BuildTypeID},
					{"Started", build.StartDate},
					{"Finished", build.FinishDate},
					{"Web URL", build.WebURL},
				})
			})
		},
	}
}
