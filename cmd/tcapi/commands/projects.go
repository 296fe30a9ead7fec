package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/tcapi/pkg/tcapi"
)

// NewProjectsCommand creates the projects command.
func NewProjectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects",
		Long:  "List every project visible on the TeamCity server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			projects, err := client.Projects().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}

			return renderProjects(cmd.OutOrStdout(), projects)
		},
	}
}

// NewProjectCommand creates the project command.
func NewProjectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "project PROJECT",
		Short: "Show a project",
		Long:  "Show a project by id (project<N>) or by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			project, err := client.Projects().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			project.Href = client.URL(project.Href)

			return renderProjects(cmd.OutOrStdout(), []tcapi.Project{*project})
		},
	}
}
