package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/tcapi/internal/constants"
	"github.com/fivetwenty-io/tcapi/pkg/tcapi"
)

const defaultIndent = 2

// render writes data in the format selected by --output. Table output is
// delegated to table.
func render[T any](w io.Writer, data T, table func(io.Writer) error) error {
	switch format := viper.GetString("output"); format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("encoding data to JSON: %w", err)
		}

		return nil
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(defaultIndent)

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("encoding data to YAML: %w", err)
		}

		return nil
	case constants.FormatTable, "":
		return table(w)
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, format)
	}
}

func renderTable(w io.Writer, header []string, rows [][]string) error {
	columns := make([]any, 0, len(header))
	for _, column := range header {
		columns = append(columns, column)
	}

	table := tablewriter.NewWriter(w)
	table.Header(columns...)

	for _, row := range rows {
		_ = table.Append(row)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderProjects(w io.Writer, projects []tcapi.Project) error {
	return render(w, projects, func(w io.Writer) error {
		if len(projects) == 0 {
			_, _ = io.WriteString(w, "No projects found\n")

			return nil
		}

		rows := make([][]string, 0, len(projects))
		for _, project := range projects {
			rows = append(rows, []string{project.ID, project.Name, project.Href})
		}

		return renderTable(w, []string{"ID", "Name", "Href"}, rows)
	})
}

func renderBuildTypes(w io.Writer, buildTypes []tcapi.BuildType) error {
	return render(w, buildTypes, func(w io.Writer) error {
		if len(buildTypes) == 0 {
			_, _ = io.WriteString(w, "No build types found\n")

			return nil
		}

		rows := make([][]string, 0, len(buildTypes))
		for _, buildType := range buildTypes {
			rows = append(rows, []string{buildType.ID, buildType.Name, buildType.ProjectName, buildType.WebURL})
		}

		return renderTable(w, []string{"ID", "Name", "Project", "Web URL"}, rows)
	})
}

func renderBuilds(w io.Writer, builds []tcapi.Build) error {
	return render(w, builds, func(w io.Writer) error {
		if len(builds) == 0 {
			_, _ = io.WriteString(w, "No builds found\n")

			return nil
		}

		rows := make([][]string, 0, len(builds))
		for _, build := range builds {
			rows = append(rows, []string{build.ID, build.BuildTypeID, build.Number, string(build.Status), build.StartDate, build.WebURL})
		}

		return renderTable(w, []string{"ID", "Build Type", "Number", "Status", "Started", "Web URL"}, rows)
	})
}
