package parser

import (
	"errors"

	"github.com/fivetwenty-io/tcapi/pkg/tcapi"
)

var errUnexpectedRoot = errors.New("document element is not <build>")

// binding ties a required attribute to the field it populates.
type binding struct {
	attribute string
	target    *string
}

// bind copies each attribute into its target, failing on the first missing one.
func (e *Element) bind(bindings ...binding) error {
	for _, b := range bindings {
		value, err := e.required(b.attribute)
		if err != nil {
			return err
		}

		*b.target = value
	}

	return nil
}

// Projects extracts every <project> element.
func Projects(text string) ([]tcapi.Project, error) {
	return collect(text, "project", projectFrom)
}

// BuildTypes extracts every <buildType> element.
func BuildTypes(text string) ([]tcapi.BuildType, error) {
	return collect(text, "buildType", buildTypeFrom)
}

// Builds extracts every <build> element of a build list.
func Builds(text string) ([]tcapi.Build, error) {
	return collect(text, "build", buildFrom)
}

// Build extracts a single build whose document element is <build>.
func Build(text string) (*tcapi.Build, error) {
	doc, err := Parse(text)
	if err != nil {
		return nil, err
	}

	root := doc.Root()
	if root.Name() != "build" {
		return nil, &tcapi.ParseError{Element: root.Name(), Err: errUnexpectedRoot}
	}

	build, err := buildFrom(root)
	if err != nil {
		return nil, err
	}

	return &build, nil
}

func collect[T any](text, name string, extract func(*Element) (T, error)) ([]T, error) {
	doc, err := Parse(text)
	if err != nil {
		return nil, err
	}

	elements := doc.FindAll(name)
	records := make([]T, 0, len(elements))

	for _, e := range elements {
		record, err := extract(e)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, nil
}

func projectFrom(e *Element) (tcapi.Project, error) {
	var project tcapi.Project

	err := e.bind(
		binding{"id", &project.ID},
		binding{"name", &project.Name},
		binding{"href", &project.Href},
	)

	return project, err
}

func buildTypeFrom(e *Element) (tcapi.BuildType, error) {
	var buildType tcapi.BuildType

	err := e.bind(
		binding{"id", &buildType.ID},
		binding{"name", &buildType.Name},
		binding{"href", &buildType.Href},
		binding{"projectName", &buildType.ProjectName},
		binding{"projectId", &buildType.ProjectID},
		binding{"webUrl", &buildType.WebURL},
	)

	return buildType, err
}

func buildFrom(e *Element) (tcapi.Build, error) {
	var (
		build  tcapi.Build
		status string
	)

	err := e.bind(
		binding{"id", &build.ID},
		binding{"number", &build.Number},
		binding{"status", &status},
		binding{"buildTypeId", &build.BuildTypeID},
		binding{"href", &build.Href},
		binding{"webUrl", &build.WebURL},
	)
	if err != nil {
		return tcapi.Build{}, err
	}

	build.Status = tcapi.BuildStatus(status)
	build.StartDate = e.date("startDate")
	build.FinishDate = e.date("finishDate")

	return build, nil
}

// date prefers the child element TeamCity uses in build details and falls
// back to the attribute form.
func (e *Element) date(name string) string {
	if value, ok := e.ChildText(name); ok {
		return value
	}

	value, _ := e.Attribute(name)

	return value
}
