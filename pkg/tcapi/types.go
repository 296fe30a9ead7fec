package tcapi

// BuildStatus is the outcome symbol TeamCity reports for a build.
// Values are case-sensitive; anything outside the known set is kept verbatim.
type BuildStatus string

// Known build statuses.
const (
	StatusSuccess BuildStatus = "SUCCESS"
	StatusFailure BuildStatus = "FAILURE"
	StatusError   BuildStatus = "ERROR"
	StatusUnknown BuildStatus = "UNKNOWN"
)

// Known reports whether the status is one of the four documented symbols.
func (s BuildStatus) Known() bool {
	switch s {
	case StatusSuccess, StatusFailure, StatusError, StatusUnknown:
		return true
	default:
		return false
	}
}

// Project represents a TeamCity project.
type Project struct {
	ID   string `json:"id"   yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Href string `json:"href" yaml:"href"`
}

// BuildType represents a build configuration. It belongs to the project whose
// ID equals ProjectID.
type BuildType struct {
	ID          string `json:"id"           yaml:"id"`
	Name        string `json:"name"         yaml:"name"`
	Href        string `json:"href"         yaml:"href"`
	ProjectName string `json:"project_name" yaml:"project_name"`
	ProjectID   string `json:"project_id"   yaml:"project_id"`
	WebURL      string `json:"web_url"      yaml:"web_url"`
}

// Build represents one executed run of a build type.
//
// StartDate and FinishDate are the raw server timestamps and are empty when
// the payload does not carry them (list responses usually omit them).
type Build struct {
	ID          string      `json:"id"            yaml:"id"`
	Number      string      `json:"number"        yaml:"number"`
	Status      BuildStatus `json:"status"        yaml:"status"`
	BuildTypeID string      `json:"build_type_id" yaml:"build_type_id"`
	StartDate   string      `json:"start_date"    yaml:"start_date"`
	FinishDate  string      `json:"finish_date"   yaml:"finish_date"`
	Href        string      `json:"href"          yaml:"href"`
	WebURL      string      `json:"web_url"       yaml:"web_url"`
}

// IsSuccess reports whether the build finished with SUCCESS.
func (b *Build) IsSuccess() bool {
	return b.Status == StatusSuccess
}
