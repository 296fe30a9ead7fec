package tcapi

import (
	"errors"
	"fmt"
	"strings"
)

// Common static errors that can be wrapped with context.
var (
	ErrNotFound               = errors.New("not found")
	ErrFilterMismatch         = errors.New("filter tokens matched no build type")
	ErrUnsupportedOption      = errors.New("unsupported filter option")
	ErrInvalidFilterValue     = errors.New("filter value must be a string or a list of strings")
	ErrAuthenticationRequired = errors.New("TeamCity returned html, perhaps you need to use authentication")
	ErrParse                  = errors.New("malformed TeamCity response")
	ErrTransport              = errors.New("TeamCity request failed")
	ErrConfigRequired         = errors.New("config is required")
	ErrHostRequired           = errors.New("TeamCity host is required")
	ErrInvalidScheme          = errors.New("scheme must be http or https")
)

// FilterMismatchError reports include or exclude tokens that did not match any
// build type.
type FilterMismatchError struct {
	Include []string
	Exclude []string
}

// Error implements the error interface.
func (e *FilterMismatchError) Error() string {
	var parts []string

	if len(e.Include) > 0 {
		parts = append(parts, fmt.Sprintf("include %v", e.Include))
	}

	if len(e.Exclude) > 0 {
		parts = append(parts, fmt.Sprintf("exclude %v", e.Exclude))
	}

	return fmt.Sprintf("%s: %s", ErrFilterMismatch, strings.Join(parts, ", "))
}

// Tokens returns every leftover token, include tokens first.
func (e *FilterMismatchError) Tokens() []string {
	tokens := make([]string, 0, len(e.Include)+len(e.Exclude))
	tokens = append(tokens, e.Include...)

	return append(tokens, e.Exclude...)
}

// Unwrap lets errors.Is match ErrFilterMismatch.
func (e *FilterMismatchError) Unwrap() error {
	return ErrFilterMismatch
}

// UnsupportedOptionError reports filter keys other than include and exclude.
type UnsupportedOptionError struct {
	Options []string
}

// Error implements the error interface.
func (e *UnsupportedOptionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnsupportedOption, strings.Join(e.Options, ", "))
}

// Unwrap lets errors.Is match ErrUnsupportedOption.
func (e *UnsupportedOptionError) Unwrap() error {
	return ErrUnsupportedOption
}

// ParseError reports a response that could not be turned into records, either
// because the XML is malformed or because a required attribute is missing.
type ParseError struct {
	Element   string
	Attribute string
	Err       error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Attribute != "" {
		return fmt.Sprintf("%s: <%s> is missing required attribute %q", ErrParse, e.Element, e.Attribute)
	}

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", ErrParse, e.Err)
	}

	return ErrParse.Error()
}

// Unwrap returns the decoder error when there is one.
func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrParse, e.Err}
	}

	return []error{ErrParse}
}

// TransportError reports a failed round trip. StatusCode is zero when the
// server was never reached.
type TransportError struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: GET %s returned status %d: %s", ErrTransport, e.URL, e.StatusCode, e.Body)
	}

	return fmt.Sprintf("%s: GET %s: %v", ErrTransport, e.URL, e.Err)
}

// Unwrap exposes ErrTransport and the underlying network error.
func (e *TransportError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrTransport, e.Err}
	}

	return []error{ErrTransport}
}

// IsNotFound checks if the error is a lookup miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAuthenticationRequired checks if the server answered with an HTML page.
func IsAuthenticationRequired(err error) bool {
	return errors.Is(err, ErrAuthenticationRequired)
}

// IsFilterMismatch checks if a filter left unmatched tokens.
func IsFilterMismatch(err error) bool {
	return errors.Is(err, ErrFilterMismatch)
}
