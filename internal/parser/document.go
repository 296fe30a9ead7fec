// Package parser turns TeamCity XML payloads into tcapi records.
package parser

import (
	"encoding/xml"
	"regexp"
	"strings"

	"github.com/fivetwenty-io/tcapi/pkg/tcapi"
)

// Some TeamCity versions emit a bare "&" before these names inside href
// attributes, which no XML decoder accepts.
var unescapedAmpersand = regexp.MustCompile(`&(buildTypeId|buildType|locator)`)

// Sanitize escapes the unescaped ampersands TeamCity is known to emit.
// Nothing else is repaired.
func Sanitize(raw string) string {
	return unescapedAmpersand.ReplaceAllString(raw, "&amp;$1")
}

// Element is a generic XML element.
type Element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []Element  `xml:",any"`
	Text     string     `xml:",chardata"`
}

// Name returns the element's local name.
func (e *Element) Name() string {
	return e.XMLName.Local
}

// Attribute returns the value of the named attribute.
func (e *Element) Attribute(name string) (string, bool) {
	for _, attr := range e.Attrs {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}

	return "", false
}

// ChildText returns the trimmed text of the first direct child with the given name.
func (e *Element) ChildText(name string) (string, bool) {
	for i := range e.Children {
		if e.Children[i].XMLName.Local == name {
			return strings.TrimSpace(e.Children[i].Text), true
		}
	}

	return "", false
}

func (e *Element) required(name string) (string, error) {
	value, ok := e.Attribute(name)
	if !ok {
		return "", &tcapi.ParseError{Element: e.Name(), Attribute: name}
	}

	return value, nil
}

// Document is a parsed XML payload.
type Document struct {
	root Element
}

// Parse decodes text into a Document. Malformed input yields a *tcapi.ParseError.
func Parse(text string) (*Document, error) {
	var doc Document

	err := xml.Unmarshal([]byte(text), &doc.root)
	if err != nil {
		return nil, &tcapi.ParseError{Err: err}
	}

	return &doc, nil
}

// Root returns the document element.
func (d *Document) Root() *Element {
	return &d.root
}

// FindAll returns every element named name, root included, in document order.
func (d *Document) FindAll(name string) []*Element {
	var found []*Element

	var walk func(e *Element)
	walk = func(e *Element) {
		if e.XMLName.Local == name {
			found = append(found, e)
		}

		for i := range e.Children {
			walk(&e.Children[i])
		}
	}

	walk(&d.root)

	return found
}
