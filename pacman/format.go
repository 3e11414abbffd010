package pacman

import (
	"bufio"
	"io"
)

// Attributes is a decoded per-package attribute mapping. Values are either
// string (single-valued attribute) or []string (multivalued attribute),
// as declared by the section vocabulary.
type Attributes map[string]interface{}

// Copy returns copy of Attributes
func (a Attributes) Copy() (result Attributes) {
	result = make(Attributes, len(a))
	for k, v := range a {
		result[k] = v
	}
	return
}

// Update merges other into a with plain map-update semantics, last writer
// wins per key
func (a Attributes) Update(other Attributes) {
	for k, v := range other {
		a[k] = v
	}
}

// sectionMarker is the delimiter of section marker lines in desc blobs
const sectionMarker = '%'

// descField describes one entry of the section vocabulary
type descField struct {
	attr  string
	multi bool
}

// Section vocabulary of the database desc format. Markers not listed here
// (checksums, sizes, install metadata, file lists) carry no audited
// attribute and are skipped.
var descVocabulary = map[string]descField{
	"%NAME%":         {"pkgname", false},
	"%BASE%":         {"pkgbase", false},
	"%VERSION%":      {"pkgver", false},
	"%DESC%":         {"pkgdesc", false},
	"%URL%":          {"url", false},
	"%ARCH%":         {"arch", true},
	"%LICENSE%":      {"license", true},
	"%GROUPS%":       {"groups", true},
	"%DEPENDS%":      {"depends", true},
	"%OPTDEPENDS%":   {"optdepends", true},
	"%MAKEDEPENDS%":  {"makedepends", true},
	"%CHECKDEPENDS%": {"checkdepends", true},
	"%PROVIDES%":     {"provides", true},
	"%CONFLICTS%":    {"conflicts", true},
	"%REPLACES%":     {"replaces", true},
}

// Cursor states of the decoder: outside any section, inside a section the
// vocabulary doesn't know, or inside a recognized section.
const (
	cursorNone = iota
	cursorUnknown
	cursorKnown
)

// isSectionMarker checks whether line has the %MARKER% shape
func isSectionMarker(line string) bool {
	return len(line) > 2 && line[0] == sectionMarker && line[len(line)-1] == sectionMarker
}

// DescReader implements decoding of section-delimited desc blobs
type DescReader struct {
	scanner *bufio.Scanner
}

// NewDescReader creates DescReader, it wraps with buffering
func NewDescReader(r io.Reader) *DescReader {
	return &DescReader{
		scanner: bufio.NewScanner(bufio.NewReaderSize(r, 32768)),
	}
}

// ReadAttributes decodes the whole blob into Attributes.
//
// A blank line ends the current section; body lines outside a recognized
// section are noise, not an error: the database carries many sections the
// audit never looks at.
func (d *DescReader) ReadAttributes() (Attributes, error) {
	attributes := make(Attributes, len(descVocabulary))

	cursor := cursorNone
	var field descField

	for d.scanner.Scan() {
		line := d.scanner.Text()

		if line == "" {
			cursor = cursorNone
			continue
		}

		if isSectionMarker(line) {
			var ok bool
			field, ok = descVocabulary[line]
			if ok {
				cursor = cursorKnown
				if field.multi {
					if _, present := attributes[field.attr]; !present {
						attributes[field.attr] = []string{}
					}
				}
			} else {
				cursor = cursorUnknown
			}
			continue
		}

		if cursor != cursorKnown {
			continue
		}

		if field.multi {
			attributes[field.attr] = append(attributes[field.attr].([]string), line)
		} else {
			attributes[field.attr] = line
		}
	}
	if err := d.scanner.Err(); err != nil {
		return nil, err
	}

	return attributes, nil
}
