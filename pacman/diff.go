package pacman

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/AlekSi/pointer"
)

// AbsentValue is the placeholder the repository-side serialization uses for
// an attribute that was never set. The reconciler treats it as equivalent
// to absence, not as a real value.
const AbsentValue = "None"

// sonameArchSuffix marks 64-bit soname dependency specifiers injected by
// the repository builder; the build recipe never carries the versioned form.
const sonameArchSuffix = "-64"

// FieldDiff is a single attribute mismatch between the repository record
// and the source-derived record of one package.
//
// Repo is nil when the attribute exists only on the source side, Source is
// nil when it exists only in the repository.
type FieldDiff struct {
	Package   string
	Attribute string
	Repo      interface{}
	Source    interface{}
}

// Check interface
var (
	_ json.Marshaler = FieldDiff{}
)

// String renders the diff as the report block written to the console
func (d FieldDiff) String() string {
	return fmt.Sprintf("DIFF(%s|%s):\n  repo   : %v\n  SRCINFO: %v", d.Package, d.Attribute, d.Repo, d.Source)
}

// MarshalJSON implements json.Marshaler interface
func (d FieldDiff) MarshalJSON() ([]byte, error) {
	serialized := struct {
		Package, Attribute string
		Repo, Source       *string
	}{Package: d.Package, Attribute: d.Attribute}

	if d.Repo != nil {
		serialized.Repo = pointer.ToString(fmt.Sprintf("%v", d.Repo))
	}
	if d.Source != nil {
		serialized.Source = pointer.ToString(fmt.Sprintf("%v", d.Source))
	}

	return json.Marshal(serialized)
}

// FieldDiffs is a list of FieldDiff records
type FieldDiffs []FieldDiff

// Reconcile compares the repository record against the source-derived
// record for packageName and returns every attribute mismatch plus the
// mismatch count. Neither input is mutated.
//
// The rules form a tie-break precedence: the cheap exact comparison runs
// first, field-specific normalizations apply only after it fails.
func Reconcile(repoSide, sourceSide Attributes, packageName string) (FieldDiffs, int) {
	if _, ok := sourceSide["pkgname"]; !ok {
		panic(fmt.Sprintf("source record for %s carries no pkgname", packageName))
	}

	var result FieldDiffs

	for attr, repoValue := range repoSide {
		sourceValue, ok := sourceSide[attr]
		if !ok {
			// attribute present only in the repository
			result = append(result, FieldDiff{packageName, attr, repoValue, nil})
			continue
		}

		if repoValue == AbsentValue {
			if !isEmptyValue(sourceValue) {
				// attribute present only in the source record
				result = append(result, FieldDiff{packageName, attr, repoValue, sourceValue})
			}
			continue
		}

		if reflect.DeepEqual(repoValue, sourceValue) {
			continue
		}

		switch attr {
		case "pkgver":
			expected := ConstructVersion(attrString(sourceSide["pkgver"]), attrString(sourceSide["pkgrel"]), attrString(sourceSide["epoch"]))
			if repoValue == expected {
				continue
			}
		case "depends", "provides":
			if reflect.DeepEqual(stripSonameVersions(repoValue), sourceValue) {
				continue
			}
		case "license":
			if joinValue(repoValue) == joinValue(sourceValue) {
				continue
			}
		}

		result = append(result, FieldDiff{packageName, attr, repoValue, sourceValue})
	}

	return result, len(result)
}

// stripSonameVersions removes the =version part from dependency specifiers
// carrying the 64-bit architecture suffix, e.g. libc.so=6-64 becomes
// libc.so
func stripSonameVersions(value interface{}) interface{} {
	list, ok := value.([]string)
	if !ok {
		return value
	}

	stripped := make([]string, len(list))
	for i, spec := range list {
		if strings.Contains(spec, "=") && strings.HasSuffix(spec, sonameArchSuffix) {
			spec = spec[:strings.Index(spec, "=")]
		}
		stripped[i] = spec
	}
	return stripped
}

// joinValue flattens a value to a single space-joined string; license names
// may contain spaces, so two differently tokenized lists can still describe
// the same licenses
func joinValue(value interface{}) string {
	switch v := value.(type) {
	case []string:
		return strings.Join(v, " ")
	case string:
		return v
	}
	return fmt.Sprintf("%v", value)
}

func attrString(value interface{}) string {
	s, _ := value.(string)
	return s
}

func isEmptyValue(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	}
	return false
}
