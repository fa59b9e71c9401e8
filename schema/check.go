package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// CheckError collects every structural problem found in a schema so they can
// all be reported at once.
type CheckError struct {
	Problems []string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("schema check failed:\n  - %s", strings.Join(e.Problems, "\n  - "))
}

// fakeKinds are the generator names the external fake-data engine understands.
var fakeKinds = map[string]bool{
	"firstName":          true,
	"lastName":           true,
	"fullName":           true,
	"email":              true,
	"avatarUrl":          true,
	"country":            true,
	"city":               true,
	"streetAddress":      true,
	"phoneNumber":        true,
	"companyName":        true,
	"companyCatchPhrase": true,
	"jobTitle":           true,
	"lorem":              true,
	"uuid":               true,
}

var (
	typeRe     = regexp.MustCompile(`^type\s+(\w+)\s*\{`)
	fieldRe    = regexp.MustCompile(`^(\w+)(?:\([^)]*\))?\s*:\s*(\[?\w+!?\]?!?)`)
	fakeRe     = regexp.MustCompile(`@fake\(\s*type:\s*(\w+)`)
	examplesRe = regexp.MustCompile(`@examples\(\s*values:\s*\[([^\]]*)\]`)
)

func scalarType(t string) bool {
	switch strings.Trim(t, "[]!") {
	case "ID", "String", "Int", "Float", "Boolean":
		return true
	}
	return false
}

// Check runs an advisory structural pass over a schema: every scalar field
// other than an ID must carry a @fake or @examples directive, @fake kinds
// must be ones the engine knows, and @examples value lists must be non-empty.
// The operation root is exempt. A nil return means the schema looks sound.
func Check(src string) error {
	var ce CheckError
	curType := ""

	for n, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if m := typeRe.FindStringSubmatch(line); m != nil {
			curType = m[1]
			continue
		}
		if line == "}" {
			curType = ""
			continue
		}
		if curType == "" || curType == "Query" {
			continue
		}

		m := fieldRe.FindStringSubmatch(line)
		if m == nil {
			ce.Problems = append(ce.Problems, fmt.Sprintf("line %d: unrecognized field declaration %q in type %s", n+1, line, curType))
			continue
		}
		field, fieldType := m[1], m[2]

		if fm := fakeRe.FindStringSubmatch(line); fm != nil {
			if !fakeKinds[fm[1]] {
				ce.Problems = append(ce.Problems, fmt.Sprintf("%s.%s: unknown fake kind %q", curType, field, fm[1]))
			}
			continue
		}
		if em := examplesRe.FindStringSubmatch(line); em != nil {
			if strings.TrimSpace(em[1]) == "" {
				ce.Problems = append(ce.Problems, fmt.Sprintf("%s.%s: @examples has an empty value list", curType, field))
			}
			continue
		}

		if scalarType(fieldType) && strings.Trim(fieldType, "[]!") != "ID" {
			ce.Problems = append(ce.Problems, fmt.Sprintf("%s.%s: scalar field has no @fake or @examples directive", curType, field))
		}
	}

	if len(ce.Problems) > 0 {
		return &ce
	}
	return nil
}
