package termid

import "strings"

// Format describes the shape shared by every identifier in a run.
type Format struct {
	// Namespace is the common prefix of all identifiers, e.g. "ex:".
	Namespace string

	// TypePrefix is an optional segment placed between the namespace and the
	// unique part, separated from the latter by a dash.
	TypePrefix string
}

// IsValid reports whether candidate is a well-formed identifier for method.
// It has no side effects. An unsupported method is an error rather than a
// false result.
func (f Format) IsValid(candidate string, method Method) (bool, error) {
	re, err := method.pattern()
	if err != nil {
		return false, err
	}

	rest, ok := strings.CutPrefix(candidate, f.Namespace)
	if !ok {
		return false, nil
	}

	if f.TypePrefix != "" {
		rest, ok = strings.CutPrefix(rest, f.TypePrefix+"-")
		if !ok {
			return false, nil
		}
	}

	return re.MatchString(rest), nil
}

// Compose assembles a full identifier from a unique part.
func (f Format) Compose(unique string) string {
	if f.TypePrefix == "" {
		return f.Namespace + unique
	}
	return f.Namespace + f.TypePrefix + "-" + unique
}
