package termid

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// CheckUnique verifies that every record has a non-empty value for field and
// that no value repeats. All problems are collected into a single uniqueness
// error; its Values lists each duplicated value once.
func CheckUnique(records []Record, field string) error {
	result, duplicates := uniqueness(records, field)
	if result == nil {
		return nil
	}
	result.ErrorFormat = joinErrors

	e := newError(KindUniqueness, "check unique",
		"field %q has %d missing or duplicate values", field, result.Len())
	e.Values = duplicates
	e.Err = result
	return e
}

// uniqueness collects a problem per record with a missing or repeated value,
// along with each repeated value once.
func uniqueness(records []Record, field string) (*multierror.Error, []string) {
	var result *multierror.Error
	var duplicates []string

	first := make(map[string]int, len(records))
	reported := make(map[string]bool)
	for i, r := range records {
		value, ok := r.Lookup(field)
		if !ok {
			result = multierror.Append(result,
				fmt.Errorf("record #%d has no value for %q", i, field))
			continue
		}

		if j, seen := first[value]; seen {
			result = multierror.Append(result,
				fmt.Errorf("record #%d repeats %q from record #%d", i, value, j))
			if !reported[value] {
				reported[value] = true
				duplicates = append(duplicates, value)
			}
			continue
		}
		first[value] = i
	}
	return result, duplicates
}

// joinErrors renders a multierror on one line.
func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
