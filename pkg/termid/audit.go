package termid

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Audit inspects records without modifying them and reports every record
// whose label is missing or repeated, whose id is missing, malformed or
// repeated, and whose parent reference is not a valid identifier.
//
// The returned error is non-nil only for invalid options. Problems found in
// the records are collected in the returned multierror, which is nil when
// there are none.
func Audit(records []Record, opts Options) (*multierror.Error, error) {
	opts = opts.withDefaults()
	if _, err := ParseMethod(string(opts.Method)); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	format := opts.Format()

	findings, _ := uniqueness(records, opts.LabelField)

	owners := make(map[string]int, len(records))
	for i, rec := range records {
		who := describe(rec, i, opts.LabelField)

		id, ok := rec.Lookup(opts.IDField)
		switch {
		case !ok:
			findings = multierror.Append(findings,
				fmt.Errorf("record %s has no %q", who, opts.IDField))
		case !mustValid(format, id, opts.Method):
			findings = multierror.Append(findings,
				fmt.Errorf("record %s has invalid %s %q", who, opts.IDField, id))
		default:
			if j, seen := owners[id]; seen {
				findings = multierror.Append(findings,
					fmt.Errorf("record %s repeats %s %q from record #%d", who, opts.IDField, id, j))
			} else {
				owners[id] = i
			}
		}

		if opts.ParentField == "" {
			continue
		}
		if parent, ok := rec.Lookup(opts.ParentField); ok && !mustValid(format, parent, opts.Method) {
			findings = multierror.Append(findings,
				fmt.Errorf("record %s has invalid %s %q", who, opts.ParentField, parent))
		}
	}

	if findings != nil {
		findings.ErrorFormat = joinErrors
	}
	return findings, nil
}

// mustValid is IsValid for a method already known to be supported.
func mustValid(f Format, candidate string, method Method) bool {
	valid, _ := f.IsValid(candidate, method)
	return valid
}
