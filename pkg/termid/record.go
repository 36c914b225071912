package termid

import "fmt"

// Record is a single vocabulary entry. Field values are exposed as strings;
// implementations report null, absent, empty and non-scalar values as
// missing.
type Record interface {
	// Lookup returns the value of field and whether it is present.
	Lookup(field string) (string, bool)

	// Set stores value under field, replacing any previous value.
	Set(field, value string)
}

// MapRecord is a Record backed by a plain map, as produced by decoding YAML
// or JSON into map[string]any.
type MapRecord map[string]any

// Lookup implements Record.
func (r MapRecord) Lookup(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return "", false
	}

	var s string
	switch val := v.(type) {
	case string:
		s = val
	case fmt.Stringer:
		s = val.String()
	case bool, int, int64, uint64, float64:
		s = fmt.Sprint(val)
	default:
		return "", false
	}
	if s == "" {
		return "", false
	}
	return s, true
}

// Set implements Record.
func (r MapRecord) Set(field, value string) {
	r[field] = value
}

// describe returns a short human-readable reference to a record for error
// messages.
func describe(r Record, index int, labelField string) string {
	if label, ok := r.Lookup(labelField); ok {
		return fmt.Sprintf("#%d (%s)", index, label)
	}
	return fmt.Sprintf("#%d", index)
}
