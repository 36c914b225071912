package termid

import "regexp"

// Method selects how the unique part of an identifier is produced.
type Method string

const (
	// MethodUUID takes 8 hex characters from a random UUID.
	MethodUUID Method = "uuid"

	// MethodHash takes 10 hex characters from an MD5 digest of the label.
	MethodHash Method = "hash"
)

// Methods lists the supported generation methods.
var Methods = []Method{MethodUUID, MethodHash}

var uniquePatterns = map[Method]*regexp.Regexp{
	MethodUUID: regexp.MustCompile(`^[0-9a-f]{8}$`),
	MethodHash: regexp.MustCompile(`^[0-9a-f]{10}$`),
}

// ParseMethod converts s into a Method, failing with a format error for
// anything other than "uuid" or "hash".
func ParseMethod(s string) (Method, error) {
	m := Method(s)
	if _, ok := uniquePatterns[m]; !ok {
		return "", unsupportedMethod("parse method", m)
	}
	return m, nil
}

func (m Method) pattern() (*regexp.Regexp, error) {
	re, ok := uniquePatterns[m]
	if !ok {
		return nil, unsupportedMethod("validate", m)
	}
	return re, nil
}

func unsupportedMethod(op string, m Method) *Error {
	return newError(KindFormat, op,
		"unsupported method %q (available methods: %s, %s)", m, MethodUUID, MethodHash)
}
