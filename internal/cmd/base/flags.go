package base

import (
	"bytes"
	"flag"
	"strings"
)

// FlagSet wraps a standard flag set to render its defaults as command help.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet returns a FlagSet that reports parse errors to the caller instead
// of printing them.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(&bytes.Buffer{})
	return &FlagSet{FlagSet: f}
}

// Help returns the flag defaults formatted for appending to a command's help
// text.
func (f *FlagSet) Help() string {
	var buf bytes.Buffer
	f.SetOutput(&buf)
	f.PrintDefaults()
	f.SetOutput(&bytes.Buffer{})

	if buf.Len() == 0 {
		return ""
	}
	return "\n\nOptions:\n\n" + strings.TrimRight(buf.String(), "\n")
}
