// Package vocabfile reads and writes YAML vocabulary documents.
//
// A vocabulary document is a YAML mapping whose keys name entity lists:
//
//	concepts:
//	  - name: Alpha
//	    id: ex:6132295fcf
//	  - name: Beta
//	    parent: ex:6132295fcf
//
// Records returned by Document.Records are views onto the document's YAML
// nodes: edits made through termid.Record.Set change the document directly,
// so Encode reproduces the original key order, entry order and comments with
// only the edited values changed.
package vocabfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/hashicorp-forge/termid/internal/yml"
	"github.com/hashicorp-forge/termid/pkg/termid"
)

// Indent is the indentation used when encoding documents.
const Indent = 2

var (
	// ErrTargetNotFound is returned when the requested list key is absent.
	ErrTargetNotFound = errors.New("target not found")

	// ErrNotAList is returned when the requested key does not hold a list.
	ErrNotAList = errors.New("target is not a list")

	// ErrNotAMapping is returned for documents or entries that are not
	// mappings.
	ErrNotAMapping = errors.New("not a mapping")
)

// Document is a parsed YAML vocabulary document.
type Document struct {
	node *yml.Node
}

// Decode parses a YAML document.
func Decode(data []byte) (*Document, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("error parsing YAML: %w", err)
	}
	doc := &Document{node: (*yml.Node)(&node)}
	if root := doc.root(); root == nil || root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("document root: %w", ErrNotAMapping)
	}
	return doc, nil
}

// Load reads and parses the document at path.
func Load(fs afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}
	return doc, nil
}

func (d *Document) root() *yml.Node {
	return d.node.Root()
}

// Keys returns the top-level keys in document order.
func (d *Document) Keys() []string {
	return d.root().Keys()
}

// Records returns the entries of the list stored under target. Every entry
// must be a mapping.
func (d *Document) Records(target string) ([]termid.Record, error) {
	list := d.root().Lookup(target)
	if list == nil {
		return nil, fmt.Errorf("%w: %q (available keys: %v)", ErrTargetNotFound, target, d.Keys())
	}
	if list.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: %q", ErrNotAList, target)
	}

	records := make([]termid.Record, 0, len(list.Content))
	err := list.Items(func(index int, item *yml.Node) error {
		if item.Kind != yaml.MappingNode {
			return fmt.Errorf("entry %d of %q: %w", index, target, ErrNotAMapping)
		}
		records = append(records, &Record{node: item})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Encode serialises the document, including any edits made through its
// records.
func (d *Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(Indent)
	if err := enc.Encode((*yaml.Node)(d.node)); err != nil {
		return nil, fmt.Errorf("error encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("error encoding YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// Save encodes the document and writes it to path, preserving the mode of an
// existing file.
func (d *Document) Save(fs afero.Fs, path string) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}

	mode := os.FileMode(0o644)
	if info, err := fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := afero.WriteFile(fs, path, data, mode); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}

// Record is a termid.Record backed by a YAML mapping node.
type Record struct {
	node *yml.Node
}

// Lookup implements termid.Record. Null, empty and non-scalar values are
// reported as missing.
func (r *Record) Lookup(field string) (string, bool) {
	value, ok := r.node.Lookup(field).Scalar()
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// Set implements termid.Record.
func (r *Record) Set(field, value string) {
	r.node.SetString(field, value)
}

// Line returns the line of the entry in the source document, for reporting.
func (r *Record) Line() int {
	return r.node.Line
}
