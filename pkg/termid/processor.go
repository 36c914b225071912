package termid

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// Processor assigns identifiers across a record set. A Processor holds only
// configuration; each call to Process starts from an empty registry and remap
// table, so one Processor can be reused for several runs. A single run is not
// safe for concurrent use.
type Processor struct {
	opts    Options
	genOpts []Option
	logger  hclog.Logger
}

// Result summarises a successful run.
type Result struct {
	// Records holds the input records in processing (dependency) order. The
	// records themselves were modified in place.
	Records []Record

	// Total is the number of records processed.
	Total int

	// Generated counts newly minted identifiers.
	Generated int

	// Updated counts records whose id or parent field was rewritten.
	Updated int

	// Remap maps each replaced id to its new identifier.
	Remap map[string]string
}

// NewProcessor validates opts and returns a Processor. Zero-valued IDField,
// Method and MaxAttempts are replaced by their defaults.
func NewProcessor(opts Options, options ...Option) (*Processor, error) {
	opts = opts.withDefaults()
	if _, err := ParseMethod(string(opts.Method)); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	s := newSettings(options)
	return &Processor{
		opts:    opts,
		genOpts: options,
		logger:  s.logger,
	}, nil
}

// Options returns the effective options.
func (p *Processor) Options() Options {
	return p.opts
}

// run carries the per-run state shared by the processing steps.
type run struct {
	opts   Options
	format Format
	gen    *Generator
	remap  map[string]string
	result *Result
}

// Process orders records, assigns identifiers to every record lacking a valid
// one, remaps pending parent references and verifies the final ids are unique.
// Records that already carry a valid identifier keep it, so running Process
// on its own output generates nothing.
//
// Records are modified in place. On error the batch must be discarded: some
// records may already hold new identifiers.
func (p *Processor) Process(records []Record) (*Result, error) {
	r := &run{
		opts:   p.opts,
		format: p.opts.Format(),
		gen:    NewGenerator(p.opts.Format(), p.genOpts...),
		remap:  make(map[string]string),
	}

	ordered, err := Order(records, r.opts.IDField, r.opts.ParentField, r.format, r.opts.Method)
	if err != nil {
		return nil, err
	}
	r.result = &Result{Records: ordered, Total: len(ordered)}

	p.logger.Debug("checking label uniqueness", "field", r.opts.LabelField)
	if err := CheckUnique(ordered, r.opts.LabelField); err != nil {
		return nil, fmt.Errorf("label pre-check failed: %w", err)
	}

	// Claim every valid id up front so a generated id can never collide with
	// one that appears later in processing order.
	for _, rec := range ordered {
		id, ok := rec.Lookup(r.opts.IDField)
		if !ok {
			continue
		}
		valid, err := r.format.IsValid(id, r.opts.Method)
		if err != nil {
			return nil, err
		}
		if valid {
			r.gen.Register(id)
		}
	}

	for i, rec := range ordered {
		updated, err := p.processRecord(r, i, rec)
		if err != nil {
			return nil, err
		}
		if updated {
			r.result.Updated++
		}
	}

	p.logger.Debug("checking id uniqueness", "field", r.opts.IDField)
	if err := CheckUnique(ordered, r.opts.IDField); err != nil {
		return nil, fmt.Errorf("id post-check failed: %w", err)
	}

	r.result.Remap = r.remap
	return r.result, nil
}

func (p *Processor) processRecord(r *run, index int, rec Record) (bool, error) {
	updated := false

	current, hasID := rec.Lookup(r.opts.IDField)
	valid := false
	if hasID {
		var err error
		if valid, err = r.format.IsValid(current, r.opts.Method); err != nil {
			return false, err
		}
	}

	if valid {
		r.gen.Register(current)
		p.logger.Debug("registered existing id", "id", current)
	} else {
		label, ok := rec.Lookup(r.opts.LabelField)
		if !ok {
			e := newError(KindUniqueness, "process",
				"record %s has no value for label field %q", describe(rec, index, r.opts.LabelField), r.opts.LabelField)
			return false, e
		}

		newID, err := r.gen.Generate(label, r.opts.Method,
			WithCollisionCheck(r.opts.CheckCollision),
			WithMaxAttempts(r.opts.MaxAttempts),
		)
		if err != nil {
			return false, err
		}
		if hasID {
			r.remap[current] = newID
		}
		rec.Set(r.opts.IDField, newID)
		r.result.Generated++
		updated = true

		p.logger.Debug("generated new id", "label", label, "old_id", current, "id", newID)
	}

	if r.opts.ParentField == "" {
		return updated, nil
	}

	parent, ok := rec.Lookup(r.opts.ParentField)
	if !ok {
		return updated, nil
	}
	parentValid, err := r.format.IsValid(parent, r.opts.Method)
	if err != nil {
		return false, err
	}
	if parentValid {
		return updated, nil
	}

	newParent, ok := r.remap[parent]
	if !ok {
		e := newError(KindInternal, "process",
			"no remapped id for parent of record %s", describe(rec, index, r.opts.LabelField))
		e.Values = []string{parent}
		return false, e
	}
	rec.Set(r.opts.ParentField, newParent)
	p.logger.Debug("remapped parent", "old_parent", parent, "parent", newParent)

	return true, nil
}
