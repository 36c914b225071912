package termid

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultIDField is the id field used when Options.IDField is empty.
const DefaultIDField = "id"

// Options configures a Processor.
type Options struct {
	// Namespace is the common identifier prefix. Required.
	Namespace string

	// TypePrefix is an optional segment between namespace and unique part.
	TypePrefix string

	// LabelField names the human-readable field used as hash input. It must be
	// present and unique on every record. Required.
	LabelField string

	// IDField names the identifier field. Defaults to "id".
	IDField string

	// ParentField names a field holding another record's id. When empty no
	// dependency ordering or parent remapping is done.
	ParentField string

	// Method selects the unique part encoding. Defaults to MethodHash.
	Method Method

	// CheckCollision enables registry checks during generation.
	CheckCollision bool

	// MaxAttempts bounds the candidates tried per label. Defaults to
	// DefaultMaxAttempts.
	MaxAttempts int
}

// DefaultOptions returns Options with every default filled in. Namespace and
// LabelField are left empty since they have no sensible default.
func DefaultOptions() Options {
	return Options{
		IDField:        DefaultIDField,
		Method:         MethodHash,
		CheckCollision: true,
		MaxAttempts:    DefaultMaxAttempts,
	}
}

// withDefaults fills zero-valued optional settings. CheckCollision is a bool
// and cannot be defaulted here; use DefaultOptions as a starting point.
func (o Options) withDefaults() Options {
	if o.IDField == "" {
		o.IDField = DefaultIDField
	}
	if o.Method == "" {
		o.Method = MethodHash
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	return o
}

// Validate checks that required settings are present and consistent.
func (o Options) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Namespace, validation.Required),
		validation.Field(&o.LabelField, validation.Required),
		validation.Field(&o.IDField, validation.Required,
			validation.NotIn(o.LabelField, o.ParentField).Error("must differ from label and parent fields")),
		validation.Field(&o.Method, validation.Required, validation.In(MethodUUID, MethodHash)),
		validation.Field(&o.MaxAttempts, validation.Min(1)),
	)
}

// Format returns the identifier format described by o.
func (o Options) Format() Format {
	return Format{Namespace: o.Namespace, TypePrefix: o.TypePrefix}
}
