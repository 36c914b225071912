// Package config loads termid run settings from HCL or YAML files.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/hashicorp-forge/termid/pkg/termid"
)

// Config holds the settings for one identifier assignment run. Every field
// can also be set on the command line, which takes precedence.
type Config struct {
	// Data is the path of the vocabulary document.
	Data string `hcl:"data,optional" mapstructure:"data"`

	// Target is the top-level key holding the entity list.
	Target string `hcl:"target,optional" mapstructure:"target"`

	// Output is where the updated document is written. Defaults to Data.
	Output string `hcl:"output,optional" mapstructure:"output"`

	Namespace  string `hcl:"namespace,optional" mapstructure:"namespace"`
	TypePrefix string `hcl:"type_prefix,optional" mapstructure:"type_prefix"`
	Label      string `hcl:"label,optional" mapstructure:"label"`
	IDKey      string `hcl:"id_key,optional" mapstructure:"id_key"`
	ParentKey  string `hcl:"parent_key,optional" mapstructure:"parent_key"`
	Method     string `hcl:"method,optional" mapstructure:"method"`

	MaxAttempts int `hcl:"max_attempts,optional" mapstructure:"max_attempts"`

	// CheckCollision is a pointer so an unset value can be told apart from
	// an explicit false.
	CheckCollision *bool `hcl:"check_collision,optional" mapstructure:"check_collision"`

	DryRun  bool `hcl:"dry_run,optional" mapstructure:"dry_run"`
	Verbose bool `hcl:"verbose,optional" mapstructure:"verbose"`
}

// LoadFile parses the configuration file at path. Files ending in .yaml or
// .yml are read as YAML; anything else is read as HCL.
func LoadFile(fs afero.Fs, path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("configuration file path is required")
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading configuration file: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := decodeYAML(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file: %w", err)
		}
	default:
		// hclsimple picks the syntax from the extension, so anything that is
		// not JSON is parsed as native HCL.
		name := path
		if ext := filepath.Ext(path); ext != ".hcl" && ext != ".json" {
			name = path + ".hcl"
		}
		if err := hclsimple.Decode(name, data, nil, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file: %w", err)
		}
	}

	return &cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// Merge copies every set field of override into c.
func (c *Config) Merge(override *Config) {
	if override == nil {
		return
	}
	setString(&c.Data, override.Data)
	setString(&c.Target, override.Target)
	setString(&c.Output, override.Output)
	setString(&c.Namespace, override.Namespace)
	setString(&c.TypePrefix, override.TypePrefix)
	setString(&c.Label, override.Label)
	setString(&c.IDKey, override.IDKey)
	setString(&c.ParentKey, override.ParentKey)
	setString(&c.Method, override.Method)
	if override.MaxAttempts != 0 {
		c.MaxAttempts = override.MaxAttempts
	}
	if override.CheckCollision != nil {
		v := *override.CheckCollision
		c.CheckCollision = &v
	}
	c.DryRun = c.DryRun || override.DryRun
	c.Verbose = c.Verbose || override.Verbose
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// Validate checks that the settings required for a run are present. Identifier
// settings are validated again by termid.NewProcessor.
func (c *Config) Validate() error {
	methods := make([]any, len(termid.Methods))
	for i, m := range termid.Methods {
		methods[i] = string(m)
	}

	return validation.ValidateStruct(c,
		validation.Field(&c.Data, validation.Required),
		validation.Field(&c.Target, validation.Required),
		validation.Field(&c.Namespace, validation.Required),
		validation.Field(&c.Label, validation.Required),
		validation.Field(&c.Method, validation.In(methods...)),
		validation.Field(&c.MaxAttempts, validation.Min(0)),
	)
}

// OutputPath returns the path the updated document is written to.
func (c *Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	return c.Data
}

// Options converts c into processor options, applying defaults for unset
// fields.
func (c *Config) Options() termid.Options {
	opts := termid.DefaultOptions()
	opts.Namespace = c.Namespace
	opts.TypePrefix = c.TypePrefix
	opts.LabelField = c.Label
	opts.ParentField = c.ParentKey
	if c.IDKey != "" {
		opts.IDField = c.IDKey
	}
	if c.Method != "" {
		opts.Method = termid.Method(c.Method)
	}
	if c.MaxAttempts != 0 {
		opts.MaxAttempts = c.MaxAttempts
	}
	if c.CheckCollision != nil {
		opts.CheckCollision = *c.CheckCollision
	}
	return opts
}
