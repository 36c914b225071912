package base

import (
	"fmt"
	"strconv"

	"github.com/spf13/afero"

	"github.com/hashicorp-forge/termid/internal/config"
)

// RunFlags binds the settings shared by commands that operate on a vocabulary
// document.
type RunFlags struct {
	ConfigPath string
	Flags      config.Config
	collision  optionalBool
}

// Register adds the shared flags to f.
func (r *RunFlags) Register(f *FlagSet) {
	f.StringVar(&r.ConfigPath, "config", "",
		"Path to an HCL or YAML configuration file. Flags override its values.")
	f.StringVar(&r.Flags.Data, "data", "", "(Required) Path to the vocabulary YAML file.")
	f.StringVar(&r.Flags.Target, "target", "", "(Required) Top-level key holding the entity list.")
	f.StringVar(&r.Flags.Namespace, "namespace", "", "(Required) Identifier namespace prefix, e.g. \"ex:\".")
	f.StringVar(&r.Flags.Label, "label", "", "(Required) Field holding each entity's unique label.")
	f.StringVar(&r.Flags.TypePrefix, "type-prefix", "", "Optional segment between namespace and unique part.")
	f.StringVar(&r.Flags.IDKey, "id-key", "", "Identifier field. Defaults to \"id\".")
	f.StringVar(&r.Flags.ParentKey, "parent-key", "", "Field holding a parent entity's id.")
	f.StringVar(&r.Flags.Method, "method", "", "Generation method, \"hash\" (default) or \"uuid\".")
	f.IntVar(&r.Flags.MaxAttempts, "max-attempts", 0, "Candidates tried per label before giving up. Defaults to 10.")
	f.Var(&r.collision, "collision-check", "Check generated ids against ids already assigned. Defaults to true.")
	f.BoolFunc("no-collision-check", "Disable collision checking.", func(string) error {
		return r.collision.Set("false")
	})
	f.BoolVar(&r.Flags.Verbose, "verbose", false, "Print extra information including every replaced id.")
}

// Resolve loads the configuration file, if any, applies flag overrides and
// validates the result.
func (r *RunFlags) Resolve(fs afero.Fs) (*config.Config, error) {
	cfg := &config.Config{}
	if r.ConfigPath != "" {
		loaded, err := config.LoadFile(fs, r.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	overrides := r.Flags
	if r.collision.set {
		v := r.collision.value
		overrides.CheckCollision = &v
	}
	cfg.Merge(&overrides)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// optionalBool is a boolean flag that records whether it was given.
type optionalBool struct {
	set   bool
	value bool
}

func (b *optionalBool) String() string {
	if !b.set {
		return ""
	}
	return strconv.FormatBool(b.value)
}

func (b *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.set, b.value = true, v
	return nil
}

func (b *optionalBool) IsBoolFlag() bool { return true }
