// Package base holds the state and helpers shared by every termid command.
package base

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
)

// Command is embedded by every command implementation.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// Fs is the filesystem vocabulary and configuration files are read from
	// and written to.
	Fs afero.Fs
}

// NewCommand returns a Command writing to ui and operating on the OS
// filesystem.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log: log,
		UI:  ui,
		Fs:  afero.NewOsFs(),
	}
}
