package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/termid/internal/cmd/base"
	"github.com/hashicorp-forge/termid/internal/cmd/commands/check"
	"github.com/hashicorp-forge/termid/internal/cmd/commands/generate"
	"github.com/hashicorp-forge/termid/internal/cmd/commands/version"
)

func initCommands(log hclog.Logger, ui cli.Ui) map[string]cli.CommandFactory {
	b := base.NewCommand(log, ui)

	return map[string]cli.CommandFactory{
		"check": func() (cli.Command, error) {
			return &check.Command{Command: b}, nil
		},
		"generate": func() (cli.Command, error) {
			return &generate.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
