package version

import (
	"github.com/hashicorp-forge/termid/internal/cmd/base"
	"github.com/hashicorp-forge/termid/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version of termid"
}

func (c *Command) Help() string {
	return `Usage: termid version

  Prints the version of termid.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output("termid " + version.Version)
	return 0
}
