package check

import (
	"flag"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/termid/internal/cmd/base"
	"github.com/hashicorp-forge/termid/pkg/termid"
	"github.com/hashicorp-forge/termid/pkg/vocabfile"
)

type Command struct {
	*base.Command

	run base.RunFlags
}

func (c *Command) Synopsis() string {
	return "Report vocabulary entities with missing or invalid identifiers"
}

func (c *Command) Help() string {
	return `Usage: termid check -data FILE -target KEY -namespace NS -label FIELD [options]

  Audits the target list without changing it. Reports every entity whose
  label is missing or repeated, whose identifier is missing, malformed or
  repeated, and whose parent reference is not a valid identifier.

  Exits with status 1 when anything is reported.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(
		flag.NewFlagSet("check", flag.ContinueOnError))
	c.run.Register(f)
	return f
}

func (c *Command) Run(args []string) int {
	logger, ui := c.Log, c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	cfg, err := c.run.Resolve(c.Fs)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	if cfg.Verbose {
		logger.SetLevel(hclog.Debug)
	}

	doc, err := vocabfile.Load(c.Fs, cfg.Data)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	records, err := doc.Records(cfg.Target)
	if err != nil {
		ui.Error(fmt.Sprintf("error reading entities: %v", err))
		return 1
	}

	findings, err := termid.Audit(records, cfg.Options())
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	if findings == nil {
		ui.Info(fmt.Sprintf("All %d entities in %q have valid identifiers", len(records), cfg.Target))
		return 0
	}

	for _, finding := range findings.Errors {
		ui.Error(finding.Error())
	}
	logger.Debug("audit finished", "entities", len(records), "problems", findings.Len())
	ui.Error(fmt.Sprintf("Found %d problems in %d entities", findings.Len(), len(records)))
	return 1
}
