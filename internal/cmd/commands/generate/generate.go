package generate

import (
	"flag"
	"fmt"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/termid/internal/cmd/base"
	"github.com/hashicorp-forge/termid/pkg/termid"
	"github.com/hashicorp-forge/termid/pkg/vocabfile"
)

type Command struct {
	*base.Command

	run        base.RunFlags
	flagOutput string
	flagDryRun bool
}

func (c *Command) Synopsis() string {
	return "Assign identifiers to vocabulary entities that lack a valid one"
}

func (c *Command) Help() string {
	return `Usage: termid generate -data FILE -target KEY -namespace NS -label FIELD [options]

  Assigns an identifier to every entity in the target list that does not
  already carry a valid one, and rewrites parent references that pointed at
  replaced identifiers. Entities with valid identifiers are left unchanged, so
  running the command twice is safe.

  The updated document is written back to the data file unless -output or
  -dry-run is given.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(
		flag.NewFlagSet("generate", flag.ContinueOnError))

	c.run.Register(f)
	f.StringVar(
		&c.flagOutput, "output", "",
		"Path to write the updated document to. Defaults to the data file.",
	)
	f.BoolVar(
		&c.flagDryRun, "dry-run", false,
		"Only print what would be done without writing any file.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	logger, ui := c.Log, c.UI

	// Parse flags.
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	c.run.Flags.Output = c.flagOutput
	c.run.Flags.DryRun = c.flagDryRun

	cfg, err := c.run.Resolve(c.Fs)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	if cfg.Verbose {
		logger.SetLevel(hclog.Debug)
	}

	// Load the document.
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
	logger.Debug("loaded vocabulary",
		"path", cfg.Data,
		"target", cfg.Target,
		"entities", len(records),
	)

	// Assign identifiers.
	processor, err := termid.NewProcessor(cfg.Options(), termid.WithLogger(logger.Named("termid")))
	if err != nil {
		ui.Error(err.Error())
		return 1
	}
	result, err := processor.Process(records)
	if err != nil {
		logger.Error("error assigning identifiers", "error", err, "kind", termid.KindOf(err))
		ui.Error(fmt.Sprintf("error assigning identifiers: %v", err))
		return 1
	}

	// Display summary.
	ui.Info(fmt.Sprintf("Processed %d entities in %q", result.Total, cfg.Target))
	ui.Info(fmt.Sprintf("  Generated: %d", result.Generated))
	ui.Info(fmt.Sprintf("  Updated:   %d", result.Updated))
	if cfg.Verbose && len(result.Remap) > 0 {
		ui.Info("Replaced identifiers:")
		old := make([]string, 0, len(result.Remap))
		for id := range result.Remap {
			old = append(old, id)
		}
		sort.Strings(old)
		for _, id := range old {
			ui.Info(fmt.Sprintf("  %s -> %s", id, result.Remap[id]))
		}
	}

	if cfg.DryRun {
		ui.Warn("DRY RUN mode enabled - no changes were written")
		return 0
	}
	if result.Updated == 0 && cfg.OutputPath() == cfg.Data {
		ui.Info("All entities already have valid identifiers")
		return 0
	}

	out := cfg.OutputPath()
	if err := doc.Save(c.Fs, out); err != nil {
		ui.Error(err.Error())
		return 1
	}
	ui.Info(fmt.Sprintf("Wrote %s", out))

	return 0
}
