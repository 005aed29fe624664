package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/bulkedit/pkg/bulkedit/config"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/history"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/logging"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/output"
	"github.com/jamesainslie/bulkedit/pkg/bulkedit/types"
)

// loadConfig loads the file/env configuration and applies command-line
// overrides on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("editor") {
		cfg.Editor, _ = flags.GetString("editor")
	}
	if flags.Changed("stealth") {
		cfg.Stealth, _ = flags.GetBool("stealth")
	}
	if flags.Changed("output") {
		cfg.Output, _ = flags.GetString("output")
	}
	if flags.Changed("no-trash") {
		noTrash, _ := flags.GetBool("no-trash")
		cfg.Trash.Enabled = !noTrash
	}
	if yes, _ := flags.GetBool("yes"); yes {
		cfg.Confirm = false
	}

	return cfg, nil
}

// initLogging wires the logging system from the effective configuration.
// A logging failure downgrades to a warning: the batch is more important
// than its log.
func initLogging(cfg *config.Config) {
	logCfg := logging.Config{
		Level: cfg.Logging.Level,
		Path:  cfg.Logging.Path,
	}
	if getVerbose() {
		logCfg.Level = "debug"
		logCfg.ConsoleLevel = "debug"
	}
	if err := logging.Init(logCfg); err != nil {
		printWarn("logging disabled: %v", err)
	}
}

// renderReport prints the applied-batch report in the configured format.
func renderReport(cfg *config.Config, rep *types.Report) {
	if getQuiet() {
		return
	}

	format := cfg.Output
	if format == "" {
		format = config.DefaultOutput
	}

	text, err := output.Render(format, rep)
	if err != nil {
		printWarn("%v", err)
		text, _ = output.Render("plain", rep)
	}
	fmt.Print(text)

	if rep.WorkspaceTouched {
		logging.Get("report").Info("workspace listing is stale", "operation", rep.Operation)
	}
}

// appendJournal records an applied batch in the history journal. Journal
// trouble is never a batch failure.
func appendJournal(cfg *config.Config, rep *types.Report) {
	if !cfg.JournalEnabled() || rep.Mutated() == 0 {
		return
	}

	j, err := history.Open(cfg.History.Path)
	if err != nil {
		logging.Get("history").Warn("journal unavailable", "error", err)
		return
	}
	defer j.Close()

	if err := j.Append(history.FromReport(rep)); err != nil {
		logging.Get("history").Warn("journal append failed", "error", err)
	}
	if err := j.Prune(cfg.History.RetentionDays); err != nil {
		logging.Get("history").Warn("journal prune failed", "error", err)
	}
}
