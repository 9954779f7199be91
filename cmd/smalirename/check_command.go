package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"smalirename/internal/faults"
	"smalirename/internal/preflight"
	"smalirename/internal/workflow"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check <root>",
		Short: "Report layout checks and a structural scan without changing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args[0])
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			printLines(out, renderSectionHeader("Layout", colorize))
			results := preflight.CheckLayout(root, cfg)
			failed := -1
			for i, result := range results {
				kind := statusOK
				if !result.Passed {
					kind = statusError
					if failed < 0 {
						failed = i
					}
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Path+" ("+result.Detail+")", colorize))
			}
			if failed >= 0 {
				first := results[failed]
				return faults.Wrap(faults.ErrPrecondition, preflight.Stage, first.Path, first.Name+": "+first.Detail, nil)
			}

			logger, closeLogs, err := ctx.newLogger(cmd)
			if err != nil {
				return err
			}
			defer closeLogs()
			fmt.Fprintln(out)
			printLines(out, renderSectionHeader("Leaf tree", colorize))
			report, err := workflow.NewRunner(cfg, root, logger, workflow.WithDryRun(true)).Run(cmd.Context())
			if err != nil {
				fmt.Fprintln(out, renderStatusLine("Structure", statusError, err.Error(), colorize))
				return err
			}
			fmt.Fprintln(out, renderStatusLine("Structure", statusOK,
				fmt.Sprintf("%d files in %d directories", report.Files, report.Directories), colorize))

			kind := statusOK
			if report.MappingSize() > 0 {
				kind = statusWarn
			}
			fmt.Fprintln(out, renderStatusLine("Unsafe names", kind,
				fmt.Sprintf("%d identifiers, %d files to rename, %d references", report.MappingSize(), len(report.Renames), report.Replacements), colorize))
			if report.MappingSize() > 0 {
				fmt.Fprintln(out, renderMapping(report.Mapping))
			}
			return nil
		},
	}
}

func printLines(out io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}
