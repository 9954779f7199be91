package main

import (
	"github.com/spf13/cobra"

	"smalirename/internal/workflow"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var jsonOutput bool
	var showMapping bool

	cmd := &cobra.Command{
		Use:   "run <root>",
		Short: "Rename unsafe smali files and rewrite every reference to them",
		Long: "Validate an apktool output directory, rename every smali file whose name\n" +
			"contains characters outside [A-Za-z0-9_] to Class<n>, and rewrite the\n" +
			"old names in every smali file and AndroidManifest.xml.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args[0])
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, closeLogs, err := ctx.newLogger(cmd)
			if err != nil {
				return err
			}
			defer closeLogs()

			runner := workflow.NewRunner(cfg, root, logger, workflow.WithDryRun(dryRun))
			report, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, report)
			}
			printRunSummary(cmd.OutOrStdout(), report, showMapping)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan renames and count replacements without changing any file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the run report as JSON")
	cmd.Flags().BoolVar(&showMapping, "show-mapping", false, "Print the old to new identifier table")
	return cmd
}
