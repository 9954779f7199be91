package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"smalirename/internal/mapping"
	"smalirename/internal/tree"
	"smalirename/internal/workflow"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range r {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, columns)
	for i := range configs {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func renderMapping(entries []mapping.Entry) string {
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{strconv.Itoa(i), strconv.Quote(e.Old), e.New})
	}
	return renderTable([]string{"#", "Old", "New"}, rows, []columnAlignment{alignRight, alignLeft, alignLeft})
}

func renderRenames(root string, renames []tree.Rename) string {
	rows := make([][]string, 0, len(renames))
	for _, rn := range renames {
		rows = append(rows, []string{relativeTo(root, rn.Dir), rn.OldName, rn.NewName})
	}
	return renderTable([]string{"Directory", "From", "To"}, rows, nil)
}

func printRunSummary(out io.Writer, report *workflow.Report, showMapping bool) {
	fmt.Fprintf(out, "Root: %s\n", report.Root)
	fmt.Fprintf(out, "Run ID: %s\n", report.RunID)
	fmt.Fprintf(out, "Dry run: %s\n", yesNo(report.DryRun))
	fmt.Fprintf(out, "Mapping size: %d\n", report.MappingSize())
	if report.DryRun {
		fmt.Fprintf(out, "Renames planned: %d\n", len(report.Renames))
		fmt.Fprintf(out, "Replacements pending: %d\n", report.Replacements)
	} else {
		fmt.Fprintf(out, "Files renamed: %d\n", len(report.Renames))
		fmt.Fprintf(out, "Files rewritten: %d\n", report.FilesRewritten)
		fmt.Fprintf(out, "Replacements: %d\n", report.Replacements)
	}
	if showMapping && report.MappingSize() > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderMapping(report.Mapping))
		fmt.Fprintln(out, renderRenames(report.Root, report.Renames))
	}
	switch {
	case report.MappingSize() == 0:
		fmt.Fprintln(out, "No classes with bad names; nothing to replace")
	case report.DryRun:
		fmt.Fprintln(out, "Dry run complete; no files were changed")
	default:
		fmt.Fprintln(out, "Job done!")
	}
}
