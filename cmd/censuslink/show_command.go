package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"censuslink/internal/census"
	"censuslink/internal/config"
	"censuslink/internal/ingest"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var contextRows int

	cmd := &cobra.Command{
		Use:   "show <earlier|later|census.csv> [line]",
		Short: "Summarize an enumeration or show context around a line",
		Long: "Show without a line prints summary counts for the enumeration. With a " +
			"line it prints the surrounding rows in source order, the requested row " +
			"marked, for manual review of a match in its household context.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			path, err := resolveEnumerationPath(cfg, args[0])
			if err != nil {
				return err
			}
			records, err := ingest.ReadCensusFile(path)
			if err != nil {
				return err
			}

			if len(args) == 2 {
				return renderContext(cmd, records, args[1], contextRows)
			}
			renderEnumerationSummary(cmd, records)
			return nil
		},
	}

	cmd.Flags().IntVarP(&contextRows, "context", "n", 12, "Rows shown on each side of the requested line")
	return cmd
}

// resolveEnumerationPath maps the earlier/later dataset names to their
// configured files; anything else is taken as a path.
func resolveEnumerationPath(cfg *config.Config, arg string) (string, error) {
	switch strings.ToLower(arg) {
	case "earlier":
		if cfg.Datasets.EarlierCSV == "" {
			return "", fmt.Errorf("no earlier dataset configured ([datasets] earlier_csv)")
		}
		return cfg.Datasets.EarlierCSV, nil
	case "later":
		if cfg.Datasets.LaterCSV == "" {
			return "", fmt.Errorf("no later dataset configured ([datasets] later_csv)")
		}
		return cfg.Datasets.LaterCSV, nil
	}
	return arg, nil
}

func renderContext(cmd *cobra.Command, records *census.Collection, line string, n int) error {
	window := records.Context(line, n)
	if window == nil {
		return fmt.Errorf("line %q not found", line)
	}
	out := cmd.OutOrStdout()
	for _, r := range window {
		marker := "   "
		if r.Line == line {
			marker = ">> "
		}
		fmt.Fprintln(out, marker+contextRow(r))
	}
	return nil
}

func contextRow(r *census.Record) string {
	year := ""
	if r.BirthYear != 0 {
		year = strconv.Itoa(r.BirthYear)
	}
	fields := []string{
		r.Line, r.FullName, r.Gender, year, r.BirthPlace, r.Relation, r.Family, r.EgoID,
	}
	return strings.Join(fields, " | ")
}

func renderEnumerationSummary(cmd *cobra.Command, records *census.Collection) {
	identified := 0
	heads := 0
	for _, r := range records.Records {
		if r.EgoID != "" {
			identified++
		}
		if r.Head {
			heads++
		}
	}
	households := census.GroupHouseholds(records)

	rows := [][]string{
		{"Records", strconv.Itoa(records.Len())},
		{"Dropped rows", strconv.Itoa(records.Dropped)},
		{"Households", strconv.Itoa(len(households))},
		{"Heads", strconv.Itoa(heads)},
		{"With ego id", strconv.Itoa(identified)},
	}
	fmt.Fprintln(cmd.OutOrStdout(),
		renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
}
