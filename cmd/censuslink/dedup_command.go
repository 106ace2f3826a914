package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"censuslink/internal/pipeline"
)

const timeRounding = 10 * time.Millisecond

func newDedupCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "dedup <census.csv>",
		Short: "Find likely duplicate rows within one enumeration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, _, err := ctx.newRunner()
			if err != nil {
				return err
			}
			cfg := ctx.config

			path := cfg.Datasets.EarlierCSV
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				return errors.New("an enumeration file is required (argument or [datasets] config)")
			}

			result, err := runner.RunDedup(cmd.Context(), path)
			if err != nil {
				return err
			}

			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer f.Close()
				if err := pipeline.WriteDedupCSV(f, result.Tiers); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d pairs to %s\n", result.Tiers.Total(), output)
			}

			rows := [][]string{
				{"Records", strconv.Itoa(result.Records)},
				{"Dropped rows", strconv.Itoa(result.DroppedRows)},
				{"Blocks", strconv.Itoa(result.Blocks)},
				{"Candidates", strconv.Itoa(result.Candidates)},
				{"Tier 1", strconv.Itoa(len(result.Tiers.Tier1))},
				{"Tier 2", strconv.Itoa(len(result.Tiers.Tier2))},
				{"Tier 3", strconv.Itoa(len(result.Tiers.Tier3))},
				{"Duration", result.Duration.Round(timeRounding).String()},
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write duplicate pairs to a CSV file")
	return cmd
}
