package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"censuslink/internal/pipeline"
	"censuslink/internal/verified"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var output string
	var assign bool
	var assignOut string
	var cutoff int
	var maxTier int

	cmd := &cobra.Command{
		Use:   "match [earlier.csv] [later.csv]",
		Short: "Link an earlier enumeration against a later one",
		Long: "Match scores candidate pairs from shared blocking keys, resolves them " +
			"into one-to-one tiers, and boosts household co-members of tier-1 matches.",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, _, err := ctx.newRunner()
			if err != nil {
				return err
			}
			cfg := ctx.config

			earlier, later := cfg.Datasets.EarlierCSV, cfg.Datasets.LaterCSV
			if len(args) > 0 {
				earlier = args[0]
			}
			if len(args) > 1 {
				later = args[1]
			}
			if earlier == "" || later == "" {
				return errors.New("both enumeration files are required (arguments or [datasets] config)")
			}

			result, err := runner.RunMatch(cmd.Context(), earlier, later)
			if err != nil {
				return err
			}

			if assign || assignOut != "" {
				store, err := verified.Open(cfg.Paths.VerifiedDB)
				if err != nil {
					return err
				}
				defer store.Close()
				nextID, err := store.NextEgoID(cmd.Context())
				if err != nil {
					return err
				}
				assignments := pipeline.AssignEgoIDs(result.Tiers, maxTier, cutoff, nextID)
				minted := 0
				for _, a := range assignments {
					if !a.New {
						continue
					}
					// Reserve the id so later runs never remint it.
					if err := store.Upsert(cmd.Context(), &verified.Person{EgoID: a.EgoID}); err != nil {
						return err
					}
					minted++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Assigned %d ego ids (%d newly minted)\n", len(assignments), minted)

				if assignOut != "" {
					f, err := os.Create(assignOut)
					if err != nil {
						return fmt.Errorf("create assignment file: %w", err)
					}
					defer f.Close()
					if err := pipeline.WriteAssignmentsCSV(f, assignments); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d assignments to %s\n", len(assignments), assignOut)
				}
			}

			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer f.Close()
				if err := pipeline.WriteMatchCSV(f, result.Tiers); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d pairs to %s\n", result.Tiers.Total(), output)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderMatchSummary(result))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write accepted pairs to a CSV file")
	cmd.Flags().BoolVar(&assign, "assign-egoids", false, "Carry or mint persistent ego ids for matched pairs")
	cmd.Flags().StringVar(&assignOut, "assign-out", "", "Write the line-to-egoid assignment mapping to a CSV file")
	cmd.Flags().IntVar(&cutoff, "cutoff", 0, "Minimum pair score eligible for ego id assignment")
	cmd.Flags().IntVar(&maxTier, "max-tier", 1, "Highest tier number eligible for ego id assignment")
	return cmd
}

func renderMatchSummary(result *pipeline.MatchResult) string {
	rows := [][]string{
		{"Earlier records", strconv.Itoa(result.EarlierRecords)},
		{"Later records", strconv.Itoa(result.LaterRecords)},
		{"Dropped rows", strconv.Itoa(result.DroppedRows)},
		{"Blocks", strconv.Itoa(result.Blocks)},
		{"Candidates", strconv.Itoa(result.Candidates)},
		{"Tier 1", strconv.Itoa(len(result.Tiers.Tier1))},
		{"Tier 2", strconv.Itoa(len(result.Tiers.Tier2))},
		{"Tier 3", strconv.Itoa(len(result.Tiers.Tier3))},
		{"Boosted", strconv.Itoa(result.Boosted)},
		{"Duration", result.Duration.Round(timeRounding).String()},
	}
	return renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
}
