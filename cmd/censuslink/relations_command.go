package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newRelationsCommand(ctx *commandContext) *cobra.Command {
	var showEdges bool

	cmd := &cobra.Command{
		Use:   "relations [earlier.csv] [later.csv]",
		Short: "Infer kinship relations and update the verified person table",
		Long: "Relations classifies later-census household roles around identified heads, " +
			"matches each member back to the earlier enumeration, and propagates the " +
			"resulting kinship edges through the verified person table.",
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

			result, err := runner.RunRelations(cmd.Context(), earlier, later)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if showEdges && len(result.Edges) > 0 {
				rows := make([][]string, 0, len(result.Edges))
				for _, edge := range result.Edges {
					rows = append(rows, []string{
						edge.HeadEgoID,
						string(edge.Kind),
						edge.Member.FullName,
						edge.RelativeEgoID(),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Head", "Kind", "Member", "Relative"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight}))
			}

			rows := [][]string{
				{"Edges inferred", strconv.Itoa(len(result.Edges))},
				{"Edges applied", strconv.Itoa(result.Stats.Applied)},
				{"Edges skipped", strconv.Itoa(result.Stats.Skipped)},
				{"Edges unstored", strconv.Itoa(result.Stats.Unstored)},
				{"Closure passes", strconv.Itoa(result.Stats.ClosurePasses)},
				{"Verified persons", strconv.Itoa(result.Persons)},
				{"Duration", result.Duration.Round(timeRounding).String()},
			}
			fmt.Fprintln(out, renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showEdges, "edges", false, "List every inferred kinship edge")
	return cmd
}
