package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"censuslink/internal/verified"
)

func newVerifiedCommand(ctx *commandContext) *cobra.Command {
	verifiedCmd := &cobra.Command{
		Use:   "verified",
		Short: "Inspect and transfer the verified person table",
	}

	verifiedCmd.AddCommand(newVerifiedImportCommand(ctx))
	verifiedCmd.AddCommand(newVerifiedExportCommand(ctx))
	verifiedCmd.AddCommand(newVerifiedShowCommand(ctx))

	return verifiedCmd
}

func newVerifiedImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <verified.csv>",
		Short: "Load verified persons from a CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer f.Close()

			people, err := verified.ReadCSV(f)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			store, err := verified.Open(cfg.Paths.VerifiedDB)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.UpsertAll(cmd.Context(), people); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d verified persons into %s\n", len(people), cfg.Paths.VerifiedDB)
			return nil
		},
	}
}

func newVerifiedExportCommand(ctx *commandContext) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the verified person table as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := verified.Open(cfg.Paths.VerifiedDB)
			if err != nil {
				return err
			}
			defer store.Close()

			people, err := store.All(cmd.Context())
			if err != nil {
				return err
			}

			writer := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				defer f.Close()
				writer = f
			}
			if err := verified.WriteCSV(writer, people); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d verified persons to %s\n", len(people), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (default stdout)")
	return cmd
}

func newVerifiedShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show [egoid]",
		Short: "Show one verified person, or the whole table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := verified.Open(cfg.Paths.VerifiedDB)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				person, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if person == nil {
					return fmt.Errorf("no verified person with ego id %q", args[0])
				}
				rows := make([][]string, 0, len(verified.Columns))
				for i, value := range person.Row() {
					rows = append(rows, []string{verified.Columns[i], value})
				}
				fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows, nil))
				return nil
			}

			people, err := store.All(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(people))
			for _, p := range people {
				rows = append(rows, p.Row())
			}
			fmt.Fprintln(out, renderTable(verified.Columns, rows, []columnAlignment{alignRight}))
			fmt.Fprintf(out, "%d verified persons\n", len(people))
			return nil
		},
	}
}
