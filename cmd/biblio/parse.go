package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitlib/biblio-migrate/internal/cli"
	"github.com/vitlib/biblio-migrate/internal/common"
	"github.com/vitlib/biblio-migrate/internal/config"
	"github.com/vitlib/biblio-migrate/internal/holdings"
)

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <holdings string>",
		Short: "Classify a single holdings string",
		Long: `Run one raw holdings string through the classifier and print the
resulting fields. Useful for checking how a puzzling row from the legacy
export will migrate before running a full ingest.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runParse,
	}

	cmd.Flags().String("item-type", "", "item type hint (e.g. BK, EB)")

	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	itemType, _ := cmd.Flags().GetString("item-type")
	raw := strings.Join(args, " ")

	parser := holdings.NewParser(config.HoldingsOptions())
	item, err := parser.Parse(raw, itemType)
	if errors.Is(err, common.ErrNoHoldingsData) {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("no holdings data"))
		return nil
	}
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderItem(item))
	return nil
}
