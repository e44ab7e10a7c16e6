package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitlib/biblio-migrate/internal/cli"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show table counts for the migrated database",
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	biblioCount, err := store.GetBiblioCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count biblios: %w", err)
	}
	itemCount, err := store.GetItemCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count items: %w", err)
	}

	rows := strings.Join([]string{
		fmt.Sprintf("Biblio records  %d", biblioCount),
		fmt.Sprintf("Physical items  %d", itemCount),
	}, "\n")
	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox("Database", rows))
	return nil
}
