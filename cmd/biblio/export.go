package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitlib/biblio-migrate/internal/cli"
	"github.com/vitlib/biblio-migrate/internal/common"
	"github.com/vitlib/biblio-migrate/internal/export"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export migrated data",
	}

	cmd.AddCommand(exportItemsCmd())
	cmd.AddCommand(exportReportCmd())

	return cmd
}

func exportItemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Dump all migrated items to a Parquet file",
		RunE:  runExportItems,
	}

	cmd.Flags().String("output", "items.parquet", "output file path")

	return cmd
}

func runExportItems(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	output, _ := cmd.Flags().GetString("output")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	exporter, err := export.NewExporter(store)
	if err != nil {
		return err
	}

	count, err := exporter.WriteItemsParquet(ctx, output)
	if err != nil {
		return common.NewUserError("export failed", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("wrote %d items to %s", count, output)))
	return nil
}

func exportReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <run-id>",
		Short: "Write a YAML summary for a recorded ingest run",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportReport,
	}

	cmd.Flags().String("output", "report.yaml", "output file path")

	return cmd
}

func runExportReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	output, _ := cmd.Flags().GetString("output")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	exporter, err := export.NewExporter(store)
	if err != nil {
		return err
	}

	report, err := exporter.WriteRunReport(ctx, args[0], output)
	if err != nil {
		return common.NewUserError("report failed", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("wrote report for run %s to %s", report.RunID, output)))
	return nil
}
