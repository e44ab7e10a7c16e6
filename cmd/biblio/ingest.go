package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitlib/biblio-migrate/internal/biblio"
	"github.com/vitlib/biblio-migrate/internal/cli"
	"github.com/vitlib/biblio-migrate/internal/common"
	"github.com/vitlib/biblio-migrate/internal/config"
	"github.com/vitlib/biblio-migrate/internal/holdings"
	"github.com/vitlib/biblio-migrate/internal/ingest"
	"github.com/vitlib/biblio-migrate/internal/publisher"
)

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <export.jsonl>",
		Short: "Migrate a legacy catalog export into the database",
		Long: `Stream a JSONL catalog export, classify every holdings string, and load
bibliographic and item rows in batched transactions.

Malformed lines and records without holdings data are counted and skipped;
they never abort the run.`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}

	cmd.Flags().Int("batch-size", 0, "records per transaction (default from config)")
	cmd.Flags().Bool("no-progress", false, "disable the progress spinner")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	batchSize, _ := cmd.Flags().GetInt("batch-size")
	if batchSize <= 0 {
		batchSize = config.BatchSize()
	}
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	driver, err := ingest.NewDriver(
		store,
		holdings.NewParser(config.HoldingsOptions()),
		biblio.NewExtractor(publisher.NewHeuristic()),
		ingest.Config{
			SourcePath:   args[0],
			BatchSize:    batchSize,
			ShowProgress: !noProgress,
		},
	)
	if err != nil {
		return err
	}

	run, err := driver.Run(ctx)
	if err != nil {
		return common.NewUserError("ingest failed", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderRunSummary(run))
	return nil
}
