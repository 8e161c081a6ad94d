package cmd

import (
	"fmt"
	"os"

	"github.com/chrisdamba/ecomdash/internal/dataset"
	"github.com/chrisdamba/ecomdash/internal/repositories"
	"github.com/chrisdamba/ecomdash/internal/repositories/postgres"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy a CSV or Parquet table into the Postgres orders table",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		truncate, _ := cmd.Flags().GetBool("truncate")
		batchSize, _ := cmd.Flags().GetInt("batch-size")
		if batchSize < 1 {
			batchSize = 1
		}

		src := dataset.NewFileSource(cfg.Data.Path, "")
		ds, err := dataset.Load(ctx, src)
		if err != nil {
			return err
		}

		pool, err := postgres.Connect(ctx, cfg.Database.DSN())
		if err != nil {
			return err
		}
		defer pool.Close()
		var repo repositories.OrderRepository = postgres.NewOrderRepository(pool)

		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		if truncate {
			if err := repo.DeleteAll(ctx); err != nil {
				return err
			}
		}

		bar := progressbar.NewOptions(ds.Len(),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("importing rows"),
			progressbar.OptionShowCount(),
		)
		for i := 0; i < ds.Len(); i += batchSize {
			batch := ds.Records[i:min(i+batchSize, ds.Len())]
			if err := repo.BulkCreate(ctx, batch); err != nil {
				return fmt.Errorf("failed to import rows %d-%d: %w", i, i+len(batch), err)
			}
			bar.Add(len(batch))
		}
		bar.Finish()

		count, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		log.Info("import finished", zap.String("source", src.Name()), zap.Int("imported", ds.Len()), zap.Int("table_rows", count))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().Bool("truncate", false, "Empty the orders table first")
	importCmd.Flags().Int("batch-size", 5000, "Rows per COPY batch")
}
