package cmd

import (
	"fmt"
	"time"

	"github.com/chrisdamba/ecomdash/internal/dataset"
	"github.com/chrisdamba/ecomdash/internal/models"
	"github.com/chrisdamba/ecomdash/internal/output"
	"github.com/chrisdamba/ecomdash/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute the dashboard for a date range and export it",
	Long: `report runs the dashboard once for --start/--end and writes the result to the
console, to JSON or CSV files (locally or in S3), or to a Kafka topic.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		format, _ := cmd.Flags().GetString("format")
		destination, _ := cmd.Flags().GetString("destination")
		outputPath, _ := cmd.Flags().GetString("output-path")
		outputFolder, _ := cmd.Flags().GetString("output-folder")

		src, cleanup, err := newSource(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to create data source: %w", err)
		}
		defer cleanup()

		ds, err := dataset.Load(ctx, src)
		if err != nil {
			return err
		}

		rng, err := models.ParseDateRange(start, end, ds.FullRange())
		if err != nil {
			return err
		}

		snap := &output.Snapshot{
			GeneratedAt: time.Now().UTC(),
			Source:      src.Name(),
			ViewModel:   report.Run(ds.Records, rng, cfg.Dashboard.DeliveryUnit),
		}

		dest, err := output.NewDestination(ctx, output.Options{
			Format:      format,
			Destination: destination,
			BasePath:    outputPath,
			Folder:      outputFolder,
			Region:      cfg.CloudStorage.Region,
			Bucket:      cfg.CloudStorage.BucketName,
			Kafka:       cfg.Kafka,
		})
		if err != nil {
			return fmt.Errorf("failed to create output destination: %w", err)
		}

		if err := dest.WriteReport(cfg.Kafka.Topic, snap); err != nil {
			dest.Close()
			return fmt.Errorf("failed to write report: %w", err)
		}
		if err := dest.Close(); err != nil {
			return err
		}

		log.Info("report written",
			zap.Stringer("range", snap.Range),
			zap.Int("total_orders", snap.TotalOrders),
			zap.String("delivery_time", snap.DeliveryTimeLabel),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("start", "", "First day of the range (YYYY-MM-DD, default earliest approval)")
	reportCmd.Flags().String("end", "", "Last day of the range (YYYY-MM-DD, default latest approval)")
	reportCmd.Flags().String("format", models.FormatConsole, "Output format (console, json, csv)")
	reportCmd.Flags().String("destination", "local", "Where json/csv files go (local, s3)")
	reportCmd.Flags().String("output-path", ".", "Base directory for local output")
	reportCmd.Flags().String("output-folder", "reports", "Folder under the base path or bucket")
	reportCmd.Flags().Bool("kafka-enabled", false, "Publish the report to Kafka instead")
	reportCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")

	viper.BindPFlag("kafka.enabled", reportCmd.Flags().Lookup("kafka-enabled"))
	viper.BindPFlag("kafka.broker_list", reportCmd.Flags().Lookup("kafka-broker-list"))
}
