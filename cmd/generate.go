package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/chrisdamba/ecomdash/internal/dataset"
	"github.com/chrisdamba/ecomdash/internal/factories"
	"github.com/chrisdamba/ecomdash/internal/models"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a synthetic transactions table",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		orders, _ := cmd.Flags().GetInt("orders")
		seed, _ := cmd.Flags().GetInt64("seed")
		cities, _ := cmd.Flags().GetInt("cities")
		customers, _ := cmd.Flags().GetInt("customers")
		startStr, _ := cmd.Flags().GetString("start")
		endStr, _ := cmd.Flags().GetString("end")

		start, err := time.Parse(models.DateLayout, startStr)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
		end, err := time.Parse(models.DateLayout, endStr)
		if err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}

		factory := factories.NewOrderFactory(seed, start, end, cities, customers)
		bar := progressbar.NewOptions(orders,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("generating orders"),
			progressbar.OptionShowCount(),
		)
		var records []models.OrderRecord
		for i := 0; i < orders; i++ {
			records = append(records, factory.CreateOrder()...)
			bar.Add(1)
		}
		bar.Finish()

		if err := writeTable(out, records); err != nil {
			return err
		}
		log.Info("table written", zap.String("path", out), zap.Int("rows", len(records)))
		return nil
	},
}

func writeTable(path string, records []models.OrderRecord) error {
	if dataset.FormatFromPath(path) == models.FormatParquet {
		return dataset.WriteParquetFile(path, records)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := dataset.WriteCSV(file, records); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("output", "main_data.csv", "Output file (.csv or .parquet)")
	generateCmd.Flags().Int("orders", 5000, "Number of orders to generate")
	generateCmd.Flags().Int64("seed", 42, "Random seed")
	generateCmd.Flags().Int("cities", 40, "Number of distinct customer cities")
	generateCmd.Flags().Int("customers", 3000, "Number of distinct customers")
	generateCmd.Flags().String("start", "2016-09-01", "Earliest order date (YYYY-MM-DD)")
	generateCmd.Flags().String("end", "2018-08-31", "Latest order date (YYYY-MM-DD)")
}
