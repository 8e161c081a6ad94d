package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/chrisdamba/ecomdash/internal/logger"
	"github.com/chrisdamba/ecomdash/internal/models"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	cfg     *models.Config
	log     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ecomdash",
	Short: "E-commerce reporting dashboard",
	Long: `ecomdash loads an e-commerce transactions table, lets you pick a date range and
shows monthly orders, average delivery time and the top customer cities.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ecomdash.yaml or $HOME/ecomdash.yaml)")
	rootCmd.PersistentFlags().String("data-source", models.SourceCSV, "Data source (csv, parquet, s3, postgres); a .csv or .parquet path picks its own format")
	rootCmd.PersistentFlags().String("data-path", "main_data.csv", "File path or s3://bucket/key of the transactions table")

	viper.BindPFlag("data.source", rootCmd.PersistentFlags().Lookup("data-source"))
	viper.BindPFlag("data.path", rootCmd.PersistentFlags().Lookup("data-path"))
}

func initConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env: %w", err)
	}

	var err error
	cfg, err = models.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	log, err = logger.New(cfg.Log, cfg.Environment)
	if err != nil {
		return fmt.Errorf("error creating logger: %w", err)
	}
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
