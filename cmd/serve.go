package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chrisdamba/ecomdash/internal/dashboard"
	"github.com/chrisdamba/ecomdash/internal/dataset"
	"github.com/chrisdamba/ecomdash/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		src, cleanup, err := newSource(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to create data source: %w", err)
		}
		defer cleanup()

		// load once even in reload mode so a broken source fails at startup
		ds, err := dataset.Load(ctx, src)
		if err != nil {
			return err
		}
		log.Info("dataset loaded",
			zap.String("source", src.Name()),
			zap.Int("rows", ds.Len()),
			zap.String("min_date", ds.MinDate.Format(models.DateLayout)),
			zap.String("max_date", ds.MaxDate.Format(models.DateLayout)),
		)

		var provider dashboard.DatasetProvider = dashboard.NewStaticProvider(ds)
		if cfg.Data.ReloadOnRequest {
			provider = dashboard.NewReloadingProvider(src, ds)
		}

		srv, err := dashboard.NewServer(cfg, log.Named("dashboard"), provider)
		if err != nil {
			return err
		}
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "0.0.0.0", "Address to listen on")
	serveCmd.Flags().Int("port", 8501, "Port to listen on")
	serveCmd.Flags().Bool("reload", false, "Re-read the data source on every request")

	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("data.reload_on_request", serveCmd.Flags().Lookup("reload"))
}
