package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/covscore/covscore/internal/adapters/inbound/web"
	"github.com/covscore/covscore/internal/adapters/outbound/decoder"
	"github.com/covscore/covscore/internal/application"
	"github.com/covscore/covscore/internal/domain"
)

func newServeCmd() *cobra.Command {
	var (
		addr       string
		lowest     int
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report page and JSON API over HTTP",
		Long: `Start an HTTP server with a page for pasting coverage reports and a JSON API:

  GET  /             paste form
  POST /analyze      form submit, answers with the HTML report
  POST /api/analyze  raw report body, answers with the analysis as JSON
  GET  /api/health   health check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("lowest") {
				cfg.LowestFiles = &lowest
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}

			logger := slog.Default()
			svc := application.NewAnalyzeService(nil, decoder.New(logger), nil, nil, logger)
			srv := web.New(web.Config{
				Addr:    addr,
				Lowest:  cfg.EffectiveLowestFiles(),
				Version: version,
				Logger:  logger,
			}, svc)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "covscore: http://%s\n", srv.Addr())
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", web.DefaultAddr, "Listen address")
	cmd.Flags().IntVar(&lowest, "lowest", domain.DefaultLowestFiles, "Number of least-covered files to list (0 hides them)")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file (defaults to ./.covscore.yaml)")

	return cmd
}
