package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/fqhc-resume/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the questionnaire and recommendations as a JSON HTTP API",
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		e := setup()

		handler, err := server.NewHandler(e.newBuilder(ctx), e.catalog, e.logger)
		if err != nil {
			e.logger.Fatal("creating http handler", zap.Error(err))
		}

		cfg := server.Config{}
		if e.config.Server != nil {
			cfg.Addr = e.config.Server.Addr
		}

		if err := server.Serve(ctx, cfg, handler, e.logger); err != nil {
			e.logger.Fatal("serving http api", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default "+server.DefaultAddr+")")

	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}
