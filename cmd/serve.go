package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-fit/internal/ranking"
	"github.com/spigell/career-fit/internal/server"
	"github.com/spigell/career-fit/internal/tagging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ranking engine over HTTP",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("listen", "", "address to listen on (default :8080)")

	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	opts, err := config.rankingOptions()
	if err != nil {
		logger.Fatal("invalid matching configuration", zap.Error(err))
	}

	cache, err := openCatalog(config, logger)
	if err != nil {
		logger.Fatal("opening the catalog", zap.Error(err))
	}

	srv, err := server.New(server.Config{
		Listen:  config.Server.Listen,
		Options: opts,
	}, ranking.NewEngine(tagging.Default(), logger), cache, logger)
	if err != nil {
		logger.Fatal("creating the server", zap.Error(err))
	}

	logger.Info("starting the career-fit server", zap.String("version", version))

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
