package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kasuboski/arrqueue/pkg/logger"
	"github.com/kasuboski/arrqueue/server"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the queue server",
	Long:  `start the queue server and keep the aggregated queue refreshed`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		cfg, manager, err := newQueueManager()
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx = logger.WithCtx(ctx, log)

		go func() {
			if err := manager.Run(ctx); err != nil && ctx.Err() == nil {
				log.Error("queue refresh loop stopped", zap.Error(err))
			}
		}()

		server := server.New(log, manager)
		if err := server.Serve(ctx, cfg.Server.Port); err != nil {
			log.Error(err.Error())
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
