package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Leyinc1/manuelbest/internal/app"
	"github.com/Leyinc1/manuelbest/internal/config"
	"github.com/Leyinc1/manuelbest/internal/lib/logger"
	"github.com/Leyinc1/manuelbest/internal/lib/logger/sl"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		log := logger.New(cfg.Env)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		application, err := app.New(ctx, log, cfg)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- application.Run()
		}()

		select {
		case <-ctx.Done():
			log.Info("received shutdown signal")
		case err = <-errCh:
			if err != nil {
				log.Error("server stopped", sl.Err(err))
			}
		}

		application.GracefulShutdown()
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
