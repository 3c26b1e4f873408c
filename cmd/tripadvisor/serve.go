package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfredang/trip-advisor/internal/config"
	"github.com/alfredang/trip-advisor/internal/gateway/app"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the trip planning API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if p := strings.TrimSpace(servePort); p != "" {
			if !strings.HasPrefix(p, ":") {
				p = ":" + p
			}
			cfg.Port = p
		}

		a, err := app.NewWithConfig(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		go func() {
			if err := a.Start(); err != nil {
				log.Printf("Server error: %v", err)
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.Shutdown(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}
