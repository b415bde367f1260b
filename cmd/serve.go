package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lukasmoe/recipebox/internal/api"
	"github.com/lukasmoe/recipebox/internal/auth"
	"github.com/lukasmoe/recipebox/internal/config"
	"github.com/lukasmoe/recipebox/internal/database"
	"github.com/lukasmoe/recipebox/internal/storage"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Recipebox server",
	Long:  `Start the Recipebox server to handle recipe, tag, ingredient and user account requests.`,
	Example: `recipebox serve --config config.yml
recipebox serve -c /path/to/config.yml --log-level debug`,
	Run: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("failed to create database directory: %v", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// The store must be reachable before the service accepts traffic.
	interval := time.Duration(cfg.Database.WaitInterval) * time.Second
	if err := database.WaitForDatabase(ctx, cfg.Database.Path, interval); err != nil {
		log.Fatalf("interrupted while waiting for database: %v", err)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	images, err := storage.NewImageStore(cfg.Media.Dir)
	if err != nil {
		log.Fatalf("failed to initialize image store: %v", err)
	}

	server, err := api.New(cfg, db, auth.New(db), images)
	if err != nil {
		log.Fatalf("failed to create API server: %v", err)
	}

	// Start the API server in a goroutine
	go func() {
		log.Info("starting API server", "listen", cfg.Listen)
		if err := server.Run(); err != nil {
			log.Error("API server error", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	log.Info("recipebox started successfully")
	<-c
	log.Info("shutting down gracefully...")

	cancel()
	if err := db.Close(); err != nil {
		log.Error("failed to close database", "error", err)
	}
	time.Sleep(1 * time.Second)
}
