package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dyluth/slate/internal/app"
	"github.com/dyluth/slate/internal/printer"
	"github.com/dyluth/slate/internal/web"
	"github.com/dyluth/slate/pkg/kv"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the workspace over HTTP",
	Long: `Serve the workspace over HTTP.

Loads slate.yml, restores theme, tabs and blackboards from Redis, then serves
the login page at / and the workspace at /main until interrupted.

Examples:
  # Serve with ./slate.yml
  slate serve

  # Override the listen address
  slate serve --addr :9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.http_addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.HTTPAddr = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	status := app.NewStatusFeed(64)
	gw, err := connect(ctx, cfg, kv.WithErrorHook(status.Report))
	if err != nil {
		return err
	}
	defer gw.Close()

	configClient, err := newConfigClient(cfg)
	if err != nil {
		return printer.Error("edge config unavailable", err.Error(), nil)
	}

	store := app.NewStore(gw,
		app.WithMaxTabs(cfg.App.MaxTabs),
		app.WithPersistTimeout(cfg.App.PersistTimeout),
		app.WithStatusFeed(status),
		app.WithCredentials(app.Credentials{
			Username:     cfg.Auth.Username,
			Password:     cfg.Auth.Password,
			PasswordHash: cfg.Auth.PasswordHash,
		}),
	)
	defer store.Close()

	store.Initialize(ctx)

	sessions, err := web.NewSessions([]byte(cfg.Auth.SessionSecret), cfg.Auth.SessionTTL)
	if err != nil {
		return err
	}

	go logWriteFailures(ctx, store)

	server := web.NewServer(store, configClient, sessions, gw)
	if err := server.Start(cfg.Server.HTTPAddr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	printer.Success("Serving instance '%s' on %s\n", cfg.Instance, cfg.Server.HTTPAddr)
	<-ctx.Done()

	printer.Step("Shutting down...\n")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[Web] Shutdown error: %v", err)
	}
	if err := store.Flush(shutdownCtx); err != nil {
		log.Printf("[Store] Pending writes not flushed: %v", err)
	}

	return nil
}

// logWriteFailures reports persistence failures until ctx is done.
func logWriteFailures(ctx context.Context, store *app.Store) {
	for {
		select {
		case <-ctx.Done():
			return
		case st := <-store.Status():
			log.Printf("[Store] Write failed: op=%s key=%s error=%v", st.Op, st.Key, st.Err)
		}
	}
}
