package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exynos7904/powerd/internal/api"
	"github.com/exynos7904/powerd/internal/client"
	"github.com/exynos7904/powerd/internal/dispatch"
	"github.com/exynos7904/powerd/internal/power"
	"github.com/exynos7904/powerd/internal/sysfs"
	"github.com/exynos7904/powerd/internal/ui"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func init() {
	serveCmd.Flags().StringVar(&flags.Token, "token", "", "Shared token for the power service and the HTTP API")
	serveCmd.Flags().StringVar(&flags.URL, "url", "", "Power service WebSocket URL (e.g. ws://127.0.0.1:7904/power/ws)")
	serveCmd.Flags().StringVar(&flags.Listen, "listen", "", "Address for the local HTTP control API (e.g. 127.0.0.1:7905)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the power HAL",
	Long: `Builds the device control policy and serves it to the power service.

With --url the HAL dials the power service over WebSocket and handles its
requests one at a time, reconnecting with exponential backoff. With
--listen the same operations are exposed over a local HTTP API. At least
one of the two is required; both may run at once.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.Banner(version, platformName)

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.URL == "" && cfg.Listen == "" {
			return fmt.Errorf("nothing to serve: set --url, --listen, or both")
		}

		nodes := sysfs.New(cfg.SysfsRoot)
		touch := power.NewTouchController(nodes, cfg.Platform.TouchCommandNode)
		d := dispatch.New(power.New(cfg.Platform, nodes, touch))

		fmt.Fprintln(os.Stderr)
		ui.KeyValue("Sysfs root", cfg.SysfsRoot)
		for _, n := range d.Policy().State().InteractiveNodes {
			ui.KeyValue("Node", n)
		}
		ui.Separator()

		sigCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		g, ctx := errgroup.WithContext(sigCtx)

		if cfg.Listen != "" {
			gin.SetMode(gin.ReleaseMode)
			srv := &http.Server{Addr: cfg.Listen, Handler: api.New(d, nodes, cfg.Token).Handler()}
			ui.Info("HTTP API on %s", cfg.Listen)
			g.Go(func() error {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http api: %w", err)
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					slog.Warn("shutdown http api", "err", err)
				}
				return nil
			})
		}

		if cfg.URL != "" {
			c := client.New(client.Options{
				URL:        cfg.URL,
				Token:      cfg.Token,
				MinBackoff: cfg.Reconnect.MinBackoff,
				MaxBackoff: cfg.Reconnect.MaxBackoff,
			}, d)
			ui.Info("Waiting for power service at %s", cfg.URL)
			g.Go(func() error {
				return c.Run(ctx)
			})
		}

		<-ctx.Done()
		if sigCtx.Err() != nil {
			fmt.Fprintln(os.Stderr)
			ui.Warn("Shutting down...")
		}
		return g.Wait()
	},
}
