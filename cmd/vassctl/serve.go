package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/vassapi/internal/dashboard"
	"github.com/muurk/vassapi/internal/exporter"
	"github.com/muurk/vassapi/internal/logging"
	"github.com/muurk/vassapi/internal/urls"
)

func newDashboardCmd(a *app) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show a live, interactive assistant panel",
		Long: `Open a terminal dashboard showing the assistant's status and state.

Keys: i toggles the microphone, o toggles the speaker, + and - change the
volume, t triggers the wake word, r refreshes and q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, conn, err := a.connect(cmd)
			if err != nil {
				return err
			}
			address := conn.AssistantConfig().BaseURL()
			if conn.Profile != "" {
				address = conn.Profile + " (" + address + ")"
			}
			if err := dashboard.Run(client, address, interval, terminalWidth()); err != nil {
				return fmt.Errorf("dashboard error: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", dashboard.DefaultRefreshInterval, "Refresh interval")
	return cmd
}

func newExporterCmd(a *app) *cobra.Command {
	var (
		listen   string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "exporter",
		Short: "Serve assistant state as Prometheus metrics",
		Long: `Run an HTTP server exposing the assistant's state on /metrics and its
liveness on /healthz.

Scrapes closer together than --interval reuse the previous poll.

See: ` + urls.ExporterGuide,
		Example: `  vassctl exporter --listen :9507 --interval 15s`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := a.connect(cmd)
			if err != nil {
				return err
			}

			collector := exporter.NewCollector(client, client.BaseURL(), interval)
			router, err := exporter.NewRouter(collector, logging.Named("exporter"))
			if err != nil {
				return err
			}

			logging.Info("Exporter starting",
				zap.String("listen", listen),
				zap.String("base_url", client.BaseURL()),
				zap.Duration("interval", interval),
			)
			fmt.Fprintf(a.errOut, "Serving metrics for %s on %s/metrics\n", client.BaseURL(), listen)
			return exporter.Serve(commandContext(cmd), listen, router)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", exporter.DefaultListenAddr, "Listen address")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Minimum time between assistant polls")
	return cmd
}
