// Vassctl is a command-line client for voice assistants exposing the HTTP
// control API on port 1507.
//
// It can query and change the assistant's state, speak text, run skills,
// discover assistants over mDNS, show a live terminal dashboard, and export
// the assistant's state as Prometheus metrics.
//
// Usage:
//
//	vassctl [command] [flags]
//
// See 'vassctl --help' for available commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/muurk/vassapi/assistant"
	"github.com/muurk/vassapi/internal/config"
	"github.com/muurk/vassapi/internal/logging"
	"github.com/muurk/vassapi/internal/urls"
	"github.com/muurk/vassapi/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(newApp(os.Stdin, os.Stdout, os.Stderr)).ExecuteContext(ctx)
	stop()
	if err != nil {
		logging.Error("Command failed", zap.Error(err))
	}
	logging.Sync()
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries state shared by all commands of one invocation
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	v        *viper.Viper
	registry *config.Registry
	logLevel string

	// newClient builds the client for a resolved connection; tests swap it
	newClient func(config.Connection) (*assistant.Client, error)
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	a := &app{in: in, out: out, errOut: errOut}
	a.newClient = a.defaultClient
	return a
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "vassctl",
		Short: "Control a voice assistant over its HTTP API",
		Long: `A command-line client for voice assistants.

Connects to the assistant's control API (default port 1507) to query its
state, toggle microphone and speaker, speak text, run skills and manage its
configuration.

The target assistant comes from --host/--port, the VASS_HOST/VASS_PORT
environment variables, or a saved profile. The API token comes from --token
or VASS_TOKEN and is never written to disk.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	// Disable automatic completion command generation
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.String(config.KeyHost, "", "Assistant host or IP (env VASS_HOST)")
	flags.Int(config.KeyPort, 0, "Assistant API port, default 1507 (env VASS_PORT)")
	flags.String(config.KeyToken, "", "API token (env VASS_TOKEN)")
	flags.String(config.KeyProfile, "", "Saved profile to use (env VASS_PROFILE)")
	flags.String(config.KeyConfig, "", "Config file path (env VASS_CONFIG)")
	flags.String(config.KeyFormat, "", "Output format: detailed, compact, json")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (env VASS_LOG_LEVEL)")

	root.AddCommand(
		newStatusCmd(a),
		newTriggerCmd(a),
		newReloadCmd(a),
		newSayCmd(a),
		newSkillsCmd(a),
		newConfigCmd(a),
		newInfoCmd(a),
		newStatesCmd(a),
		newMuteCmd(a),
		newVolumeCmd(a),
		newScanCmd(a),
		newProfileCmd(a),
		newDashboardCmd(a),
		newExporterCmd(a),
		newVersionCmd(a),
	)

	return root
}

// setup initializes logging, settings and the profile registry
func (a *app) setup(cmd *cobra.Command) error {
	if err := logging.Initialize(a.logLevel); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	v, err := config.NewViper(cmd.Flags())
	if err != nil {
		return err
	}
	a.v = v

	registry, err := config.LoadRegistry(v.GetString(config.KeyConfig))
	if err != nil {
		return err
	}
	a.registry = registry
	return nil
}

// format returns the requested output format
func (a *app) format() string {
	if a.v != nil {
		if f := a.v.GetString(config.KeyFormat); f != "" {
			return f
		}
	}
	if a.registry != nil && a.registry.Preferences != nil && a.registry.Preferences.OutputFormat != "" {
		return a.registry.Preferences.OutputFormat
	}
	return formatDetailed
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(a.out, "vassctl "+version.Full())
			fmt.Fprintln(a.out, "logging: "+logging.Describe())
		},
	}
}

// printError writes err and, for assistant errors, a troubleshooting hint
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)

	var apiErr *assistant.Error
	if !errors.As(err, &apiErr) {
		return
	}
	fmt.Fprintf(w, "\n%s\n", assistant.TroubleshootingHint(err))
	if assistant.IsTransportError(err) {
		fmt.Fprintf(w, "\nSee: %s\n", urls.TroubleshootingGuide)
	}
	if apiErr.StatusCode == 401 || apiErr.StatusCode == 403 {
		fmt.Fprintf(w, "\nSee: %s\n", urls.TokenSetup)
	}
}
