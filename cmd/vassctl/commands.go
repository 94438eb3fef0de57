package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/vassapi/internal/configsync"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the assistant is running",
		Long: `Probe the assistant's status endpoint.

Reports "running" when the assistant answers that it is active. A probe that
does not answer within one second reports "not running" rather than failing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := a.format()
			if err := validFormat(format); err != nil {
				return err
			}
			client, conn, err := a.connect(cmd)
			if err != nil {
				return err
			}
			running, err := client.IsRunning(commandContext(cmd))
			if err != nil {
				return err
			}
			return formatStatus(a.out, conn.AssistantConfig().BaseURL(), running, format)
		},
	}
}

func newTriggerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "trigger",
		Short: "Start listening as if the wake word was heard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := a.connect(cmd)
			if err != nil {
				return err
			}
			if err := client.Trigger(commandContext(cmd)); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "✓ Wake word triggered")
			return nil
		},
	}
}

func newReloadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Reload the assistant's skills and configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := a.connect(cmd)
			if err != nil {
				return err
			}
			if err := client.Reload(commandContext(cmd)); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "✓ Assistant reloaded")
			return nil
		},
	}
}

func newSayCmd(a *app) *cobra.Command {
	var cache bool

	cmd := &cobra.Command{
		Use:   "say TEXT...",
		Short: "Speak text on the assistant",
		Example: `  vassctl say "Dinner is ready"
  vassctl say --cache Good morning`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := a.connect(cmd)
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			if err := client.Say(commandContext(cmd), text, cache); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "✓ Spoken")
			return nil
		},
	}
	cmd.Flags().BoolVar(&cache, "cache", false, "Ask the assistant to cache the synthesized audio")
	return cmd
}

func newSkillsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skills",
		Short: "List or run skills",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List installed skills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := a.format()
			if err := validFormat(format); err != nil {
				return err
			}
			client, _, err := a.connect(cmd)
			if err != nil {
				return err
			}
			skills, err := client.Skills(commandContext(cmd))
			if err != nil {
				return err
			}
			return formatSkills(a.out, skills, format)
		},
	}

	var entityFlags []string
	run := &cobra.Command{
		Use:   "run NAME",
		Short: "Run a skill with optional entities",
		Example: `  vassctl skills run lights_on --entity room=kitchen
  vassctl skills run timer --entity minutes=5 --entity label=tea`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entities, err := parseEntities(entityFlags)
			if err != nil {
				return err
			}
			client, _, err := a.connect(cmd)
			if err != nil {
				return err
			}
			if err := client.RunSkill(commandContext(cmd), args[0], entities); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "✓ Skill %s started\n", args[0])
			return nil
		},
	}
	run.Flags().StringArrayVarP(&entityFlags, "entity", "e", nil, "Skill entity as key=value (repeatable)")

	cmd.AddCommand(list, run)
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read or replace the assistant's configuration",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Print the assistant's configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := a.connect(cmd)
			if err != nil {
				return err
			}
			cfg, err := client.GetConfig(commandContext(cmd))
			if err != nil {
				return err
			}
			return formatConfig(a.out, cfg, a.format())
		},
	}

	var (
		noVerify   bool
		noRollback bool
		retries    int
		settle     time.Duration
		backup     string
	)
	applyOptions := func() configsync.Options {
		opts := configsync.DefaultOptions()
		opts.Verify = !noVerify
		opts.Rollback = !noRollback && !noVerify
		opts.MaxRetries = retries
		opts.InitialDelay = settle
		return opts
	}

	set := &cobra.Command{
		Use:   "set FILE|-",
		Short: "Replace the assistant's configuration with a JSON document",
		Long: `Replace the assistant's configuration with a JSON document.

The previous configuration is saved first, the new one is written and then
read back until it matches. If it never matches, the previous configuration
is restored.`,
		Example: `  vassctl config get > assistant.json
  vassctl config set assistant.json
  jq '.tts.voice = "amy"' assistant.json | vassctl config set -
  vassctl config set --backup before.json assistant.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			cfg, err := parseConfigDocument(data)
			if err != nil {
				return err
			}
			client, _, err := a.connect(cmd)
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)

			if backup != "" {
				snapshot, err := configsync.TakeSnapshot(ctx, client, "before config set")
				if err != nil {
					return err
				}
				if err := snapshot.WriteFile(backup); err != nil {
					return err
				}
				fmt.Fprintf(a.errOut, "Previous configuration saved to %s\n", backup)
			}

			return a.applyConfig(ctx, client, cfg, applyOptions())
		},
	}
	set.Flags().BoolVar(&noVerify, "no-verify", false, "Do not read the configuration back (implies --no-rollback)")
	set.Flags().BoolVar(&noRollback, "no-rollback", false, "Keep the new configuration even if it cannot be confirmed")
	set.Flags().IntVar(&retries, "retries", configsync.DefaultOptions().MaxRetries, "Read-backs after the first one")
	set.Flags().DurationVar(&settle, "settle", configsync.DefaultOptions().InitialDelay, "Time to wait before the first read-back")
	set.Flags().StringVar(&backup, "backup", "", "Also save the previous configuration to this file")

	diff := &cobra.Command{
		Use:   "diff FILE|-",
		Short: "Compare a JSON document with the assistant's configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			desired, err := parseConfigDocument(data)
			if err != nil {
				return err
			}
			client, _, err := a.connect(cmd)
			if err != nil {
				return err
			}
			actual, err := client.GetConfig(commandContext(cmd))
			if err != nil {
				return err
			}

			mismatches := configsync.Diff(desired, actual)
			if len(mismatches) == 0 {
				fmt.Fprintln(a.out, "No differences")
				return nil
			}
			for _, line := range mismatches {
				fmt.Fprintln(a.out, line)
			}
			return nil
		},
	}

	restore := &cobra.Command{
		Use:   "restore SNAPSHOT",
		Short: "Write a configuration saved with 'config set --backup'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := configsync.ReadSnapshot(args[0])
			if err != nil {
				return err
			}
			client, _, err := a.connect(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.errOut, "Restoring configuration saved %s\n", snapshot.Timestamp.Format(time.RFC3339))
			return a.applyConfig(commandContext(cmd), client, snapshot.Config, applyOptions())
		},
	}
	restore.Flags().BoolVar(&noVerify, "no-verify", false, "Do not read the configuration back")
	restore.Flags().IntVar(&retries, "retries", configsync.DefaultOptions().MaxRetries, "Read-backs after the first one")
	restore.Flags().DurationVar(&settle, "settle", configsync.DefaultOptions().InitialDelay, "Time to wait before the first read-back")

	cmd.AddCommand(get, set, diff, restore)
	return cmd
}

// applyConfig writes cfg through configsync and reports the outcome
func (a *app) applyConfig(ctx context.Context, client configsync.ConfigClient, cfg map[string]any, opts configsync.Options) error {
	result := configsync.Apply(ctx, client, cfg, opts)
	if result.Error != nil {
		for _, line := range result.Mismatches {
			fmt.Fprintf(a.errOut, "  %s\n", line)
		}
		return result.Error
	}

	if result.Verified {
		fmt.Fprintf(a.out, "✓ Configuration updated and verified (%d read-back(s))\n", result.Attempts)
	} else {
		fmt.Fprintln(a.out, "✓ Configuration updated")
	}
	return nil
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the assistant's name, version and identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := a.format()
			if err := validFormat(format); err != nil {
				return err
			}
			client, conn, err := a.connect(cmd)
			if err != nil {
				return err
			}
			info, err := client.Info(commandContext(cmd))
			if err != nil {
				return err
			}

			if conn.Profile != "" && a.registry.GetProfile(conn.Profile) != nil {
				a.registry.RecordDeviceInfo(conn.Profile, info.UUID, info.Version)
				if err := a.registry.Save(); err != nil {
					fmt.Fprintf(a.errOut, "Warning: could not update profile: %v\n", err)
				}
			}

			return formatInfo(a.out, info, format)
		},
	}
}

func newStatesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "states",
		Short: "Show microphone, speaker and volume state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := a.format()
			if err := validFormat(format); err != nil {
				return err
			}
			client, _, err := a.connect(cmd)
			if err != nil {
				return err
			}
			states, err := client.States(commandContext(cmd))
			if err != nil {
				return err
			}
			return formatStates(a.out, states, format)
		},
	}
}

func newMuteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mute input|output [on|off]",
		Short: "Mute or unmute the microphone or speaker",
		Long: `Mute or unmute the microphone (input) or speaker (output).

Without on/off the current state is toggled.`,
		Example: `  vassctl mute input on
  vassctl mute output off
  vassctl mute input`,
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{"input", "output"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.ToLower(args[0])
			if target != "input" && target != "output" {
				return fmt.Errorf("unknown target %q: use input or output", args[0])
			}

			var (
				mute     bool
				explicit = len(args) == 2
			)
			if explicit {
				var err error
				if mute, err = parseSwitch(args[1]); err != nil {
					return err
				}
			}

			client, _, err := a.connect(cmd)
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)

			if !explicit {
				states, err := client.States(ctx)
				if err != nil {
					return err
				}
				if target == "input" {
					mute = !states.InputMuted
				} else {
					mute = !states.OutputMuted
				}
			}

			name := "Microphone"
			if target == "input" {
				err = client.SetInputMute(ctx, mute)
			} else {
				name = "Speaker"
				err = client.SetOutputMute(ctx, mute)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "✓ %s %s\n", name, muteWord(mute))
			return nil
		},
	}
}

func newVolumeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "volume LEVEL",
		Short: "Set the speaker volume (0-100)",
		Long: `Set the speaker volume to LEVEL (0-100).

A leading + or - changes the volume relative to its current level; put "--"
before negative steps so they are not read as flags.`,
		Example: `  vassctl volume 40
  vassctl volume +10
  vassctl volume -- -10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := a.connect(cmd)
			if err != nil {
				return err
			}
			ctx := commandContext(cmd)

			current := 0
			if strings.HasPrefix(args[0], "+") || strings.HasPrefix(args[0], "-") {
				states, err := client.States(ctx)
				if err != nil {
					return err
				}
				current = states.OutputVolume
			}

			level, err := parseVolume(args[0], current)
			if err != nil {
				return err
			}
			if err := client.SetOutputVolume(ctx, level); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "✓ Volume %s %d\n", volumeBar(level, 20), level)
			return nil
		},
	}
}
