package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/vassapi/internal/discovery"
)

func newScanCmd(a *app) *cobra.Command {
	var (
		timeout int
		save    bool
		name    string
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the local network for assistants",
		Long: `Scan for assistants using mDNS/DNS-SD discovery.

Listens for "_vass._tcp" announcements, plus generic "_http._tcp" services
on port 1507, and lists every assistant found.`,
		Example: `  # Scan for the configured default (5 seconds)
  vassctl scan

  # Longer scan, saving every assistant found as a profile
  vassctl scan --timeout 15 --save

  # Stop as soon as a named assistant answers
  vassctl scan --name kitchen --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := a.format()
			if err := validFormat(format); err != nil {
				return err
			}
			if !cmd.Flags().Changed("timeout") && a.registry.Preferences.DiscoverTimeout > 0 {
				timeout = a.registry.Preferences.DiscoverTimeout
			}

			if format == formatDetailed {
				fmt.Fprintf(a.errOut, "Scanning for assistants (timeout: %ds)...\n\n", timeout)
			}

			var devices []*discovery.Device
			if name != "" {
				scanner := discovery.NewScanner()
				scanner.Timeout = time.Duration(timeout) * time.Second
				device, err := scanner.WaitFor(commandContext(cmd), name)
				if err != nil {
					return err
				}
				devices = append(devices, device)
			} else {
				var err error
				devices, err = discovery.ScanForDevices(commandContext(cmd), time.Duration(timeout)*time.Second)
				if err != nil {
					return fmt.Errorf("scan failed: %w", err)
				}
			}

			if len(devices) == 0 && format == formatDetailed {
				fmt.Fprintln(a.out, "No assistants found.")
				fmt.Fprintln(a.out, "\nTroubleshooting:")
				fmt.Fprintln(a.out, "  - Ensure the assistant is running and on the same network")
				fmt.Fprintln(a.out, "  - Multicast (UDP 5353) may be blocked by your router or firewall")
				fmt.Fprintln(a.out, "  - Try increasing --timeout")
				fmt.Fprintln(a.out, "  - Use --host to connect directly if discovery fails")
				return nil
			}

			if err := formatDevices(a.out, devices, format); err != nil {
				return err
			}

			if save && len(devices) > 0 {
				for _, d := range devices {
					a.registry.SetProfile(profileName(d), d.IP, d.Port, d.Name)
				}
				if err := a.registry.Save(); err != nil {
					return err
				}
				fmt.Fprintf(a.errOut, "Saved %d profile(s) to %s\n", len(devices), a.registry.Path())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&timeout, "timeout", 5, "Scan timeout in seconds")
	cmd.Flags().BoolVar(&save, "save", false, "Save discovered assistants as profiles")
	cmd.Flags().StringVar(&name, "name", "", "Wait for one assistant by name, hostname or IP")
	return cmd
}
