package main

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/muurk/vassapi/internal/config"
	"github.com/muurk/vassapi/internal/discovery"
)

func newProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage saved assistant profiles",
		Long: `Manage named assistant profiles stored in the config file.

Profiles hold the host, port and a nickname. API tokens are never saved.`,
	}

	var nickname string
	add := &cobra.Command{
		Use:   "add NAME HOST",
		Short: "Add or update a profile",
		Example: `  vassctl profile add kitchen 192.168.1.40 --nickname "Kitchen speaker"
  vassctl profile add office 192.168.1.41 --port 8080`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, host := args[0], args[1]
			if err := validProfileName(name); err != nil {
				return err
			}
			port, err := cmd.Flags().GetInt(config.KeyPort)
			if err != nil {
				return err
			}
			a.registry.SetProfile(name, host, port, nickname)
			if err := a.registry.Save(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "✓ Profile %s saved\n", name)
			if a.registry.DefaultProfile == name {
				fmt.Fprintf(a.out, "  %s is the default profile\n", name)
			}
			return nil
		},
	}
	add.Flags().StringVar(&nickname, "nickname", "", "Friendly name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := a.registry.ProfileNames()
			if a.format() == formatJSON {
				return writeJSON(a.out, a.registry.Profiles)
			}
			if len(names) == 0 {
				fmt.Fprintln(a.out, "No profiles saved. Use 'vassctl profile add' or 'vassctl scan --save'.")
				return nil
			}
			for _, name := range names {
				p := a.registry.GetProfile(name)
				marker := " "
				if name == a.registry.DefaultProfile {
					marker = "*"
				}
				line := fmt.Sprintf("%s %-12s %s", marker, name, p.Host)
				if p.Port != 0 {
					line += fmt.Sprintf(":%d", p.Port)
				}
				if p.Nickname != "" {
					line += "  (" + p.Nickname + ")"
				}
				if p.LastVersion != "" {
					line += "  v" + p.LastVersion
				}
				fmt.Fprintln(a.out, line)
			}
			return nil
		},
	}

	use := &cobra.Command{
		Use:   "use NAME",
		Short: "Make a profile the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.registry.UseProfile(args[0]); err != nil {
				return err
			}
			if err := a.registry.Save(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "✓ Default profile is now %s\n", args[0])
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Delete a profile",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.registry.RemoveProfile(args[0]) {
				return fmt.Errorf("profile %q not found", args[0])
			}
			if err := a.registry.Save(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "✓ Profile %s removed\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, list, use, remove)
	return cmd
}

func validProfileName(name string) error {
	if name == "" {
		return fmt.Errorf("profile name must not be empty")
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return fmt.Errorf("invalid profile name %q: use letters, digits, - and _", name)
		}
	}
	return nil
}

// profileName derives a profile name from a discovered device
func profileName(d *discovery.Device) string {
	source := d.Name
	if source == "" {
		source = strings.TrimSuffix(strings.TrimSuffix(d.Hostname, "."), ".local")
	}

	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(source) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
			lastDash = false
		case !lastDash && b.Len() > 0:
			b.WriteRune('-')
			lastDash = true
		}
	}
	name := strings.TrimSuffix(b.String(), "-")
	if name == "" {
		name = strings.NewReplacer(".", "-", ":", "-").Replace(d.IP)
	}
	return name
}
