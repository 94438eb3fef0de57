package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/muurk/vassapi/assistant"
	"github.com/muurk/vassapi/internal/config"
	"github.com/muurk/vassapi/internal/logging"
	"github.com/muurk/vassapi/internal/urls"
	"github.com/muurk/vassapi/internal/version"
)

// connect resolves the target assistant and returns a client for it.
// The token is prompted for when it is missing and stdin is a terminal.
func (a *app) connect(cmd *cobra.Command) (*assistant.Client, config.Connection, error) {
	conn, err := config.Resolve(a.v, a.registry)
	if err != nil {
		return nil, conn, err
	}

	if conn.Token == "" {
		token, err := a.promptToken()
		if err != nil {
			return nil, conn, err
		}
		conn.Token = token
	}

	client, err := a.newClient(conn)
	if err != nil {
		return nil, conn, err
	}

	logging.LogCommand(cmd.CommandPath(), client.BaseURL())
	return client, conn, nil
}

func (a *app) defaultClient(conn config.Connection) (*assistant.Client, error) {
	return assistant.NewClient(conn.AssistantConfig(),
		assistant.WithLogger(logging.Named("assistant")),
		assistant.WithUserAgent(version.UserAgent()),
	)
}

// promptToken reads the token without echo from an interactive terminal
func (a *app) promptToken() (string, error) {
	f, ok := a.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "", fmt.Errorf("no API token: use --token or VASS_TOKEN (see %s)", urls.TokenSetup)
	}

	fmt.Fprint(a.errOut, "API token: ")
	raw, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(a.errOut)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", fmt.Errorf("no API token entered")
	}
	return token, nil
}

// terminalWidth returns the width of stdout, or 0 when it is not a terminal
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

// readInput returns the contents of path, or stdin when path is "-"
func (a *app) readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(a.in)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// commandContext returns the command's context, falling back to Background
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
