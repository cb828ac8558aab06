// Package main provides the terminal essay editor.
package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"

	"essaydesk/internal/client"
	"essaydesk/internal/config"
	"essaydesk/internal/prefs"
	"essaydesk/internal/tui"
	"essaydesk/internal/ui"
)

const (
	defaultServer  = "http://localhost:8080"
	defaultTimeout = 2 * time.Minute
)

var (
	serverURL     string
	clientTimeout time.Duration
	prefsPath     string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "essaytui",
		Short:        "Terminal essay editor with grammar checking",
		SilenceUsage: true,
		RunE:         runEditorCmd,
	}

	rootCmd.Flags().StringVar(&serverURL, "server", defaultServer, "essay server base URL")
	rootCmd.Flags().DurationVar(&clientTimeout, "timeout", defaultTimeout, "request timeout for correct and save")
	rootCmd.Flags().StringVar(&prefsPath, "prefs", "", "preference file (default: XDG state dir)")

	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

func runEditorCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "server", &serverURL, fileCfg.Client.Server)
	applyStringConfig(cmd, "prefs", &prefsPath, fileCfg.Client.Prefs)
	if fileCfg.Client.Timeout != nil && !cmd.Flags().Changed("timeout") {
		clientTimeout = fileCfg.Client.Timeout.Duration
	}
	if prefsPath == "" {
		prefsPath = config.DefaultPrefsPath()
	}
	if err := validateSettings(serverURL, clientTimeout); err != nil {
		return err
	}

	store, err := prefs.Open(prefsPath)
	if err != nil {
		return fmt.Errorf("failed to open preferences: %w", err)
	}

	logPath := config.DefaultLogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile, err := tea.LogToFile(logPath, "essaytui")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	backend := client.New(serverURL, &http.Client{Timeout: clientTimeout})
	model := tui.NewModel(ctx, ui.New(backend, store))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}
	args, err := editorCommand(os.Getenv("EDITOR"), path)
	if err != nil {
		return err
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// ensureConfigFile writes the default template unless path already exists.
func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.DefaultTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

// editorCommand splits $EDITOR with shell quoting rules and appends path.
func editorCommand(editor, path string) ([]string, error) {
	editor = strings.TrimSpace(editor)
	if editor == "" {
		editor = "vi"
	}
	parts, err := shellwords.Parse(editor)
	if err != nil {
		return nil, fmt.Errorf("invalid EDITOR %q: %w", editor, err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}
	return append(parts, path), nil
}

func validateSettings(server string, timeout time.Duration) error {
	u, err := url.Parse(server)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server must be an http(s) URL, got %q", server)
	}
	if timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
