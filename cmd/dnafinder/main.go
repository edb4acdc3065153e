package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/altinukshini/dnafinder/internal/api"
	"github.com/altinukshini/dnafinder/internal/config"
	"github.com/altinukshini/dnafinder/internal/logger"
	"github.com/altinukshini/dnafinder/internal/ops"
	"github.com/altinukshini/dnafinder/internal/session"
	"github.com/altinukshini/dnafinder/internal/tui"
	"github.com/altinukshini/dnafinder/internal/ui"
	"github.com/altinukshini/dnafinder/internal/validation"
)

var version = "dev"

func init() {
	if version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

// Global flags
var (
	configPath string
	apiURL     string
	verbose    bool
)

func main() {
	// Load .env file if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
	}

	rootCmd := &cobra.Command{
		Use:   "dnafinder",
		Short: "Search DNA sequence files for a pattern through the forensic search service",
		Long: `dnafinder signs in to the DNA search service, uploads a CSV of sequences,
runs a KMP or Rabin-Karp pattern search on the backend and shows the matches.

Run without a subcommand to start the interactive terminal UI.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.toml")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend origin (overrides DNA_API_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(resultsCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// deps holds everything a command needs, opened from config.
type deps struct {
	cfg     config.Config
	log     logger.Logger
	env     ops.Env
	closers []io.Closer
}

func setup(opts ...api.Option) (*deps, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = strings.TrimRight(apiURL, "/")
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if verbose {
		cfg.Debug = true
	}

	rt := &deps{cfg: cfg}

	log, logFile, err := logger.NewFile(cfg.LogPath, cfg.Debug)
	if err != nil {
		return nil, err
	}
	rt.log = log
	rt.closers = append(rt.closers, logFile)

	store, err := session.Open(cfg.StatePath, log)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.closers = append(rt.closers, store)

	validator, err := validation.New(log)
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.env = ops.Env{
		Client:    api.NewClient(cfg.APIURL, cfg.Timeout, store, log, opts...),
		Store:     store,
		Validator: validator,
	}
	log.Debug("runtime ready", "api_url", cfg.APIURL, "state", cfg.StatePath, "mode", cfg.SearchMode)
	return rt, nil
}

func (rt *deps) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i].Close()
	}
}

func runTUI() error {
	rt, err := setup()
	if err != nil {
		return err
	}
	defer rt.Close()

	app := tui.NewApp(rt.cfg, rt.env, rt.log)
	p := tea.NewProgram(app, tea.WithAltScreen())

	// Session changes made by request goroutines reach the UI as messages.
	unsubscribe := rt.env.Store.Subscribe(func(ev session.Event) {
		switch ev.Kind {
		case session.EventExpired, session.EventLogout:
			p.Send(ui.SessionChangedMsg{Kind: ev.Kind})
		}
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
