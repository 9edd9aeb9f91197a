package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/marcin-skalski/pr-inbox/internal/browser"
	"github.com/marcin-skalski/pr-inbox/internal/config"
	"github.com/marcin-skalski/pr-inbox/internal/daemon"
	"github.com/marcin-skalski/pr-inbox/internal/github"
	"github.com/marcin-skalski/pr-inbox/internal/logging"
	"github.com/marcin-skalski/pr-inbox/internal/tui"
)

var version = "dev"

type CLI struct {
	Config  string           `help:"Path to config file." type:"path" placeholder:"PATH"`
	NoTUI   bool             `name:"no-tui" help:"Disable TUI mode and log pull requests instead."`
	Version kong.VersionFlag `help:"Show version information."`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("pr-inbox"),
		kong.Description("Track the pull requests waiting on you."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
	)

	if err := run(cli); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cli CLI) error {
	configPath := cli.Config
	if configPath == "" {
		configPath = config.DefaultPath()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Auto-detect TUI capability
	enableTUI := !cli.NoTUI && os.Getenv("PR_INBOX_TUI") != "0" &&
		isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())

	logger, err := logging.SetupLogger(cfg.LogFile, cfg.Log.Level, enableTUI)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer logging.CloseFile()

	gh := github.NewClient(cfg.GHPath, logger)
	d := daemon.New(gh, logger)

	if !enableTUI {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info("pr-inbox starting (headless)", "config", configPath)
		return d.Run(ctx)
	}

	logger.Info("pr-inbox starting", "config", configPath)
	m := tui.NewModel(d, browser.NewOpener(cfg.Browser, logger), logger)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	logger.Info("pr-inbox stopped")
	return nil
}
