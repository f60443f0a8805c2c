package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/quotebox/internal/cycle"
	"github.com/olivier-w/quotebox/internal/logger"
	"github.com/olivier-w/quotebox/internal/quotesource"
	"github.com/olivier-w/quotebox/internal/share"
	"github.com/olivier-w/quotebox/internal/theme"
	"github.com/olivier-w/quotebox/internal/ui"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:     "quotebox",
		Short:   "A terminal quote box",
		Long:    "quotebox fetches a batch of quotes and cycles through them in shuffled order.",
		Version: version,
		Args:    cobra.NoArgs,
		// Runtime errors are reported by main; usage is only useful for flag mistakes.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, cmd.Flags())
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default is $HOME/.config/quotebox/config.yml)")
	cmd.Flags().String("endpoint", "", "quote API endpoint")
	cmd.Flags().String("log-file", "", "append logs to this file")
	cmd.Flags().BoolP("verbose", "v", false, "enable debug logging")
	return cmd
}

func run(ctx context.Context, cfg appConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log, closeLog, err := logger.Open(cfg.LogFile, cfg.Verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	palette, err := theme.ParsePalette(cfg.Palette)
	if err != nil {
		return fmt.Errorf("palette: %w", err)
	}
	themes, err := theme.New(palette, nil)
	if err != nil {
		return err
	}

	source, err := quotesource.New(cfg.Endpoint,
		quotesource.WithTimeout(cfg.FetchTimeout),
		quotesource.WithLogger(log),
	)
	if err != nil {
		return err
	}

	sharer, err := share.New(cfg.ShareTemplate)
	if err != nil {
		return err
	}
	// The browser launcher echoes to stdout, which belongs to the TUI.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard

	ctrl := cycle.New(
		cycle.WithThemes(themes),
		cycle.WithDelays(cfg.FadeOut, cfg.FadeIn),
		cycle.WithLogger(log),
	)

	model := ui.New(ui.Config{
		Source:        source,
		Controller:    ctrl,
		Sharer:        sharer,
		FetchTimeout:  cfg.FetchTimeout,
		RetryInterval: cfg.RetryInterval,
		Logger:        log,
	})

	log.Info("starting quotebox", "version", version, "endpoint", source.Endpoint())
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("quotebox requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
