// tvxdemo shows a tvx view tree in the terminal: the built-in demo, or a
// YAML document given with --file.
package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tvx"
	"tvx/config"
	"tvx/internal/logutil"
	"tvx/loader"
	"tvx/screen"
	"tvx/teaview"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tvxdemo:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgPath string
		file    string
		driver  string
		useTea  bool
	)
	cmd := &cobra.Command{
		Use:           "tvxdemo",
		Short:         "Show a tvx view tree",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return errors.New("stdout is not a terminal")
			}
			cfg, err := loadConfig(cfgPath, driver)
			if err != nil {
				return err
			}
			if err := logutil.SetOutputFile(cfg.LogFile); err != nil {
				return err
			}
			root, err := buildRoot(cfg, file)
			if err != nil {
				return err
			}
			if useTea {
				return runTea(root)
			}
			return run(cfg, root)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "tvx.toml", "settings file")
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML document to show instead of the demo")
	cmd.Flags().StringVar(&driver, "driver", "", `terminal driver, "ansi" or "tcell"`)
	cmd.Flags().BoolVar(&useTea, "tea", false, "run inside a Bubble Tea program")
	return cmd
}

func loadConfig(path, driver string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	if driver != "" {
		cfg.Driver = driver
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func buildRoot(cfg config.Config, file string) (tvx.View, error) {
	var root tvx.View
	if file == "" {
		root = demo(cfg)
	} else {
		l := loader.New()
		l.Marker.SetText(cfg.TrimmingMarker)
		l.Theme = cfg.ThemeValue()
		doc, err := l.LoadFile(file)
		if err != nil {
			return nil, err
		}
		root = doc.Root
	}
	return tvx.NewBackground(cfg.BackgroundStyle(), root), nil
}

func newDriver(cfg config.Config) (screen.Driver, error) {
	switch cfg.Driver {
	case "tcell":
		ts, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("tcell: %w", err)
		}
		return screen.NewTcellDriver(ts, cfg.Mouse), nil
	default:
		return screen.NewANSIDriver(os.Stdin, os.Stdout, cfg.Mouse), nil
	}
}

func run(cfg config.Config, root tvx.View) error {
	d, err := newDriver(cfg)
	if err != nil {
		return err
	}
	s, err := screen.New(d, screen.MaxSize(cfg.MaxSize()))
	if err != nil {
		return err
	}
	defer s.Close()
	app := tvx.NewApp(s).SetRoot(root)
	app.Handle("ctrl+c", app.Quit)
	app.Handle("ctrl+q", app.Quit)
	return app.Run()
}

func runTea(root tvx.View) error {
	m, err := teaview.New(root, 80, 24)
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(m.QuitOn("ctrl+c", "ctrl+q"), tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	return m.Err()
}
