package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/ruminaider/popcal/cmd/popcal/tui"
	"github.com/ruminaider/popcal/internal/calendar"
	"github.com/ruminaider/popcal/internal/config"
	"github.com/ruminaider/popcal/internal/paths"
	"github.com/ruminaider/popcal/internal/project"
	"github.com/ruminaider/popcal/internal/trigger"
	"github.com/spf13/cobra"
)

// errCancelled ends the process with a non-zero status and no message.
var errCancelled = errors.New("cancelled")

var (
	pickValue    string
	pickTitle    string
	pickPosition string
	pickTrigger  string
	pickScroll   string
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick a single date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPicker(cmd, tui.ModeDate)
	},
}

var rangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Pick a start and end date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPicker(cmd, tui.ModeRange)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{rootCmd, pickCmd, rangeCmd} {
		cmd.Flags().StringVarP(&pickValue, "value", "v", "", "Initial value, in the configured date format")
		cmd.Flags().StringVar(&pickTitle, "title", "", "Heading shown above the input")
		cmd.Flags().StringVar(&pickPosition, "position", "", "Preferred side: bottom, top, left or right")
		cmd.Flags().StringVar(&pickTrigger, "trigger", "", "Open on: click, hover, focus or noop")
		cmd.Flags().StringVar(&pickScroll, "scroll", "", "On scroll: reposition, close or noop")
	}
}

// loadConfig resolves the config file, applies the nearest .popcal.yaml
// above workDir, then the flag overrides.
func loadConfig(workDir string) (config.Config, string, error) {
	var cfg config.Config
	var source string
	var err error
	if configPath != "" {
		if _, statErr := os.Stat(configPath); statErr != nil {
			return config.Config{}, "", fmt.Errorf("config file: %w", statErr)
		}
		cfg, err = config.Load(configPath)
		source = configPath
	} else {
		cfg, source, err = config.LoadFirst(paths.ConfigFile(), paths.TOMLConfigFile())
	}
	if err != nil {
		return config.Config{}, "", err
	}
	if workDir != "" {
		var local string
		cfg, local, err = project.Resolve(workDir, cfg)
		if err != nil {
			return config.Config{}, "", err
		}
		if local != "" {
			source = strings.TrimPrefix(source+", "+local, ", ")
		}
	}

	if pickPosition != "" {
		cfg.Position = pickPosition
	}
	if pickTrigger != "" {
		cfg.Trigger = pickTrigger
	}
	if pickScroll != "" {
		cfg.Scroll = pickScroll
	}
	return cfg, source, cfg.Validate()
}

// normalize parses value and formats it back, for non-interactive use.
func normalize(mode tui.Mode, cfg config.Config, value string) (string, error) {
	switch mode {
	case tui.ModeRange:
		r, err := calendar.ParseRange(value, cfg.DateFormat, cfg.Separator(), time.Local)
		if err != nil {
			return "", err
		}
		if !r.Complete() {
			return "", tui.ErrIncompleteRange
		}
		return calendar.FormatRange(r, cfg.DateFormat, cfg.Separator()), nil
	default:
		d, err := calendar.ParseDate(value, cfg.DateFormat, time.Local)
		if err != nil {
			return "", err
		}
		return calendar.FormatDate(d, cfg.DateFormat), nil
	}
}

// mouseOption picks the mouse reporting a trigger needs: hover needs every
// motion event, the others only clicks and wheel.
func mouseOption(kind string) tea.ProgramOption {
	if k, err := trigger.ParseKind(kind); err == nil && k == trigger.KindHover {
		return tea.WithMouseAllMotion()
	}
	return tea.WithMouseCellMotion()
}

func runPicker(cmd *cobra.Command, mode tui.Mode) error {
	wd, _ := os.Getwd()
	cfg, source, err := loadConfig(wd)
	if err != nil {
		return err
	}

	// TTY guard: without a terminal, validate and echo --value so scripts
	// still get a normalized date.
	if !term.IsTerminal(os.Stdin.Fd()) {
		if pickValue == "" {
			return errors.New("popcal needs an interactive terminal (or --value)")
		}
		out, err := normalize(mode, cfg, pickValue)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}

	logger, closeLog, err := newLogger(logFile, debug)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info("starting picker", "mode", mode, "config", source, "version", version)

	model, err := tui.NewModel(tui.Options{
		Mode:   mode,
		Config: cfg,
		Value:  pickValue,
		Title:  pickTitle,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	// The frame goes to stderr so stdout carries only the result.
	p := tea.NewProgram(model, tea.WithAltScreen(), mouseOption(cfg.Trigger), tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	final := finalModel.(tui.Model)
	if !final.Confirmed {
		logger.Info("cancelled")
		return errCancelled
	}
	logger.Info("confirmed", "value", final.Result)
	fmt.Fprintln(cmd.OutOrStdout(), final.Result)
	return nil
}
