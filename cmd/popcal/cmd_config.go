package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/ruminaider/popcal/internal/config"
	"github.com/ruminaider/popcal/internal/paths"
	"github.com/spf13/cobra"
)

var (
	configInitTOML  bool
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage popcal configuration",
	Long:  "Commands for creating and inspecting the popcal config file.",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = paths.ConfigFile()
			if configInitTOML {
				path = paths.TOMLConfigFile()
			}
		}
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		cfg, err := promptConfig(config.Default())
		if err != nil {
			return err
		}
		if err := config.Save(path, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, _ := os.Getwd()
		cfg, source, err := loadConfig(wd)
		if err != nil {
			return err
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		if source == "" {
			source = "defaults"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# source: %s\n%s", source, data)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitTOML, "toml", false, "Write config.toml instead of config.yaml")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

// promptConfig asks for every setting, starting from cfg.
func promptConfig(cfg config.Config) (config.Config, error) {
	fmt.Println()
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should the calendar open?").
				Options(
					huh.NewOption("Below the input", "bottom"),
					huh.NewOption("Above the input", "top"),
					huh.NewOption("Right of the input", "right"),
					huh.NewOption("Left of the input", "left"),
				).
				Value(&cfg.Position),
			huh.NewSelect[string]().
				Title("When it does not fit, try the other sides").
				Options(
					huh.NewOption("Counterclockwise", "counterclockwise"),
					huh.NewOption("Clockwise", "clockwise"),
					huh.NewOption("Never move", "none"),
				).
				Value(&cfg.Adjustment),
			huh.NewSelect[string]().
				Title("Open the calendar on").
				Options(
					huh.NewOption("Click", "click"),
					huh.NewOption("Hover", "hover"),
					huh.NewOption("Focus", "focus"),
					huh.NewOption("Keyboard only", "noop"),
				).
				Value(&cfg.Trigger),
			huh.NewSelect[string]().
				Title("When the screen scrolls").
				Options(
					huh.NewOption("Follow the input", "reposition"),
					huh.NewOption("Close the calendar", "close"),
					huh.NewOption("Stay put", "noop"),
				).
				Value(&cfg.Scroll),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Date format").
				Description("Go layout, e.g. 2006-01-02 or 02/01/2006").
				Value(&cfg.DateFormat).
				Validate(config.ValidateLayout),
			huh.NewSelect[string]().
				Title("Weeks start on").
				Options(
					huh.NewOption("Monday", "monday"),
					huh.NewOption("Sunday", "sunday"),
					huh.NewOption("Saturday", "saturday"),
				).
				Value(&cfg.WeekStart),
		),
	).Run()
	if err != nil {
		return config.Config{}, err
	}
	return cfg, cfg.Validate()
}
