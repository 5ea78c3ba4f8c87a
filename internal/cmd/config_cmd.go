package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runger/fitwheel/internal/config"
)

var configCmd = &cobra.Command{
	Use:     "config [key] [value]",
	Short:   "Get or set configuration values",
	GroupID: groupSetup,
	Long: `Get or set fitwheel configuration values.

Without arguments, lists all configuration keys.
With one argument, shows the value of that key.
With two arguments, sets the key to the value.

Configuration is stored in ~/.config/fitwheel/config.yaml (XDG compliant).

Keys are in the format: section.key
Sections: picker, units, log

Examples:
  fitwheel config                          # List all keys
  fitwheel config units.system imperial    # Show pounds and feet
  fitwheel config picker.projection true   # 3D cylinder look
  fitwheel config picker.set_motion spring # Spring instead of easing`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	paths := config.DefaultPaths()
	cfg, err := config.LoadFromFile(paths.ConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch len(args) {
	case 0:
		return listConfig(cfg, paths)
	case 1:
		return getConfig(cfg, args[0])
	default:
		return setConfig(cfg, paths, args[0], args[1])
	}
}

// listConfig prints every key grouped by section, marking values that
// differ from the defaults.
func listConfig(cfg *config.Config, paths *config.Paths) error {
	defaults := config.DefaultConfig()
	section := ""
	var failed []string
	for _, key := range config.ListKeys() {
		value, err := cfg.Get(key)
		if err != nil {
			failed = append(failed, key)
			continue
		}
		sec, field, _ := strings.Cut(key, ".")
		if sec != section {
			if section != "" {
				fmt.Println()
			}
			fmt.Printf("%s[%s]%s\n", colorBold, sec, colorReset)
			section = sec
		}
		fmt.Printf("  %s%-20s%s %s", colorCyan, field, colorReset, displayValue(value))
		if def, err := defaults.Get(key); err == nil && def != value {
			fmt.Printf("  %s(default %s)%s", colorDim, displayValue(def), colorReset)
		}
		fmt.Println()
	}

	if len(failed) > 0 {
		fmt.Printf("\n%sWarning:%s Failed to retrieve keys: %s\n", colorYellow, colorReset, strings.Join(failed, ", "))
	}
	fmt.Printf("\nConfig file: %s\n", paths.ConfigFile())
	return nil
}

func displayValue(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

func getConfig(cfg *config.Config, key string) error {
	value, err := cfg.Get(key)
	if err != nil {
		return err
	}
	fmt.Println(displayValue(value))
	return nil
}

// setConfig validates the whole file before writing so a bad value never
// reaches disk.
func setConfig(cfg *config.Config, paths *config.Paths, key, value string) error {
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}
	if err := cfg.SaveToFile(paths.ConfigFile()); err != nil {
		return err
	}

	stored, err := cfg.Get(key)
	if err != nil {
		stored = value
	}
	fmt.Printf("%s%s%s = %s\n", colorCyan, key, colorReset, stored)
	fmt.Printf("Saved to: %s\n", paths.ConfigFile())
	return nil
}
