package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/yildizm/CrowdGuard/internal/config"
	"github.com/yildizm/CrowdGuard/internal/emoji"
	"github.com/yildizm/CrowdGuard/internal/logger"
	"github.com/yildizm/CrowdGuard/internal/ui"
)

var (
	cfgFile string
	verbose bool
	noColor bool
	noEmoji bool

	globalConfig *config.Config
)

// NewRootCommand creates the root command. Without a subcommand it starts
// the dashboard.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "crowdguard",
		Short: "Crowd safety monitoring dashboard",
		Long: `CrowdGuard is a terminal dashboard for crowd safety at large events.

It shows live gate occupancy, camera feeds, priority groups, guard
assignments and alerts, and simulates AI analysis of uploaded crowd videos.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			globalConfig = cfg
			applyPresentation(cmd, cfg)
			return nil
		},
		RunE: runDashboard,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newSnapshotCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newEnginesCommand())
	rootCmd.AddCommand(newAlertsCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// GetGlobalConfig returns the configuration loaded for the running command,
// or the defaults before one was loaded
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

// applyPresentation combines the flags with the ui section of cfg. A flag
// set on the command line always wins.
func applyPresentation(cmd *cobra.Command, cfg *config.Config) {
	disableEmoji := cfg.UI.NoEmoji
	if flag := cmd.Flag("no-emoji"); flag != nil && flag.Changed {
		disableEmoji = noEmoji
	} else if runtime.GOOS == "windows" {
		disableEmoji = true
	}
	emoji.SetEmojiDisabled(disableEmoji)

	disableColor := cfg.UI.NoColor
	if flag := cmd.Flag("no-color"); flag != nil && flag.Changed {
		disableColor = noColor
	}
	ui.SetColorDisabled(disableColor)

	if !ui.SetThemeByName(cfg.UI.Theme) {
		ui.SetThemeByName("default")
	}
}

// newLogger creates a component logger gated by --verbose
func newLogger(component string) *logger.Logger {
	return logger.NewWithCallback(component, func() bool { return verbose })
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			fmt.Fprintf(cmd.OutOrStdout(), "CrowdGuard %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
			fmt.Fprintf(cmd.OutOrStdout(), "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
