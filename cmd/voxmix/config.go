// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"log/slog"

	"github.com/ik5/voxmix/internal/config"
	"github.com/ik5/voxmix/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
	Long:  "Commands for managing and validating voxmix configuration.",
}

// configValidateCmd validates the current configuration
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long:  "Validate the current configuration file and environment variables.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Setup("info", "text")

		cfg, err := config.Load(viper.GetViper(), cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		if err := cfg.Validate(); err != nil {
			slog.Error("configuration validation failed", slog.Any("error", err))
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "configuration is valid")
		return nil
	},
}

// configShowCmd shows the current configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the current configuration values from file, environment variables and flags.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper(), cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, "Current Configuration:")
		fmt.Fprintf(w, "  Engine:\n")
		fmt.Fprintf(w, "    Voices: %d\n", cfg.Engine.Voices)
		fmt.Fprintf(w, "    Block frames: %d\n", cfg.Engine.BlockFrames)
		fmt.Fprintf(w, "    Tick interval: %s\n", cfg.Engine.TickInterval)
		fmt.Fprintf(w, "  Assets:\n")
		fmt.Fprintf(w, "    Root: %s\n", orNone(cfg.Assets.Root))
		fmt.Fprintf(w, "    Archive: %s\n", orNone(cfg.Assets.Archive))
		fmt.Fprintf(w, "    Cache TTL: %s\n", cfg.Assets.CacheTTL)
		fmt.Fprintf(w, "    Watch: %t\n", cfg.Assets.Watch)
		fmt.Fprintf(w, "  Device:\n")
		fmt.Fprintf(w, "    Buffer: %s\n", cfg.Device.Buffer)
		fmt.Fprintf(w, "  Logging:\n")
		fmt.Fprintf(w, "    Level: %s\n", cfg.Logging.Level)
		fmt.Fprintf(w, "    Format: %s\n", cfg.Logging.Format)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
