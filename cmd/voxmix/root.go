// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/ik5/voxmix/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "voxmix",
	Short: "A small fixed-voice audio mixer",
	Long: `voxmix mixes up to a handful of decoded audio streams (WAV, AIFF, FLAC,
Ogg Vorbis, MP3) into one 44.1kHz stereo stream.

Assets are looked up on disk first and then inside an optional zip bundle.
Use "play" to hear them on the default output device or "render" to mix
them into a WAV file.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("assets", "", "asset root directory")
	rootCmd.PersistentFlags().String("archive", "", "zip bundle searched after the asset root")
	rootCmd.PersistentFlags().Int("voices", 5, "number of voices")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")

	viper.BindPFlag("assets.root", rootCmd.PersistentFlags().Lookup("assets"))
	viper.BindPFlag("assets.archive", rootCmd.PersistentFlags().Lookup("archive"))
	viper.BindPFlag("engine.voices", rootCmd.PersistentFlags().Lookup("voices"))
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig applies global flags that override file and environment values
func initConfig() {
	if verbose {
		viper.Set("logging.level", "debug")
	}
}

// loadConfig reads and validates the configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
