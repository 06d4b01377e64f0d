// Package cmd provides the command-line interface for Quill with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --port, etc.) - highest priority
//	2. QUILL_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (QUILL_SERVER_PORT, etc.)
//	4. Configuration files (.quill.yml) - lowest priority
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "A markdown blog engine with tag filtering and live reload",
	Long: `Quill serves a directory of markdown articles as a browsable blog:
articles carry tags, a difficulty level, and a recommendation rating in
their front matter; readers filter the listing by clicking tags.

Key Features:
  • Markdown article discovery with YAML front matter
  • Tag filtering (ALL shows everything)
  • Difficulty and recommendation rating glyphs
  • Hot reload development server
  • Static site generation

Quick Start:
  quill init                      Initialize a new blog
  quill serve                     Start the development server
  quill list                      List all articles
  quill build                     Build the static site

Command Aliases (for faster typing):
  serve (s), build (b), list (l), init (i)`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .quill.yml, can also use QUILL_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. QUILL_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .quill.yml in current directory
//
// The function also enables automatic environment variable binding for all
// configuration values with the QUILL_ prefix (e.g., QUILL_SERVER_PORT=8080).
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("QUILL_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".quill")
	}

	viper.SetEnvPrefix("QUILL")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// If the file is missing or malformed Viper falls back to defaults;
	// `quill doctor` reports config problems explicitly.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
