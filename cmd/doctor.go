package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/conneroisu/quill/internal/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and content setup",
	Long: `Check the blog setup: configuration file syntax, configuration
values, and content root existence. Exits non-zero if any check fails.

Examples:
  quill doctor                    # Check .quill.yml and content roots
  quill doctor --config dev.yml   # Check a specific config file`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	failed := false

	configPath := cfgFile
	if configPath == "" {
		configPath = os.Getenv("QUILL_CONFIG_FILE")
	}
	if configPath == "" {
		configPath = ".quill.yml"
	}

	// Strict YAML syntax check: viper silently falls back to defaults on a
	// malformed file, so the doctor parses it directly.
	if data, err := os.ReadFile(configPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("~ %s not found, defaults apply\n", configPath)
		} else {
			fmt.Printf("✗ reading %s: %v\n", configPath, err)
			failed = true
		}
	} else {
		var parsed map[string]interface{}
		if err := yaml.UnmarshalStrict(data, &parsed); err != nil {
			fmt.Printf("✗ %s is not valid YAML: %v\n", configPath, err)
			failed = true
		} else {
			fmt.Printf("✓ %s parses\n", configPath)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("✗ configuration invalid: %v\n", err)
		return fmt.Errorf("configuration invalid: %w", err)
	}
	fmt.Println("✓ configuration valid")

	for _, root := range cfg.Content.Roots {
		info, err := os.Stat(root)
		switch {
		case os.IsNotExist(err):
			fmt.Printf("✗ content root %s does not exist\n", root)
			failed = true
		case err != nil:
			fmt.Printf("✗ content root %s: %v\n", root, err)
			failed = true
		case !info.IsDir():
			fmt.Printf("✗ content root %s is not a directory\n", root)
			failed = true
		default:
			fmt.Printf("✓ content root %s\n", root)
		}
	}

	if failed {
		return fmt.Errorf("doctor found problems")
	}

	fmt.Println("All checks passed")
	return nil
}
