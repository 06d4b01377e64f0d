package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/quill/internal/build"
	"github.com/conneroisu/quill/internal/config"
	"github.com/conneroisu/quill/internal/registry"
	"github.com/conneroisu/quill/internal/scanner"
)

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"b"},
	Short:   "Build the static site",
	Long: `Scan the content roots and write the complete static site to the
output directory: the article index, one listing per tag, one page per
article, and the static assets.

Examples:
  quill build                      # Build into ./public
  quill build -o dist              # Build into ./dist
  quill build --clean              # Remove the output dir first
  quill build --drafts             # Include draft articles`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringP("output", "o", "public", "Output directory")
	buildCmd.Flags().Bool("clean", false, "Remove the output directory before building")
	buildCmd.Flags().Bool("drafts", false, "Include draft articles")

	viper.BindPFlag("build.output_dir", buildCmd.Flags().Lookup("output"))
	viper.BindPFlag("build.clean", buildCmd.Flags().Lookup("clean"))
	viper.BindPFlag("content.include_drafts", buildCmd.Flags().Lookup("drafts"))
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	reg, err := scanContent(cfg)
	if err != nil {
		return err
	}

	generator, err := build.NewStaticSiteGenerator(cfg, reg)
	if err != nil {
		return err
	}

	result, err := generator.Build(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Built %d page(s) into %s in %s\n", result.Pages, result.OutputDir, result.Duration.Round(time.Millisecond))
	return nil
}

// scanContent scans every configured content root into a fresh registry
func scanContent(cfg *config.Config) (*registry.ArticleRegistry, error) {
	reg := registry.NewArticleRegistry()
	articleScanner := scanner.NewArticleScanner(reg,
		scanner.WithExcludePatterns(cfg.Content.ExcludePatterns),
		scanner.WithDrafts(cfg.Content.IncludeDrafts),
	)

	for _, root := range cfg.Content.Roots {
		if err := articleScanner.ScanDirectory(root); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
