package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:     "init [directory]",
	Aliases: []string{"i"},
	Short:   "Initialize a new blog",
	Long: `Create the skeleton of a new blog: a .quill.yml configuration file,
a content directory with a sample article, and a static directory.

Examples:
  quill init                      # Initialize in the current directory
  quill init my-blog              # Initialize in ./my-blog`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().Bool("force", false, "Overwrite existing files")
}

const initialConfig = `site:
  title: My Blog
  description: Notes and articles

server:
  port: 8080
  host: localhost

content:
  roots:
    - ./content
  static_dir: ./static

build:
  output_dir: ./public

development:
  hot_reload: true
`

const sampleArticle = `---
title: Welcome to Quill
tags:
  - meta
difficulty: beginner
recommendation: 5
date: %s
summary: A first article to start from.
---

# Welcome

Edit this file, add more markdown files next to it, and run ` + "`quill serve`" + `.

Tags in the front matter drive the filter on the index page; difficulty
and recommendation render as glyph ratings.
`

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")

	if err := os.MkdirAll(filepath.Join(target, "content"), 0755); err != nil {
		return fmt.Errorf("creating content directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(target, "static"), 0755); err != nil {
		return fmt.Errorf("creating static directory: %w", err)
	}

	files := map[string]string{
		filepath.Join(target, ".quill.yml"): initialConfig,
		filepath.Join(target, "content", "welcome.md"): fmt.Sprintf(
			sampleArticle, time.Now().Format("2006-01-02")),
	}

	for path, content := range files {
		if _, err := os.Stat(path); err == nil && !force {
			fmt.Printf("Skipping %s (exists, use --force to overwrite)\n", path)
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("Created %s\n", path)
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  quill serve        # Start the development server")
	fmt.Println("  quill list         # List discovered articles")
	return nil
}
