package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/quill/internal/config"
	"github.com/conneroisu/quill/internal/registry"
	"github.com/conneroisu/quill/internal/renderer"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List all discovered articles",
	Long: `List all discovered articles with their metadata: slug, title, tags,
difficulty, and recommendation.

Examples:
  quill list                      # List articles in table format
  quill list -f json              # Output as JSON (short flag)
  quill list --format yaml        # Output as YAML
  quill list --tags               # List tags with article counts`,
	RunE: runList,
}

var (
	listFlags    *OutputFlags
	listTagsOnly bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listFlags = AddOutputFlags(listCmd)
	listCmd.Flags().BoolVar(&listTagsOnly, "tags", false, "List tags instead of articles")
}

// listedArticle is the serializable listing row
type listedArticle struct {
	Slug           string   `json:"slug" yaml:"slug"`
	Title          string   `json:"title" yaml:"title"`
	Tags           []string `json:"tags" yaml:"tags"`
	Difficulty     string   `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Recommendation int      `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
	Date           string   `json:"date,omitempty" yaml:"date,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	if err := validateFormat(cmd.Flags(), "table", "json", "yaml"); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	reg, err := scanContent(cfg)
	if err != nil {
		return err
	}

	if listTagsOnly {
		return outputTags(reg.TagSummaries())
	}

	articles := reg.GetAll()
	rows := make([]listedArticle, 0, len(articles))
	for _, article := range articles {
		rows = append(rows, listedArticle{
			Slug:           article.Slug,
			Title:          article.Title,
			Tags:           article.Tags,
			Difficulty:     article.Difficulty,
			Recommendation: article.Recommendation,
			Date:           renderer.FormatDate(article.Date),
		})
	}

	switch listFlags.Format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rows)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(rows)
	default:
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SLUG\tTITLE\tTAGS\tDIFFICULTY\tRECOMMENDED\tDATE")
		for _, row := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				row.Slug,
				row.Title,
				strings.Join(row.Tags, ","),
				renderer.RenderDifficulty(row.Difficulty),
				renderer.RenderRecommendation(row.Recommendation),
				row.Date,
			)
		}
		return w.Flush()
	}
}

func outputTags(tags []registry.TagSummary) error {
	switch listFlags.Format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(tags)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(tags)
	default:
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TAG\tARTICLES")
		for _, tag := range tags {
			fmt.Fprintf(w, "%s\t%d\n", tag.Name, tag.Count)
		}
		return w.Flush()
	}
}
