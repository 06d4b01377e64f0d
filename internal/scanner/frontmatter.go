package scanner

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/conneroisu/quill/internal/registry"
)

var frontMatterFence = []byte("---")

// frontMatter is the YAML header of an article file
type frontMatter struct {
	Title          string   `yaml:"title"`
	Tags           []string `yaml:"tags"`
	Difficulty     string   `yaml:"difficulty"`
	Recommendation int      `yaml:"recommendation"`
	Date           string   `yaml:"date"`
	Draft          bool     `yaml:"draft"`
	Summary        string   `yaml:"summary"`
}

// ParseArticle splits front matter from body and builds an ArticleInfo.
// A file without front matter is a valid article: the title falls back to
// the slug and it carries no tags.
func ParseArticle(path string, data []byte) (*registry.ArticleInfo, error) {
	slug := Slug(path)

	header, body := splitFrontMatter(data)

	var fm frontMatter
	if len(header) > 0 {
		if err := yaml.Unmarshal(header, &fm); err != nil {
			return nil, fmt.Errorf("front matter: %w", err)
		}
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = slug
	}

	tags := make([]string, 0, len(fm.Tags))
	for _, tag := range fm.Tags {
		tag = cleanTag(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}

	date, err := parseDate(fm.Date)
	if err != nil {
		return nil, err
	}

	return &registry.ArticleInfo{
		Slug:           slug,
		Title:          title,
		FilePath:       path,
		Tags:           tags,
		Difficulty:     strings.ToLower(strings.TrimSpace(fm.Difficulty)),
		Recommendation: fm.Recommendation,
		Date:           date,
		Draft:          fm.Draft,
		Summary:        strings.TrimSpace(fm.Summary),
		Body:           string(body),
	}, nil
}

// cleanTag normalizes a front-matter tag so it is usable as a URL path
// segment and as a token in the space-separated tag attribute: whitespace
// runs and path separators fold to hyphens, bare dot segments are dropped.
func cleanTag(tag string) string {
	tag = strings.Join(strings.Fields(tag), "-")
	tag = strings.ReplaceAll(tag, "/", "-")
	tag = strings.ReplaceAll(tag, `\`, "-")
	return strings.Trim(tag, ".")
}

// splitFrontMatter returns the YAML header (without fences) and the body.
// The header must start at the first byte of the file.
func splitFrontMatter(data []byte) (header, body []byte) {
	if !bytes.HasPrefix(data, frontMatterFence) {
		return nil, data
	}

	rest := data[len(frontMatterFence):]
	if len(rest) > 0 && rest[0] == '\r' {
		rest = rest[1:]
	}
	if len(rest) == 0 || rest[0] != '\n' {
		return nil, data
	}
	rest = rest[1:]

	for _, terminator := range [][]byte{[]byte("\n---\n"), []byte("\n---\r\n")} {
		if idx := bytes.Index(rest, terminator); idx >= 0 {
			return rest[:idx], rest[idx+len(terminator):]
		}
	}
	if bytes.HasSuffix(rest, []byte("\n---")) {
		return rest[:len(rest)-len("\n---")], nil
	}

	// Unterminated fence: treat the whole file as body
	return nil, data
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}

	formats := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date %q", value)
}
