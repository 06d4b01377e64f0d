// Package build generates the static site: every page the dev server
// serves, written as files under the configured output directory.
package build

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/conneroisu/quill/internal/config"
	qerrors "github.com/conneroisu/quill/internal/errors"
	"github.com/conneroisu/quill/internal/registry"
	"github.com/conneroisu/quill/internal/renderer"
)

// StaticSiteGenerator renders registry articles into a static site
type StaticSiteGenerator struct {
	config   *config.Config
	registry *registry.ArticleRegistry
	renderer *renderer.PageRenderer
}

// Result summarizes a static build
type Result struct {
	OutputDir string
	Pages     int
	Duration  time.Duration
	Errors    []error
}

// NewStaticSiteGenerator creates a generator over an already-scanned
// registry. Pages are rendered without the live-reload client.
func NewStaticSiteGenerator(cfg *config.Config, reg *registry.ArticleRegistry) (*StaticSiteGenerator, error) {
	pageRenderer, err := renderer.NewPageRenderer(cfg.Site)
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	return &StaticSiteGenerator{
		config:   cfg,
		registry: reg,
		renderer: pageRenderer,
	}, nil
}

// Build writes the whole site: the index, one listing per tag, one page per
// article, and the static assets. Page failures are collected; the build
// continues past them and reports everything at the end.
func (g *StaticSiteGenerator) Build(ctx context.Context) (*Result, error) {
	start := time.Now()
	outputDir := g.config.Build.OutputDir

	if g.config.Build.Clean {
		if err := os.RemoveAll(outputDir); err != nil {
			return nil, fmt.Errorf("cleaning output dir: %w", err)
		}
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	collector := qerrors.NewErrorCollector()
	articles := g.registry.GetAll()
	tags := g.registry.TagSummaries()
	pages := 0

	// Index
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page, err := g.renderer.Index(articles, tags, registry.TagAll); err != nil {
		collector.Add(qerrors.NewBuildError("index", "rendering", err))
	} else if err := g.writePage(filepath.Join(outputDir, "index.html"), page); err != nil {
		collector.Add(err)
	} else {
		pages++
	}

	// One listing per tag
	for _, tag := range tags {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !registry.ValidTagPath(tag.Name) {
			collector.Add(qerrors.NewBuildError("tags/"+tag.Name, "tag name is not a valid path segment", nil))
			continue
		}
		path := filepath.Join(outputDir, "tags", tag.Name, "index.html")
		if page, err := g.renderer.Index(articles, tags, tag.Name); err != nil {
			collector.Add(qerrors.NewBuildError("tags/"+tag.Name, "rendering", err))
		} else if err := g.writePage(path, page); err != nil {
			collector.Add(err)
		} else {
			pages++
		}
	}

	// One page per article
	for _, article := range articles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(outputDir, "articles", article.Slug, "index.html")
		if page, err := g.renderer.Article(article); err != nil {
			collector.Add(qerrors.NewBuildError("articles/"+article.Slug, "rendering", err))
		} else if err := g.writePage(path, page); err != nil {
			collector.Add(err)
		} else {
			pages++
		}
	}

	if err := g.copyAssets(outputDir); err != nil {
		collector.Add(err)
	}

	result := &Result{
		OutputDir: outputDir,
		Pages:     pages,
		Duration:  time.Since(start),
		Errors:    collector.Errors(),
	}

	if collector.HasErrors() {
		return result, fmt.Errorf("build finished with %d error(s), first: %w", collector.Count(), result.Errors[0])
	}
	return result, nil
}

func (g *StaticSiteGenerator) writePage(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return qerrors.NewBuildError(path, "creating page directory", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return qerrors.NewBuildError(path, "writing page", err)
	}
	return nil
}

// copyAssets writes the embedded assets, then lets the user's static
// directory shadow them, mirroring the dev server's lookup order.
func (g *StaticSiteGenerator) copyAssets(outputDir string) error {
	staticOut := filepath.Join(outputDir, "static")
	if err := os.MkdirAll(staticOut, 0755); err != nil {
		return qerrors.NewBuildError(staticOut, "creating static directory", err)
	}

	embedded, err := fs.Sub(renderer.Assets, "assets")
	if err != nil {
		return qerrors.NewBuildError("static", "opening embedded assets", err)
	}

	err = fs.WalkDir(embedded, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(embedded, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(staticOut, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		return os.WriteFile(dest, data, 0644)
	})
	if err != nil {
		return qerrors.NewBuildError("static", "copying embedded assets", err)
	}

	staticDir := g.config.Content.StaticDir
	if staticDir == "" {
		return nil
	}
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		return nil
	}

	err = filepath.Walk(staticDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(staticDir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		dest := filepath.Join(staticOut, rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		return os.WriteFile(dest, data, 0644)
	})
	if err != nil {
		return qerrors.NewBuildError("static", "copying site assets", err)
	}
	return nil
}
