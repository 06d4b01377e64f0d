// Package scanner provides article discovery for markdown content trees.
//
// The scanner walks configured content roots for .md files, splits YAML
// front matter from the body, and registers the result with the article
// registry so change events reach the server and the static builder. File
// hashes are kept for change detection; files whose hash is unchanged are
// not re-registered. Exclude patterns match against the file base name.
package scanner

import (
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"strings"
	"sync"

	qerrors "github.com/conneroisu/quill/internal/errors"
	"github.com/conneroisu/quill/internal/registry"
)

// ArticleScanner discovers markdown articles and keeps the registry current
type ArticleScanner struct {
	registry        *registry.ArticleRegistry
	excludePatterns []string
	includeDrafts   bool
	hashes          map[string]string
	mutex           sync.Mutex
}

// Option configures an ArticleScanner
type Option func(*ArticleScanner)

// WithExcludePatterns sets base-name patterns to skip during scanning
func WithExcludePatterns(patterns []string) Option {
	return func(s *ArticleScanner) {
		s.excludePatterns = patterns
	}
}

// WithDrafts includes articles whose front matter marks them as drafts
func WithDrafts(include bool) Option {
	return func(s *ArticleScanner) {
		s.includeDrafts = include
	}
}

// NewArticleScanner creates a new article scanner
func NewArticleScanner(reg *registry.ArticleRegistry, opts ...Option) *ArticleScanner {
	s := &ArticleScanner{
		registry: reg,
		hashes:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanDirectory walks a content root and registers every markdown article
// found. Per-file failures are collected and returned together; a bad file
// never aborts the walk.
func (s *ArticleScanner) ScanDirectory(root string) error {
	collector := qerrors.NewErrorCollector()

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			collector.Add(qerrors.NewScanError(path, "walking content root", err))
			return nil
		}

		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		if s.isExcluded(info.Name()) {
			return nil
		}

		if err := s.ScanFile(path); err != nil {
			collector.Add(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scanning %s: %w", root, err)
	}

	if collector.HasErrors() {
		errs := collector.Errors()
		return fmt.Errorf("scanning %s: %d file(s) failed, first: %w", root, len(errs), errs[0])
	}
	return nil
}

// ScanFile parses a single markdown file and registers the article. Files
// whose content hash is unchanged since the last scan are skipped.
func (s *ArticleScanner) ScanFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return qerrors.NewScanError(path, "reading file", err)
	}

	hash := fmt.Sprintf("%08x", crc32.ChecksumIEEE(data))

	s.mutex.Lock()
	unchanged := s.hashes[path] == hash
	s.mutex.Unlock()
	if unchanged {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return qerrors.NewScanError(path, "stat file", err)
	}

	article, err := ParseArticle(path, data)
	if err != nil {
		return qerrors.NewScanError(path, "parsing article", err)
	}

	if article.Draft && !s.includeDrafts {
		// A published article edited into draft state disappears from the
		// registry on rescan.
		s.registry.RemoveByPath(path)
		s.forget(path)
		return nil
	}

	article.Hash = hash
	article.LastMod = info.ModTime()

	s.registry.Register(article)

	s.mutex.Lock()
	s.hashes[path] = hash
	s.mutex.Unlock()
	return nil
}

// RemoveFile drops the article registered from path, if any
func (s *ArticleScanner) RemoveFile(path string) {
	s.registry.RemoveByPath(path)
	s.forget(path)
}

func (s *ArticleScanner) forget(path string) {
	s.mutex.Lock()
	delete(s.hashes, path)
	s.mutex.Unlock()
}

func (s *ArticleScanner) isExcluded(name string) bool {
	for _, pattern := range s.excludePatterns {
		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return false
}

// Slug derives the article slug from its file path: the base name without
// extension, lower-cased, spaces and underscores folded to hyphens.
func Slug(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	base = strings.ToLower(base)
	base = strings.ReplaceAll(base, " ", "-")
	base = strings.ReplaceAll(base, "_", "-")
	return base
}
