package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/quill/internal/registry"
)

const sampleArticle = `---
title: Condition Variables in Practice
tags:
  - synchronization
  - threading
difficulty: intermediate
recommendation: 4
date: 2024-03-18
summary: Waiting without spinning.
---

# Condition Variables

Body text.
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestScanFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "condition-variables.md", sampleArticle)

	reg := registry.NewArticleRegistry()
	s := NewArticleScanner(reg)

	require.NoError(t, s.ScanFile(path))

	article, exists := reg.Get("condition-variables")
	require.True(t, exists)
	assert.Equal(t, "Condition Variables in Practice", article.Title)
	assert.Equal(t, []string{"synchronization", "threading"}, article.Tags)
	assert.Equal(t, "intermediate", article.Difficulty)
	assert.Equal(t, 4, article.Recommendation)
	assert.Equal(t, 2024, article.Date.Year())
	assert.Equal(t, "Waiting without spinning.", article.Summary)
	assert.Contains(t, article.Body, "# Condition Variables")
	assert.NotEmpty(t, article.Hash)
}

func TestScanFile_UnchangedContentSkipsReregister(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "article.md", sampleArticle)

	reg := registry.NewArticleRegistry()
	s := NewArticleScanner(reg)
	require.NoError(t, s.ScanFile(path))

	events := reg.Watch()
	require.NoError(t, s.ScanFile(path))

	select {
	case event := <-events:
		t.Fatalf("unexpected event for unchanged file: %v", event.Type)
	default:
	}
}

func TestScanFile_NoFrontMatter(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Plain Notes.md", "# Just markdown\n")

	reg := registry.NewArticleRegistry()
	s := NewArticleScanner(reg)
	require.NoError(t, s.ScanFile(path))

	article, exists := reg.Get("plain-notes")
	require.True(t, exists)
	assert.Equal(t, "plain-notes", article.Title)
	assert.Empty(t, article.Tags)
	assert.Contains(t, article.Body, "# Just markdown")
}

func TestScanFile_DraftsExcludedByDefault(t *testing.T) {
	dir := t.TempDir()
	draft := "---\ntitle: WIP\ndraft: true\n---\n\nbody\n"
	path := writeFile(t, dir, "wip.md", draft)

	reg := registry.NewArticleRegistry()

	s := NewArticleScanner(reg)
	require.NoError(t, s.ScanFile(path))
	assert.Equal(t, 0, reg.Count())

	withDrafts := NewArticleScanner(reg, WithDrafts(true))
	require.NoError(t, withDrafts.ScanFile(path))
	assert.Equal(t, 1, reg.Count())
}

func TestScanFile_PublishedThenDraftRemoves(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "flip.md", "---\ntitle: Flip\n---\n\nbody\n")

	reg := registry.NewArticleRegistry()
	s := NewArticleScanner(reg)
	require.NoError(t, s.ScanFile(path))
	require.Equal(t, 1, reg.Count())

	writeFile(t, dir, "flip.md", "---\ntitle: Flip\ndraft: true\n---\n\nbody\n")
	require.NoError(t, s.ScanFile(path))
	assert.Equal(t, 0, reg.Count())
}

func TestScanFile_BadFrontMatter(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.md", "---\ntitle: [unclosed\n---\n\nbody\n")

	reg := registry.NewArticleRegistry()
	s := NewArticleScanner(reg)

	err := s.ScanFile(path)
	assert.Error(t, err)
	assert.Equal(t, 0, reg.Count())
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.md", sampleArticle)
	writeFile(t, dir, "nested/two.md", "---\ntitle: Two\ntags: [tasks]\n---\n\nbody\n")
	writeFile(t, dir, "README.md", "# not an article\n")
	writeFile(t, dir, "notes.txt", "not markdown\n")
	writeFile(t, dir, ".hidden/secret.md", "---\ntitle: Hidden\n---\n\nbody\n")

	reg := registry.NewArticleRegistry()
	s := NewArticleScanner(reg, WithExcludePatterns([]string{"README.md"}))

	require.NoError(t, s.ScanDirectory(dir))

	assert.Equal(t, 2, reg.Count())
	_, exists := reg.Get("one")
	assert.True(t, exists)
	_, exists = reg.Get("two")
	assert.True(t, exists)
	_, exists = reg.Get("readme")
	assert.False(t, exists)
	_, exists = reg.Get("secret")
	assert.False(t, exists)
}

func TestScanDirectory_CollectsPerFileErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.md", sampleArticle)
	writeFile(t, dir, "bad.md", "---\ntitle: [unclosed\n---\n\nbody\n")

	reg := registry.NewArticleRegistry()
	s := NewArticleScanner(reg)

	err := s.ScanDirectory(dir)
	assert.Error(t, err)

	// The good file still registered
	_, exists := reg.Get("good")
	assert.True(t, exists)
}

func TestRemoveFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gone.md", sampleArticle)

	reg := registry.NewArticleRegistry()
	s := NewArticleScanner(reg)
	require.NoError(t, s.ScanFile(path))

	s.RemoveFile(path)
	assert.Equal(t, 0, reg.Count())

	// Hash forgotten, so re-adding the same content registers again
	require.NoError(t, s.ScanFile(path))
	assert.Equal(t, 1, reg.Count())
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "condition-variables", Slug("content/Condition Variables.md"))
	assert.Equal(t, "async-await", Slug("async_await.md"))
	assert.Equal(t, "plain", Slug("/a/b/plain.MD"))
}
