package renderer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/quill/internal/config"
	"github.com/conneroisu/quill/internal/registry"
)

func testSite() config.SiteConfig {
	return config.SiteConfig{
		Title:       "Sync Notes",
		Description: "Notes on synchronization primitives",
	}
}

func testArticles() []*registry.ArticleInfo {
	return []*registry.ArticleInfo{
		{
			Slug:           "condition-variables",
			Title:          "Condition Variables",
			Tags:           []string{"Synchronization", "threading"},
			Difficulty:     "intermediate",
			Recommendation: 4,
			Date:           time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC),
			Summary:        "Waiting without spinning.",
			Body:           "# Condition Variables\n\nBody.\n",
		},
		{
			Slug:  "cancellation-tokens",
			Title: "Cancellation Tokens",
			Tags:  []string{"cancellation"},
			Body:  "Body.\n",
		},
	}
}

func TestPageRenderer_Index(t *testing.T) {
	r, err := NewPageRenderer(testSite())
	require.NoError(t, err)

	articles := testArticles()
	tags := []registry.TagSummary{
		{Name: "cancellation", Count: 1},
		{Name: "synchronization", Count: 1},
		{Name: "threading", Count: 1},
	}

	page, err := r.Index(articles, tags, registry.TagAll)
	require.NoError(t, err)

	assert.Contains(t, page, "<title>Sync Notes</title>")
	assert.Contains(t, page, `data-slug="condition-variables"`)
	assert.Contains(t, page, `data-tags="synchronization threading"`)
	assert.Contains(t, page, `href="/articles/condition-variables/"`)
	assert.Contains(t, page, `href="/tags/threading/"`)
	assert.Contains(t, page, "Threading (1)")
	assert.Contains(t, page, "Difficulty: ■■□")
	assert.Contains(t, page, "Recommended: ★★★★☆")
	assert.Contains(t, page, "Mar 18, 2024")
	assert.Contains(t, page, `src="/static/filter.js"`)
	assert.NotContains(t, page, `class="article hidden"`)
	assert.NotContains(t, page, "live-reload.js")
}

func TestPageRenderer_IndexFiltered(t *testing.T) {
	r, err := NewPageRenderer(testSite())
	require.NoError(t, err)

	page, err := r.Index(testArticles(), nil, "cancellation")
	require.NoError(t, err)

	// The threading article is emitted but hidden
	assert.Contains(t, page, `<article class="article hidden" data-slug="condition-variables"`)
	assert.Contains(t, page, `<article class="article" data-slug="cancellation-tokens"`)
}

func TestPageRenderer_IndexUnmatchedTagHidesAll(t *testing.T) {
	r, err := NewPageRenderer(testSite())
	require.NoError(t, err)

	page, err := r.Index(testArticles(), nil, "quantum")
	require.NoError(t, err)

	assert.Contains(t, page, `<article class="article hidden" data-slug="condition-variables"`)
	assert.Contains(t, page, `<article class="article hidden" data-slug="cancellation-tokens"`)
}

func TestPageRenderer_IndexSelectedAllIgnoresCase(t *testing.T) {
	r, err := NewPageRenderer(testSite())
	require.NoError(t, err)

	page, err := r.Index(testArticles(), nil, "all")
	require.NoError(t, err)

	assert.Contains(t, page, `<a class="tag selected" data-tag="ALL"`)
	assert.NotContains(t, page, `class="article hidden"`)
}

func TestPageRenderer_Article(t *testing.T) {
	r, err := NewPageRenderer(testSite(), WithLiveReload(true))
	require.NoError(t, err)

	article := testArticles()[0]
	article.Body = "# Heading\n\nIntro paragraph.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"

	page, err := r.Article(article)
	require.NoError(t, err)

	assert.Contains(t, page, "<title>Condition Variables · Sync Notes</title>")
	assert.Contains(t, page, "Intro paragraph.")
	assert.Contains(t, page, `class="article-table"`, "layout annotation applied to body")
	assert.Contains(t, page, "Difficulty: ■■□")
	assert.Contains(t, page, "live-reload.js")
}

func TestPageRenderer_ArticleSummaryFallsBackToExcerpt(t *testing.T) {
	r, err := NewPageRenderer(testSite())
	require.NoError(t, err)

	page, err := r.Article(&registry.ArticleInfo{
		Slug:  "plain",
		Title: "Plain",
		Body:  "First paragraph of the body.\n\nSecond paragraph.\n",
	})
	require.NoError(t, err)

	assert.Contains(t, page, `<meta name="description" content="First paragraph of the body.">`)
}

func TestPageRenderer_CanonicalLinks(t *testing.T) {
	site := testSite()
	site.BaseURL = "https://example.com/"
	r, err := NewPageRenderer(site)
	require.NoError(t, err)

	index, err := r.Index(testArticles(), nil, registry.TagAll)
	require.NoError(t, err)
	assert.Contains(t, index, `<link rel="canonical" href="https://example.com/">`)

	tagPage, err := r.Index(testArticles(), nil, "Threading")
	require.NoError(t, err)
	assert.Contains(t, tagPage, `<link rel="canonical" href="https://example.com/tags/threading/">`)

	article, err := r.Article(testArticles()[0])
	require.NoError(t, err)
	assert.Contains(t, article, `<link rel="canonical" href="https://example.com/articles/condition-variables/">`)
}

func TestPageRenderer_CanonicalOmittedWithoutBaseURL(t *testing.T) {
	r, err := NewPageRenderer(testSite())
	require.NoError(t, err)

	page, err := r.Index(testArticles(), nil, registry.TagAll)
	require.NoError(t, err)
	assert.NotContains(t, page, `rel="canonical"`)
}

func TestTagLabel(t *testing.T) {
	assert.Equal(t, "Threading", TagLabel("threading"))
	assert.Equal(t, "Async Await", TagLabel("ASYNC AWAIT"))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "Intro text here.", Excerpt("<h1>T</h1><p>Intro   text\nhere.</p><p>More.</p>", 100))
	assert.Equal(t, "", Excerpt("<h1>No paragraph</h1>", 100))

	long := Excerpt("<p>one two three four five six</p>", 13)
	assert.Equal(t, "one two three…", long)
}

func TestMarkdownRenderer_GFMTable(t *testing.T) {
	md := NewMarkdownRenderer()
	out, err := md.Render("| a |\n|---|\n| 1 |\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
}
