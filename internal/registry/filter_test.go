package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func filterFixture() *ArticleRegistry {
	registry := NewArticleRegistry()
	registry.Register(&ArticleInfo{
		Slug: "condition-variables",
		Tags: []string{"synchronization", "threading"},
	})
	registry.Register(&ArticleInfo{
		Slug: "cancellation-tokens",
		Tags: []string{"cancellation", "tasks"},
	})
	registry.Register(&ArticleInfo{
		Slug: "async-pitfalls",
		Tags: []string{"tasks", "async"},
	})
	return registry
}

func TestVisibility_All(t *testing.T) {
	registry := filterFixture()

	// ALL clears every hidden state, regardless of prior filtering
	_ = registry.Visibility("threading")
	visible := registry.Visibility(TagAll)

	assert.Len(t, visible, 3)
	for slug, v := range visible {
		assert.True(t, v, "article %s should be visible", slug)
	}
}

func TestVisibility_AllIsCaseInsensitive(t *testing.T) {
	registry := filterFixture()

	for _, selected := range []string{"ALL", "all", "All"} {
		visible := registry.Visibility(selected)
		for slug, v := range visible {
			assert.True(t, v, "selected=%s article=%s", selected, slug)
		}
	}
}

func TestVisibility_ByTag(t *testing.T) {
	registry := filterFixture()

	visible := registry.Visibility("tasks")

	assert.Equal(t, map[string]bool{
		"condition-variables": false,
		"cancellation-tokens": true,
		"async-pitfalls":      true,
	}, visible)
}

func TestVisibility_UnmatchedTagHidesEverything(t *testing.T) {
	registry := filterFixture()

	visible := registry.Visibility("quantum")

	assert.Len(t, visible, 3)
	for slug, v := range visible {
		assert.False(t, v, "article %s should be hidden", slug)
	}
}

func TestFilterByTag(t *testing.T) {
	registry := filterFixture()

	tasks := registry.FilterByTag("tasks")
	slugs := make([]string, 0, len(tasks))
	for _, article := range tasks {
		slugs = append(slugs, article.Slug)
	}
	assert.ElementsMatch(t, []string{"cancellation-tokens", "async-pitfalls"}, slugs)

	all := registry.FilterByTag(TagAll)
	assert.Len(t, all, 3)

	none := registry.FilterByTag("quantum")
	assert.Empty(t, none)
}

func TestTagSummaries(t *testing.T) {
	registry := filterFixture()
	registry.Register(&ArticleInfo{
		Slug: "mixed-case",
		Tags: []string{"Tasks", "tasks", ""},
	})

	summaries := registry.TagSummaries()

	byName := make(map[string]int, len(summaries))
	for _, s := range summaries {
		byName[s.Name] = s.Count
	}

	assert.Equal(t, 3, byName["tasks"], "duplicate casing counts once per article")
	assert.Equal(t, 1, byName["synchronization"])
	assert.Equal(t, 1, byName["async"])
	assert.NotContains(t, byName, "")

	// Sorted by name
	for i := 1; i < len(summaries); i++ {
		assert.Less(t, summaries[i-1].Name, summaries[i].Name)
	}
}

func TestValidTagPath(t *testing.T) {
	assert.True(t, ValidTagPath("tasks"))
	assert.True(t, ValidTagPath("c++"))
	assert.True(t, ValidTagPath("v1.0"))
	assert.False(t, ValidTagPath(""))
	assert.False(t, ValidTagPath("."))
	assert.False(t, ValidTagPath(".."))
	assert.False(t, ValidTagPath("a/b"))
	assert.False(t, ValidTagPath(`a\b`))
	assert.False(t, ValidTagPath("../../escape"))
}

func TestVisibility_EmptyRegistry(t *testing.T) {
	registry := NewArticleRegistry()

	assert.Empty(t, registry.Visibility(TagAll))
	assert.Empty(t, registry.FilterByTag("anything"))
	assert.Empty(t, registry.TagSummaries())
}
