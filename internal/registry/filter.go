package registry

import (
	"sort"
	"strings"
)

// TagAll is the sentinel tag that selects every article.
const TagAll = "ALL"

// TagSummary aggregates one tag across the registry
type TagSummary struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ValidTagPath reports whether a tag name can serve as a single path
// segment in tag URLs and build output paths. The scanner normalizes tags
// to satisfy this; articles registered directly may not.
func ValidTagPath(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`)
}

// Visibility computes the set of visible article slugs for a selected tag.
//
// Selecting TagAll (case-insensitive) makes every article visible.
// Any other tag makes exactly the articles carrying it visible; a tag no
// article carries yields an empty set. The map contains an entry for every
// registered article, true when visible.
func (r *ArticleRegistry) Visibility(selected string) map[string]bool {
	return Visibility(r.GetAll(), selected)
}

// Visibility is the pure form of the tag filter: given the current articles
// and a selected tag, it returns slug→visible for every article.
func Visibility(articles []*ArticleInfo, selected string) map[string]bool {
	visible := make(map[string]bool, len(articles))
	showAll := strings.EqualFold(selected, TagAll)

	for _, article := range articles {
		visible[article.Slug] = showAll || article.HasTag(selected)
	}

	return visible
}

// FilterByTag returns the articles visible under the selected tag, in
// registry order.
func (r *ArticleRegistry) FilterByTag(selected string) []*ArticleInfo {
	all := r.GetAll()
	if strings.EqualFold(selected, TagAll) {
		return all
	}

	filtered := make([]*ArticleInfo, 0, len(all))
	for _, article := range all {
		if article.HasTag(selected) {
			filtered = append(filtered, article)
		}
	}
	return filtered
}

// TagSummaries returns every distinct tag with its article count, sorted by
// name. Tags are folded to lower case so "Async" and "async" aggregate.
func (r *ArticleRegistry) TagSummaries() []TagSummary {
	counts := make(map[string]int)
	for _, article := range r.GetAll() {
		seen := make(map[string]bool, len(article.Tags))
		for _, tag := range article.Tags {
			folded := strings.ToLower(tag)
			if folded == "" || seen[folded] {
				continue
			}
			seen[folded] = true
			counts[folded]++
		}
	}

	summaries := make([]TagSummary, 0, len(counts))
	for name, count := range counts {
		summaries = append(summaries, TagSummary{Name: name, Count: count})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})

	return summaries
}
