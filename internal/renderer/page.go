package renderer

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/conneroisu/quill/internal/config"
	"github.com/conneroisu/quill/internal/registry"
)

//go:embed assets
var Assets embed.FS

var titleCaser = cases.Title(language.English)

// TagLabel formats a tag name for display
func TagLabel(name string) string {
	return titleCaser.String(strings.ToLower(name))
}

// PageRenderer assembles complete HTML pages from registry articles
type PageRenderer struct {
	site       config.SiteConfig
	markdown   *MarkdownRenderer
	templates  *template.Template
	liveReload bool
}

// PageOption configures a PageRenderer
type PageOption func(*PageRenderer)

// WithLiveReload injects the live-reload client into every page
func WithLiveReload(enabled bool) PageOption {
	return func(r *PageRenderer) {
		r.liveReload = enabled
	}
}

// NewPageRenderer creates a page renderer for the given site
func NewPageRenderer(site config.SiteConfig, opts ...PageOption) (*PageRenderer, error) {
	templates, err := template.New("pages").Parse(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing index template: %w", err)
	}
	if _, err := templates.New("article").Parse(articleTemplate); err != nil {
		return nil, fmt.Errorf("parsing article template: %w", err)
	}

	r := &PageRenderer{
		site:      site,
		markdown:  NewMarkdownRenderer(),
		templates: templates,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// TagLink is a clickable tag in a rendered page
type TagLink struct {
	Name     string
	Label    string
	Count    int
	Href     string
	Selected bool
}

// ArticleItem is one article entry on an index page
type ArticleItem struct {
	Slug           string
	Title          string
	Href           string
	Date           string
	Tags           []TagLink
	TagAttr        string
	Difficulty     string
	Recommendation string
	Summary        string
	Hidden         bool
}

type indexData struct {
	Site       config.SiteConfig
	Selected   string
	Canonical  string
	Tags       []TagLink
	Articles   []ArticleItem
	LiveReload bool
}

type articleData struct {
	Site       config.SiteConfig
	Article    ArticleItem
	Canonical  string
	Body       template.HTML
	LiveReload bool
}

// Index renders the article listing filtered by the selected tag. Selecting
// registry.TagAll (or "") lists everything. Articles hidden by the filter
// are still emitted, carrying the hidden marker class, so the client-side
// filter can toggle them without a round trip.
func (r *PageRenderer) Index(articles []*registry.ArticleInfo, tags []registry.TagSummary, selected string) (string, error) {
	if selected == "" || strings.EqualFold(selected, registry.TagAll) {
		selected = registry.TagAll
	}

	visible := registry.Visibility(articles, selected)

	items := make([]ArticleItem, 0, len(articles))
	for _, article := range articles {
		item := r.articleItem(article)
		item.Hidden = !visible[article.Slug]
		items = append(items, item)
	}

	tagLinks := make([]TagLink, 0, len(tags))
	for _, tag := range tags {
		tagLinks = append(tagLinks, TagLink{
			Name:     tag.Name,
			Label:    TagLabel(tag.Name),
			Count:    tag.Count,
			Href:     "/tags/" + tag.Name + "/",
			Selected: strings.EqualFold(tag.Name, selected),
		})
	}

	path := "/"
	if selected != registry.TagAll {
		path = "/tags/" + strings.ToLower(selected) + "/"
	}

	var b strings.Builder
	err := r.templates.ExecuteTemplate(&b, "pages", indexData{
		Site:       r.site,
		Selected:   selected,
		Canonical:  r.canonical(path),
		Tags:       tagLinks,
		Articles:   items,
		LiveReload: r.liveReload,
	})
	if err != nil {
		return "", fmt.Errorf("rendering index: %w", err)
	}
	return b.String(), nil
}

// Article renders a full article page: markdown body, layout annotation,
// rating lines, tag links.
func (r *PageRenderer) Article(article *registry.ArticleInfo) (string, error) {
	body, err := r.markdown.Render(article.Body)
	if err != nil {
		return "", fmt.Errorf("article %s: %w", article.Slug, err)
	}

	annotated, err := AnnotateLayout(body)
	if err != nil {
		return "", fmt.Errorf("article %s: %w", article.Slug, err)
	}

	item := r.articleItem(article)
	if item.Summary == "" {
		item.Summary = Excerpt(annotated, 160)
	}

	var b strings.Builder
	err = r.templates.ExecuteTemplate(&b, "article", articleData{
		Site:       r.site,
		Article:    item,
		Canonical:  r.canonical(item.Href),
		Body:       template.HTML(annotated),
		LiveReload: r.liveReload,
	})
	if err != nil {
		return "", fmt.Errorf("rendering article %s: %w", article.Slug, err)
	}
	return b.String(), nil
}

func (r *PageRenderer) articleItem(article *registry.ArticleInfo) ArticleItem {
	tags := make([]TagLink, 0, len(article.Tags))
	attr := make([]string, 0, len(article.Tags))
	for _, tag := range article.Tags {
		folded := strings.ToLower(tag)
		tags = append(tags, TagLink{
			Name:  folded,
			Label: TagLabel(tag),
			Href:  "/tags/" + folded + "/",
		})
		attr = append(attr, folded)
	}

	var date string
	if !article.Date.IsZero() {
		date = article.Date.Format("Jan 2, 2006")
	}

	return ArticleItem{
		Slug:           article.Slug,
		Title:          article.Title,
		Href:           "/articles/" + article.Slug + "/",
		Date:           date,
		Tags:           tags,
		TagAttr:        strings.Join(attr, " "),
		Difficulty:     RenderDifficulty(article.Difficulty),
		Recommendation: RenderRecommendation(article.Recommendation),
		Summary:        article.Summary,
	}
}

// canonical joins the configured site base URL with a page path. An empty
// base URL disables canonical links.
func (r *PageRenderer) canonical(path string) string {
	base := strings.TrimRight(r.site.BaseURL, "/")
	if base == "" {
		return ""
	}
	return base + path
}

// FormatDate is exposed for templates and the JSON API
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Site.Title}}</title>
{{if .Site.Description}}<meta name="description" content="{{.Site.Description}}">{{end}}
{{if .Canonical}}<link rel="canonical" href="{{.Canonical}}">{{end}}
<link rel="stylesheet" href="/static/style.css">
</head>
<body>
<header class="site-header">
<h1><a href="/">{{.Site.Title}}</a></h1>
{{if .Site.Description}}<p class="site-description">{{.Site.Description}}</p>{{end}}
</header>
<nav class="tag-list">
<a class="tag{{if eq .Selected "ALL"}} selected{{end}}" data-tag="ALL" href="/">All</a>
{{range .Tags}}<a class="tag{{if .Selected}} selected{{end}}" data-tag="{{.Name}}" href="{{.Href}}">{{.Label}} ({{.Count}})</a>
{{end}}</nav>
<main class="article-list">
{{range .Articles}}<article class="article{{if .Hidden}} hidden{{end}}" data-slug="{{.Slug}}" data-tags="{{.TagAttr}}">
<h2><a href="{{.Href}}">{{.Title}}</a></h2>
{{if .Date}}<time class="article-date">{{.Date}}</time>{{end}}
{{if .Difficulty}}<p class="difficulty">{{.Difficulty}}</p>{{end}}
{{if .Recommendation}}<p class="recommend">{{.Recommendation}}</p>{{end}}
{{if .Summary}}<p class="titlenote">{{.Summary}}</p>{{end}}
<p class="article-tags">{{range .Tags}}<a class="tag" data-tag="{{.Name}}" href="{{.Href}}">{{.Label}}</a> {{end}}</p>
</article>
{{end}}</main>
<script src="/static/filter.js"></script>
{{if .LiveReload}}<script src="/static/live-reload.js"></script>
{{end}}</body>
</html>
`

const articleTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Article.Title}} · {{.Site.Title}}</title>
{{if .Article.Summary}}<meta name="description" content="{{.Article.Summary}}">{{end}}
{{if .Canonical}}<link rel="canonical" href="{{.Canonical}}">{{end}}
<link rel="stylesheet" href="/static/style.css">
</head>
<body>
<header class="site-header">
<h1><a href="/">{{.Site.Title}}</a></h1>
</header>
<article class="article" data-slug="{{.Article.Slug}}" data-tags="{{.Article.TagAttr}}">
<h1>{{.Article.Title}}</h1>
{{if .Article.Date}}<time class="article-date">{{.Article.Date}}</time>{{end}}
{{if .Article.Difficulty}}<p class="difficulty">{{.Article.Difficulty}}</p>{{end}}
{{if .Article.Recommendation}}<p class="recommend">{{.Article.Recommendation}}</p>{{end}}
<div class="article-body">
{{.Body}}</div>
<p class="article-tags">{{range .Article.Tags}}<a class="tag" href="{{.Href}}">{{.Label}}</a> {{end}}</p>
</article>
{{if .LiveReload}}<script src="/static/live-reload.js"></script>
{{end}}</body>
</html>
`
