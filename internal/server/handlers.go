package server

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/conneroisu/quill/internal/registry"
	"github.com/conneroisu/quill/internal/renderer"
	"github.com/conneroisu/quill/internal/version"
)

func (s *BlogServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.renderIndex(w, r, registry.TagAll)
}

func (s *BlogServer) handleTag(w http.ResponseWriter, r *http.Request) {
	tag := strings.Trim(strings.TrimPrefix(r.URL.Path, "/tags/"), "/")
	if tag == "" || strings.Contains(tag, "/") {
		http.NotFound(w, r)
		return
	}
	s.renderIndex(w, r, tag)
}

// renderIndex serves the article listing filtered by the selected tag. An
// unmatched tag is not an error: every article is emitted hidden.
func (s *BlogServer) renderIndex(w http.ResponseWriter, r *http.Request, selected string) {
	page, err := s.renderer.Index(s.registry.GetAll(), s.registry.TagSummaries(), selected)
	if err != nil {
		s.logger.Error(r.Context(), err, "rendering index", "selected", selected)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

func (s *BlogServer) handleArticle(w http.ResponseWriter, r *http.Request) {
	slug := strings.Trim(strings.TrimPrefix(r.URL.Path, "/articles/"), "/")
	if slug == "" || strings.Contains(slug, "/") {
		http.NotFound(w, r)
		return
	}

	article, exists := s.registry.Get(slug)
	if !exists {
		http.NotFound(w, r)
		return
	}

	page, err := s.renderer.Article(article)
	if err != nil {
		s.logger.Error(r.Context(), err, "rendering article", "slug", slug)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

// apiArticle is the JSON representation of an article
type apiArticle struct {
	Slug           string   `json:"slug"`
	Title          string   `json:"title"`
	URL            string   `json:"url"`
	Tags           []string `json:"tags"`
	Difficulty     string   `json:"difficulty,omitempty"`
	Recommendation int      `json:"recommendation,omitempty"`
	Date           string   `json:"date,omitempty"`
	Summary        string   `json:"summary,omitempty"`
}

type apiArticleList struct {
	Selected string       `json:"selected"`
	Count    int          `json:"count"`
	Articles []apiArticle `json:"articles"`
}

func (s *BlogServer) handleAPIArticles(w http.ResponseWriter, r *http.Request) {
	selected := r.URL.Query().Get("tag")
	if selected == "" {
		selected = registry.TagAll
	}

	filtered := s.registry.FilterByTag(selected)
	articles := make([]apiArticle, 0, len(filtered))
	for _, article := range filtered {
		tags := article.Tags
		if tags == nil {
			tags = []string{}
		}
		articles = append(articles, apiArticle{
			Slug:           article.Slug,
			Title:          article.Title,
			URL:            "/articles/" + article.Slug + "/",
			Tags:           tags,
			Difficulty:     article.Difficulty,
			Recommendation: article.Recommendation,
			Date:           renderer.FormatDate(article.Date),
			Summary:        article.Summary,
		})
	}

	writeJSON(w, http.StatusOK, apiArticleList{
		Selected: selected,
		Count:    len(articles),
		Articles: articles,
	})
}

func (s *BlogServer) handleAPITags(w http.ResponseWriter, r *http.Request) {
	summaries := s.registry.TagSummaries()
	if summaries == nil {
		summaries = []registry.TagSummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *BlogServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.clientsMutex.RLock()
	clientCount := len(s.clients)
	s.clientsMutex.RUnlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"version":  version.GetShortVersion(),
		"articles": s.registry.Count(),
		"clients":  clientCount,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}

// staticHandler serves the embedded assets, letting files in the configured
// static directory shadow them.
func (s *BlogServer) staticHandler() http.Handler {
	embedded, err := fs.Sub(renderer.Assets, "assets")
	if err != nil {
		// The assets directory is compiled in; this cannot happen
		panic(err)
	}

	embeddedServer := http.StripPrefix("/static/", http.FileServer(http.FS(embedded)))
	staticDir := s.config.Content.StaticDir

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/static/")
		if staticDir != "" && name != "" && !strings.Contains(name, "..") {
			local := filepath.Join(staticDir, filepath.FromSlash(name))
			if info, err := os.Stat(local); err == nil && !info.IsDir() {
				http.ServeFile(w, r, local)
				return
			}
		}
		embeddedServer.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
