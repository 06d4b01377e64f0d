// Package registry maintains the in-memory set of discovered articles and
// answers tag-filter queries against it.
//
// The registry is the explicit article→tags data structure the rest of the
// system queries: the scanner fills it, the server and the static builder
// read it, and change events stream to any registered watcher channel.
package registry

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// ArticleRegistry manages all discovered articles
type ArticleRegistry struct {
	articles map[string]*ArticleInfo
	mutex    sync.RWMutex
	watchers []chan ArticleEvent
}

// ArticleInfo holds metadata about a markdown article
type ArticleInfo struct {
	Slug           string
	Title          string
	FilePath       string
	Tags           []string
	Difficulty     string
	Recommendation int
	Date           time.Time
	Draft          bool
	Summary        string
	Body           string
	LastMod        time.Time
	Hash           string
}

// HasTag reports whether the article carries the given tag.
// Tag membership is case-insensitive.
func (a *ArticleInfo) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// ArticleEvent represents a change in the article registry
type ArticleEvent struct {
	Type      EventType
	Article   *ArticleInfo
	Timestamp time.Time
}

// EventType represents the type of article event
type EventType int

const (
	EventTypeAdded EventType = iota
	EventTypeUpdated
	EventTypeRemoved
)

// NewArticleRegistry creates a new article registry
func NewArticleRegistry() *ArticleRegistry {
	return &ArticleRegistry{
		articles: make(map[string]*ArticleInfo),
		watchers: make([]chan ArticleEvent, 0),
	}
}

// Register adds or updates an article in the registry
func (r *ArticleRegistry) Register(article *ArticleInfo) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	eventType := EventTypeAdded
	if _, exists := r.articles[article.Slug]; exists {
		eventType = EventTypeUpdated
	}

	r.articles[article.Slug] = article

	r.notify(ArticleEvent{
		Type:      eventType,
		Article:   article,
		Timestamp: time.Now(),
	})
}

// Get retrieves an article by slug
func (r *ArticleRegistry) Get(slug string) (*ArticleInfo, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	article, exists := r.articles[slug]
	return article, exists
}

// GetAll returns all registered articles sorted by date descending,
// then slug ascending for a stable order.
func (r *ArticleRegistry) GetAll() []*ArticleInfo {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*ArticleInfo, 0, len(r.articles))
	for _, article := range r.articles {
		result = append(result, article)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].Slug < result[j].Slug
	})

	return result
}

// Remove removes an article from the registry
func (r *ArticleRegistry) Remove(slug string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	article, exists := r.articles[slug]
	if !exists {
		return
	}

	delete(r.articles, slug)

	r.notify(ArticleEvent{
		Type:      EventTypeRemoved,
		Article:   article,
		Timestamp: time.Now(),
	})
}

// RemoveByPath removes the article registered from the given file path
func (r *ArticleRegistry) RemoveByPath(path string) {
	r.mutex.Lock()
	var slug string
	for s, article := range r.articles {
		if article.FilePath == path {
			slug = s
			break
		}
	}
	r.mutex.Unlock()

	if slug != "" {
		r.Remove(slug)
	}
}

// Watch returns a channel that receives article events
func (r *ArticleRegistry) Watch() <-chan ArticleEvent {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	ch := make(chan ArticleEvent, 100)
	r.watchers = append(r.watchers, ch)
	return ch
}

// UnWatch removes a watcher channel and closes it
func (r *ArticleRegistry) UnWatch(ch <-chan ArticleEvent) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for i, watcher := range r.watchers {
		if watcher == ch {
			close(watcher)
			r.watchers = append(r.watchers[:i], r.watchers[i+1:]...)
			break
		}
	}
}

// Count returns the number of registered articles
func (r *ArticleRegistry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.articles)
}

// notify sends an event to all watchers; callers must hold the write lock
func (r *ArticleRegistry) notify(event ArticleEvent) {
	for _, watcher := range r.watchers {
		select {
		case watcher <- event:
		default:
			// Skip if channel is full
		}
	}
}
