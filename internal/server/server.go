// Package server provides the development server: it serves the rendered
// blog, watches the content tree, and pushes reload messages to connected
// browsers when articles change.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/conneroisu/quill/internal/config"
	"github.com/conneroisu/quill/internal/logging"
	"github.com/conneroisu/quill/internal/registry"
	"github.com/conneroisu/quill/internal/renderer"
	"github.com/conneroisu/quill/internal/scanner"
	"github.com/conneroisu/quill/internal/watcher"
)

// Client represents a connected live-reload browser
type Client struct {
	conn   *websocket.Conn
	send   chan []byte
	server *BlogServer
}

// BlogServer serves articles with live reload capability
type BlogServer struct {
	config       *config.Config
	logger       logging.Logger
	httpServer   *http.Server
	serverMutex  sync.RWMutex
	clients      map[*websocket.Conn]*Client
	clientsMutex sync.RWMutex
	broadcast    chan []byte
	register     chan *Client
	unregister   chan *websocket.Conn
	registry     *registry.ArticleRegistry
	watcher      *watcher.FileWatcher
	scanner      *scanner.ArticleScanner
	renderer     *renderer.PageRenderer
	shutdownOnce sync.Once
}

// UpdateMessage represents a message sent to the browser
type UpdateMessage struct {
	Type      string    `json:"type"`
	Path      string    `json:"path,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// New creates a new blog server
func New(cfg *config.Config, logger logging.Logger) (*BlogServer, error) {
	reg := registry.NewArticleRegistry()

	fileWatcher, err := watcher.NewFileWatcher(300 * time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	articleScanner := scanner.NewArticleScanner(reg,
		scanner.WithExcludePatterns(cfg.Content.ExcludePatterns),
		scanner.WithDrafts(cfg.Content.IncludeDrafts),
	)

	pageRenderer, err := renderer.NewPageRenderer(cfg.Site,
		renderer.WithLiveReload(cfg.Development.HotReload),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	return &BlogServer{
		config:     cfg,
		logger:     logger.WithComponent("server"),
		clients:    make(map[*websocket.Conn]*Client),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *websocket.Conn),
		registry:   reg,
		watcher:    fileWatcher,
		scanner:    articleScanner,
		renderer:   pageRenderer,
	}, nil
}

// Registry exposes the article registry, mainly for tests
func (s *BlogServer) Registry() *registry.ArticleRegistry {
	return s.registry
}

// Start runs the server until the context is canceled
func (s *BlogServer) Start(ctx context.Context) error {
	if err := s.initialScan(ctx); err != nil {
		s.logger.Warn(ctx, err, "initial scan reported errors")
	}

	if s.config.Development.HotReload {
		s.setupFileWatcher(ctx)
	}

	go s.runWebSocketHub(ctx)

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.serverMutex.Lock()
	s.httpServer = httpServer
	s.serverMutex.Unlock()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	s.logger.Info(ctx, "server listening",
		"addr", addr,
		"articles", s.registry.Count(),
		"hot_reload", s.config.Development.HotReload,
	)

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}

// Handler builds the complete HTTP handler with middleware applied
func (s *BlogServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/tags/", s.handleTag)
	mux.HandleFunc("/articles/", s.handleArticle)
	mux.HandleFunc("/api/articles", s.handleAPIArticles)
	mux.HandleFunc("/api/tags", s.handleAPITags)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.Handle("/static/", s.staticHandler())

	return Chain(mux,
		s.loggingMiddleware,
		securityHeadersMiddleware,
	)
}

// Shutdown stops the server gracefully
func (s *BlogServer) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if stopErr := s.watcher.Stop(); stopErr != nil {
			s.logger.Warn(shutdownCtx, stopErr, "stopping watcher")
		}

		s.closeClients()

		s.serverMutex.RLock()
		httpServer := s.httpServer
		s.serverMutex.RUnlock()

		if httpServer != nil {
			err = httpServer.Shutdown(shutdownCtx)
		}
	})
	return err
}

func (s *BlogServer) initialScan(ctx context.Context) error {
	var firstErr error
	for _, root := range s.config.Content.Roots {
		if err := s.scanner.ScanDirectory(root); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			s.logger.Warn(ctx, err, "scanning content root", "root", root)
		}
	}
	return firstErr
}

func (s *BlogServer) setupFileWatcher(ctx context.Context) {
	s.watcher.AddFilter(watcher.MarkdownFilter)
	s.watcher.AddHandler(s.handleContentChange)

	for _, root := range s.config.Content.Roots {
		if err := s.watcher.AddRecursive(root); err != nil {
			s.logger.Warn(ctx, err, "watching content root", "root", root)
		}
	}

	if err := s.watcher.Start(ctx); err != nil {
		s.logger.Error(ctx, err, "starting file watcher")
	}
}

// handleContentChange rescans changed files and notifies browsers
func (s *BlogServer) handleContentChange(events []watcher.ChangeEvent) error {
	for _, event := range events {
		switch event.Type {
		case watcher.EventTypeDeleted, watcher.EventTypeRenamed:
			s.scanner.RemoveFile(event.Path)
		default:
			if err := s.scanner.ScanFile(event.Path); err != nil {
				log.Printf("Rescan of %s failed: %v", event.Path, err)
			}
		}
	}

	s.broadcastReload()
	return nil
}

func (s *BlogServer) broadcastReload() {
	message, err := json.Marshal(UpdateMessage{
		Type:      "reload",
		Timestamp: time.Now(),
	})
	if err != nil {
		return
	}

	select {
	case s.broadcast <- message:
	default:
		// Broadcast channel full, browsers will catch the next one
	}
}
