package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/coder/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Send pings to peers with this period.
	pingPeriod = 54 * time.Second
)

func (s *BlogServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if !s.checkOrigin(r) {
		http.Error(w, "Origin not allowed", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Origin already validated above
	})
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		conn:   conn,
		send:   make(chan []byte, 256),
		server: s,
	}

	go client.writePump()
	go client.readPump()

	s.register <- client
}

// checkOrigin validates the request origin. Only the server's own host and
// the loopback equivalents are accepted.
func (s *BlogServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return false
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	if originURL.Scheme != "http" && originURL.Scheme != "https" {
		return false
	}

	allowedOrigins := []string{
		fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		fmt.Sprintf("localhost:%d", s.config.Server.Port),
		fmt.Sprintf("127.0.0.1:%d", s.config.Server.Port),
	}
	allowedOrigins = append(allowedOrigins, s.config.Server.AllowedOrigins...)

	for _, allowed := range allowedOrigins {
		if originURL.Host == allowed {
			return true
		}
	}

	return false
}

func (s *BlogServer) runWebSocketHub(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.closeClients()
			return

		case client := <-s.register:
			s.clientsMutex.Lock()
			s.clients[client.conn] = client
			clientCount := len(s.clients)
			s.clientsMutex.Unlock()
			log.Printf("Live-reload client connected, total: %d", clientCount)

		case conn := <-s.unregister:
			s.clientsMutex.Lock()
			if client, ok := s.clients[conn]; ok {
				close(client.send)
				delete(s.clients, conn)
			}
			clientCount := len(s.clients)
			s.clientsMutex.Unlock()
			log.Printf("Live-reload client disconnected, total: %d", clientCount)

		case message := <-s.broadcast:
			s.clientsMutex.RLock()
			for _, client := range s.clients {
				select {
				case client.send <- message:
				default:
					// Slow client, drop the message
				}
			}
			s.clientsMutex.RUnlock()

		case <-ticker.C:
			s.pingClients(ctx)
		}
	}
}

func (s *BlogServer) pingClients(ctx context.Context) {
	s.clientsMutex.RLock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		conns = append(conns, conn)
	}
	s.clientsMutex.RUnlock()

	for _, conn := range conns {
		pingCtx, cancel := context.WithTimeout(ctx, writeWait)
		err := conn.Ping(pingCtx)
		cancel()
		if err != nil {
			select {
			case s.unregister <- conn:
			default:
			}
		}
	}
}

func (s *BlogServer) closeClients() {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()

	for conn, client := range s.clients {
		close(client.send)
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		delete(s.clients, conn)
	}
}

// writePump forwards queued messages to the peer
func (c *Client) writePump() {
	defer c.conn.CloseNow()

	for message := range c.send {
		ctx, cancel := context.WithTimeout(context.Background(), writeWait)
		err := c.conn.Write(ctx, websocket.MessageText, message)
		cancel()
		if err != nil {
			return
		}
	}

	c.conn.Close(websocket.StatusNormalClosure, "")
}

// readPump drains the connection; the browser sends nothing meaningful, but
// reading is what surfaces disconnects.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.server.unregister <- c.conn:
		default:
			c.conn.CloseNow()
		}
	}()

	for {
		if _, _, err := c.conn.Read(context.Background()); err != nil {
			return
		}
	}
}
