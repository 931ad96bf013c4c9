package display

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"codeberg.org/mutker/windsensor/internal/errors"
	"codeberg.org/mutker/windsensor/internal/logger"
	"github.com/gorilla/websocket"
)

const (
	clientQueueSize = 16
	writeTimeout    = 5 * time.Second
	shutdownTimeout = 2 * time.Second
)

const ErrServeFailed = errors.ErrorCode("display_serve_failed")

// Hub keeps the latest text of each panel and pushes changes to connected
// websocket clients.
type Hub struct {
	mu       sync.Mutex
	panels   map[Panel]string
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
	log      logger.Logger
}

type client struct {
	conn *websocket.Conn
	send chan Update
}

func NewHub() *Hub {
	return &Hub{
		panels:  make(map[Panel]string),
		clients: make(map[*client]struct{}),
		log:     logger.ForComponent("display"),
	}
}

func (h *Hub) Show(panel Panel, text string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.panels[panel] = text
	u := Update{Panel: panel, Text: text}
	for c := range h.clients {
		select {
		case c.send <- u:
		default:
			h.log.Debug().Str("remote", c.conn.RemoteAddr().String()).Msg("Dropping slow display client")
			h.dropLocked(c)
		}
	}
}

// Snapshot returns the current text of every panel that has been shown.
func (h *Hub) Snapshot() []Update {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.snapshotLocked()
}

func (h *Hub) snapshotLocked() []Update {
	out := make([]Update, 0, len(h.panels))
	for _, p := range Panels {
		if text, ok := h.panels[p]; ok {
			out = append(out, Update{Panel: p, Text: text})
		}
	}

	return out
}

// Handler serves a plain-text snapshot on / and live updates on /ws.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.serveStatus)
	mux.HandleFunc("/ws", h.serveWS)

	return mux
}

// ListenAndServe runs the display server until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	h.log.Info().Str("addr", addr).Msg("Display server listening")

	select {
	case err := <-errCh:
		return errors.New().Wrap(ErrServeFailed, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.New().Wrap(errors.ErrShutdownFailed, err)
	}

	h.mu.Lock()
	for c := range h.clients {
		h.dropLocked(c)
	}
	h.mu.Unlock()

	return nil
}

func (h *Hub) serveStatus(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, u := range h.Snapshot() {
		fmt.Fprintf(w, "%s: %s\n", u.Panel, u.Text)
	}
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug().Err(err).Msg("Websocket upgrade failed")
		return
	}

	c := &client{conn: conn, send: make(chan Update, clientQueueSize+len(Panels))}

	h.mu.Lock()
	for _, u := range h.snapshotLocked() {
		c.send <- u
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writeLoop()
	c.readLoop()

	h.mu.Lock()
	h.dropLocked(c)
	h.mu.Unlock()
}

func (h *Hub) dropLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

func (c *client) writeLoop() {
	defer c.conn.Close()

	for u := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteJSON(u); err != nil {
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeTimeout))
}

// readLoop discards client messages and returns once the connection closes.
func (c *client) readLoop() {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
