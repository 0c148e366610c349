// Package server provides the preview HTTP server: it serves the
// generated output directory and pushes reload notifications to connected
// browsers over a websocket when the site is rebuilt.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/calcpress/calcpress/internal/logging"
)

// reloadScript is appended to served HTML pages; it reconnects with a
// backoff so an in-flight rebuild does not strand the page.
const reloadScript = `<script>
(function() {
  function connect() {
    var ws = new WebSocket("ws://" + location.host + "/__reload");
    ws.onmessage = function() { location.reload(); };
    ws.onclose = function() { setTimeout(connect, 1000); };
  }
  connect();
})();
</script>`

// PreviewServer serves a static directory with live reload.
type PreviewServer struct {
	host       string
	port       int
	dir        string
	liveReload bool
	logger     logging.Logger

	mutex   sync.Mutex
	clients map[*client]bool

	httpServer *http.Server
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// New creates a preview server for the given directory.
func New(host string, port int, dir string, liveReload bool, logger logging.Logger) *PreviewServer {
	if logger == nil {
		logger = logging.NewLogger(nil)
	}
	return &PreviewServer{
		host:       host,
		port:       port,
		dir:        dir,
		liveReload: liveReload,
		logger:     logger.WithComponent("server"),
		clients:    make(map[*client]bool),
	}
}

// Addr returns the listen address.
func (s *PreviewServer) Addr() string {
	return fmt.Sprintf("%s:%d", s.host, s.port)
}

// Start runs the server until ctx is cancelled.
func (s *PreviewServer) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/__reload", s.handleWebSocket)
	mux.HandleFunc("/", s.handleStatic)

	s.httpServer = &http.Server{
		Addr:         s.Addr(),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- s.httpServer.ListenAndServe()
	}()

	s.logger.Info(ctx, "preview server listening", "addr", s.Addr())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// NotifyReload broadcasts a reload message to all connected clients.
func (s *PreviewServer) NotifyReload() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for c := range s.clients {
		select {
		case c.send <- []byte("reload"):
		default:
			// Slow client, drop it.
			close(c.send)
			delete(s.clients, c)
		}
	}
}

// handleStatic serves files from the output directory, mapping clean URLs
// onto index.html files and injecting the reload script into HTML.
func (s *PreviewServer) handleStatic(w http.ResponseWriter, r *http.Request) {
	urlPath := filepath.Clean("/" + r.URL.Path)
	if strings.Contains(urlPath, "..") {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}

	path := filepath.Join(s.dir, urlPath)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, "index.html")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if s.liveReload && strings.HasSuffix(path, ".html") {
		body := string(data)
		if i := strings.LastIndex(body, "</body>"); i >= 0 {
			body = body[:i] + reloadScript + body[i:]
		} else {
			body += reloadScript
		}
		data = []byte(body)
	}

	http.ServeContent(w, r, filepath.Base(path), time.Now(), strings.NewReader(string(data)))
}

func (s *PreviewServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// The preview server binds to localhost during development; the
		// reload socket carries no data worth protecting.
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.logger.Warn(r.Context(), err, "websocket upgrade failed")
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 8)}

	s.mutex.Lock()
	s.clients[c] = true
	s.mutex.Unlock()

	go s.writePump(c)
	go s.readPump(c)
}

func (s *PreviewServer) writePump(c *client) {
	ctx := context.Background()
	for message := range c.send {
		writeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err := c.conn.Write(writeCtx, websocket.MessageText, message)
		cancel()
		if err != nil {
			s.drop(c)
			return
		}
	}
	c.conn.Close(websocket.StatusNormalClosure, "")
}

// readPump drains the connection so close frames are processed; the
// reload socket is one-way.
func (s *PreviewServer) readPump(c *client) {
	ctx := context.Background()
	for {
		if _, _, err := c.conn.Read(ctx); err != nil {
			s.drop(c)
			return
		}
	}
}

func (s *PreviewServer) drop(c *client) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.clients[c] {
		delete(s.clients, c)
		close(c.send)
	}
	c.conn.Close(websocket.StatusNormalClosure, "")
}
