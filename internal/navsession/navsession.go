// Package navsession drives a viewrouter.Router over a websocket. Each
// connection owns one Router, one preview tab group and one file tree
// group; frames are handled in
// arrival order on the connection's goroutine.
package navsession

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/portfolio/internal/content"
	"github.com/ziadkadry99/portfolio/internal/tabs"
	"github.com/ziadkadry99/portfolio/internal/viewrouter"
)

const (
	maxFrameBytes = 4096
	idleTimeout   = 10 * time.Minute
	writeTimeout  = 10 * time.Second
)

// request is a client frame.
type request struct {
	Type     string `json:"type"` // init, navigate, popstate, tab or file
	Fragment string `json:"fragment,omitempty"`
	Section  string `json:"section,omitempty"`
	Tab      string `json:"tab,omitempty"`
	File     string `json:"file,omitempty"`
}

// StateMessage reports the router's view state after a transition.
type StateMessage struct {
	Type      string   `json:"type"`
	Current   string   `json:"current"`
	Active    []string `json:"active"`
	Push      string   `json:"push,omitempty"`
	ScrollTop bool     `json:"scroll_top,omitempty"`
}

// TabMessage reports the selected preview tab or file tree entry. Preview
// is always false for files.
type TabMessage struct {
	Type     string `json:"type"`
	Selected string `json:"selected"`
	Preview  bool   `json:"preview"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Config controls session defaults and origin checks.
type Config struct {
	// DefaultSection is shown for an empty fragment. Empty means
	// viewrouter.DefaultSection.
	DefaultSection string
	// AllowAllOrigins disables the same-origin check on upgrade.
	AllowAllOrigins bool
}

// Handler upgrades /ws/nav connections.
type Handler struct {
	lib      *content.Library
	cfg      Config
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// New creates a handler.
func New(lib *content.Library, cfg Config, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{lib: lib, cfg: cfg, logger: logger.Named("navsession")}
	if cfg.AllowAllOrigins {
		h.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}
	return h
}

// RegisterRoutes mounts the websocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/nav", h.ServeHTTP)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxFrameBytes)

	s := h.newSession(conn)
	for {
		conn.SetReadDeadline(time.Now().Add(idleTimeout))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read", zap.Error(err))
			}
			return
		}
		if err := s.handle(msg); err != nil {
			h.logger.Debug("websocket write", zap.Error(err))
			return
		}
	}
}

type session struct {
	conn   *websocket.Conn
	hist   *viewrouter.MemoryHistory
	router *viewrouter.Router
	tabs   *tabs.Group
	files  *tabs.Group
}

func (h *Handler) newSession(conn *websocket.Conn) *session {
	flags := viewrouter.NewFlagSet(h.lib.IDs())
	hist := viewrouter.NewMemoryHistory("")
	logger := h.logger.With(zap.String("remote", conn.RemoteAddr().String()))
	return &session{
		conn: conn,
		hist: hist,
		router: viewrouter.New(flags, hist,
			viewrouter.WithDefault(h.cfg.DefaultSection),
			viewrouter.WithObserver(func(from, to string, known bool) {
				logger.Debug("navigate", zap.String("from", from), zap.String("to", to), zap.Bool("known", known))
			})),
		tabs:  tabs.FromNames(h.lib.PreviewNames()),
		files: tabs.New(h.lib.PreviewPaths(), nil),
	}
}

// handle applies one frame. Only write failures are returned; bad frames
// are answered with an error message.
func (s *session) handle(msg []byte) error {
	var req request
	if err := json.Unmarshal(msg, &req); err != nil {
		return s.sendError("invalid message format")
	}

	switch req.Type {
	case "init":
		s.hist.SetFragment(req.Fragment)
		s.router.Initialize()
		return s.sendState()
	case "navigate":
		if req.Section == "" {
			return s.sendError("section is required")
		}
		pushed, scrolled := len(s.hist.Entries), s.hist.Scrolled
		s.router.OnNavigationRequest(req.Section)
		state := s.state()
		if len(s.hist.Entries) > pushed {
			state.Push = s.hist.Entries[len(s.hist.Entries)-1]
		}
		state.ScrollTop = s.hist.Scrolled > scrolled
		return s.write(state)
	case "popstate":
		s.hist.SetFragment(req.Fragment)
		s.router.OnHistoryBack()
		return s.sendState()
	case "tab":
		preview := s.tabs.Select(req.Tab)
		return s.write(TabMessage{Type: "tab", Selected: s.tabs.Selected(), Preview: preview})
	case "file":
		s.files.Select(req.File)
		return s.write(TabMessage{Type: "file", Selected: s.files.Selected()})
	default:
		return s.sendError("unknown message type: " + req.Type)
	}
}

func (s *session) state() StateMessage {
	return StateMessage{Type: "state", Current: s.router.Current(), Active: s.router.Active()}
}

func (s *session) sendState() error {
	return s.write(s.state())
}

func (s *session) sendError(message string) error {
	return s.write(errorMessage{Type: "error", Message: message})
}

// write also replaces any deadline the HTTP server left on the hijacked
// connection.
func (s *session) write(v any) error {
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteJSON(v)
}
