package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/docview/internal/view"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handlePage renders .html pages through the session's view and hands
// everything else to the static file server.
func (s *Server) handlePage(static http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if !strings.HasSuffix(p, "/") && !strings.HasSuffix(p, ".html") {
			static.ServeHTTP(w, r)
			return
		}
		if strings.HasSuffix(p, "/") {
			p += "index.html"
		}
		sid := session(w, r)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if err := s.views.Render(sid, p, w, false); err != nil {
			writeError(w, err)
		}
	}
}

// splitAction separates a trailing /state, /html or /ws from the page path.
func splitAction(rest string) (page, action string) {
	for _, a := range []string{"state", "html", "ws"} {
		if strings.HasSuffix(rest, "/"+a) {
			return strings.TrimSuffix(rest, "/"+a), a
		}
	}
	return rest, ""
}

func (s *Server) handleViewGet(w http.ResponseWriter, r *http.Request) {
	page, action := splitAction(chi.URLParam(r, "*"))
	sid := session(w, r)

	switch action {
	case "state":
		snap, err := s.views.Snapshot(sid, page)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if err := s.views.Render(sid, page, w, true); err != nil {
			writeError(w, err)
		}
	case "ws":
		s.serveWebSocket(w, r, sid, page)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	page, action := splitAction(chi.URLParam(r, "*"))
	if action != "" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sid := session(w, r)

	var cmd view.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid command: " + err.Error()})
		return
	}
	res, err := s.views.Execute(sid, page, cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// serveWebSocket runs commands arriving as text frames, one reply each.
func (s *Server) serveWebSocket(w http.ResponseWriter, r *http.Request, sid, page string) {
	if _, err := view.CleanPath(page); err != nil {
		writeError(w, err)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("docview: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("docview: websocket read: %v", err)
			}
			return
		}

		var cmd view.Command
		if err := json.Unmarshal(msg, &cmd); err != nil {
			s.sendError(conn, "invalid message format")
			continue
		}
		res, err := s.views.Execute(sid, page, cmd)
		if err != nil {
			s.sendError(conn, err.Error())
			continue
		}
		if err := conn.WriteJSON(res); err != nil {
			log.Printf("docview: websocket write: %v", err)
			return
		}
	}
}

func (s *Server) sendError(conn *websocket.Conn, message string) {
	if err := conn.WriteJSON(map[string]string{"error": message}); err != nil {
		log.Printf("docview: websocket write: %v", err)
	}
}

// statusFor maps view errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, view.ErrPageNotFound):
		return http.StatusNotFound
	case errors.Is(err, view.ErrUnknownOp), errors.Is(err, view.ErrMissingTarget), errors.Is(err, view.ErrInvalidLevel):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("docview: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
