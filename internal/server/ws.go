package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/yacademy/researchsite/internal/search"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// searchRequest is the incoming WebSocket message format.
type searchRequest struct {
	Seq     int64  `json:"seq"`
	Query   string `json:"query"`
	Section string `json:"section,omitempty"`
}

// searchMessage is the outgoing WebSocket message format.
type searchMessage struct {
	Type      string          `json:"type"` // "results" or "error"
	SessionID string          `json:"session_id"`
	Seq       int64           `json:"seq"`
	Query     string          `json:"query,omitempty"`
	Results   []search.Result `json:"results,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// handleSearchSocket answers live search queries. Each connection is one
// session; a query whose sequence is not newer than the last answered one
// is dropped so a slow answer can never overwrite a newer one.
func (s *Server) handleSearchSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	sess := search.NewSession()
	log := s.logger.With(zap.String("session_id", sess.ID))
	log.Debug("search session opened")

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read", zap.Error(err))
			}
			return
		}

		var req searchRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendError(conn, sess.ID, 0, "invalid message format")
			continue
		}
		if req.Section != "" {
			if _, ok := s.section(req.Section); !ok {
				s.sendError(conn, sess.ID, req.Seq, "unknown section: "+req.Section)
				continue
			}
		}
		if !sess.Accept(req.Seq) {
			log.Debug("dropping stale query", zap.Int64("seq", req.Seq))
			continue
		}

		engine, _ := s.snapshot()
		results := engine.SearchSection(req.Query, req.Section)
		if !sess.Current(req.Seq) {
			continue
		}
		resp := searchMessage{
			Type:      "results",
			SessionID: sess.ID,
			Seq:       req.Seq,
			Query:     req.Query,
			Results:   results,
		}
		if err := conn.WriteJSON(resp); err != nil {
			log.Warn("websocket write", zap.Error(err))
			return
		}
	}
}

func (s *Server) sendError(conn *websocket.Conn, sessionID string, seq int64, msg string) {
	if err := conn.WriteJSON(searchMessage{Type: "error", SessionID: sessionID, Seq: seq, Error: msg}); err != nil {
		s.logger.Warn("websocket write", zap.Error(err))
	}
}
