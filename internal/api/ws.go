package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ducdmdev/prrisk/internal/analysis"
	"github.com/ducdmdev/prrisk/internal/git"
	"github.com/ducdmdev/prrisk/internal/repofs"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 64,
	WriteBufferSize: 1024 * 64,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local dev; restrict in production
	},
}

// WebSocket message types from client.
const (
	wsMsgAnalyze = "analyze"
)

// WebSocket message types to client.
const (
	wsMsgProgress = "progress"
	wsMsgResult   = "result"
	wsMsgError    = "error"
)

// wsMessage is the envelope for WebSocket messages in both directions.
type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// wsProgress is the payload for "progress" messages. Stages arrive in
// order: diff, imports, analyses, risk.
type wsProgress struct {
	Stage string `json:"stage"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade", "err", err)
		return
	}
	defer conn.Close()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Error("websocket read", "err", err)
			}
			return
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			sendError(conn, "invalid message: "+err.Error())
			continue
		}

		switch msg.Type {
		case wsMsgAnalyze:
			s.wsAnalyze(conn, r, msg.Data)
		default:
			sendError(conn, "unknown message type: "+msg.Type)
		}
	}
}

func (s *Server) wsAnalyze(conn *websocket.Conn, r *http.Request, data json.RawMessage) {
	var req analyzeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		sendError(conn, "invalid analyze request: "+err.Error())
		return
	}
	if req.RepoPath == "" {
		sendError(conn, "repoPath is required")
		return
	}

	opts := req.options()
	opts.Progress = func(stage string) {
		send(conn, wsMsgProgress, wsProgress{Stage: stage})
	}

	vcs := git.NewClient(req.RepoPath)
	ws := repofs.New(req.RepoPath)

	result, err := analysis.AnalyzePR(r.Context(), vcs, ws, opts)
	if err != nil {
		sendError(conn, err.Error())
		return
	}
	send(conn, wsMsgResult, result)
}

func send(conn *websocket.Conn, msgType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("websocket marshal", "err", err)
		return
	}
	if err := conn.WriteJSON(wsMessage{Type: msgType, Data: data}); err != nil {
		slog.Error("websocket write", "err", err)
	}
}

func sendError(conn *websocket.Conn, msg string) {
	data, _ := json.Marshal(map[string]string{"error": msg})
	if err := conn.WriteJSON(wsMessage{Type: wsMsgError, Data: data}); err != nil {
		slog.Error("websocket write", "err", err)
	}
}
