package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/apex/log"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/flowgen/internal/flowchart"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// compareMessage is the outgoing WebSocket message format.
type compareMessage struct {
	Type    string            `json:"type"` // "result", "error" or "done"
	Grammar flowchart.Grammar `json:"grammar,omitempty"`
	Content string            `json:"content,omitempty"`
	Result  *generateResponse `json:"result,omitempty"`
}

var grammarTitles = map[flowchart.Grammar]string{
	flowchart.GrammarMermaid: "Mermaid",
	flowchart.GrammarD2:      "D2",
}

func (u *UI) handleCompare(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("ui: websocket upgrade")
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("ui: websocket read")
			}
			return
		}

		var req flowchart.Request
		if err := json.Unmarshal(msg, &req); err != nil {
			u.send(conn, compareMessage{Type: "error", Content: "invalid message format"})
			continue
		}
		if strings.TrimSpace(req.Prompt) == "" {
			u.send(conn, compareMessage{Type: "error", Content: emptyPromptMessage})
			continue
		}
		withFormDefaults(&req)

		u.compare(r.Context(), conn, req)
	}
}

// compare requests both grammars at once and writes each outcome as soon
// as it arrives, followed by a "done" message.
func (u *UI) compare(ctx context.Context, conn *websocket.Conn, req flowchart.Request) {
	results := make(chan compareMessage, len(flowchart.Grammars))
	for _, g := range flowchart.Grammars {
		go func(g flowchart.Grammar) {
			results <- u.generateOne(ctx, g, req)
		}(g)
	}
	for range flowchart.Grammars {
		u.send(conn, <-results)
	}
	u.send(conn, compareMessage{Type: "done"})
}

func (u *UI) generateOne(ctx context.Context, g flowchart.Grammar, req flowchart.Request) compareMessage {
	code, err := u.backend.Generate(ctx, g, req)
	if err != nil {
		log.WithFields(log.Fields{"grammar": g}).WithError(err).Warn("compare generation failed")
		return compareMessage{Type: "error", Grammar: g, Content: grammarTitles[g] + " generation failed: " + backendErrorMessage(err)}
	}
	resp, err := newGenerateResponse(g, code)
	if err != nil {
		return compareMessage{Type: "error", Grammar: g, Content: err.Error()}
	}
	return compareMessage{Type: "result", Grammar: g, Result: resp}
}

func (u *UI) send(conn *websocket.Conn, msg compareMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		log.WithError(err).Warn("ui: websocket write")
	}
}

