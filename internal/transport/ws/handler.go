// Package ws exposes a quiz engine over WebSocket. Each connection drives
// its own engine from a single command loop.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/abhisek/quizcraft/internal/quiz"
	"github.com/abhisek/quizcraft/internal/session"
)

// Handler upgrades requests and runs one quiz engine per connection.
type Handler struct {
	gen      session.Generator
	config   session.EngineConfig
	upgrader websocket.Upgrader
}

// NewHandler returns a Handler whose engines use gen and cfg.
func NewHandler(gen session.Generator, cfg session.EngineConfig) *Handler {
	return &Handler{
		gen:    gen,
		config: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type requestQuizPayload struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type selectAnswerPayload struct {
	Text string `json:"text"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// command is one inbound frame, or the reason it could not be decoded.
type command struct {
	msg inboundMessage
	err error
}

// ServeWS upgrades the request and serves quiz commands until the client
// disconnects.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	send := make(chan outboundMessage, 16)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				cancel()
				for range send {
				}
				return
			}
		}
	}()

	commands := make(chan command)
	go func() {
		defer close(commands)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var c command
			c.err = json.Unmarshal(data, &c.msg)
			select {
			case commands <- c:
			case <-ctx.Done():
				return
			}
		}
	}()

	l := &loop{
		engine:      session.NewEngine(h.gen, h.config),
		completions: make(chan session.Completion),
		send:        send,
		ctx:         ctx,
	}
	l.run(commands)

	cancel()
	close(send)
	<-writerDone
}

// loop owns the engine. Every engine call happens on its goroutine.
type loop struct {
	engine      *session.Engine
	completions chan session.Completion
	send        chan<- outboundMessage
	ctx         context.Context
	lastMode    session.Mode
}

func (l *loop) run(commands <-chan command) {
	updates, unsubscribe := l.engine.Subscribe()
	defer unsubscribe()

	for {
		select {
		case c, ok := <-commands:
			if !ok {
				return
			}
			l.dispatch(c)
		case c := <-l.completions:
			l.engine.Complete(c)
		case snap := <-updates:
			l.forward(snap)
		case <-l.ctx.Done():
			return
		}
	}
}

func (l *loop) dispatch(c command) {
	if c.err != nil {
		l.sendError("invalid message")
		return
	}

	switch c.msg.Type {
	case "requestQuiz":
		var p requestQuizPayload
		if err := json.Unmarshal(c.msg.Payload, &p); err != nil {
			l.sendError("invalid requestQuiz payload")
			return
		}
		if t, ok := l.engine.RequestQuiz(p.Category, p.Count); ok {
			l.fetch(t)
		}
	case "selectAnswer":
		var p selectAnswerPayload
		if err := json.Unmarshal(c.msg.Payload, &p); err != nil {
			l.sendError("invalid selectAnswer payload")
			return
		}
		l.engine.SelectAnswer(p.Text)
	case "advance":
		l.engine.Advance()
	case "review":
		l.engine.Review()
	case "restart":
		l.engine.Restart()
	case "reattempt":
		if t, ok := l.engine.Reattempt(); ok {
			l.fetch(t)
		}
	default:
		l.sendError("unsupported message type")
	}
}

// fetch runs the generator off the loop and feeds the completion back in.
func (l *loop) fetch(t session.Ticket) {
	go func() {
		c := l.engine.Fetch(l.ctx, t)
		select {
		case l.completions <- c:
		case <-l.ctx.Done():
		}
	}()
}

func (l *loop) forward(snap session.Snapshot) {
	l.out(outboundMessage{Type: "snapshot", Payload: snap})
	if snap.Mode == session.ModeShowingResults && l.lastMode != session.ModeShowingResults {
		l.out(outboundMessage{Type: "result", Payload: quiz.Result{Score: snap.Score, Total: snap.Total}})
	}
	l.lastMode = snap.Mode
}

func (l *loop) sendError(msg string) {
	l.out(outboundMessage{Type: "error", Payload: errorPayload{Message: msg}})
}

func (l *loop) out(msg outboundMessage) {
	select {
	case l.send <- msg:
	case <-l.ctx.Done():
	}
}
