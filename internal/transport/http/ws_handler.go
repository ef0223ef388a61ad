package http

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"trivia-engine/internal/app"
	"trivia-engine/internal/domain"
)

// WSHandler exposes one interactive game session per websocket connection.
type WSHandler struct {
	service   *app.GameService
	packID    string
	roundSize int
	upgrader  websocket.Upgrader
}

func NewWSHandler(service *app.GameService, packID string, roundSize int) *WSHandler {
	return &WSHandler{
		service:   service,
		packID:    packID,
		roundSize: roundSize,
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

type startPayload struct {
	Mode      string `json:"mode"`
	Category  string `json:"category"`
	Questions int    `json:"questions"`
}

type wagerPayload struct {
	Value string `json:"value"`
}

type answerPayload struct {
	Option string `json:"option"`
}

type powerUpPayload struct {
	Kind string `json:"kind"` // "double" or "freeze"
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type wagerState struct {
	Value int             `json:"value"`
	Max   int             `json:"max"`
	Tier  domain.RiskTier `json:"tier"`
}

type tickPayload struct {
	Timer     app.TimerKind `json:"timer"`
	Remaining int           `json:"remaining"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into a game
// session. All session triggers (client commands, the 1s ticker, freeze
// resumes) are serialized through one mutex, matching the engine's
// single-threaded contract.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	playerName := r.URL.Query().Get("name")
	if playerName == "" {
		http.Error(w, "missing name", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session, err := h.service.NewSession(r.Context(), h.packID, playerName)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	session.SetRoundSize(h.roundSize)

	send := make(chan any, 32)
	connDone := make(chan struct{})
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range send {
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	// emit drops messages once teardown has begun or the writer has died,
	// so no sender can block on a dead connection while holding the mutex.
	emit := func(msg any) {
		select {
		case send <- msg:
		case <-connDone:
		case <-writerDone:
		}
	}

	var mu sync.Mutex
	session.PowerUps().SetScheduler(func(d time.Duration, fn func()) {
		time.AfterFunc(d, func() {
			mu.Lock()
			defer mu.Unlock()
			fn()
		})
	})
	session.Register(h.observer(r, emit))

	if categories, err := h.service.Categories(r.Context(), h.packID); err == nil {
		emit(outboundMessage[[]string]{Type: "categories", Payload: categories})
	}

	ticker := time.NewTicker(time.Second)
	tickerStop := make(chan struct{})
	tickerDone := make(chan struct{})
	go func() {
		defer close(tickerDone)
		for {
			select {
			case <-ticker.C:
				mu.Lock()
				prev := session.Phase()
				session.Tick()
				if prev != app.PhaseRoundBoundary && session.Phase() == app.PhaseRoundBoundary {
					emit(outboundMessage[string]{Type: "roundBoundary", Payload: "awaiting handoff"})
				}
				mu.Unlock()
			case <-tickerStop:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		mu.Lock()
		h.dispatch(session, inbound, emit)
		mu.Unlock()
	}

	close(connDone)
	ticker.Stop()
	close(tickerStop)
	<-tickerDone
	mu.Lock()
	if session.Phase() != app.PhaseIdle && session.Phase() != app.PhaseFinished {
		_ = session.Exit()
	}
	mu.Unlock()
	close(send)
	<-writerDone
}

func (h *WSHandler) dispatch(session *app.GameSession, inbound inboundMessage, emit func(any)) {
	fail := func(err error) {
		emit(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
	}

	switch inbound.Type {
	case "start":
		var payload startPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			fail(err)
			return
		}
		if err := session.Start(domain.Mode(payload.Mode), payload.Category, payload.Questions); err != nil {
			fail(err)
		}
	case "wager":
		var payload wagerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			fail(err)
			return
		}
		if err := session.SetWagerRaw(payload.Value); err != nil {
			fail(err)
			return
		}
		wager := session.Wager()
		emit(outboundMessage[wagerState]{Type: "wager", Payload: wagerState{
			Value: wager.Value(),
			Max:   wager.Max(),
			Tier:  app.ClassifyRisk(wager.Value(), wager.Max()),
		}})
	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			fail(err)
			return
		}
		if _, err := session.SubmitAnswer(payload.Option); err != nil {
			fail(err)
		}
	case "powerup":
		var payload powerUpPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			fail(err)
			return
		}
		var err error
		switch payload.Kind {
		case "double":
			err = session.ActivateDoublePoints()
		case "freeze":
			err = session.ActivateFreeze()
		default:
			fail(domain.ErrInvalidState)
			return
		}
		if err != nil {
			fail(err)
			return
		}
		emit(outboundMessage[int]{Type: "tokens", Payload: session.PowerUps().Tokens()})
	case "advance":
		prev := session.Phase()
		if err := session.Advance(); err != nil {
			fail(err)
			return
		}
		if prev != app.PhaseRoundBoundary && session.Phase() == app.PhaseRoundBoundary {
			emit(outboundMessage[string]{Type: "roundBoundary", Payload: "awaiting handoff"})
		}
	case "handoff":
		if err := session.ConfirmHandoff(); err != nil {
			fail(err)
		}
	case "exit":
		if err := session.Exit(); err != nil {
			fail(err)
		}
	default:
		fail(domain.ErrInvalidState)
	}
}

// observer translates session lifecycle events into outbound messages and
// persists finished games.
func (h *WSHandler) observer(r *http.Request, emit func(any)) app.SessionObserver {
	return app.ObserverFuncs{
		OnQuestionShown: func(e app.QuestionShownEvent) {
			emit(outboundMessage[app.QuestionShownEvent]{Type: "question", Payload: e})
		},
		OnAnswerScored: func(e app.AnswerScoredEvent) {
			emit(outboundMessage[app.AnswerScoredEvent]{Type: "answerResult", Payload: e})
		},
		OnTimeRemaining: func(kind app.TimerKind, remaining int) {
			emit(outboundMessage[tickPayload]{Type: "tick", Payload: tickPayload{Timer: kind, Remaining: remaining}})
		},
		OnCue: func(cue app.Cue) {
			emit(outboundMessage[string]{Type: "cue", Payload: string(cue)})
		},
		OnFinished: func(summary domain.ResultSummary) {
			emit(outboundMessage[domain.ResultSummary]{Type: "results", Payload: summary})
			board, err := h.service.RecordResult(r.Context(), summary)
			if err != nil {
				log.Printf("record result: %v", err)
				return
			}
			emit(outboundMessage[[]domain.LeaderboardEntry]{Type: "leaderboard", Payload: board})
		},
	}
}
