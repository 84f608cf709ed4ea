package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"quizhub/internal/app"
	"quizhub/internal/domain"
)

// ScoresHandler streams per-quiz scoreboard snapshots over a websocket. The
// stream is read-only: clients subscribe, the server pushes, inbound frames
// other than close are discarded.
type ScoresHandler struct {
	board    *app.ScoreboardHub
	results  *app.ResultService
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func NewScoresHandler(board *app.ScoreboardHub, results *app.ResultService, log *slog.Logger) *ScoresHandler {
	return &ScoresHandler{
		board:   board,
		results: results,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *ScoresHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID, err := strconv.ParseInt(r.URL.Query().Get("quizId"), 10, 64)
	if err != nil || quizID <= 0 {
		http.Error(w, "missing or invalid quizId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.board.Subscribe(quizID)
	defer cancel()

	// Initial snapshot so the client doesn't wait for the next submission.
	scores, err := h.results.SumScoresByQuiz(r.Context(), quizID)
	if err != nil {
		h.log.Error("scoreboard snapshot failed", "quizId", quizID, "error", err)
		return
	}
	if err := conn.WriteJSON(domain.Scoreboard{QuizID: quizID, Scores: scores, UpdatedAt: time.Now().UTC()}); err != nil {
		return
	}

	// Reader goroutine: drain and detect close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case board, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(board); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
