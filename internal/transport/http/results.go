package http

import (
	"log/slog"
	"net/http"

	"quizhub/internal/app"
	"quizhub/internal/domain"
)

// ResultHandler serves result records, the players-results association and
// the two score aggregations.
type ResultHandler struct {
	results *app.ResultService
	log     *slog.Logger
}

func NewResultHandler(results *app.ResultService, log *slog.Logger) *ResultHandler {
	return &ResultHandler{results: results, log: log}
}

type resultRequest struct {
	Winner int64 `json:"winner"`
	QuizID int64 `json:"quizId"`
}

func (q resultRequest) validate(w http.ResponseWriter) bool {
	if q.Winner <= 0 {
		writeValidation(w, "winner is required")
		return false
	}
	if q.QuizID <= 0 {
		writeValidation(w, "quizId is required")
		return false
	}
	return true
}

func (h *ResultHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req resultRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.validate(w) {
		return
	}

	id, err := h.results.CreateResult(r.Context(), domain.Result{Winner: req.Winner, QuizID: req.QuizID})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, idBody{ID: id})
}

func (h *ResultHandler) ListByPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathID(w, r, "playerID")
	if !ok {
		return
	}
	results, err := h.results.ResultsForPlayer(r.Context(), playerID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *ResultHandler) ListByQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, ok := pathID(w, r, "quizID")
	if !ok {
		return
	}
	results, err := h.results.ResultsForQuiz(r.Context(), quizID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *ResultHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req resultRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.validate(w) {
		return
	}

	affected, err := h.results.UpdateResult(r.Context(), domain.Result{ID: id, Winner: req.Winner, QuizID: req.QuizID})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeAffected(w, affected)
}

func (h *ResultHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	affected, err := h.results.DeleteResult(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeAffected(w, affected)
}

func (h *ResultHandler) SumScoresByQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, ok := pathID(w, r, "quizID")
	if !ok {
		return
	}
	scores, err := h.results.SumScoresByQuiz(r.Context(), quizID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, scores)
}

type playerResultRequest struct {
	PlayerID int64 `json:"playerId"`
	ResultID int64 `json:"resultId"`
}

func (q playerResultRequest) validate(w http.ResponseWriter) bool {
	if q.PlayerID <= 0 {
		writeValidation(w, "playerId is required")
		return false
	}
	if q.ResultID <= 0 {
		writeValidation(w, "resultId is required")
		return false
	}
	return true
}

func (h *ResultHandler) CreatePlayerResult(w http.ResponseWriter, r *http.Request) {
	var req playerResultRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.validate(w) {
		return
	}

	id, err := h.results.CreatePlayerResult(r.Context(), domain.PlayerResult{PlayerID: req.PlayerID, ResultID: req.ResultID})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, idBody{ID: id})
}

func (h *ResultHandler) PlayerResultsByPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, ok := pathID(w, r, "playerID")
	if !ok {
		return
	}
	entries, err := h.results.PlayerResultsForPlayer(r.Context(), playerID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *ResultHandler) PlayerResultsByResult(w http.ResponseWriter, r *http.Request) {
	resultID, ok := pathID(w, r, "resultID")
	if !ok {
		return
	}
	entries, err := h.results.PlayerResultsForResult(r.Context(), resultID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *ResultHandler) UpdatePlayerResult(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req playerResultRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.validate(w) {
		return
	}

	affected, err := h.results.UpdatePlayerResult(r.Context(), domain.PlayerResult{ID: id, PlayerID: req.PlayerID, ResultID: req.ResultID})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeAffected(w, affected)
}

func (h *ResultHandler) DeletePlayerResult(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	affected, err := h.results.DeletePlayerResult(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeAffected(w, affected)
}

func (h *ResultHandler) SumScores(w http.ResponseWriter, r *http.Request) {
	scores, err := h.results.SumScores(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, scores)
}
