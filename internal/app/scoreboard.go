package app

import (
	"sync"

	"quizhub/internal/domain"
)

// ScoreboardHub fans per-quiz scoreboard snapshots out to subscribers.
type ScoreboardHub struct {
	mu          sync.Mutex
	subscribers map[int64]map[chan domain.Scoreboard]struct{}
}

func NewScoreboardHub() *ScoreboardHub {
	return &ScoreboardHub{
		subscribers: make(map[int64]map[chan domain.Scoreboard]struct{}),
	}
}

// Subscribe returns a channel that receives scoreboard updates for a quiz.
// The caller must invoke the returned cancel function to avoid leaks.
func (h *ScoreboardHub) Subscribe(quizID int64) (<-chan domain.Scoreboard, func()) {
	ch := make(chan domain.Scoreboard, 8)

	h.mu.Lock()
	if h.subscribers[quizID] == nil {
		h.subscribers[quizID] = make(map[chan domain.Scoreboard]struct{})
	}
	h.subscribers[quizID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if subs, ok := h.subscribers[quizID]; ok {
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}
			if len(subs) == 0 {
				delete(h.subscribers, quizID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Broadcast delivers the snapshot to every subscriber of its quiz without
// blocking; a slow subscriber's stale snapshot gets replaced by the new one.
func (h *ScoreboardHub) Broadcast(board domain.Scoreboard) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers[board.QuizID] {
		select {
		case ch <- board:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- board
		}
	}
}
