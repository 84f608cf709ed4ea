package memory

import (
	"context"
	"sort"
	"sync"

	"quizhub/internal/domain"
)

// Store is an in-memory implementation of every repository contract in
// internal/app. It backs the server when postgres is not configured and the
// service/transport tests. Aggregations mirror the SQL semantics, including
// cascade deletes declared in the schema.
type Store struct {
	mu sync.RWMutex

	users         map[int64]domain.User
	players       map[int64]domain.Player
	quizzes       map[int64]domain.Quiz
	questions     map[int64]domain.Question
	answers       map[int64]domain.Answer
	results       map[int64]domain.Result
	playerResults map[int64]domain.PlayerResult

	nextID map[string]int64
}

func NewStore() *Store {
	return &Store{
		users:         make(map[int64]domain.User),
		players:       make(map[int64]domain.Player),
		quizzes:       make(map[int64]domain.Quiz),
		questions:     make(map[int64]domain.Question),
		answers:       make(map[int64]domain.Answer),
		results:       make(map[int64]domain.Result),
		playerResults: make(map[int64]domain.PlayerResult),
		nextID:        make(map[string]int64),
	}
}

func (s *Store) next(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

// Users returns the user repository view of the store.
func (s *Store) Users() *UserStore { return &UserStore{s} }

// Players returns the player repository view of the store.
func (s *Store) Players() *PlayerStore { return &PlayerStore{s} }

// Quizzes returns the quiz repository view of the store.
func (s *Store) Quizzes() *QuizStore { return &QuizStore{s} }

// Questions returns the question repository view of the store.
func (s *Store) Questions() *QuestionStore { return &QuestionStore{s} }

// Answers returns the answer repository view of the store.
func (s *Store) Answers() *AnswerStore { return &AnswerStore{s} }

// Results returns the result repository view of the store.
func (s *Store) Results() *ResultStore { return &ResultStore{s} }

// PlayerResults returns the players-results repository view of the store.
func (s *Store) PlayerResults() *PlayerResultStore { return &PlayerResultStore{s} }

type UserStore struct{ s *Store }

func (r *UserStore) Create(_ context.Context, user domain.User) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.ID = r.s.next("users")
	r.s.users[user.ID] = user
	return user.ID, nil
}

func (r *UserStore) GetByID(_ context.Context, id int64) (domain.User, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	user, ok := r.s.users[id]
	return user, ok, nil
}

func (r *UserStore) GetByEmail(_ context.Context, email string) (domain.User, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, user := range r.s.users {
		if user.Email == email {
			return user, true, nil
		}
	}
	return domain.User{}, false, nil
}

func (r *UserStore) Update(_ context.Context, user domain.User) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.users[user.ID]
	if !ok {
		return 0, nil
	}
	existing.Username = user.Username
	existing.Email = user.Email
	existing.DateOfBirth = user.DateOfBirth
	r.s.users[user.ID] = existing
	return 1, nil
}

func (r *UserStore) UpdatePasswordByEmail(_ context.Context, email, passwordHash string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, user := range r.s.users {
		if user.Email == email {
			user.PasswordHash = passwordHash
			r.s.users[id] = user
			return 1, nil
		}
	}
	return 0, nil
}

func (r *UserStore) Delete(_ context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return 0, nil
	}
	delete(r.s.users, id)
	return 1, nil
}

func (r *UserStore) ListUsernames(_ context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	usernames := []string{}
	for _, user := range r.s.users {
		usernames = append(usernames, user.Username)
	}
	sort.Strings(usernames)
	return usernames, nil
}

type PlayerStore struct{ s *Store }

func (r *PlayerStore) Create(_ context.Context, player domain.Player) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	player.ID = r.s.next("players")
	r.s.players[player.ID] = player
	return player.ID, nil
}

func (r *PlayerStore) GetByID(_ context.Context, id int64) (domain.Player, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	player, ok := r.s.players[id]
	return player, ok, nil
}

func (r *PlayerStore) GetByEmail(_ context.Context, email string) (domain.Player, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, player := range r.s.players {
		if player.Email == email {
			return player, true, nil
		}
	}
	return domain.Player{}, false, nil
}

func (r *PlayerStore) CheckExisting(_ context.Context, username, email string, excludeID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, player := range r.s.players {
		if player.ID == excludeID {
			continue
		}
		if player.Username == username || player.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *PlayerStore) Update(_ context.Context, player domain.Player) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.players[player.ID]
	if !ok {
		return 0, nil
	}
	existing.Username = player.Username
	existing.Email = player.Email
	existing.DateOfBirth = player.DateOfBirth
	r.s.players[player.ID] = existing
	return 1, nil
}

func (r *PlayerStore) UpdatePassword(_ context.Context, id int64, passwordHash string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	player, ok := r.s.players[id]
	if !ok {
		return 0, nil
	}
	player.PasswordHash = passwordHash
	r.s.players[id] = player
	return 1, nil
}

func (r *PlayerStore) Delete(_ context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.players[id]; !ok {
		return 0, nil
	}
	delete(r.s.players, id)
	for prID, pr := range r.s.playerResults {
		if pr.PlayerID == id {
			delete(r.s.playerResults, prID)
		}
	}
	return 1, nil
}

func (r *PlayerStore) List(_ context.Context) ([]domain.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	players := []domain.Player{}
	for _, player := range r.s.players {
		players = append(players, player)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players, nil
}

func (r *PlayerStore) ListUsernames(_ context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	usernames := []string{}
	for _, player := range r.s.players {
		usernames = append(usernames, player.Username)
	}
	sort.Strings(usernames)
	return usernames, nil
}

type QuizStore struct{ s *Store }

func (r *QuizStore) Create(_ context.Context, quiz domain.Quiz) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	quiz.ID = r.s.next("quizzes")
	r.s.quizzes[quiz.ID] = quiz
	return quiz.ID, nil
}

func (r *QuizStore) GetByID(_ context.Context, id int64) (domain.Quiz, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	quiz, ok := r.s.quizzes[id]
	return quiz, ok, nil
}

func (r *QuizStore) List(_ context.Context) ([]domain.QuizSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	quizzes := []domain.QuizSummary{}
	for _, quiz := range r.s.quizzes {
		quizzes = append(quizzes, domain.QuizSummary{ID: quiz.ID, Title: quiz.Title, Description: quiz.Description})
	}
	sort.Slice(quizzes, func(i, j int) bool { return quizzes[i].ID < quizzes[j].ID })
	return quizzes, nil
}

func (r *QuizStore) ListByUser(_ context.Context, userID int64) ([]domain.Quiz, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	quizzes := []domain.Quiz{}
	for _, quiz := range r.s.quizzes {
		if quiz.UserID == userID {
			quizzes = append(quizzes, quiz)
		}
	}
	sort.Slice(quizzes, func(i, j int) bool { return quizzes[i].ID < quizzes[j].ID })
	return quizzes, nil
}

func (r *QuizStore) Update(_ context.Context, quiz domain.Quiz) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.quizzes[quiz.ID]; !ok {
		return 0, nil
	}
	r.s.quizzes[quiz.ID] = quiz
	return 1, nil
}

func (r *QuizStore) Delete(_ context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.quizzes[id]; !ok {
		return 0, nil
	}
	delete(r.s.quizzes, id)
	for qID, question := range r.s.questions {
		if question.QuizID != id {
			continue
		}
		delete(r.s.questions, qID)
		for aID, answer := range r.s.answers {
			if answer.QuestionID == qID {
				delete(r.s.answers, aID)
			}
		}
	}
	for resID, result := range r.s.results {
		if result.QuizID != id {
			continue
		}
		delete(r.s.results, resID)
		for prID, pr := range r.s.playerResults {
			if pr.ResultID == resID {
				delete(r.s.playerResults, prID)
			}
		}
	}
	return 1, nil
}

type QuestionStore struct{ s *Store }

func (r *QuestionStore) Create(_ context.Context, question domain.Question) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	question.ID = r.s.next("questions")
	r.s.questions[question.ID] = question
	return question.ID, nil
}

func (r *QuestionStore) GetByID(_ context.Context, id int64) (domain.Question, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	question, ok := r.s.questions[id]
	return question, ok, nil
}

func (r *QuestionStore) ListByQuiz(_ context.Context, quizID int64) ([]domain.Question, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	questions := []domain.Question{}
	for _, question := range r.s.questions {
		if question.QuizID == quizID {
			questions = append(questions, question)
		}
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].ID < questions[j].ID })
	return questions, nil
}

func (r *QuestionStore) ListWithAnswers(_ context.Context, quizID int64) ([]domain.QuestionWithAnswer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := []domain.QuestionWithAnswer{}
	for _, question := range r.s.questions {
		if question.QuizID != quizID {
			continue
		}
		matched := false
		for _, answer := range r.s.answers {
			if answer.QuestionID != question.ID {
				continue
			}
			matched = true
			text, correct := answer.Text, answer.IsCorrect
			rows = append(rows, domain.QuestionWithAnswer{Question: question, AnswerText: &text, IsCorrect: &correct})
		}
		if !matched {
			rows = append(rows, domain.QuestionWithAnswer{Question: question})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows, nil
}

func (r *QuestionStore) Update(_ context.Context, question domain.Question) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.questions[question.ID]; !ok {
		return 0, nil
	}
	r.s.questions[question.ID] = question
	return 1, nil
}

func (r *QuestionStore) Delete(_ context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.questions[id]; !ok {
		return 0, nil
	}
	delete(r.s.questions, id)
	for aID, answer := range r.s.answers {
		if answer.QuestionID == id {
			delete(r.s.answers, aID)
		}
	}
	return 1, nil
}

type AnswerStore struct{ s *Store }

func (r *AnswerStore) Create(_ context.Context, answer domain.Answer) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	answer.ID = r.s.next("answers")
	r.s.answers[answer.ID] = answer
	return answer.ID, nil
}

func (r *AnswerStore) Update(_ context.Context, answer domain.Answer) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.answers[answer.ID]
	if !ok {
		return 0, nil
	}
	existing.Text = answer.Text
	existing.IsCorrect = answer.IsCorrect
	r.s.answers[answer.ID] = existing
	return 1, nil
}

func (r *AnswerStore) Delete(_ context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.answers[id]; !ok {
		return 0, nil
	}
	delete(r.s.answers, id)
	return 1, nil
}

func (r *AnswerStore) ListByQuestion(_ context.Context, questionID int64) ([]domain.Answer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	answers := []domain.Answer{}
	for _, answer := range r.s.answers {
		if answer.QuestionID == questionID {
			answers = append(answers, answer)
		}
	}
	sort.Slice(answers, func(i, j int) bool { return answers[i].ID < answers[j].ID })
	return answers, nil
}

func (r *AnswerStore) ListByQuiz(_ context.Context, quizID int64) ([]domain.Answer, error) {
	return r.listForQuiz(quizID, false), nil
}

func (r *AnswerStore) ListCorrectByQuiz(_ context.Context, quizID int64) ([]domain.Answer, error) {
	return r.listForQuiz(quizID, true), nil
}

func (r *AnswerStore) listForQuiz(quizID int64, correctOnly bool) []domain.Answer {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	answers := []domain.Answer{}
	for _, answer := range r.s.answers {
		question, ok := r.s.questions[answer.QuestionID]
		if !ok || question.QuizID != quizID {
			continue
		}
		if correctOnly && !answer.IsCorrect {
			continue
		}
		answers = append(answers, answer)
	}
	sort.Slice(answers, func(i, j int) bool { return answers[i].ID < answers[j].ID })
	return answers
}

type ResultStore struct{ s *Store }

func (r *ResultStore) Create(_ context.Context, result domain.Result) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result.ID = r.s.next("results")
	r.s.results[result.ID] = result
	return result.ID, nil
}

func (r *ResultStore) ListByWinner(_ context.Context, playerID int64) ([]domain.Result, error) {
	return r.listWhere(func(res domain.Result) bool { return res.Winner == playerID }), nil
}

func (r *ResultStore) ListByQuiz(_ context.Context, quizID int64) ([]domain.Result, error) {
	return r.listWhere(func(res domain.Result) bool { return res.QuizID == quizID }), nil
}

func (r *ResultStore) listWhere(keep func(domain.Result) bool) []domain.Result {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	results := []domain.Result{}
	for _, result := range r.s.results {
		if keep(result) {
			results = append(results, result)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results
}

func (r *ResultStore) Update(_ context.Context, result domain.Result) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.results[result.ID]; !ok {
		return 0, nil
	}
	r.s.results[result.ID] = result
	return 1, nil
}

func (r *ResultStore) Delete(_ context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.results[id]; !ok {
		return 0, nil
	}
	delete(r.s.results, id)
	for prID, pr := range r.s.playerResults {
		if pr.ResultID == id {
			delete(r.s.playerResults, prID)
		}
	}
	return 1, nil
}

// SumScoresByQuiz mirrors the SQL aggregation: each players_results row whose
// result belongs to the quiz contributes the quiz's correct-answer count.
func (r *ResultStore) SumScoresByQuiz(_ context.Context, quizID int64) ([]domain.PlayerScore, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	correctCount := r.s.correctCountLocked(quizID)
	totals := map[int64]int64{}
	for _, pr := range r.s.playerResults {
		result, ok := r.s.results[pr.ResultID]
		if !ok || result.QuizID != quizID {
			continue
		}
		if correctCount > 0 {
			totals[pr.PlayerID] += correctCount
		}
	}
	return scoresFromTotals(totals), nil
}

type PlayerResultStore struct{ s *Store }

func (r *PlayerResultStore) Create(_ context.Context, entry domain.PlayerResult) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	entry.ID = r.s.next("players_results")
	r.s.playerResults[entry.ID] = entry
	return entry.ID, nil
}

func (r *PlayerResultStore) ListByPlayer(_ context.Context, playerID int64) ([]domain.PlayerResult, error) {
	return r.listWhere(func(pr domain.PlayerResult) bool { return pr.PlayerID == playerID }), nil
}

func (r *PlayerResultStore) ListByResult(_ context.Context, resultID int64) ([]domain.PlayerResult, error) {
	return r.listWhere(func(pr domain.PlayerResult) bool { return pr.ResultID == resultID }), nil
}

func (r *PlayerResultStore) listWhere(keep func(domain.PlayerResult) bool) []domain.PlayerResult {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	entries := []domain.PlayerResult{}
	for _, entry := range r.s.playerResults {
		if keep(entry) {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

func (r *PlayerResultStore) Update(_ context.Context, entry domain.PlayerResult) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.playerResults[entry.ID]; !ok {
		return 0, nil
	}
	r.s.playerResults[entry.ID] = entry
	return 1, nil
}

func (r *PlayerResultStore) Delete(_ context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.playerResults[id]; !ok {
		return 0, nil
	}
	delete(r.s.playerResults, id)
	return 1, nil
}

// SumScores mirrors the global SQL aggregation: every players_results row
// contributes its result's quiz correct-answer count. Players with no rows
// are absent from the output.
func (r *PlayerResultStore) SumScores(_ context.Context) ([]domain.PlayerScore, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	totals := map[int64]int64{}
	for _, pr := range r.s.playerResults {
		result, ok := r.s.results[pr.ResultID]
		if !ok {
			continue
		}
		if _, ok := r.s.players[pr.PlayerID]; !ok {
			continue
		}
		totals[pr.PlayerID] += r.s.correctCountLocked(result.QuizID)
	}
	return scoresFromTotals(totals), nil
}

// correctCountLocked counts the answers marked correct across the quiz's
// questions. Callers must hold at least a read lock.
func (s *Store) correctCountLocked(quizID int64) int64 {
	var count int64
	for _, answer := range s.answers {
		if !answer.IsCorrect {
			continue
		}
		question, ok := s.questions[answer.QuestionID]
		if ok && question.QuizID == quizID {
			count++
		}
	}
	return count
}

func scoresFromTotals(totals map[int64]int64) []domain.PlayerScore {
	scores := []domain.PlayerScore{}
	for playerID, total := range totals {
		scores = append(scores, domain.PlayerScore{PlayerID: playerID, Score: total})
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].PlayerID < scores[j].PlayerID })
	return scores
}
