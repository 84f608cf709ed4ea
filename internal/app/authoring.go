package app

import (
	"context"

	"quizhub/internal/domain"
)

// AuthoringService covers quiz, question and answer management.
type AuthoringService struct {
	quizzes   QuizRepository
	questions QuestionRepository
	answers   AnswerRepository
}

func NewAuthoringService(quizzes QuizRepository, questions QuestionRepository, answers AnswerRepository) *AuthoringService {
	return &AuthoringService{quizzes: quizzes, questions: questions, answers: answers}
}

func (s *AuthoringService) CreateQuiz(ctx context.Context, quiz domain.Quiz) (int64, error) {
	return s.quizzes.Create(ctx, quiz)
}

func (s *AuthoringService) Quiz(ctx context.Context, id int64) (domain.Quiz, bool, error) {
	return s.quizzes.GetByID(ctx, id)
}

func (s *AuthoringService) Quizzes(ctx context.Context) ([]domain.QuizSummary, error) {
	return s.quizzes.List(ctx)
}

func (s *AuthoringService) QuizzesByUser(ctx context.Context, userID int64) ([]domain.Quiz, error) {
	return s.quizzes.ListByUser(ctx, userID)
}

func (s *AuthoringService) UpdateQuiz(ctx context.Context, quiz domain.Quiz) (int64, error) {
	return s.quizzes.Update(ctx, quiz)
}

func (s *AuthoringService) DeleteQuiz(ctx context.Context, id int64) (int64, error) {
	return s.quizzes.Delete(ctx, id)
}

func (s *AuthoringService) CreateQuestion(ctx context.Context, question domain.Question) (int64, error) {
	return s.questions.Create(ctx, question)
}

func (s *AuthoringService) Question(ctx context.Context, id int64) (domain.Question, bool, error) {
	return s.questions.GetByID(ctx, id)
}

func (s *AuthoringService) QuestionsForQuiz(ctx context.Context, quizID int64) ([]domain.Question, error) {
	return s.questions.ListByQuiz(ctx, quizID)
}

func (s *AuthoringService) QuestionsWithAnswers(ctx context.Context, quizID int64) ([]domain.QuestionWithAnswer, error) {
	return s.questions.ListWithAnswers(ctx, quizID)
}

func (s *AuthoringService) UpdateQuestion(ctx context.Context, question domain.Question) (int64, error) {
	return s.questions.Update(ctx, question)
}

func (s *AuthoringService) DeleteQuestion(ctx context.Context, id int64) (int64, error) {
	return s.questions.Delete(ctx, id)
}

func (s *AuthoringService) CreateAnswer(ctx context.Context, answer domain.Answer) (int64, error) {
	return s.answers.Create(ctx, answer)
}

func (s *AuthoringService) UpdateAnswer(ctx context.Context, answer domain.Answer) (int64, error) {
	return s.answers.Update(ctx, answer)
}

func (s *AuthoringService) DeleteAnswer(ctx context.Context, id int64) (int64, error) {
	return s.answers.Delete(ctx, id)
}

func (s *AuthoringService) AnswersByQuestion(ctx context.Context, questionID int64) ([]domain.Answer, error) {
	return s.answers.ListByQuestion(ctx, questionID)
}

func (s *AuthoringService) AnswersOfQuiz(ctx context.Context, quizID int64) ([]domain.Answer, error) {
	return s.answers.ListByQuiz(ctx, quizID)
}

// CorrectAnswers returns exactly the answers marked correct whose question
// belongs to the quiz.
func (s *AuthoringService) CorrectAnswers(ctx context.Context, quizID int64) ([]domain.Answer, error) {
	return s.answers.ListCorrectByQuiz(ctx, quizID)
}
