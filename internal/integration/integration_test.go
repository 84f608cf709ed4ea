package integration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"quizhub/internal/app"
	"quizhub/internal/domain"
	pg "quizhub/internal/infra/postgres"
	pgmigrations "quizhub/internal/infra/postgres/migrations"
	infraredis "quizhub/internal/infra/redis"
)

func TestQuizPlatformEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	applyMigrations(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}

	users := pg.NewUserRepository(pool)
	players := pg.NewPlayerRepository(pool)
	quizzes := pg.NewQuizRepository(pool)
	questions := pg.NewQuestionRepository(pool)
	answers := pg.NewAnswerRepository(pool)
	results := pg.NewResultRepository(pool)
	playerResults := pg.NewPlayerResultRepository(pool)

	accounts := app.NewAccountService(users, players, app.BcryptHasher{Cost: 4})
	board := app.NewScoreboardHub()
	attempts := app.NewAttemptService(
		infraredis.NewAttemptStore(redisClient, time.Hour),
		quizzes,
		infraredis.NewAnswerKeyCache(redisClient, answers, 5*time.Minute),
		results,
		playerResults,
		board,
	)

	dob := time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)
	playerID, err := accounts.RegisterPlayer(ctx, "alice", "alice@example.com", "secret1", dob)
	if err != nil {
		t.Fatalf("register player: %v", err)
	}
	if _, err := accounts.RegisterPlayer(ctx, "alice", "alice@example.com", "secret1", dob); !errors.Is(err, domain.ErrPlayerExists) {
		t.Fatalf("expected ErrPlayerExists on duplicate, got %v", err)
	}

	userID, err := users.Create(ctx, domain.User{Username: "author", Email: "author@example.com", PasswordHash: "x", DateOfBirth: dob})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	quizID, err := quizzes.Create(ctx, domain.Quiz{Title: "Capitals", Description: "Geography", Duration: 300, UserID: userID})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	questionID, err := questions.Create(ctx, domain.Question{Text: "Capital of France?", CorrectAnswer: "Paris", QuizID: quizID})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	rightID, err := answers.Create(ctx, domain.Answer{Text: "Paris", IsCorrect: true, QuestionID: questionID})
	if err != nil {
		t.Fatalf("create answer: %v", err)
	}
	wrongID, err := answers.Create(ctx, domain.Answer{Text: "Lyon", QuestionID: questionID})
	if err != nil {
		t.Fatalf("create answer: %v", err)
	}

	correct, err := answers.ListCorrectByQuiz(ctx, quizID)
	if err != nil {
		t.Fatalf("list correct: %v", err)
	}
	if len(correct) != 1 || correct[0].ID != rightID {
		t.Fatalf("expected exactly answer %d, got %+v", rightID, correct)
	}

	if _, err := attempts.Start(ctx, playerID, quizID); err != nil {
		t.Fatalf("start: %v", err)
	}
	receipt, err := attempts.Submit(ctx, playerID, quizID, []int64{rightID, wrongID})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if receipt.Attempt.Score != 1 {
		t.Fatalf("expected score 1, got %d", receipt.Attempt.Score)
	}

	scores, err := results.SumScoresByQuiz(ctx, quizID)
	if err != nil {
		t.Fatalf("sum scores by quiz: %v", err)
	}
	if len(scores) != 1 || scores[0].PlayerID != playerID || scores[0].Score != 1 {
		t.Fatalf("expected alice with score 1, got %+v", scores)
	}

	global, err := playerResults.SumScores(ctx)
	if err != nil {
		t.Fatalf("sum scores: %v", err)
	}
	if len(global) != 1 || global[0].PlayerID != playerID {
		t.Fatalf("expected only alice in global scores, got %+v", global)
	}

	// Delete is idempotent on the affected count.
	affected, err := questions.Delete(ctx, questionID)
	if err != nil {
		t.Fatalf("delete question: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 affected, got %d", affected)
	}
	affected, err = questions.Delete(ctx, questionID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 affected on second delete, got %d", affected)
	}

	// The schema cascade removed the question's answers too.
	remaining, err := answers.ListByQuestion(ctx, questionID)
	if err != nil {
		t.Fatalf("list answers: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected answers cascade-deleted, got %+v", remaining)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func applyMigrations(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
