package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quizhub/internal/app"
	"quizhub/internal/config"
	"quizhub/internal/infra/memory"
	pg "quizhub/internal/infra/postgres"
	redisinfra "quizhub/internal/infra/redis"
	"quizhub/internal/lib/slogcolor"
	transport "quizhub/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	log := slog.New(slogcolor.NewHandler(os.Stdout, slog.LevelInfo))
	slog.SetDefault(log)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	attemptTTL := config.TTLDuration(cfg.Attempt.TTL, time.Hour)
	answerKeyTTL := config.TTLDuration(cfg.AnswerKey.TTL, 10*time.Minute)

	var (
		users         app.UserRepository
		players       app.PlayerRepository
		quizzes       app.QuizRepository
		questions     app.QuestionRepository
		answers       app.AnswerRepository
		results       app.ResultRepository
		playerResults app.PlayerResultRepository
		answerSource  memory.AnswerSource
	)
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()

		answerRepo := pg.NewAnswerRepository(pool)
		users = pg.NewUserRepository(pool)
		players = pg.NewPlayerRepository(pool)
		quizzes = pg.NewQuizRepository(pool)
		questions = pg.NewQuestionRepository(pool)
		answers = answerRepo
		results = pg.NewResultRepository(pool)
		playerResults = pg.NewPlayerResultRepository(pool)
		answerSource = answerRepo
		log.Info("using postgres storage")
	} else {
		store := memory.NewStore()
		answerStore := store.Answers()
		users = store.Users()
		players = store.Players()
		quizzes = store.Quizzes()
		questions = store.Questions()
		answers = answerStore
		results = store.Results()
		playerResults = store.PlayerResults()
		answerSource = answerStore
		log.Warn("postgres not configured, using in-memory storage")
	}

	var attemptStore app.AttemptStore
	var answerKeys app.AnswerKeyRepository
	if redisClient != nil {
		attemptStore = redisinfra.NewAttemptStore(redisClient, attemptTTL)
		answerKeys = redisinfra.NewAnswerKeyCache(redisClient, answerSource, answerKeyTTL)
	} else {
		attemptStore = memory.NewAttemptStore()
		answerKeys = memory.NewAnswerKeyCache(answerSource, answerKeyTTL)
	}

	board := app.NewScoreboardHub()
	accounts := app.NewAccountService(users, players, app.BcryptHasher{})
	authoring := app.NewAuthoringService(quizzes, questions, answers)
	resultSvc := app.NewResultService(results, playerResults)
	attempts := app.NewAttemptService(attemptStore, quizzes, answerKeys, results, playerResults, board)

	mux := transport.NewRouter(accounts, authoring, resultSvc, attempts, board, log)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("starting quizhub", "port", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
