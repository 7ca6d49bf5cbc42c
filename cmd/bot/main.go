package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizzical-bot/internal/config"
	"github.com/aliskhannn/quizzical-bot/internal/delivery/telegram"
	"github.com/aliskhannn/quizzical-bot/internal/infra/opentdb"
	"github.com/aliskhannn/quizzical-bot/internal/infra/postgres"
	"github.com/aliskhannn/quizzical-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/quizzical-bot/internal/infra/redis"
	"github.com/aliskhannn/quizzical-bot/internal/logger"
	"github.com/aliskhannn/quizzical-bot/internal/service"
	"github.com/aliskhannn/quizzical-bot/internal/storage"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Env == "local"
	lg.Info("authorized", zap.String("account", bot.Self.UserName))

	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "quiz", Description: "Start a new quiz"},
		{Command: "check", Description: "Check answers"},
		{Command: "reset", Description: "Discard the current quiz"},
		{Command: "stats", Description: "Show your results"},
		{Command: "help", Description: "Help"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		lg.Fatal("invalid database config", zap.Error(err))
	}
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		lg.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	transactor := postgres.NewTransactor(pool)
	userRepo := repository.NewUserRepository(pool)
	resultRepo := repository.NewResultRepository(pool, transactor)

	sessions, err := newSessionStore(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to create session store", zap.Error(err))
	}

	source := opentdb.NewClient(nil, opentdb.Options{
		BaseURL:    cfg.Trivia.BaseURL,
		Amount:     cfg.Trivia.Amount,
		Category:   cfg.Trivia.Category,
		Difficulty: cfg.Trivia.Difficulty,
		Type:       cfg.Trivia.Type,
		Timeout:    cfg.Trivia.Timeout,
	})

	quizService := service.NewQuizService(
		source,
		service.NewQuizBuilder(service.HTMLDecoder{}, nil),
		sessions,
		resultRepo,
		lg.Named("quiz"),
		cfg.Trivia.Timeout,
	)
	userService := service.NewUserService(userRepo)

	handler := telegram.NewHandler(
		bot,
		lg.Named("telegram"),
		quizService,
		userService,
		storage.NewMessageStorage(),
		cfg.Trivia.Amount,
	)
	quizService.SetNotifier(handler)

	janitor := service.NewSessionJanitor(sessions, cfg.Session.TTL, cfg.Session.SweepSchedule, lg.Named("janitor"))
	go func() {
		if err := janitor.Start(ctx); err != nil {
			lg.Error("session janitor failed", zap.Error(err))
		}
	}()

	if err := handler.Run(ctx); err != nil && ctx.Err() == nil {
		lg.Error("handler stopped", zap.Error(err))
	}

	lg.Info("shutdown signal received, waiting for pending quizzes")
	bot.StopReceivingUpdates()
	quizService.Wait()
}

func newSessionStore(ctx context.Context, cfg *config.Config, lg *zap.Logger) (service.SessionStore, error) {
	if cfg.Session.Store != config.StoreRedis {
		lg.Info("using in-memory session store")
		return storage.NewSessionStorage(), nil
	}

	store := redis.NewSessionStore(
		redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB),
		cfg.Session.TTL,
	)
	if err := store.Ping(ctx); err != nil {
		return nil, err
	}
	lg.Info("using redis session store", zap.String("addr", cfg.Redis.Addr))
	return store, nil
}
