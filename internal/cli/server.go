package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"trivia-engine/internal/app"
	"trivia-engine/internal/config"
	"trivia-engine/internal/domain"
	"trivia-engine/internal/infra/memory"
	pgstore "trivia-engine/internal/infra/postgres"
	redisstore "trivia-engine/internal/infra/redis"
	transport "trivia-engine/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the trivia session server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
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

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.PackLoader = memory.NewStaticPackLoader(samplePacks())
	if pool != nil {
		loader = pgstore.NewPackLoader(pool)
	}

	packTTL := config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)
	var packs app.QuestionRepository
	if redisClient != nil {
		packs = redisstore.NewQuestionRepository(redisClient, loader, packTTL)
	} else {
		packs = memory.NewQuestionRepository(loader, packTTL)
	}

	var boards app.LeaderboardStore
	switch {
	case redisClient != nil:
		boards = redisstore.NewLeaderboardStore(redisClient)
	case pool != nil:
		boards = pgstore.NewLeaderboardStore(pool)
	default:
		boards = memory.NewLeaderboardStore()
	}

	packID := cfg.Questions.Pack
	if packID == "" {
		packID = "sample"
	}

	service := app.NewGameService(packs, boards)
	if names, ok := boards.(app.PlayerNameStore); ok {
		service = service.WithPlayerNames(names)
	}
	wsHandler := transport.NewWSHandler(service, packID, cfg.Game.RoundSize)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting trivia engine on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// samplePacks provides a minimal question set so the engine runs without a
// database; production deployments load packs from Postgres.
func samplePacks() map[string]domain.QuestionPack {
	return map[string]domain.QuestionPack{
		"sample": {
			ID: "sample",
			Questions: []domain.Question{
				{
					ID:       "q1",
					Category: "Science",
					Prompt:   "Which planet is known as the Red Planet?",
					Options:  []string{"Venus", "Mars", "Jupiter", "Mercury"},
					Answer:   "Mars",
				},
				{
					ID:       "q2",
					Category: "Science",
					Prompt:   "What gas do plants absorb from the atmosphere?",
					Options:  []string{"Oxygen", "Nitrogen", "Carbon dioxide", "Helium"},
					Answer:   "Carbon dioxide",
				},
				{
					ID:          "q3",
					Category:    "History",
					Prompt:      "In which year did the Berlin Wall fall?",
					Options:     []string{"1987", "1989", "1991", "1993"},
					Answer:      "1989",
					Explanation: "The wall opened on 9 November 1989.",
				},
				{
					ID:       "q4",
					Category: "History",
					Prompt:   "Who was the first president of the United States?",
					Options:  []string{"John Adams", "Thomas Jefferson", "George Washington", "James Madison"},
					Answer:   "George Washington",
				},
				{
					ID:       "q5",
					Category: "Geography",
					Prompt:   "What is the longest river in the world?",
					Options:  []string{"Amazon", "Nile", "Yangtze", "Mississippi"},
					Answer:   "Nile",
				},
				{
					ID:       "q6",
					Category: "Geography",
					Prompt:   "Which country has the most time zones?",
					Options:  []string{"Russia", "USA", "France", "China"},
					Answer:   "France",
				},
			},
		},
	}
}
