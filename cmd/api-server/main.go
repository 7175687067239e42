package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"wadhifa/db"
	"wadhifa/db/migrations"
	"wadhifa/internal/cache"
	"wadhifa/internal/config"
	"wadhifa/internal/handlers"
	"wadhifa/internal/logging"
	"wadhifa/internal/middleware"
	"wadhifa/internal/queue"
	"wadhifa/internal/scheduler"
	"wadhifa/internal/scoring"
)

func main() {
	godotenv.Load()

	log := logging.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	dbConn, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("cannot connect to database: %v", err)
	}
	defer dbConn.Close()

	if err := migrations.Run(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	store := db.NewStorage(dbConn)

	// Scoring pipeline: broker-backed queue when configured, in-process
	// fallback otherwise. Either way submissions never wait on scoring.
	var q interface {
		queue.Publisher
		Consume(queue.Handler) error
		Close() error
	}
	if cfg.RabbitURL != "" {
		rmq, err := queue.NewRabbitMQ(cfg.RabbitURL, log)
		if err != nil {
			log.Fatalf("rabbitmq: %v", err)
		}
		q = rmq
		log.Info("using RabbitMQ scoring queue")
	} else {
		q = queue.NewInProcess(256)
		log.Info("using in-process scoring queue")
	}
	defer q.Close()

	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY is not set, applications will keep null scores")
	}
	scorer := scoring.NewGeminiScorer(cfg.GeminiAPIKey)
	worker := scoring.NewWorker(store, scorer, log, cfg.ScoringTimeout)
	if err := q.Consume(func(job queue.ScoringJob) {
		worker.Process(context.Background(), job.ApplicationID)
	}); err != nil {
		log.Fatalf("scoring consumer: %v", err)
	}

	sched := scheduler.New(store, q, log, cfg.RescoreIntervalMinutes)
	if err := sched.Start(context.Background()); err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	defer sched.Stop()

	var stats *cache.StatsCache
	if cfg.RedisURL != "" {
		stats, err = cache.New(cfg.RedisURL, log)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer stats.Close()
	}

	h := handlers.NewHandler(store, q, stats, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.PingHandler)

		// listings
		r.Get("/jobs", h.GetJobsHandler)
		r.Get("/jobs/{id}", h.GetJobHandler)
		r.Post("/jobs", h.CreateJobHandler)
		r.Get("/tenders", h.GetTendersHandler)
		r.Get("/tenders/{id}", h.GetTenderHandler)
		r.Post("/tenders", h.CreateTenderHandler)

		// submissions
		r.Post("/applications", h.CreateApplicationHandler)
		r.Post("/proposals", h.CreateProposalHandler)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminOnly(cfg.AdminEmail, cfg.AdminDomain))

			r.Get("/stats", h.AdminStatsHandler)
			r.Get("/pending-jobs", h.PendingJobsHandler)
			r.Get("/pending-tenders", h.PendingTendersHandler)
			r.Post("/approve-job/{id}", h.ApproveJobHandler)
			r.Delete("/reject-job/{id}", h.RejectJobHandler)
			r.Post("/approve-tender/{id}", h.ApproveTenderHandler)
			r.Delete("/reject-tender/{id}", h.RejectTenderHandler)

			r.Get("/applications/{jobId}", h.GetApplicationsForJobHandler)
			r.Get("/applications/{jobId}/summary", h.ApplicationsSummaryHandler)
			r.Get("/applications/{jobId}/export", h.ExportApplicationsHandler)
			r.Post("/applications/{id}/accept", h.AcceptApplicationHandler)
			r.Post("/applications/{id}/reject", h.RejectApplicationHandler)
		})
	})

	log.WithField("addr", cfg.ServerAddress).Info("starting server")
	log.Fatal(http.ListenAndServe(cfg.ServerAddress, r))
}
