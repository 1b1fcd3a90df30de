package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rps_game/internal/config"
	"rps_game/internal/db"
	httpServer "rps_game/internal/http"
	"rps_game/internal/http/handlers"
	"rps_game/internal/logger"
	"rps_game/internal/mail"
	"rps_game/internal/repository"
	"rps_game/internal/repository/memstore"
	"rps_game/internal/scheduler"
	"rps_game/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type stores struct {
	users  service.UserStore
	games  service.GameStore
	scores service.ScoreStore
	audit  service.AuditStore
	ping   handlers.Pinger
	close  func()
}

func openStores(cfg *config.Config) stores {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("using in-memory storage, data is lost on restart")
		mem := memstore.New()
		return stores{
			users:  mem.Users(),
			games:  mem.Games(),
			scores: mem.Scores(),
			audit:  mem.Audit(),
			ping:   mem,
			close:  func() {},
		}
	}

	pool := db.Connect(cfg.DatabaseURL)
	return stores{
		users:  repository.NewUserRepository(pool),
		games:  repository.NewGameRepository(pool),
		scores: repository.NewScoreRepository(pool),
		audit:  repository.NewAuditRepository(pool),
		ping:   pool,
		close:  pool.Close,
	}
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	st := openStores(cfg)
	defer st.close()

	optional := map[string]handlers.Pinger{}
	var cache service.RankingCache
	if rdb := db.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); rdb != nil {
		defer rdb.Close()
		cache = repository.NewRankingCache(rdb, cfg.RankingsCacheTTL)
		optional["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	var sender mail.Sender = mail.LogSender{}
	if cfg.SMTPEnabled() {
		sender = &mail.SMTPSender{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
		}
	}

	audit := service.NewAuditService(st.audit)
	userService := service.NewUserService(st.users, st.scores, cache, audit)
	gameService := service.NewGameService(st.users, st.games,
		service.WithRankingCache(cache),
		service.WithAudit(audit),
	)
	scoreService := service.NewScoreService(st.users, st.scores)
	reminderService := service.NewReminderService(st.users, sender, cfg.MailFrom, audit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.ReminderEnabled {
		sched, err := scheduler.Start(ctx, cfg.ReminderInterval, reminderService)
		if err != nil {
			logger.Fatal("failed to start scheduler", "error", err)
		}
		defer func() {
			if err := sched.Stop(); err != nil {
				logger.Error("scheduler shutdown", "error", err)
			}
		}()
	}

	r := httpServer.NewRouter()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := handlers.NewHandler(userService, gameService, scoreService, reminderService)
	health := handlers.NewHealthHandler(st.ping, optional, cfg.AppVersion)
	httpServer.RegisterRoutes(r, h, health)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "storage", cfg.Storage, "version", cfg.AppVersion)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
