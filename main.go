package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "court_queue/docs"
	"court_queue/internal/auth"
	"court_queue/internal/config"
	"court_queue/internal/engine"
	"court_queue/internal/handlers"
	"court_queue/internal/logger"
	"court_queue/internal/queue"
	"court_queue/internal/storage"
	"court_queue/internal/tasks"
	"court_queue/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @Title						Очередь на корт
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", true)
		bootLog.Fatal().Err(err).Msg("Ошибка конфигурации")
	}
	log := logger.New(cfg.LogLevel, cfg.LogPretty)
	log.Info().Str("config", cfg.Redacted()).Msg("starting court queue")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gw, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("Ошибка подключения к хранилищу")
	}

	store := queue.NewStore(
		queue.WithLocation(cfg.Location()),
		queue.WithLegacyArchive(cfg.LegacyPromoteArchive),
	)

	authenticator, err := auth.NewAuthenticator(cfg.AdminPassword, cfg.AdminPasswordHash, cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Ошибка настройки авторизации")
	}

	hub := ws.NewHub(log)
	saver := tasks.NewSaver(gw, cfg.SaveTimeout, log)
	eng := engine.New(store, hub, saver, authenticator, engine.Options{
		OpenMutations: cfg.OpenMutations,
		Logger:        log,
	})

	go hub.Run(ctx)
	go saver.Run(ctx)
	go eng.Run(ctx)

	// Загрузка не блокирует старт: клиенты подключаются сразу.
	go func() {
		loadCtx, loadCancel := context.WithTimeout(ctx, cfg.LoadTimeout)
		defer loadCancel()

		q, h, err := gw.Load(loadCtx)
		if err != nil {
			log.Error().Err(err).Msg("Ошибка загрузки состояния, начинаем с пустой очереди")
			return
		}
		if err := eng.Initialize(loadCtx, q, h); err != nil {
			log.Error().Err(err).Msg("initialize failed")
		}
	}()

	scheduler, err := tasks.InitScheduler(cfg.CheckpointSchedule,
		tasks.Checkpoint(eng, saver, cfg.SaveTimeout, log), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Ошибка запуска планировщика")
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h := handlers.New(eng, saver, authenticator, hub)

	r.GET("/healthz", h.Health)
	r.GET("/ws", ws.NewHandler(hub, eng, log).QueueWebSocketHandler)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
	}

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/state", h.GetState)
	}

	adminGroup := r.Group("/api/admin", auth.AuthMiddleware(authenticator))
	{
		adminGroup.POST("/checkpoint", h.Checkpoint)
	}

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Ошибка запуска сервера...")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	<-scheduler.Stop().Done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}

	// Последний снимок снимается до остановки engine.
	snap, err := eng.Snapshot(shutdownCtx)
	cancel()
	if err != nil {
		log.Error().Err(err).Msg("final snapshot failed")
		return
	}
	if !snap.Initialized {
		log.Warn().Msg("state was never loaded, final save skipped")
		return
	}
	if err := saver.Flush(shutdownCtx, snap); err != nil {
		log.Error().Err(err).Msg("final save failed")
		return
	}
	log.Info().Uint64("revision", snap.Revision).Msg("state saved, bye")
}
