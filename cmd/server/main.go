package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/dracarys/library/internal/application/catalog"
	identityapp "github.com/dracarys/library/internal/application/identity"
	lendingapp "github.com/dracarys/library/internal/application/lending"
	reportapp "github.com/dracarys/library/internal/application/report"
	"github.com/dracarys/library/internal/infrastructure/auth"
	"github.com/dracarys/library/internal/infrastructure/cache"
	"github.com/dracarys/library/internal/infrastructure/config"
	"github.com/dracarys/library/internal/infrastructure/logger"
	"github.com/dracarys/library/internal/infrastructure/persistence"
	"github.com/dracarys/library/internal/interfaces/http/handler"
	"github.com/dracarys/library/internal/interfaces/http/middleware"
	"github.com/dracarys/library/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
	}()

	statCache, err := cache.NewStatCache(cfg.Redis)
	if err != nil {
		// The cache is an accelerator, not a dependency.
		log.Warn("stat cache unavailable, continuing without it", zap.Error(err))
		statCache = nil
	}
	defer func() {
		if err := statCache.Close(); err != nil {
			log.Error("failed to close stat cache", zap.Error(err))
		}
	}()

	// Repositories
	bookRepo := persistence.NewGormBookRepository(db.DB)
	genreRepo := persistence.NewGormGenreRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	borrowRepo := persistence.NewGormBorrowRepository(db.DB)
	statsRepo := persistence.NewGormStatsRepository(db.DB)

	// Services
	tokenService := auth.NewTokenService(cfg.Auth)
	bookService := catalogapp.NewBookService(bookRepo)
	genreService := catalogapp.NewGenreService(genreRepo)
	userService := identityapp.NewUserService(userRepo, tokenService)
	borrowService := lendingapp.NewBorrowService(borrowRepo)
	statsService := reportapp.NewStatsService(statsRepo, statCache, log)

	// Handlers
	bookHandler := handler.NewBookHandler(bookService)
	genreHandler := handler.NewGenreHandler(genreService)
	userHandler := handler.NewUserHandler(userService, statsService)
	borrowHandler := handler.NewBorrowHandler(borrowService, statsService)
	statsHandler := handler.NewStatsHandler(statsService)
	healthHandler := handler.NewHealthHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("failed to set trusted proxies", zap.Error(err))
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORSWithConfig(corsConfig),
	)

	engine.GET("/health", healthHandler.Check)

	books := router.NewDomainGroup("books", "/books").
		GET("", bookHandler.List).
		GET("/unique_count", statsHandler.UniqueBooks).
		GET("/total-count", statsHandler.TotalCopies).
		GET("/available-count", statsHandler.AvailableCopies).
		GET("/genres/count", statsHandler.BooksPerGenre).
		POST("/create", bookHandler.Create).
		GET("/:id", bookHandler.GetByID).
		PUT("/:id", bookHandler.Update).
		DELETE("/:id", bookHandler.Delete)

	genres := router.NewDomainGroup("genres", "").
		GET("/genres", genreHandler.List).
		GET("/genres-with-books", genreHandler.ListWithBooks)

	users := router.NewDomainGroup("users", "/users").
		POST("/create", userHandler.Create).
		POST("/login", userHandler.Login).
		GET("", userHandler.List).
		GET("/count", userHandler.Count).
		GET("/:id", userHandler.GetByID).
		PUT("/:id", userHandler.Update).
		DELETE("/:id", userHandler.Delete)

	userReport := router.NewDomainGroup("user-report", "").
		GET("/users_with_borrow_count", userHandler.ListWithBorrowCount)

	borrows := router.NewDomainGroup("borrows", "/borrows").
		POST("/create", borrowHandler.Create).
		GET("", borrowHandler.List).
		GET("/count", borrowHandler.Count).
		GET("/weekly-stats", borrowHandler.WeeklyStats).
		GET("/user/:user_id", borrowHandler.ListByUser).
		GET("/:id", borrowHandler.GetByID).
		PUT("/:id", borrowHandler.Return).
		DELETE("/:id", borrowHandler.Delete)

	router.NewRouter(engine).
		Register(books).
		Register(genres).
		Register(users).
		Register(userReport).
		Register(borrows).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()
	log.Info("server listening", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
