package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/vnkhanh/elearning-backend/config"
	"github.com/vnkhanh/elearning-backend/controllers"
	"github.com/vnkhanh/elearning-backend/logger"
	"github.com/vnkhanh/elearning-backend/middleware"
	"github.com/vnkhanh/elearning-backend/observability"
	"github.com/vnkhanh/elearning-backend/routes"
	"github.com/vnkhanh/elearning-backend/services"
	"github.com/vnkhanh/elearning-backend/store"
	"github.com/vnkhanh/elearning-backend/utils"
	"github.com/vnkhanh/elearning-backend/ws"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer appLog.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitOTel(ctx, appLog, observability.OtelConfig{
		Enabled:     cfg.OtelEnabled,
		ServiceName: cfg.OtelServiceName,
		Environment: cfg.AppEnv,
		Endpoint:    cfg.OtelOTLPEndpoint,
	})
	if err != nil {
		appLog.Warn("tracing disabled", "error", err)
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		appLog.Fatal("database connection failed", "error", err)
	}
	if err := store.AutoMigrate(db); err != nil {
		appLog.Fatal("auto migrate failed", "error", err)
	}
	appLog.Info("database connected & migrated", "driver", cfg.DBDriver)

	var (
		files     utils.FileStorage
		uploadDir string
	)
	switch cfg.StorageDriver {
	case "supabase":
		files = utils.NewSupabaseStorage(cfg.SupabaseURL, cfg.SupabaseKey, cfg.SupabaseBucket)
	default:
		local := utils.NewLocalStorage(cfg.UploadDir, cfg.AppURL)
		files = local
		uploadDir = local.Root()
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			appLog.Warn("redis unreachable, rate limiting fails open", "error", err)
		}
		defer redisClient.Close()
	}

	var mailer utils.Mailer
	if smtpMailer := utils.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword); smtpMailer.Configured() {
		mailer = smtpMailer
	}

	st := store.New(db)
	tokens := utils.NewTokenManager(cfg.JWTSecretKey, cfg.JWTTTL)
	hub := ws.NewHub(appLog)

	h := controllers.New(controllers.Options{
		Store:            st,
		Files:            files,
		Tokens:           tokens,
		Payment:          services.NewMidtransClient(cfg.MidtransBaseURL, cfg.MidtransServerKey),
		Mailer:           mailer,
		Hub:              hub,
		Log:              appLog,
		SignupPrice:      cfg.SignupPrice,
		PaymentFinishURL: cfg.PaymentFinishURL,
	})

	r := routes.SetupRouter(routes.Dependencies{
		Controller:     h,
		Store:          st,
		Tokens:         tokens,
		Files:          files,
		Hub:            hub,
		Limiter:        middleware.NewRateLimiter(redisClient),
		Log:            appLog,
		AllowedOrigins: cfg.Origins(),
		UploadDir:      uploadDir,
		Tracing:        cfg.OtelEnabled,
		ServiceName:    cfg.OtelServiceName,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLog.Info("server running", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	appLog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("server shutdown failed", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		appLog.Warn("tracing shutdown failed", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
