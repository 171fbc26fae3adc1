package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	httpctx "github.com/avasquez/furniture-store-api/internal/api/http/context"
	"github.com/avasquez/furniture-store-api/internal/api/http/router"
	httpServer "github.com/avasquez/furniture-store-api/internal/api/http/server"
	"github.com/avasquez/furniture-store-api/internal/config"
	"github.com/avasquez/furniture-store-api/internal/logger"
	"github.com/avasquez/furniture-store-api/internal/mail"
	"github.com/avasquez/furniture-store-api/internal/model"
	"github.com/avasquez/furniture-store-api/internal/repository/postgres"
	"github.com/avasquez/furniture-store-api/internal/server"
	"github.com/avasquez/furniture-store-api/internal/service"
	storage "github.com/avasquez/furniture-store-api/internal/storage/minio"
	"github.com/avasquez/furniture-store-api/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	confirmationRepo := postgres.NewConfirmationRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	productRepo := postgres.NewProductRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	orderRepo := postgres.NewOrderRepository(db)

	tokenManager := token.NewJWT(&token.Config{
		Secret:           cfg.JWT.Secret,
		AccessTTL:        cfg.JWT.AccessTTL,
		ValidateIssuer:   cfg.JWT.ValidateIssuer,
		Issuer:           cfg.JWT.Issuer,
		ValidateAudience: cfg.JWT.ValidateAudience,
		Audience:         cfg.JWT.Audience,
	})

	mailer := mail.NewSMTPMailer(mail.Config{
		Addr:     cfg.SMTP.Addr,
		From:     cfg.SMTP.From,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		UseTLS:   cfg.SMTP.UseTLS,
		Timeout:  cfg.SMTP.Timeout,
	}, logger)

	tokenService := service.NewTokenService(tokenManager, refreshTokenRepo, userRepo, cfg.JWT.RefreshTTL, logger)
	authService := service.NewAuth(userRepo, confirmationRepo, tokenService, mailer, cfg.BaseURL, logger)
	ctxMgr := httpctx.NewManager()

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	catalogService := service.NewCatalog(productRepo, categoryRepo, storageClient, logger)
	orderService := service.NewOrder(orderRepo, productRepo, logger)

	apiServer := registerHTTPServer(
		logger,
		authService,
		catalogService,
		orderService,
		tokenService,
		ctxMgr,
		fmt.Sprintf(":%s", cfg.HTTP.Port),
		cfg.HTTP.RequestTimeout,
	)

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(apiServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", apiServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerHTTPServer(
	logger *logger.Logger,
	authService *service.Auth,
	catalogService *service.Catalog,
	orderService *service.Order,
	tokenService *service.TokenService,
	ctxMgr model.ContextManager,
	addr string,
	requestTimeout time.Duration,
) *httpServer.HTTPServer {
	r := router.New(authService, catalogService, orderService, tokenService, ctxMgr, requestTimeout, logger)
	h := r.Register()

	return httpServer.NewHTTPServer(h, addr, requestTimeout)
}
