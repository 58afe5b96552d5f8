package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"legalitex/api/internal/ai"
	"legalitex/api/internal/app"
	"legalitex/api/internal/artifact"
	"legalitex/api/internal/authpw"
	"legalitex/api/internal/config"
	"legalitex/api/internal/drafts"
	"legalitex/api/internal/email"
	"legalitex/api/internal/export"
	"legalitex/api/internal/search"
	"legalitex/api/internal/session"
	"legalitex/api/internal/share"
	"legalitex/api/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	db, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	if err := store.ApplyMigrations(ctx, db, cfg.MigrationsDir); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	if err := os.MkdirAll(cfg.DraftsDir, 0o755); err != nil {
		log.Fatalf("failed to create drafts dir: %v", err)
	}

	dataStore := store.NewPostgresStore(db)
	draftsService := drafts.New(cfg.DraftsDir)

	opts := app.Options{
		AuthPW: authpw.NewService(dataStore),
		Drafts: draftsService,
		Export: export.NewService(),
	}

	// Refresh tokens live in Redis when it is configured; without it
	// sign-in still works, just without session refresh.
	if strings.TrimSpace(cfg.RedisURL) != "" {
		redisStore, err := session.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis connection failed: %v", err)
		}
		defer redisStore.Close()
		opts.Refresh = redisStore
		log.Printf("Using Redis for refresh token storage")
	}

	var meiliClient *search.Meili
	if strings.TrimSpace(cfg.MeiliURL) != "" {
		meiliClient = search.NewMeili(cfg.MeiliURL, cfg.MeiliMasterKey)
		defer meiliClient.Close()
		log.Printf("Using Meilisearch for clause search")
	}
	opts.Search = search.NewService(meiliClient)

	if strings.TrimSpace(cfg.MinioEndpoint) != "" {
		minioStore, err := artifact.NewMinioStore(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			log.Fatalf("minio connection failed: %v", err)
		}
		opts.Artifacts = minioStore
		log.Printf("Using MinIO for export artifacts")
	} else {
		mem := artifact.NewMemoryStore("")
		opts.Artifacts = mem
		opts.MemArt = mem
	}

	var resolver ai.Resolver
	if strings.TrimSpace(cfg.OpenAIAPIKey) != "" {
		resolver = ai.NewOpenAIResolver(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
		log.Printf("Using OpenAI for content generation")
	}
	opts.AI = ai.NewService(resolver)

	mailer := email.NewService(email.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
		FromName: cfg.SMTPFromName,
	})
	opts.Share = share.NewService(cfg.ShareBaseURL, dataStore, mailer)

	service := app.NewService(cfg, dataStore, opts)

	httpServer := app.NewHTTPServer(service, cfg.CORSOrigin)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("LegaliteX API listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
