package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"alfredoptarigan/ats-analyzer/internal/config"
	"alfredoptarigan/ats-analyzer/internal/handlers"
	"alfredoptarigan/ats-analyzer/internal/repositories"
	"alfredoptarigan/ats-analyzer/internal/server"
	"alfredoptarigan/ats-analyzer/internal/services"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	ctx := context.Background()

	archiver, err := services.NewArchiverFromConfig(ctx, cfg.Archive)
	if err != nil {
		log.Fatalf("❌ Failed to initialize upload archive: %v", err)
	}
	if cfg.Archive.Enabled() {
		log.Printf("✅ Upload archive enabled (bucket %s)", cfg.Archive.Bucket)
	}

	storageService := services.NewStorageService(cfg.Storage.UploadPath, archiver)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Printf("✅ Gemini AI initialized (model %s)", cfg.Gemini.Model)

	var matchOpts []services.MatchOption
	deps := server.Deps{
		BodyLimit: int(cfg.Storage.MaxFileSize),
		AccessLog: true,
	}

	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		analysisRepo := repositories.NewAnalysisRepository(db)
		matchOpts = append(matchOpts, services.WithHistory(analysisRepo))
		deps.History = handlers.NewHistoryHandler(analysisRepo)
		log.Println("✅ Analysis history enabled")
	}

	if cfg.Qdrant.Enabled {
		index, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		if err := index.InitCollection(ctx); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		matchOpts = append(matchOpts, services.WithResumeIndex(index, geminiService))
		deps.Search = handlers.NewSearchHandler(services.NewSearchService(index, geminiService))
		log.Println("✅ Resume index enabled")
	}

	matchService := services.NewMatchService(
		services.NewTextExtractor(),
		services.NewAnalysisClient(geminiService),
		matchOpts...,
	)

	deps.Analyze = handlers.NewAnalyzeHandler(storageService, matchService, cfg.Storage.MaxFileSize)
	log.Println("✅ Handlers initialized")

	app := server.NewApp(deps)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
