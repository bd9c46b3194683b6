package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"docproc-backend/internal/documents"
	"docproc-backend/internal/embedding"
	"docproc-backend/internal/extract"
	"docproc-backend/internal/llm"
	"docproc-backend/internal/llm/gemini"
	"docproc-backend/internal/shared/config"
	"docproc-backend/internal/shared/server"
	"docproc-backend/internal/shared/storage/db"
	"docproc-backend/internal/shared/storage/object"
	localstore "docproc-backend/internal/shared/storage/object/local"
	s3store "docproc-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies, constructed once at startup.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Repo             documents.Repo
	Archive          object.ObjectStore
	LLM              llm.Client
	Embedder         embedding.Embedder
	DocumentsService *documents.Service
	DocumentsHandler *documents.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var repo documents.Repo
	if sqlDB != nil {
		repo = &documents.PGRepo{DB: sqlDB}
	} else {
		repo = documents.NewMemoryRepo()
	}

	llmClient, embedder, err := buildModels(cfg)
	if err != nil {
		return nil, err
	}

	archive, err := buildArchive(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc := &documents.Service{
		Extractor: extract.NewExtractor(cfg.TesseractPath),
		LLM:       llmClient,
		Embedder:  embedder,
		Repo:      repo,
		Archive:   archive,
	}
	handler := documents.NewHandler(svc)

	app := &App{
		Config:           cfg,
		DB:               sqlDB,
		Repo:             repo,
		Archive:          archive,
		LLM:              llmClient,
		Embedder:         embedder,
		DocumentsService: svc,
		DocumentsHandler: handler,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		DocumentsHandler: handler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repository")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: failed to connect database, falling back to memory: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildModels(cfg config.Config) (llm.Client, embedding.Embedder, error) {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: GEMINI_API_KEY empty; model calls will fail until configured")
			return llm.PlaceholderClient{}, embedding.Placeholder{}, nil
		}
		return nil, nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	llmClient, err := gemini.NewClient(cfg.GeminiAPIKey, cfg.LLMModel)
	if err != nil {
		return nil, nil, err
	}
	embedder, err := embedding.NewClient(embedding.Config{
		APIKey:    cfg.GeminiAPIKey,
		Model:     cfg.EmbeddingModel,
		Dimension: cfg.EmbeddingDimension,
	})
	if err != nil {
		return nil, nil, err
	}
	return llmClient, embedder, nil
}

func buildArchive(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "local":
		return localstore.New(cfg.LocalStoreDir), nil
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return nil, nil
	}
}

func isDevLike(env string) bool {
	switch env {
	case "dev", "local", "staging":
		return true
	default:
		return false
	}
}
