package app

import (
	"context"
	"fmt"
	"log"

	"github.com/alfredang/trip-advisor/internal/config"
	"github.com/alfredang/trip-advisor/internal/gateway/handler"
	"github.com/alfredang/trip-advisor/internal/gateway/repository/artifact"
	"github.com/alfredang/trip-advisor/internal/gateway/repository/planstore"
	"github.com/alfredang/trip-advisor/internal/gateway/server"
	"github.com/alfredang/trip-advisor/internal/gateway/service"
	"github.com/alfredang/trip-advisor/internal/llm"
	"github.com/alfredang/trip-advisor/internal/pipeline"
	"github.com/alfredang/trip-advisor/internal/search"
)

type App struct {
	server *server.Server
	llm    llm.Client
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewWithConfig(ctx, cfg)
}

func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	llmClient, err := llm.NewGeminiClient(ctx, llm.GeminiOptions{
		APIKey: cfg.LLM.APIKey,
		Model:  cfg.LLM.Model,
		RPS:    cfg.LLM.RPS,
		Burst:  cfg.LLM.Burst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init llm client: %w", err)
	}

	seq := &pipeline.Sequence{LLM: llmClient}
	if cfg.Search.Enabled() {
		seq.Search = search.NewTavily(cfg.Search.APIKey, cfg.Search.Depth)
		seq.Research = ResearchPolicyFor(cfg.Search)
	}

	store, err := planstore.New(0)
	if err != nil {
		return nil, fmt.Errorf("failed to init plan store: %w", err)
	}

	var artifactStore artifact.Store
	if cfg.Artifact.Enabled {
		s3Store, err := artifact.NewS3Store(artifact.S3Config{
			Endpoint:  cfg.Artifact.Endpoint,
			Region:    cfg.Artifact.Region,
			AccessKey: cfg.Artifact.AccessKey,
			SecretKey: cfg.Artifact.SecretKey,
			Bucket:    cfg.Artifact.Bucket,
			UseSSL:    cfg.Artifact.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init artifact store: %w", err)
		}
		log.Printf("artifact store: s3 bucket=%s endpoint=%s", cfg.Artifact.Bucket, cfg.Artifact.Endpoint)
		artifactStore = s3Store
	}

	plannerSvc := service.NewPlanner(seq, store, artifactStore)
	planHandler := handler.NewPlanHandler(plannerSvc)

	mux := server.NewMux(planHandler)
	srv := server.New(cfg.Port, mux)

	return &App{
		server: srv,
		llm:    llmClient,
	}, nil
}

// ResearchPolicyFor maps the configured research mode onto a pipeline
// predicate.
func ResearchPolicyFor(cfg config.SearchConfig) pipeline.ResearchPolicy {
	switch cfg.Mode {
	case "always":
		return pipeline.AlwaysResearch
	case "off":
		return pipeline.NeverResearch
	default:
		return pipeline.KeywordResearch(cfg.Keywords...)
	}
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	if a.llm != nil {
		_ = a.llm.Close()
	}
	return a.server.Shutdown(ctx)
}
