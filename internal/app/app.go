// Package app wires configuration into the research pipeline and its
// dependencies, shared by the CLI subcommands.
package app

import (
	"fmt"
	"log/slog"

	"finch/internal/agent"
	"finch/internal/config"
	"finch/internal/datastore"
	"finch/internal/db"
	"finch/internal/gateway"
	"finch/internal/history"
	"finch/internal/market"
	"finch/internal/report"
	"finch/internal/research"
	"finch/internal/tools"
)

type App struct {
	Cfg      *config.Config
	Store    *datastore.Store
	History  *history.Store
	Pipeline *research.Pipeline
	Gateway  *gateway.Server

	database *db.DB
}

func New(cfg *config.Config) (*App, error) {
	llmCfg, ok := cfg.LLMs[cfg.DefaultLLM]
	if !ok {
		return nil, fmt.Errorf("no llm config named %q", cfg.DefaultLLM)
	}
	if llmCfg.APIKey == "" {
		return nil, fmt.Errorf("no API key for llm %q; set OPENAI_API_KEY or run finch setup", cfg.DefaultLLM)
	}

	store, err := datastore.New(cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot store: %w", err)
	}

	database, err := db.Open(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := database.Migrate(); err != nil {
		database.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	client := market.NewClient(cfg.Market.BaseURL)
	renderer := report.NewRenderer(cfg.Reports.Dir)

	registry := agent.NewRegistry()
	registry.Register(tools.NewFundamental(client))
	registry.Register(tools.NewTechnical(client))
	registry.Register(tools.NewRisk(client))
	registry.Register(tools.NewSentiment(client))
	registry.Register(tools.NewCorporate(client, store))
	registry.Register(tools.NewIndustry(client, store))
	registry.Register(tools.NewPDFReport(renderer))
	if cfg.Search.BraveAPIKey != "" {
		registry.Register(tools.NewWeb(cfg.Search.BraveAPIKey))
	} else {
		slog.Warn("no Brave API key configured, web search tool disabled")
	}

	factory := agent.NewRunnerFactory(llmCfg, registry, research.Profiles())
	hist := history.NewStore(database)
	pipeline := research.NewPipeline(factory, hist, renderer)

	return &App{
		Cfg:      cfg,
		Store:    store,
		History:  hist,
		Pipeline: pipeline,
		Gateway:  gateway.NewServer(pipeline, hist),
		database: database,
	}, nil
}

func (a *App) Close() error {
	return a.database.Close()
}
