package main

import (
	"flag"
	"log"
	"log/slog"

	"github.com/caselens/legal-advisor/internal/agent"
	"github.com/caselens/legal-advisor/internal/analyzer"
	"github.com/caselens/legal-advisor/internal/config"
	"github.com/caselens/legal-advisor/internal/llm"
	"github.com/caselens/legal-advisor/internal/search"
	"github.com/caselens/legal-advisor/internal/server"
	"github.com/caselens/legal-advisor/internal/summarizer"
)

func main() {
	configPath := flag.String("config", "", "path to optional config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	llmProvider, err := llm.NewOpenAI(&cfg.OpenAI)
	if err != nil {
		log.Fatalf("failed to create LLM provider: %v", err)
	}

	var searcher agent.Searcher
	if cfg.Search.APIKey != "" {
		client, err := search.NewClient(&cfg.Search)
		if err != nil {
			log.Fatalf("failed to create search client: %v", err)
		}
		searcher = client
	} else {
		slog.Warn("no search API key configured, research phase disabled")
	}

	reflexion := agent.NewReflexion(llmProvider, searcher)
	summarizer := summarizer.New(&cfg.Analysis)
	analyzer := analyzer.New(reflexion, summarizer, &cfg.Analysis)

	srv := server.New(*cfg, analyzer)
	slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
