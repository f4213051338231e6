package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MQDC-Tech/CustomerCare-AI/internal/a2a"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/adapter/agentclient"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/adapter/llm"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/adapter/notify"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/classify"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/config"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/route"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/service"
	transport "github.com/MQDC-Tech/CustomerCare-AI/internal/transport/http"

	store "github.com/MQDC-Tech/CustomerCare-AI/internal/repository"
)

const defaultPort = 10000

func main() {
	// Load configuration
	cfg := config.Load(defaultPort)

	log.Printf("Starting coordinator...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("Context agent: %s", cfg.ContextAgentURL)
	log.Printf("Real-estate agent: %s", cfg.RealEstateAgentURL)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Agent registry and router
	agents, defaultID, err := cfg.Registry()
	if err != nil {
		log.Fatalf("Failed to load agent registry: %v", err)
	}
	router, err := route.New(agents, defaultID, route.DefaultMapping())
	if err != nil {
		log.Fatalf("Failed to initialize router: %v", err)
	}

	// Adapters
	agentClient := agentclient.NewClient("core-agent-coordinator", cfg.AgentTimeout)
	llmClient := llm.NewLLMClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMTimeout)
	notifyClient := notify.NewClient(cfg.NotifyURL)

	// Initialize service
	svc := service.New(db, classify.New(), router, agentClient, llmClient, notifyClient, cfg)

	// HTTP surface
	card := a2a.AgentCard{
		Name:            "Core Agent",
		Version:         "1.0.0",
		Description:     "Coordinator for the customer-care platform: classifies queries, routes them to specialized agents, and aggregates results",
		ProtocolVersion: "0.3.0",
		URL:             fmt.Sprintf("http://localhost:%d/", cfg.HTTPPort),
		Capabilities:    a2a.Capabilities{TextGeneration: true, FunctionCalling: true},
		Skills: []a2a.Skill{
			{ID: "orchestrate", Name: "Multi-Agent Orchestration", Description: "Route requests across specialized agents and aggregate results", Tags: []string{"routing", "orchestration"}},
			{ID: "general", Name: "General Assistance", Description: "Answer general queries with the LLM backend", Tags: []string{"llm"}},
			{ID: "memory", Name: "Conversation Memory", Description: "Recall recent conversation history", Tags: []string{"memory"}},
		},
	}
	h := transport.NewHandler(svc, db, card)
	server := transport.NewServer(h)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Coordinator started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down coordinator...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Coordinator stopped")
}
