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
	"github.com/MQDC-Tech/CustomerCare-AI/internal/agents/realestate"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/config"
	transport "github.com/MQDC-Tech/CustomerCare-AI/internal/transport/http"
	"github.com/MQDC-Tech/CustomerCare-AI/policy"

	store "github.com/MQDC-Tech/CustomerCare-AI/internal/repository"
)

const defaultPort = 10002

func main() {
	// Load configuration
	cfg := config.Load(defaultPort)

	log.Printf("Starting real-estate agent...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	executor := realestate.New(db, policyEngine)

	card := a2a.AgentCard{
		Name:            "Domain Real Estate Agent",
		Version:         "1.0.0",
		Description:     "Property search, lead qualification, and CRM routing for real-estate inquiries",
		ProtocolVersion: "0.3.0",
		URL:             fmt.Sprintf("http://localhost:%d/", cfg.HTTPPort),
		Capabilities:    a2a.Capabilities{TextGeneration: true},
		Skills: []a2a.Skill{
			{ID: "search", Name: "Property Search", Description: "Search property listings by criteria", Tags: []string{"property", "listing"}},
			{ID: "leads", Name: "Lead Management", Description: "Qualify and route CRM leads", Tags: []string{"crm", "lead"}},
		},
	}
	h := transport.NewHandler(executor, db, card)
	server := transport.NewServer(h)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Real-estate agent started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down real-estate agent...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Real-estate agent stopped")
}
