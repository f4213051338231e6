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
	"github.com/MQDC-Tech/CustomerCare-AI/internal/agents/contextagent"
	"github.com/MQDC-Tech/CustomerCare-AI/internal/config"
	transport "github.com/MQDC-Tech/CustomerCare-AI/internal/transport/http"

	store "github.com/MQDC-Tech/CustomerCare-AI/internal/repository"
)

const defaultPort = 10001

func main() {
	// Load configuration
	cfg := config.Load(defaultPort)

	log.Printf("Starting context agent...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	executor := contextagent.New(db)

	card := a2a.AgentCard{
		Name:            "Context Agent",
		Version:         "1.0.0",
		Description:     "Manages user profiles, preferences, and session context for personalized service",
		ProtocolVersion: "0.3.0",
		URL:             fmt.Sprintf("http://localhost:%d/", cfg.HTTPPort),
		Capabilities:    a2a.Capabilities{TextGeneration: true},
		Skills: []a2a.Skill{
			{ID: "preferences", Name: "Preference Management", Description: "Save and recall user preferences", Tags: []string{"personalization"}},
			{ID: "profile", Name: "User Profiles", Description: "Describe and maintain user profiles", Tags: []string{"profile"}},
			{ID: "session", Name: "Session Management", Description: "Track user session context", Tags: []string{"session"}},
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

	log.Printf("Context agent started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down context agent...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Context agent stopped")
}
