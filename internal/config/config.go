// Package config provides configuration for the customer-care agents.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MQDC-Tech/CustomerCare-AI/internal/domain"
)

// Default agent identities and endpoints.
const (
	DefaultCoordinatorID   = "core"
	DefaultNotificationsID = "notifications"
	DefaultContextID       = "context_agent"
	DefaultRealEstateID    = "domain_realestate"

	defaultContextURL    = "http://localhost:10001"
	defaultRealEstateURL = "http://localhost:10002"
)

// Config holds the runtime configuration for one agent process.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Remote agent endpoints (coordinator only)
	ContextAgentURL    string
	RealEstateAgentURL string

	// Optional YAML registry file overriding the built-in agent registry
	AgentsFile string

	// Timeouts
	AgentTimeout time.Duration
	LLMTimeout   time.Duration

	// LLM backend
	LLMBaseURL string
	LLMAPIKey  string

	// Notification push endpoint (empty disables delivery)
	NotifyURL string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables. defaultPort is the
// listen port used when HTTP_PORT is unset, so each binary can carry its own
// default.
func Load(defaultPort int) *Config {
	cfg := &Config{
		HTTPPort:           getEnvInt("HTTP_PORT", defaultPort),
		DatabaseURL:        getEnv("DATABASE_URL", "file:customercare.db?cache=shared&mode=rwc"),
		ContextAgentURL:    getEnv("CONTEXT_AGENT_URL", defaultContextURL),
		RealEstateAgentURL: getEnv("REALESTATE_AGENT_URL", defaultRealEstateURL),
		AgentsFile:         getEnv("AGENTS_FILE", ""),
		AgentTimeout:       time.Duration(getEnvInt("AGENT_TIMEOUT_MS", 30000)) * time.Millisecond,
		LLMTimeout:         time.Duration(getEnvInt("LLM_TIMEOUT_MS", 30000)) * time.Millisecond,
		LLMBaseURL:         getEnv("LLM_BASE_URL", ""),
		LLMAPIKey:          getEnv("LLM_API_KEY", ""),
		NotifyURL:          getEnv("NOTIFY_URL", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

// Registry returns the coordinator's agent registry: the local identities
// plus the remote specialized agents. When AgentsFile is set, the YAML file
// replaces the built-in remote entries.
func (c *Config) Registry() ([]domain.Agent, string, error) {
	agents := []domain.Agent{
		{AgentID: DefaultCoordinatorID, Name: "Core Agent", Description: "General queries and core platform services"},
		{AgentID: DefaultNotificationsID, Name: "Notifications", Description: "Alerts and reminders"},
		{AgentID: DefaultContextID, Name: "Context Agent", Description: "User personalization, profiles, and session management", Endpoint: c.ContextAgentURL},
		{AgentID: DefaultRealEstateID, Name: "Domain Real Estate Agent", Description: "Property search, lead management, and CRM integration", Endpoint: c.RealEstateAgentURL},
	}
	defaultID := DefaultCoordinatorID

	if c.AgentsFile == "" {
		return agents, defaultID, nil
	}

	file, err := loadRegistryFile(c.AgentsFile)
	if err != nil {
		return nil, "", err
	}
	if file.DefaultAgent != "" {
		defaultID = file.DefaultAgent
	}
	if len(file.Agents) > 0 {
		agents = agents[:0]
		for _, entry := range file.Agents {
			agents = append(agents, domain.Agent{
				AgentID:     entry.AgentID,
				Name:        entry.Name,
				Description: entry.Description,
				Endpoint:    entry.Endpoint,
			})
		}
	}
	return agents, defaultID, nil
}

// RegistryFile is the YAML shape of an agent registry override.
type RegistryFile struct {
	DefaultAgent string          `yaml:"default_agent"`
	Agents       []RegistryEntry `yaml:"agents"`
}

// RegistryEntry is one agent in a registry file.
type RegistryEntry struct {
	AgentID     string `yaml:"agent_id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Endpoint    string `yaml:"endpoint"`
}

func loadRegistryFile(path string) (*RegistryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read agents file: %w", err)
	}
	var file RegistryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse agents file: %w", err)
	}
	return &file, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
