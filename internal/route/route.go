// Package route resolves classified domains to concrete agent identities.
package route

import (
	"fmt"
	"log"

	"github.com/MQDC-Tech/CustomerCare-AI/internal/domain"
)

// DefaultMapping binds the built-in domains to the built-in agent
// identities.
func DefaultMapping() map[domain.Tag]string {
	return map[domain.Tag]string{
		domain.TagContext:      "context_agent",
		domain.TagRealEstate:   "domain_realestate",
		domain.TagNotification: "notifications",
		domain.TagGeneral:      "core",
	}
}

// Router holds the static domain-to-agent mapping. It is built once at
// startup and read-only afterwards.
type Router struct {
	agents    map[string]domain.Agent
	mapping   map[domain.Tag]string
	defaultID string
}

// New creates a router over the given registry. The default identity must
// exist in the registry, and every mapped identity must resolve; a violation
// is a configuration error, not a runtime condition.
func New(agents []domain.Agent, defaultID string, mapping map[domain.Tag]string) (*Router, error) {
	byID := make(map[string]domain.Agent, len(agents))
	for _, a := range agents {
		if a.AgentID == "" {
			return nil, fmt.Errorf("agent registry entry missing agent_id")
		}
		byID[a.AgentID] = a
	}
	if _, ok := byID[defaultID]; !ok {
		return nil, fmt.Errorf("default agent %q not present in registry", defaultID)
	}
	for tag, id := range mapping {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("domain %q maps to unknown agent %q", tag, id)
		}
	}
	return &Router{agents: byID, mapping: mapping, defaultID: defaultID}, nil
}

// Default returns the fallback agent.
func (r *Router) Default() domain.Agent {
	return r.agents[r.defaultID]
}

// Agent looks up an agent by identity.
func (r *Router) Agent(agentID string) (domain.Agent, bool) {
	a, ok := r.agents[agentID]
	return a, ok
}

// Resolve maps domain tags to agents, preserving tag order and removing
// duplicates. Unmapped tags are dropped with a log line. An empty result
// falls back to the default agent.
func (r *Router) Resolve(tags []domain.Tag) []domain.Agent {
	var resolved []domain.Agent
	seen := make(map[string]bool)

	for _, tag := range tags {
		id, ok := r.mapping[tag]
		if !ok {
			log.Printf("WARN: no agent mapped for domain %q, dropping", tag)
			continue
		}
		if seen[id] {
			continue
		}
		agent, ok := r.agents[id]
		if !ok {
			// New validates the mapping, so this indicates registry drift.
			log.Printf("WARN: domain %q maps to unregistered agent %q, dropping", tag, id)
			continue
		}
		seen[id] = true
		resolved = append(resolved, agent)
	}

	if len(resolved) == 0 {
		return []domain.Agent{r.Default()}
	}
	return resolved
}
