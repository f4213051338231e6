package a2a

// AgentCardPath is the well-known discovery path for agent cards.
const AgentCardPath = "/.well-known/agent.json"

// Skill describes one capability advertised on an agent card.
type Skill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

// Capabilities flags what an agent supports.
type Capabilities struct {
	TextGeneration  bool `json:"textGeneration"`
	FunctionCalling bool `json:"functionCalling"`
}

// AgentCard is the discovery document served at AgentCardPath.
type AgentCard struct {
	Name            string       `json:"name"`
	Version         string       `json:"version"`
	Description     string       `json:"description"`
	ProtocolVersion string       `json:"protocolVersion"`
	URL             string       `json:"url"`
	Capabilities    Capabilities `json:"capabilities"`
	Skills          []Skill      `json:"skills,omitempty"`
}
