// Package policy evaluates lead-routing decisions through OPA.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Engine is the OPA policy engine for lead routing.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.lead_policy.decision"),
		rego.Module("lead_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate decides how a qualified lead is routed. Input carries the lead's
// qualification score, level, and budget range.
// Returns one of: assign, escalate, reject.
func (e *Engine) Evaluate(ctx context.Context, input interface{}) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// The policy defines a default, so an empty result means the
		// module is misconfigured rather than "no opinion".
		return "", fmt.Errorf("policy returned no decision")
	}

	decision, ok := results[0].Expressions[0].Value.(string)
	if !ok {
		return "", fmt.Errorf("policy returned non-string decision: %v", results[0].Expressions[0].Value)
	}
	return decision, nil
}

// DefaultPolicy is the default lead-routing policy: reject unqualified
// leads, escalate high-value ones to a senior broker, assign the rest.
const DefaultPolicy = `
package lead_policy

import rego.v1

default decision := "assign"

decision := "reject" if {
	input.score < 30
}

decision := "escalate" if {
	input.score >= 80
}
`
