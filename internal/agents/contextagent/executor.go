// Package contextagent implements the context agent: user personalization,
// profiles, and session management.
package contextagent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	store "github.com/MQDC-Tech/CustomerCare-AI/internal/repository"
)

// Executor answers personalization queries against the profile store.
type Executor struct {
	store store.Store
}

// New creates a context agent executor.
func New(st store.Store) *Executor {
	return &Executor{store: st}
}

// Execute handles a personalization query and returns the reply text.
func (e *Executor) Execute(ctx context.Context, query string) (string, error) {
	lower := strings.ToLower(query)

	switch {
	case isSavePreference(lower):
		return e.savePreference(ctx, defaultUserID, query)
	case strings.Contains(lower, "preference"):
		return e.listPreferences(ctx, defaultUserID)
	case strings.Contains(lower, "session"):
		return e.manageSession(defaultUserID, lower), nil
	case strings.Contains(lower, "profile"):
		return e.describeProfile(ctx, defaultUserID)
	default:
		return e.describeProfile(ctx, defaultUserID)
	}
}

// defaultUserID stands in for the caller identity until the protocol layer
// carries one.
const defaultUserID = "default_user"

func isSavePreference(lower string) bool {
	saving := strings.Contains(lower, "remember") ||
		strings.Contains(lower, "save") ||
		strings.Contains(lower, "prefer")
	asking := strings.Contains(lower, "what") || strings.Contains(lower, "show") ||
		strings.Contains(lower, "saved preferences")
	return saving && !asking
}

func (e *Executor) savePreference(ctx context.Context, userID, query string) (string, error) {
	pref := extractPreference(query)
	if err := e.storePreference(ctx, userID, pref); err != nil {
		return "", fmt.Errorf("failed to save preference: %w", err)
	}
	return fmt.Sprintf("Got it! I've saved your preference for %s. I'll remember this for future property searches and recommendations.", pref.describe()), nil
}

func (e *Executor) listPreferences(ctx context.Context, userID string) (string, error) {
	profile, err := e.fetchProfile(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch profile: %w", err)
	}
	prefs := decodePreferences(profile.Preferences)
	if len(prefs) == 0 {
		return fmt.Sprintf("No saved preferences yet for user %s.", userID), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Saved preferences for user %s:\n", userID)
	for _, p := range prefs {
		fmt.Fprintf(&b, "- %s\n", p.describe())
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (e *Executor) manageSession(userID, lower string) string {
	sessionID := fmt.Sprintf("session_%s_%s", userID, uuid.New().String()[:8])
	action := "started"
	if strings.Contains(lower, "end") || strings.Contains(lower, "close") {
		action = "ended"
	} else if strings.Contains(lower, "update") {
		action = "updated"
	}
	return fmt.Sprintf("Session %s for user %s (%s, %s)", action, userID, sessionID, time.Now().Format(time.RFC3339))
}

func (e *Executor) describeProfile(ctx context.Context, userID string) (string, error) {
	profile, err := e.fetchProfile(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch profile: %w", err)
	}
	prefs := decodePreferences(profile.Preferences)
	return fmt.Sprintf("Profile retrieved for user %s: %s, %d saved preference(s).", userID, profile.Name, len(prefs)), nil
}
