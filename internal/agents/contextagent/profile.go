package contextagent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/MQDC-Tech/CustomerCare-AI/internal/domain"
)

// Preference is one saved user preference.
type Preference struct {
	PropertyType string `json:"property_type,omitempty"`
	Bedrooms     int    `json:"bedrooms,omitempty"`
	Note         string `json:"note"`
	SavedAt      string `json:"saved_at"`
}

func (p Preference) describe() string {
	switch {
	case p.Bedrooms > 0 && p.PropertyType != "":
		return fmt.Sprintf("%d-bedroom %ss", p.Bedrooms, p.PropertyType)
	case p.PropertyType != "":
		return p.PropertyType + "s"
	default:
		return p.Note
	}
}

var bedroomsRe = regexp.MustCompile(`(\d+)[- ]?(?:bed(?:room)?s?|br)\b`)

var propertyTypes = []string{"house", "condo", "apartment", "townhouse"}

// extractPreference pulls a structured preference out of a free-text query.
// Unmatched queries keep the raw text as the note.
func extractPreference(query string) Preference {
	lower := strings.ToLower(query)
	pref := Preference{
		Note:    strings.TrimSpace(query),
		SavedAt: time.Now().Format(time.RFC3339),
	}

	if m := bedroomsRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			pref.Bedrooms = n
		}
	}
	for _, t := range propertyTypes {
		if strings.Contains(lower, t) {
			pref.PropertyType = t
			break
		}
	}
	return pref
}

// fetchProfile loads the user's profile, materializing a default one for
// unknown users.
func (e *Executor) fetchProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := e.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	now := time.Now()
	profile = &domain.Profile{
		UserID:    userID,
		Name:      "Unknown User",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := e.store.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (e *Executor) storePreference(ctx context.Context, userID string, pref Preference) error {
	profile, err := e.fetchProfile(ctx, userID)
	if err != nil {
		return err
	}

	prefs := decodePreferences(profile.Preferences)
	prefs = append(prefs, pref)
	encoded, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	profile.Preferences = encoded
	profile.UpdatedAt = time.Now()
	return e.store.UpsertProfile(ctx, profile)
}

func decodePreferences(raw json.RawMessage) []Preference {
	if len(raw) == 0 {
		return nil
	}
	var prefs []Preference
	if err := json.Unmarshal(raw, &prefs); err != nil {
		log.Printf("WARN: failed to decode stored preferences: %v", err)
		return nil
	}
	return prefs
}
