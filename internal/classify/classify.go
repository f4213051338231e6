// Package classify maps free-text queries to service domains using keyword
// matching. It is deliberately a simple rule engine; the interface isolates
// it so a model-based classifier could replace it without touching the
// router or orchestrator.
package classify

import (
	"regexp"
	"strings"

	"github.com/MQDC-Tech/CustomerCare-AI/internal/domain"
)

// Classifier tests a lowercased query against per-domain keyword sets.
// Keywords match whole words only: "houses" does not trigger the "house"
// rule.
type Classifier struct {
	patterns map[domain.Tag]*regexp.Regexp
	order    []domain.Tag
}

// defaultKeywords mirrors the coordinator's request-analysis rules.
var defaultKeywords = map[domain.Tag][]string{
	domain.TagContext: {
		"user", "profile", "personalize", "context", "session",
		"preference", "preferences", "remember",
	},
	domain.TagRealEstate: {
		"lead", "property", "real estate", "crm", "listing", "client",
		"house", "condo", "apartment", "buy", "sell",
	},
	domain.TagNotification: {
		"notify", "notification", "alert", "remind",
	},
}

// defaultOrder fixes the tag emission order so classification is
// deterministic and the dispatch order is stable.
var defaultOrder = []domain.Tag{domain.TagContext, domain.TagRealEstate, domain.TagNotification}

// New creates a classifier with the default keyword sets.
func New() *Classifier {
	return &Classifier{patterns: compileKeywords(defaultKeywords), order: defaultOrder}
}

// NewWithKeywords creates a classifier with custom keyword sets. Tags are
// emitted in the given order.
func NewWithKeywords(keywords map[domain.Tag][]string, order []domain.Tag) *Classifier {
	return &Classifier{patterns: compileKeywords(keywords), order: order}
}

// compileKeywords builds one word-bounded alternation per domain. Tags with
// no keywords get no pattern and never match.
func compileKeywords(keywords map[domain.Tag][]string) map[domain.Tag]*regexp.Regexp {
	patterns := make(map[domain.Tag]*regexp.Regexp, len(keywords))
	for tag, kws := range keywords {
		if len(kws) == 0 {
			continue
		}
		quoted := make([]string, len(kws))
		for i, kw := range kws {
			quoted[i] = regexp.QuoteMeta(strings.ToLower(kw))
		}
		patterns[tag] = regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
	}
	return patterns
}

// Classify returns the domains the query matches, in the classifier's fixed
// order. Blank input matches nothing.
func (c *Classifier) Classify(query string) []domain.Tag {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var tags []domain.Tag
	for _, tag := range c.order {
		if p := c.patterns[tag]; p != nil && p.MatchString(query) {
			tags = append(tags, tag)
		}
	}
	return tags
}
