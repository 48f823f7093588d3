package pdufa

import (
	"fmt"
	"log"
	"regexp"
	"strings"
)

// DefaultTickerPattern matches 3 to 5 consecutive uppercase letters at the
// start of a summary, followed by a word boundary.
const DefaultTickerPattern = `^\s*([A-Z]{3,5})\b`

// DefaultStopwords are domain acronyms that satisfy the ticker pattern but
// are never tickers. Both the pattern and this set are configurable, the
// heuristic is wrong from time to time and must be correctable without a
// code change.
var DefaultStopwords = []string{"PDUFA", "ADCOM", "FDA"}

// Home market preference used when scoring lookup candidates.
const (
	homeRegion   = "United States"
	homeCurrency = "USD"
)

// Match is one candidate returned by a company-to-symbol lookup.
type Match struct {
	Symbol   string
	Name     string
	Region   string
	Currency string
}

// Lookup resolves free company text into candidate symbols.
// Implementations may fail or be unconfigured; the extractor treats both as
// "no matches".
type Lookup interface {
	Search(text string) ([]Match, error)
}

// Rule identifies which extraction stage produced a ticker.
type Rule string

const (
	RulePattern Rule = "pattern"
	RuleLookup  Rule = "lookup"
	RuleNone    Rule = "none"
)

// Extractor derives ticker symbols from event summaries using a two stage,
// short-circuiting rule: a leading uppercase-letters pattern first, then a
// scored lookup over the whole summary text.
type Extractor struct {
	pattern   *regexp.Regexp
	stopwords map[string]bool
	lookup    Lookup

	// Debug surfaces per-summary resolution traces on the log.
	Debug bool
}

// NewExtractor builds an Extractor. Empty pattern or nil stopwords select
// the defaults. lookup may be nil when no lookup capability is configured.
func NewExtractor(pattern string, stopwords []string, lookup Lookup) (*Extractor, error) {
	if pattern == "" {
		pattern = DefaultTickerPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid ticker pattern %q: %w", pattern, err)
	}
	if stopwords == nil {
		stopwords = DefaultStopwords
	}
	set := make(map[string]bool, len(stopwords))
	for _, w := range stopwords {
		set[strings.ToUpper(strings.TrimSpace(w))] = true
	}
	return &Extractor{pattern: re, stopwords: set, lookup: lookup}, nil
}

// Extract returns the ticker for a summary, or "" when none resolves.
// It never fails: an unresolved event is a first-class, expected outcome.
func (e *Extractor) Extract(summary string) string {
	ticker, _ := e.ExtractRule(summary)
	return ticker
}

// ExtractRule is Extract plus the rule that produced the result, for
// debugging the heuristic.
func (e *Extractor) ExtractRule(summary string) (string, Rule) {
	if m := e.pattern.FindStringSubmatch(summary); m != nil {
		cand := strings.ToUpper(m[1])
		if !e.stopwords[cand] {
			return cand, RulePattern
		}
		// a stopword is not a match: fall through to the lookup stage
	}

	text := strings.TrimSpace(summary)
	if text == "" || e.lookup == nil {
		return "", RuleNone
	}
	matches, err := e.lookup.Search(text)
	if err != nil {
		if e.Debug {
			log.Printf("[LOOKUP] error (treated as no match): %v | text: %s", err, text)
		}
		return "", RuleNone
	}
	if sym := bestMatch(text, matches); sym != "" {
		return sym, RuleLookup
	}
	if e.Debug {
		log.Printf("[LOOKUP] no matches for: %s", text)
	}
	return "", RuleNone
}

// Score rates a lookup candidate against the query text: +3 for the home
// region, +2 for the home currency, +3 when the query is a substring of the
// candidate name (case-insensitive).
func Score(query string, m Match) int {
	score := 0
	if m.Region == homeRegion {
		score += 3
	}
	if m.Currency == homeCurrency {
		score += 2
	}
	if strings.Contains(strings.ToLower(m.Name), strings.ToLower(query)) {
		score += 3
	}
	return score
}

// bestMatch selects the highest-scoring candidate symbol. Ties keep the
// first-seen candidate (strict > below); that tie-break is part of the
// contract, not an accident of ordering.
func bestMatch(query string, matches []Match) string {
	best, bestScore := "", -1
	for _, m := range matches {
		sym := strings.ToUpper(strings.TrimSpace(m.Symbol))
		if sym == "" {
			continue
		}
		if s := Score(query, m); s > bestScore {
			best, bestScore = sym, s
		}
	}
	return best
}
