// Package safety screens user prompts before they reach the model.
// It never blocks a turn; a flagged prompt only earns an urgent-care
// notice ahead of the model's reply.
package safety

import (
	"unicode"

	"github.com/abadojack/whatlanggo"
	goahocorasick "github.com/anknown/ahocorasick"
)

// EmergencyNotice is prepended to replies whose prompt matched an
// emergency term.
const EmergencyNotice = "If this is a medical emergency, stop and call your local emergency number immediately."

// DefaultEmergencyTerms covers situations where directing the user to
// written information alone would be irresponsible.
var DefaultEmergencyTerms = []string{
	"chest pain",
	"can't breathe",
	"cannot breathe",
	"difficulty breathing",
	"severe bleeding",
	"unconscious",
	"overdose",
	"suicide",
	"suicidal",
	"stroke",
	"anaphylaxis",
	"seizure",
}

// Assessment is the outcome of screening a single prompt.
type Assessment struct {
	Flagged  bool
	Matches  []string
	Language string
	Reliable bool
}

// Screener searches prompts for emergency terms with an Aho-Corasick
// automaton built once at startup.
type Screener struct {
	matcher *goahocorasick.Machine
}

// NewScreener builds the automaton from a normalized copy of the term list.
func NewScreener(terms []string) (Screener, error) {
	patterns := make([][]rune, len(terms))
	for i, term := range terms {
		patterns[i] = normalizeRunes([]rune(term))
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return Screener{}, err
	}
	return Screener{matcher: m}, nil
}

// Screen reports matched emergency terms and the detected prompt language.
func (s *Screener) Screen(prompt string) Assessment {
	info := whatlanggo.Detect(prompt)
	assessment := Assessment{
		Language: whatlanggo.LangToString(info.Lang),
		Reliable: info.IsReliable(),
	}

	normalized := normalizeRunes([]rune(prompt))
	if len(normalized) == 0 {
		return assessment
	}

	spans := s.matcher.MultiPatternSearch(normalized, false)
	for _, span := range spans {
		assessment.Matches = append(assessment.Matches, string(span.Word))
	}
	assessment.Flagged = len(assessment.Matches) > 0
	return assessment
}

// normalizeRunes lowercases and collapses whitespace runs to single spaces
// so "Chest   PAIN" still matches "chest pain".
func normalizeRunes(input []rune) []rune {
	norm := make([]rune, 0, len(input))
	pendingSpace := false
	for _, r := range input {
		if unicode.IsSpace(r) {
			pendingSpace = len(norm) > 0
			continue
		}
		if pendingSpace {
			norm = append(norm, ' ')
			pendingSpace = false
		}
		norm = append(norm, unicode.ToLower(r))
	}
	return norm
}
