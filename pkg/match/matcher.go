// Package match provides the case-insensitive text matching used by the
// message evaluator and the ejection scan. Configured trigger phrases match
// as raw substrings; word lists match on word boundaries so that "ass" does
// not fire inside "classical".
package match

import (
	"regexp"
	"strings"
)

// Phrases matches any of a fixed set of phrases as case-insensitive
// substrings.
type Phrases struct {
	phrases []string
	lowered []string
}

// NewPhrases builds a phrase matcher. Empty phrases are dropped.
func NewPhrases(phrases []string) *Phrases {
	p := &Phrases{}
	for _, ph := range phrases {
		if ph == "" {
			continue
		}
		p.phrases = append(p.phrases, ph)
		p.lowered = append(p.lowered, strings.ToLower(ph))
	}
	return p
}

// Match returns the first configured phrase found in text, or "" when none
// matches.
func (p *Phrases) Match(text string) string {
	lower := strings.ToLower(text)
	for i, ph := range p.lowered {
		if strings.Contains(lower, ph) {
			return p.phrases[i]
		}
	}
	return ""
}

// Contains reports whether any configured phrase occurs in text.
func (p *Phrases) Contains(text string) bool {
	return p.Match(text) != ""
}

// Words matches any of a fixed word list on word boundaries,
// case-insensitively.
type Words struct {
	words   []string
	regexes map[string]*regexp.Regexp
}

// NewWords builds a word-boundary matcher with precompiled patterns.
func NewWords(words []string) *Words {
	w := &Words{
		regexes: make(map[string]*regexp.Regexp, len(words)),
	}
	for _, word := range words {
		if word == "" {
			continue
		}
		w.words = append(w.words, word)
		w.regexes[word] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	}
	return w
}

// Match returns the first configured word found in text, or "" when none
// matches.
func (w *Words) Match(text string) string {
	for _, word := range w.words {
		if w.regexes[word].MatchString(text) {
			return word
		}
	}
	return ""
}

// Contains reports whether any configured word occurs in text.
func (w *Words) Contains(text string) bool {
	return w.Match(text) != ""
}
