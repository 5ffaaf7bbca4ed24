package classify

import (
	"github.com/cloudflare/ahocorasick"

	"github.com/fmadrigalcr/reclasor/internal/domain/textnorm"
	"github.com/fmadrigalcr/reclasor/pkg/config"
)

// matcher resolves a description to a code through an Aho-Corasick automaton
// over the folded keywords of an ordered rule list. Several keywords can hit
// the same description; the rule configured first wins, not the keyword that
// happens to match first in the text.
type matcher struct {
	ac *ahocorasick.Matcher
	// ruleIdx maps automaton pattern index to the owning rule's position.
	ruleIdx []int
	codes   []string
}

func newKeywordMatcher(rules []config.KeywordRule) *matcher {
	var patterns [][]byte
	m := &matcher{}
	for i, rule := range rules {
		m.codes = append(m.codes, rule.Code)
		for _, kw := range rule.Keywords {
			folded := textnorm.Fold(kw)
			if folded == "" {
				continue
			}
			patterns = append(patterns, []byte(folded))
			m.ruleIdx = append(m.ruleIdx, i)
		}
	}
	if len(patterns) == 0 {
		return nil
	}
	m.ac = ahocorasick.NewMatcher(patterns)
	return m
}

func newOverrideMatcher(rules []config.OverrideRule) *matcher {
	var patterns [][]byte
	m := &matcher{}
	for i, rule := range rules {
		m.codes = append(m.codes, rule.Code)
		folded := textnorm.Fold(rule.Match)
		if folded == "" {
			continue
		}
		patterns = append(patterns, []byte(folded))
		m.ruleIdx = append(m.ruleIdx, i)
	}
	if len(patterns) == 0 {
		return nil
	}
	m.ac = ahocorasick.NewMatcher(patterns)
	return m
}

// code returns the code of the first configured rule whose keyword appears
// in the description.
func (m *matcher) code(description string) (string, bool) {
	if m == nil {
		return "", false
	}
	hits := m.ac.Match([]byte(textnorm.Fold(description)))
	if len(hits) == 0 {
		return "", false
	}
	best := -1
	for _, h := range hits {
		if h < 0 || h >= len(m.ruleIdx) {
			continue
		}
		if idx := m.ruleIdx[h]; best == -1 || idx < best {
			best = idx
		}
	}
	if best == -1 {
		return "", false
	}
	return m.codes[best], true
}
