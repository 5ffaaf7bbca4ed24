package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fmadrigalcr/reclasor/internal/domain/textnorm"
)

// Snapshot is one immutable load of the reclassification rules. A batch run
// takes a snapshot once and shares it read-only across workers; edits to the
// rules file only affect later runs.
type Snapshot struct {
	Cases    map[string]CaseConfig `json:"cases"`
	Accounts []AccountConfig       `json:"accounts"`
}

// CaseConfig selects a layout and the rules applied to statements processed
// under that case name.
type CaseConfig struct {
	Layout           string   `json:"layout"`
	Rules            RuleSet  `json:"rules"`
	HighlightFilters []string `json:"highlight_filters,omitempty"`
}

// RuleSet drives the classification cascade for one case.
type RuleSet struct {
	DescriptionOverrides   []OverrideRule    `json:"description_overrides,omitempty"`
	PositiveDebitCodes     map[string]string `json:"positive_debit_codes,omitempty"`
	NonNegativeCreditCodes map[string]string `json:"non_negative_credit_codes,omitempty"`
	Codification           Codification      `json:"codification"`
}

// Codification holds the keyword rules, split by the side of the movement
// they apply to. Credit rules are evaluated before debit rules.
type Codification struct {
	Debit  []KeywordRule `json:"debit,omitempty"`
	Credit []KeywordRule `json:"credit,omitempty"`
}

// KeywordRule assigns a code when any of its keywords appears in the
// description. Rules are ordered; the first configured rule that matches
// wins.
type KeywordRule struct {
	Keywords []string `json:"keywords"`
	Code     string   `json:"code"`
}

// OverrideRule forces a code for descriptions containing the match text,
// regardless of the sign-based passes.
type OverrideRule struct {
	Match string `json:"match"`
	Code  string `json:"code"`
}

// AccountConfig carries the per-account data the CP/CB template renderers
// need: the account numbers it answers to, the provider lookup table, and
// the document subtype table.
type AccountConfig struct {
	Codes     []string       `json:"codes"`
	Providers []ProviderRule `json:"providers,omitempty"`
	Subtypes  []SubtypeRule  `json:"subtypes,omitempty"`
}

// ProviderRule maps descriptions containing the match text to a provider
// code. Ordered; first match wins.
type ProviderRule struct {
	Match    string `json:"match"`
	Provider string `json:"provider"`
}

// SubtypeRule maps a (document type, description substring) pair to the
// document subtype used in the CB template.
type SubtypeRule struct {
	DocumentType string `json:"document_type"`
	SearchText   string `json:"search_text"`
	Subtype      string `json:"subtype"`
}

// Default returns the built-in rule snapshot: the code remaps and overrides
// observed across the supported bank exports. Operator rules files extend or
// replace these.
func Default() *Snapshot {
	return &Snapshot{
		Cases: map[string]CaseConfig{
			"detalle": {
				Layout: "bac-detalle",
				Rules:  DefaultRuleSet(),
			},
			"export": {
				Layout: "bac-export",
				Rules:  DefaultRuleSet(),
			},
		},
	}
}

// DefaultRuleSet returns the built-in classification rules shared by the
// default cases.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		DescriptionOverrides: []OverrideRule{
			{Match: "PENDIENTE EN CAMARA DCD", Code: "O/C"},
		},
		PositiveDebitCodes: map[string]string{
			"DP": "DEP",
			"TF": "T/D",
			"WD": "T/D",
			"3V": "O/D",
			"3Y": "TEF",
			"PE": "T/D",
			"MD": "T/D",
			"PT": "T/D",
		},
		NonNegativeCreditCodes: map[string]string{
			"DP": "DEP",
			"AR": "DEP",
			"TF": "T/C",
			"MC": "T/C",
			"PP": "T/C",
			"WC": "T/C",
		},
	}
}

// LoadRules reads a rule snapshot from the JSON file at path. An empty path
// yields the built-in defaults.
func LoadRules(path string) (*Snapshot, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file %q: %w", path, err)
	}

	snap := &Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("parsing rules file %q: %w", path, err)
	}
	if snap.Cases == nil {
		snap.Cases = map[string]CaseConfig{}
	}
	return snap, nil
}

// Case resolves a case name to its configuration.
func (s *Snapshot) Case(name string) (CaseConfig, error) {
	c, ok := s.Cases[name]
	if !ok {
		return CaseConfig{}, fmt.Errorf("unknown case %q", name)
	}
	return c, nil
}

// FindAccountByCode returns the account configuration covering the given
// account number, matching ignoring case and accents.
func (s *Snapshot) FindAccountByCode(code string) (AccountConfig, bool) {
	want := textnorm.FoldKey(code)
	if want == "" {
		return AccountConfig{}, false
	}
	for _, acc := range s.Accounts {
		for _, c := range acc.Codes {
			if textnorm.FoldKey(c) == want {
				return acc, true
			}
		}
	}
	return AccountConfig{}, false
}
