// Package classify rewrites the code column of extracted transaction records
// through an ordered rule cascade: keyword codification, duplicate-reference
// pairing, sign-exclusive remaps, and description overrides. The cascade is
// deterministic for a given record order and rule set.
package classify

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/fmadrigalcr/reclasor/internal/domain/parse"
	"github.com/fmadrigalcr/reclasor/internal/domain/statement"
	"github.com/fmadrigalcr/reclasor/pkg/config"
)

// Codes the cascade produces or pairs on.
const (
	CodeDebitTransfer  = "T/D"
	CodeCreditTransfer = "T/C"
	CodeOtherDebit     = "O/D"

	codeWithdrawalDebit  = "WD"
	codeWithdrawalCredit = "WC"
	codeCommission       = "3V"
	codePlaceholder      = "PP"
)

// commissionPrefix rewrites the commission row's description so the paired
// movement it belongs to is readable in the output.
const commissionPrefix = "Comisión bancaria "

// Stats reports what each pass changed, for run logging.
type Stats struct {
	Codified   int
	Paired     int
	Remapped   int
	Overridden int
	Warnings   []string
}

// Engine applies one rule set to record slices. Build once per case, share
// across runs; Apply mutates the records in place.
type Engine struct {
	rules     config.RuleSet
	credit    *matcher
	debit     *matcher
	overrides *matcher
	logger    *slog.Logger
}

func New(rules config.RuleSet, logger *slog.Logger) *Engine {
	return &Engine{
		rules:     rules,
		credit:    newKeywordMatcher(rules.Codification.Credit),
		debit:     newKeywordMatcher(rules.Codification.Debit),
		overrides: newOverrideMatcher(rules.DescriptionOverrides),
		logger:    logger,
	}
}

// Apply runs the cascade over the records in order and returns the pass
// counters.
func (e *Engine) Apply(records []*statement.TransactionRecord) Stats {
	s := Stats{}

	e.codify(records, &s)
	e.pairDuplicateReferences(records, &s)
	e.resolvePlaceholderGroups(records, &s)
	e.remapBySign(records, &s)
	e.override(records, &s)

	e.logger.Info("classification cascade applied",
		slog.Int("records", len(records)),
		slog.Int("codified", s.Codified),
		slog.Int("paired", s.Paired),
		slog.Int("remapped", s.Remapped),
		slog.Int("overridden", s.Overridden),
		slog.Int("warnings", len(s.Warnings)),
	)
	return s
}

// codify derives codes from the description keywords. Credit rules are
// consulted first for records with a positive credit; debit rules cover the
// rest with a positive debit. Records matching no rule keep their code.
func (e *Engine) codify(records []*statement.TransactionRecord, s *Stats) {
	if e.credit == nil && e.debit == nil {
		return
	}
	for _, rec := range records {
		if parse.IsPositive(rec.Credit) {
			if code, ok := e.credit.code(rec.Description); ok {
				rec.Code = code
				s.Codified++
				continue
			}
		}
		if parse.IsPositive(rec.Debit) {
			if code, ok := e.debit.code(rec.Description); ok {
				rec.Code = code
				s.Codified++
			}
		}
	}
}

// pairDuplicateReferences detects the withdrawal-plus-commission pattern:
// exactly two records sharing a reference where one carries WD or WC and the
// other 3V. The withdrawal becomes a transfer (T/D or T/C), the commission
// becomes O/D and its description is rewritten after the movement it
// belongs to.
func (e *Engine) pairDuplicateReferences(records []*statement.TransactionRecord, s *Stats) {
	groups := groupByReference(records, func(*statement.TransactionRecord) bool { return true })

	for ref, group := range groups {
		if len(group) != 2 {
			continue
		}

		var withdrawal, commission *statement.TransactionRecord
		switch {
		case isWithdrawalCode(normCode(group[0])) && normCode(group[1]) == codeCommission:
			withdrawal, commission = group[0], group[1]
		case isWithdrawalCode(normCode(group[1])) && normCode(group[0]) == codeCommission:
			withdrawal, commission = group[1], group[0]
		default:
			continue
		}

		from := normCode(withdrawal)
		if from == codeWithdrawalDebit {
			withdrawal.Code = CodeDebitTransfer
		} else {
			withdrawal.Code = CodeCreditTransfer
		}
		commission.Code = CodeOtherDebit
		commission.Description = commissionPrefix + strings.TrimSpace(withdrawal.Description)
		s.Paired++

		e.logger.Debug("duplicate reference paired",
			slog.String("reference", ref),
			slog.String("withdrawal_code", from),
		)
	}
}

// resolvePlaceholderGroups settles PP records sharing a reference by debit
// amount: the largest debit becomes T/D, the smallest O/D, ties broken by
// row order. A lone PP with a positive debit becomes T/D. Groups larger than
// two only have their extremes reassigned, which is worth a warning.
func (e *Engine) resolvePlaceholderGroups(records []*statement.TransactionRecord, s *Stats) {
	groups := groupByReference(records, func(rec *statement.TransactionRecord) bool {
		return normCode(rec) == codePlaceholder && rec.Debit.Valid
	})

	for ref, group := range groups {
		if len(group) == 1 {
			if parse.IsPositive(group[0].Debit) && normCode(group[0]) != CodeDebitTransfer {
				group[0].Code = CodeDebitTransfer
				s.Remapped++
			}
			continue
		}

		sort.SliceStable(group, func(i, j int) bool {
			cmp := group[i].Debit.Decimal.Cmp(group[j].Debit.Decimal)
			if cmp != 0 {
				return cmp < 0
			}
			return group[i].Row < group[j].Row
		})

		lowest, highest := group[0], group[len(group)-1]
		if lowest == highest {
			continue
		}
		highest.Code = CodeDebitTransfer
		lowest.Code = CodeOtherDebit
		s.Remapped += 2

		if len(group) > 2 {
			s.Warnings = append(s.Warnings, fmt.Sprintf(
				"reference %q has %d placeholder records; only the extreme debits were reassigned", ref, len(group)))
		}
	}
}

// remapBySign applies the sign-exclusive code maps: positive-debit records
// through the debit map, non-negative-credit records through the credit map.
// A record with both sides positive is ambiguous and left alone, as is any
// record with an empty code.
func (e *Engine) remapBySign(records []*statement.TransactionRecord, s *Stats) {
	for _, rec := range records {
		code := normCode(rec)
		if code == "" {
			continue
		}

		debitPos := parse.IsPositive(rec.Debit)
		creditPos := parse.IsPositive(rec.Credit)

		var next string
		switch {
		case debitPos && !creditPos:
			next = e.rules.PositiveDebitCodes[code]
		case creditPos && !debitPos:
			next = e.rules.NonNegativeCreditCodes[code]
		}
		if next != "" && next != rec.Code {
			rec.Code = next
			s.Remapped++
		}
	}
}

// override forces codes for descriptions matching a configured text,
// regardless of sign. Runs last so operator overrides always win.
func (e *Engine) override(records []*statement.TransactionRecord, s *Stats) {
	if e.overrides == nil {
		return
	}
	for _, rec := range records {
		if code, ok := e.overrides.code(rec.Description); ok && rec.Code != code {
			rec.Code = code
			s.Overridden++
		}
	}
}

func normCode(rec *statement.TransactionRecord) string {
	return strings.ToUpper(strings.TrimSpace(rec.Code))
}

func isWithdrawalCode(code string) bool {
	return code == codeWithdrawalDebit || code == codeWithdrawalCredit
}

// groupByReference buckets records with a non-empty reference that pass the
// filter, preserving record order within each bucket.
func groupByReference(records []*statement.TransactionRecord, keep func(*statement.TransactionRecord) bool) map[string][]*statement.TransactionRecord {
	groups := map[string][]*statement.TransactionRecord{}
	for _, rec := range records {
		ref := strings.TrimSpace(rec.Reference)
		if ref == "" || !keep(rec) {
			continue
		}
		groups[ref] = append(groups[ref], rec)
	}
	return groups
}
