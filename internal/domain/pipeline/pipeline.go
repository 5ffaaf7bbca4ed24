// Package pipeline wires the statement stages end to end: open, locate,
// extract, filter, classify, render. One Process call owns its records
// exclusively; the configuration snapshot is shared read-only, so any number
// of attachments can run in parallel.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fmadrigalcr/reclasor/internal/domain/classify"
	"github.com/fmadrigalcr/reclasor/internal/domain/datefilter"
	"github.com/fmadrigalcr/reclasor/internal/domain/extract"
	"github.com/fmadrigalcr/reclasor/internal/domain/layout"
	"github.com/fmadrigalcr/reclasor/internal/domain/render"
	"github.com/fmadrigalcr/reclasor/internal/domain/sheet"
	"github.com/fmadrigalcr/reclasor/internal/domain/statement"
	"github.com/fmadrigalcr/reclasor/pkg/config"
)

// Mode selects which artifacts a run produces.
type Mode int

const (
	// ModeFormat produces the styled detail sheet and the accounting
	// summary.
	ModeFormat Mode = iota
	// ModeTemplates produces the CP/CB exports for tagged records.
	ModeTemplates
)

// Attachment is one input file, already in memory.
type Attachment struct {
	Filename string
	Content  []byte
}

// Request parameterizes a run.
type Request struct {
	Case  string
	Mode  Mode
	Range *datefilter.Range
}

// Result is a successful run: the artifacts plus anything worth telling the
// operator that did not stop processing.
type Result struct {
	RunID     string
	Artifacts []render.Artifact
	Warnings  []string
}

// Processor runs the pipeline against one configuration snapshot.
type Processor struct {
	snapshot *config.Snapshot
	logger   *slog.Logger
	now      func() time.Time
}

func New(snapshot *config.Snapshot, logger *slog.Logger) *Processor {
	return &Processor{
		snapshot: snapshot,
		logger:   logger,
		now:      time.Now,
	}
}

// Process transforms one attachment. It returns either artifacts or one of
// the statement taxonomy errors; never both.
func (p *Processor) Process(ctx context.Context, att Attachment, req Request) (*Result, error) {
	runID := uuid.NewString()
	logger := p.logger.With(
		slog.String("run_id", runID),
		slog.String("attachment", att.Filename),
		slog.String("case", req.Case),
	)

	caseCfg, err := p.snapshot.Case(req.Case)
	if err != nil {
		return nil, err
	}
	l, err := layout.Get(caseCfg.Layout)
	if err != nil {
		return nil, err
	}

	grid, err := sheet.Open(att.Content, att.Filename)
	if err != nil {
		return nil, err
	}
	loc, err := layout.Locate(grid, l)
	if err != nil {
		return nil, err
	}
	meta := sheet.ReadMetadata(grid, l.ProductCellRef, l.CurrencyCellRef)

	logger.Info("statement located",
		slog.String("layout", l.Name),
		slog.Int("header_row", loc.HeaderRow),
		slog.Int("data_start", loc.DataStart),
		slog.Int("data_end", loc.DataEnd),
		slog.String("account", meta.AccountNumber),
		slog.String("currency", meta.Currency),
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := extract.Records(grid, loc, l, logger)
	records = extract.PruneNoMovement(records)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: the statement has no movement rows", statement.ErrEmptyAfterFilter)
	}

	records, excluded := datefilter.Filter(records, req.Range, l.DropUnparsableDates)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: all %d movement rows fall outside %s",
			statement.ErrEmptyAfterFilter, excluded, req.Range)
	}

	result := &Result{RunID: runID}

	stats := classify.New(caseCfg.Rules, logger).Apply(records)
	result.Warnings = append(result.Warnings, stats.Warnings...)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch req.Mode {
	case ModeTemplates:
		if err := p.renderTemplates(result, records, meta, att.Filename, logger); err != nil {
			return nil, err
		}
	default:
		if err := p.renderFormatted(result, records, meta, caseCfg, req, att.Filename, logger); err != nil {
			return nil, err
		}
	}

	logger.Info("attachment processed",
		slog.Int("records", len(records)),
		slog.Int("excluded", excluded),
		slog.Int("artifacts", len(result.Artifacts)),
		slog.Int("warnings", len(result.Warnings)),
	)
	return result, nil
}

// renderFormatted builds the detail and summary artifacts. The two
// sub-renderers fail independently: a broken one becomes a warning as long
// as the other produced output.
func (p *Processor) renderFormatted(result *Result, records []*statement.TransactionRecord, meta sheet.Metadata, caseCfg config.CaseConfig, req Request, filename string, logger *slog.Logger) error {
	now := p.now()

	rangeText := ""
	if req.Range != nil {
		rangeText = req.Range.String()
	}

	var failures []error

	detail, err := render.Detail(render.DetailInput{
		Records:          records,
		Metadata:         meta,
		RangeText:        rangeText,
		HighlightFilters: caseCfg.HighlightFilters,
	}, filename, now)
	if err != nil {
		failures = append(failures, err)
		logger.Warn("detail renderer failed", slog.Any("error", err))
	} else {
		result.Artifacts = append(result.Artifacts, detail)
	}

	summary, err := render.Summary(records, meta.AccountNumber, filename, now)
	if err != nil {
		failures = append(failures, err)
		logger.Warn("summary renderer failed", slog.Any("error", err))
	} else {
		result.Artifacts = append(result.Artifacts, summary)
	}

	if len(result.Artifacts) == 0 {
		return errors.Join(failures...)
	}
	for _, f := range failures {
		result.Warnings = append(result.Warnings, f.Error())
	}
	return nil
}

func (p *Processor) renderTemplates(result *Result, records []*statement.TransactionRecord, meta sheet.Metadata, filename string, logger *slog.Logger) error {
	account, ok := p.snapshot.FindAccountByCode(meta.AccountNumber)
	if !ok {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"account %q has no provider/subtype configuration; template lookups left empty", meta.AccountNumber))
		logger.Warn("account configuration not found", slog.String("account", meta.AccountNumber))
	}

	artifacts, err := render.Templates(render.TemplateInput{
		Records:       records,
		Account:       account,
		AccountNumber: meta.AccountNumber,
		Currency:      meta.Currency,
	}, filename, p.now())
	if err != nil {
		return err
	}
	result.Artifacts = append(result.Artifacts, artifacts...)
	return nil
}

// BatchItem pairs an attachment with its outcome. Err and Result are
// mutually exclusive.
type BatchItem struct {
	Attachment string
	Result     *Result
	Err        error
}

// ProcessBatch fans the attachments across a bounded worker pool. Each
// attachment succeeds or fails on its own; the batch always returns one item
// per input, in input order.
func (p *Processor) ProcessBatch(ctx context.Context, atts []Attachment, req Request, workers int) []BatchItem {
	if workers < 1 {
		workers = 1
	}
	if workers > len(atts) {
		workers = len(atts)
	}

	items := make([]BatchItem, len(atts))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := p.Process(ctx, atts[i], req)
				items[i] = BatchItem{Attachment: atts[i].Filename, Result: res, Err: err}
			}
		}()
	}

	for i := range atts {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return items
}
