package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/fmadrigalcr/reclasor/internal/domain/datefilter"
	"github.com/fmadrigalcr/reclasor/internal/domain/pipeline"
	"github.com/fmadrigalcr/reclasor/pkg/config"
	"github.com/fmadrigalcr/reclasor/pkg/notify"
)

var (
	caseName  string
	templates bool
	fromDate  string
	toDate    string
	rangeText string
	outDir    string
	replyTo   []string
)

var processCmd = &cobra.Command{
	Use:   "process [files...]",
	Short: "Process statement exports into output workbooks",
	Long: `Process runs each input file through the reclassification pipeline and
writes the resulting workbooks next to it (or into --out). Files are
independent; a failure in one does not stop the others.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVar(&caseName, "case", "detalle", "configured case to process under")
	processCmd.Flags().BoolVar(&templates, "templates", false, "render the CP/CB templates instead of the detail and summary sheets")
	processCmd.Flags().StringVar(&fromDate, "from", "", "start of the date filter (dd/mm/yyyy)")
	processCmd.Flags().StringVar(&toDate, "to", "", "end of the date filter (dd/mm/yyyy)")
	processCmd.Flags().StringVar(&rangeText, "range", "", `free-form date range, e.g. "01/01/2026 - 31/01/2026"`)
	processCmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for the output workbooks (default: alongside each input)")
	processCmd.Flags().StringSliceVar(&replyTo, "email-to", nil, "email the artifacts to these addresses via Resend")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	dateRange, err := buildRange()
	if err != nil {
		return err
	}

	snapshot, err := config.LoadRules(cfg.Rules.Path)
	if err != nil {
		return err
	}

	attachments := make([]pipeline.Attachment, 0, len(args))
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %q: %w", path, err)
		}
		attachments = append(attachments, pipeline.Attachment{
			Filename: filepath.Base(path),
			Content:  content,
		})
	}

	req := pipeline.Request{Case: caseName, Range: dateRange}
	if templates {
		req.Mode = pipeline.ModeTemplates
	}

	processor := pipeline.New(snapshot, logger)
	items := processor.ProcessBatch(cmd.Context(), attachments, req, cfg.Workers.PoolSize)

	failed := 0
	for i, item := range items {
		if item.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", item.Attachment, item.Err)
			continue
		}
		for _, w := range item.Result.Warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: warning: %s\n", item.Attachment, w)
		}
		dir := outDir
		if dir == "" {
			dir = filepath.Dir(args[i])
		}
		for _, a := range item.Result.Artifacts {
			target := filepath.Join(dir, a.Filename)
			if err := os.WriteFile(target, a.Content, 0o644); err != nil {
				return fmt.Errorf("writing %q: %w", target, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), target)
		}
	}

	if len(replyTo) > 0 {
		if err := emailResults(cmd, items); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(items))
	}
	return nil
}

func buildRange() (*datefilter.Range, error) {
	if rangeText != "" {
		return datefilter.ParseRange(rangeText)
	}
	if fromDate == "" && toDate == "" {
		return nil, nil
	}
	if fromDate == "" || toDate == "" {
		return nil, fmt.Errorf("--from and --to must be given together")
	}
	return datefilter.ParseRange(fromDate + " - " + toDate)
}

func emailResults(cmd *cobra.Command, items []pipeline.BatchItem) error {
	sender := notify.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.From, logger)

	for _, item := range items {
		if item.Err != nil || len(item.Result.Artifacts) == 0 {
			continue
		}
		msg := notify.Message{
			To:      replyTo,
			Subject: fmt.Sprintf("Estado de cuenta procesado: %s", item.Attachment),
			Body: fmt.Sprintf("Adjunto encontrará los archivos generados a partir de %s el %s.",
				item.Attachment, time.Now().Format("02/01/2006")),
			Attachments: item.Result.Artifacts,
		}
		if err := sender.Send(cmd.Context(), msg); err != nil {
			return err
		}
	}
	return nil
}
