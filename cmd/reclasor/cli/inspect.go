package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/fmadrigalcr/reclasor/internal/domain/layout"
	"github.com/fmadrigalcr/reclasor/internal/domain/sheet"
	"github.com/fmadrigalcr/reclasor/internal/domain/statement"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Show how a statement export would be interpreted",
	Long: `Inspect opens a statement file and reports, per known layout, whether the
header row was found, which columns were mapped, the data region bounds and
the extracted metadata. Useful when a bank changes its export format.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	grid, err := sheet.Open(content, filepath.Base(args[0]))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "rows: %d, columns: %d\n", grid.Rows(), grid.Cols())

	recognized := false
	for _, name := range layout.Names() {
		l, err := layout.Get(name)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\nlayout %s:\n", name)
		loc, err := layout.Locate(grid, l)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "  not recognized: %v\n", err)
			continue
		}
		recognized = true

		fmt.Fprintf(cmd.OutOrStdout(), "  header row: %d, data rows: %d..%d\n",
			loc.HeaderRow, loc.DataStart, loc.DataEnd)

		fields := make([]statement.Field, 0, len(loc.Headers))
		for f := range loc.Headers {
			fields = append(fields, f)
		}
		sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
		for _, f := range fields {
			col, _ := excelize.ColumnNumberToName(loc.Headers.Column(f))
			fmt.Fprintf(cmd.OutOrStdout(), "  column %-12s -> %s\n", f, col)
		}

		meta := sheet.ReadMetadata(grid, l.ProductCellRef, l.CurrencyCellRef)
		if meta.Product != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  product: %s\n", meta.Product)
		}
		if meta.AccountNumber != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  account: %s\n", meta.AccountNumber)
		}
		if meta.Currency != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  currency: %s\n", meta.Currency)
		}
	}

	if !recognized {
		return fmt.Errorf("%q does not match any known layout", args[0])
	}
	return nil
}
