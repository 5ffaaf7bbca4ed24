package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fmadrigalcr/reclasor/internal/domain/statement"
	"github.com/fmadrigalcr/reclasor/internal/domain/textnorm"
	"github.com/fmadrigalcr/reclasor/pkg/config"
)

// Sentinel markers selecting a record into a template. The marker is read
// from the code column, falling back to the review column.
const (
	MarkerPayable = "CP"
	MarkerBank    = "CB"
)

const templateSheetName = "Datos"

// businessActivityCode fills the Actividad Comercial column of every CP row.
const businessActivityCode = 523906

var cpHeaders = []string{
	"Proveedor",
	"Número",
	"Tipo Documento",
	"Fecha Documento",
	"Fecha Rige",
	"Aplicacion",
	"Monto",
	"Subtotal",
	"Descuento",
	"Impuesto1",
	"Impuesto2",
	"Rubro1",
	"Rubro2",
	"Condición De Pago",
	"Moneda",
	"Cuenta Bancaria",
	"Subtipo Documento",
	"Fecha Vence",
	"Codigo_impuesto",
	"Tipo Asiento",
	"Paquete",
	"Actividad Comercial",
}

var cbHeaders = []string{
	"Cuenta Bancaria",
	"tipo Documento",
	"Numero",
	"Subtipo Documento",
	"Fecha",
	"Fecha Contable",
	"Concepto",
	"Monto",
	"Confirmado/entregado",
	"tipo Asiento",
	"Paquete",
	"Cod_impuesto",
}

// TemplateInput is the shared context of the CP/CB renderers.
type TemplateInput struct {
	Records       []*statement.TransactionRecord
	Account       config.AccountConfig
	AccountNumber string
	Currency      string
}

// Templates renders the payable (CP) and bank movement (CB) exports for the
// records tagged with their sentinel. When no record carries either sentinel
// there is nothing to cut templates from and the input is reported as
// missing its tags.
func Templates(in TemplateInput, originalName string, now time.Time) ([]Artifact, error) {
	var cpRecords, cbRecords []*statement.TransactionRecord
	for _, rec := range in.Records {
		switch templateMarker(rec) {
		case MarkerPayable:
			cpRecords = append(cpRecords, rec)
		case MarkerBank:
			cbRecords = append(cbRecords, rec)
		}
	}

	if len(cpRecords) == 0 && len(cbRecords) == 0 {
		return nil, fmt.Errorf("%w: no record is tagged %s or %s",
			statement.ErrMissingRequiredTags, MarkerPayable, MarkerBank)
	}

	var artifacts []Artifact
	if len(cpRecords) > 0 {
		a, err := renderCP(cpRecords, in, originalName, now)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}
	if len(cbRecords) > 0 {
		a, err := renderCB(cbRecords, in, originalName, now)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, nil
}

// templateMarker reads the record's sentinel: the code column wins, the
// review column covers layouts without a code column.
func templateMarker(rec *statement.TransactionRecord) string {
	if m := strings.ToUpper(strings.TrimSpace(rec.Code)); m != "" {
		return m
	}
	return strings.ToUpper(strings.TrimSpace(rec.ReviewFlag))
}

func renderCP(records []*statement.TransactionRecord, in TemplateInput, originalName string, now time.Time) (Artifact, error) {
	f, dateStyle, amountStyle, err := newTemplateFile()
	if err != nil {
		return Artifact{}, fmt.Errorf("cp: %w", err)
	}
	defer f.Close()

	writeTemplateHeader(f, cpHeaders)

	for i, rec := range records {
		row := i + 2
		debit := 0.0
		if v, ok := amountValue(rec.Debit).(float64); ok {
			debit = v
		}

		values := make([]any, len(cpHeaders))
		for c := range values {
			values[c] = ""
		}
		values[0] = findProvider(rec.Description, in.Account.Providers)
		values[1] = rec.Reference
		values[2] = "TEF"
		values[5] = rec.Description
		values[6] = debit
		values[7] = debit
		for _, c := range []int{8, 9, 10, 11, 12, 13, 16} {
			values[c] = 0
		}
		values[14] = in.Currency
		values[15] = in.AccountNumber
		values[19] = MarkerPayable
		values[20] = MarkerPayable
		values[21] = businessActivityCode
		if rec.HasDate() {
			values[3], values[4], values[17] = rec.Date, rec.Date, rec.Date
		}

		writeTemplateRow(f, row, values)
		styleTemplateCells(f, row, []int{4, 5, 18}, dateStyle)
		styleTemplateCells(f, row, []int{7, 8}, amountStyle)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return Artifact{}, fmt.Errorf("cp: writing workbook: %w", err)
	}
	return Artifact{
		Filename: AccountFilename(originalName, in.AccountNumber, MarkerPayable, now),
		MIME:     MIMEXLSX,
		Content:  buf.Bytes(),
	}, nil
}

func renderCB(records []*statement.TransactionRecord, in TemplateInput, originalName string, now time.Time) (Artifact, error) {
	f, dateStyle, amountStyle, err := newTemplateFile()
	if err != nil {
		return Artifact{}, fmt.Errorf("cb: %w", err)
	}
	defer f.Close()

	writeTemplateHeader(f, cbHeaders)

	for i, rec := range records {
		row := i + 2

		values := make([]any, len(cbHeaders))
		for c := range values {
			values[c] = ""
		}
		values[0] = in.AccountNumber
		values[1] = rec.Code
		values[2] = rec.Reference
		values[3] = findSubtype(rec.Code, rec.Description, in.Account.Subtypes)
		values[6] = rec.Description
		values[7] = positiveAmount(rec)
		values[9] = MarkerBank
		values[10] = MarkerBank
		values[11] = "ND"
		if rec.HasDate() {
			values[4], values[5] = rec.Date, rec.Date
		}

		writeTemplateRow(f, row, values)
		styleTemplateCells(f, row, []int{5, 6}, dateStyle)
		styleTemplateCells(f, row, []int{8}, amountStyle)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return Artifact{}, fmt.Errorf("cb: writing workbook: %w", err)
	}
	return Artifact{
		Filename: AccountFilename(originalName, in.AccountNumber, MarkerBank, now),
		MIME:     MIMEXLSX,
		Content:  buf.Bytes(),
	}, nil
}

func newTemplateFile() (*excelize.File, int, int, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", templateSheetName); err != nil {
		f.Close()
		return nil, 0, 0, err
	}
	dateFmt := dateFormat
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		f.Close()
		return nil, 0, 0, err
	}
	amountFmt := amountFormat
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &amountFmt})
	if err != nil {
		f.Close()
		return nil, 0, 0, err
	}
	return f, dateStyle, amountStyle, nil
}

func writeTemplateHeader(f *excelize.File, headers []string) {
	for c, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		f.SetCellValue(templateSheetName, cell, h)
		name, _ := excelize.ColumnNumberToName(c + 1)
		f.SetColWidth(templateSheetName, name, name, columnWidth(len(h)))
	}
}

func writeTemplateRow(f *excelize.File, row int, values []any) {
	for c, v := range values {
		cell, _ := excelize.CoordinatesToCellName(c+1, row)
		f.SetCellValue(templateSheetName, cell, v)
	}
}

func styleTemplateCells(f *excelize.File, row int, cols []int, style int) {
	for _, c := range cols {
		cell, _ := excelize.CoordinatesToCellName(c, row)
		f.SetCellStyle(templateSheetName, cell, cell, style)
	}
}

// findProvider resolves the provider code through the account's ordered
// substring table. First configured match wins; unknown descriptions leave
// the column empty for manual completion.
func findProvider(description string, providers []config.ProviderRule) string {
	desc := textnorm.Fold(description)
	if desc == "" {
		return ""
	}
	for _, p := range providers {
		match := textnorm.Fold(p.Match)
		if match == "" || p.Provider == "" {
			continue
		}
		if strings.Contains(desc, match) {
			return p.Provider
		}
	}
	return ""
}

// findSubtype resolves the document subtype by document type plus a
// description substring, in configured order.
func findSubtype(documentType, description string, subtypes []config.SubtypeRule) string {
	docType := strings.ToUpper(strings.TrimSpace(documentType))
	desc := textnorm.Fold(description)
	if docType == "" || desc == "" {
		return ""
	}
	for _, s := range subtypes {
		ruleType := strings.ToUpper(strings.TrimSpace(s.DocumentType))
		match := textnorm.Fold(s.SearchText)
		if ruleType == "" || match == "" || s.Subtype == "" {
			continue
		}
		if ruleType == docType && strings.Contains(desc, match) {
			return s.Subtype
		}
	}
	return ""
}
