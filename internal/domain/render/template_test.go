package render

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/fmadrigalcr/reclasor/internal/domain/parse"
	"github.com/fmadrigalcr/reclasor/internal/domain/statement"
	"github.com/fmadrigalcr/reclasor/pkg/config"
)

func taggedRecord(code, description, reference, debit, credit string) *statement.TransactionRecord {
	return &statement.TransactionRecord{
		Date:        time.Date(2026, time.March, 18, 0, 0, 0, 0, time.UTC),
		Code:        code,
		Description: description,
		Reference:   reference,
		Debit:       parse.Decimal(debit),
		Credit:      parse.Decimal(credit),
	}
}

func readRows(t *testing.T, content []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return rows
}

func testAccount() config.AccountConfig {
	return config.AccountConfig{
		Codes: []string{"CR0101234"},
		Providers: []config.ProviderRule{
			{Match: "ELECTRICIDAD", Provider: "P-100"},
			{Match: "AGUA", Provider: "P-200"},
		},
		Subtypes: []config.SubtypeRule{
			{DocumentType: "CB", SearchText: "comision", Subtype: "S-9"},
		},
	}
}

func TestTemplates(t *testing.T) {
	in := TemplateInput{
		Account:       testAccount(),
		AccountNumber: "CR0101234",
		Currency:      "CRC",
	}

	t.Run("cp rows", func(t *testing.T) {
		in := in
		in.Records = []*statement.TransactionRecord{
			taggedRecord("CP", "Pago electricidad marzo", "DOC-1", "1500", ""),
			taggedRecord("CP", "Pago desconocido", "DOC-2", "200", ""),
			taggedRecord("DEP", "No tiene marcador", "DOC-3", "", "900"),
		}

		artifacts, err := Templates(in, "estado.xlsx", fixedNow)
		require.NoError(t, err)
		require.Len(t, artifacts, 1)
		assert.Contains(t, artifacts[0].Filename, "_CP_")
		assert.Equal(t, MIMEXLSX, artifacts[0].MIME)

		rows := readRows(t, artifacts[0].Content, "Datos")
		require.Len(t, rows, 3)
		assert.Equal(t, cpHeaders, rows[0][:len(cpHeaders)])

		first := rows[1]
		assert.Equal(t, "P-100", first[0])
		assert.Equal(t, "DOC-1", first[1])
		assert.Equal(t, "TEF", first[2])
		assert.NotEmpty(t, first[3])
		assert.Equal(t, "1500", first[6])
		assert.Equal(t, "1500", first[7])
		assert.Equal(t, "CRC", first[14])
		assert.Equal(t, "CR0101234", first[15])
		assert.Equal(t, "CP", first[19])
		assert.Equal(t, "CP", first[20])
		assert.Equal(t, "523906", first[21])

		// Unknown provider leaves the column blank for manual completion.
		assert.Empty(t, rows[2][0])
	})

	t.Run("cb rows", func(t *testing.T) {
		in := in
		in.Records = []*statement.TransactionRecord{
			taggedRecord("CB", "Comisión manejo cuenta", "DOC-7", "35", ""),
			taggedRecord("CB", "Nota de crédito", "DOC-8", "", "410"),
		}

		artifacts, err := Templates(in, "estado.xlsx", fixedNow)
		require.NoError(t, err)
		require.Len(t, artifacts, 1)
		assert.Contains(t, artifacts[0].Filename, "_CB_")

		rows := readRows(t, artifacts[0].Content, "Datos")
		require.Len(t, rows, 3)
		assert.Equal(t, cbHeaders, rows[0][:len(cbHeaders)])

		first := rows[1]
		assert.Equal(t, "CR0101234", first[0])
		assert.Equal(t, "CB", first[1])
		assert.Equal(t, "DOC-7", first[2])
		assert.Equal(t, "S-9", first[3])
		assert.Equal(t, "35", first[7])
		assert.Equal(t, "CB", first[9])
		assert.Equal(t, "CB", first[10])
		assert.Equal(t, "ND", first[11])

		// The credit side fills the amount when there is no debit.
		assert.Equal(t, "410", rows[2][7])
		assert.Empty(t, rows[2][3])
	})

	t.Run("review column marker selects rows too", func(t *testing.T) {
		in := in
		rec := taggedRecord("", "Pago agua", "DOC-4", "80", "")
		rec.ReviewFlag = "cp"
		in.Records = []*statement.TransactionRecord{rec}

		artifacts, err := Templates(in, "estado.xlsx", fixedNow)
		require.NoError(t, err)
		require.Len(t, artifacts, 1)
		rows := readRows(t, artifacts[0].Content, "Datos")
		require.Len(t, rows, 2)
		assert.Equal(t, "P-200", rows[1][0])
	})

	t.Run("no sentinel anywhere is missing tags", func(t *testing.T) {
		in := in
		in.Records = []*statement.TransactionRecord{
			taggedRecord("DEP", "Depósito", "DOC-5", "", "900"),
			taggedRecord("T/D", "Transferencia", "DOC-6", "100", ""),
		}

		_, err := Templates(in, "estado.xlsx", fixedNow)
		assert.True(t, errors.Is(err, statement.ErrMissingRequiredTags))
	})
}
