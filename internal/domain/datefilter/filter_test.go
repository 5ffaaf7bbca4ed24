package datefilter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmadrigalcr/reclasor/internal/domain/statement"
)

func dated(day int) *statement.TransactionRecord {
	return &statement.TransactionRecord{
		Date: time.Date(2026, time.March, day, 10, 30, 0, 0, time.UTC),
	}
}

func TestParseRange(t *testing.T) {
	t.Run("dash separated", func(t *testing.T) {
		r, err := ParseRange("01/03/2026 - 31/03/2026")
		require.NoError(t, err)
		assert.Equal(t, time.March, r.From.Month())
		assert.Equal(t, 31, r.To.Day())
	})

	t.Run("spanish separator", func(t *testing.T) {
		r, err := ParseRange("01/03/2026 al 15/03/2026")
		require.NoError(t, err)
		assert.Equal(t, 15, r.To.Day())
	})

	t.Run("empty string means no filter", func(t *testing.T) {
		r, err := ParseRange("   ")
		require.NoError(t, err)
		assert.Nil(t, r)
	})

	t.Run("garbage is an error", func(t *testing.T) {
		_, err := ParseRange("sin rango")
		assert.Error(t, err)
	})
}

func TestNewRangeSwapsEndpoints(t *testing.T) {
	r := NewRange(
		time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	)
	assert.Equal(t, 1, r.From.Day())
	assert.Equal(t, 31, r.To.Day())
	assert.True(t, r.Contains(time.Date(2026, time.March, 15, 23, 0, 0, 0, time.UTC)))
}

func TestFilter(t *testing.T) {
	t.Run("nil range keeps everything", func(t *testing.T) {
		records := []*statement.TransactionRecord{dated(1), dated(2)}
		kept, excluded := Filter(records, nil, false)
		assert.Equal(t, records, kept)
		assert.Zero(t, excluded)
	})

	t.Run("inclusive at both ends", func(t *testing.T) {
		r := NewRange(
			time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		)
		kept, excluded := Filter([]*statement.TransactionRecord{
			dated(4), dated(5), dated(7), dated(10), dated(11),
		}, r, false)
		require.Len(t, kept, 3)
		assert.Equal(t, 2, excluded)
	})

	t.Run("everything excluded", func(t *testing.T) {
		r := NewRange(
			time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2027, time.January, 31, 0, 0, 0, 0, time.UTC),
		)
		kept, excluded := Filter([]*statement.TransactionRecord{dated(1), dated(2)}, r, false)
		assert.Empty(t, kept)
		assert.Equal(t, 2, excluded)
	})

	t.Run("unparsable dates kept by default", func(t *testing.T) {
		r := NewRange(
			time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC),
		)
		noDate := &statement.TransactionRecord{Description: "sin fecha"}
		kept, excluded := Filter([]*statement.TransactionRecord{noDate, dated(2)}, r, false)
		require.Len(t, kept, 2)
		assert.Zero(t, excluded)
	})

	t.Run("unparsable dates dropped when the layout says so", func(t *testing.T) {
		r := NewRange(
			time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC),
		)
		noDate := &statement.TransactionRecord{Description: "sin fecha"}
		kept, excluded := Filter([]*statement.TransactionRecord{noDate, dated(2)}, r, true)
		require.Len(t, kept, 1)
		assert.Equal(t, 1, excluded)
	})
}
