package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebook/internal/models"
)

func TestCSVRoundTrip(t *testing.T) {
	trades := []models.TradeRecord{
		{
			ID:        "t1",
			TradeType: models.TypeOptions,
			Date:      "2024-01-05",
			Entry:     "100.5",
			ExitPrice: "garbled", // raw strings must survive untouched
			Qty:       "50",
			Position:  models.Short,
			Strategy:  "breakout",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, trades))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)
	assert.Equal(t, "garbled", got[0].ExitPrice)
	assert.Equal(t, models.Short, got[0].Position)
}

func TestReadCSVAssignsMissingIDs(t *testing.T) {
	csv := "id,trade_type,date,entry_date,exit_date,entry,exit_price,sl,target,qty,charges,position,strategy,reason,exit_reason,confidence,broker,timeframe,time_range,underlying,symbol,expiry,strike,option_type,remarks\n" +
		",OPTIONS,2024-01-05,,,100,110,,,1,,LONG,,,,,,,,,,,,,\n"

	got, err := ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].ID)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestChartImageNeverExported(t *testing.T) {
	trades := []models.TradeRecord{{ID: "t1", ChartImage: "base64blob"}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, trades))

	assert.NotContains(t, buf.String(), "base64blob")
	assert.NotContains(t, buf.String(), "chart_image")
}

func TestExportFile(t *testing.T) {
	dir := t.TempDir()

	path, err := ExportFile(dir, models.TypeSwing, []models.TradeRecord{{ID: "t1"}})
	require.NoError(t, err)
	assert.Contains(t, path, "SWING")

	got, err := ImportFile(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)
}
