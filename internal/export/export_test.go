package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famwallet/famwallet/internal/model"
	"github.com/famwallet/famwallet/internal/stats"
	"github.com/famwallet/famwallet/internal/store"
)

func sample() []model.Transaction {
	return []model.Transaction{
		{
			ID:       "a1",
			Type:     model.TypeCredit,
			Amount:   decimal.RequireFromString("5000"),
			Merchant: "ACME",
			Category: model.CategoryFood,
			Date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Mode:     model.ModeCash,
		},
		{
			ID:       "b2",
			Type:     model.TypeDebit,
			Amount:   decimal.RequireFromString("127.5"),
			Merchant: `Cafe "Central", Pune`,
			Category: model.CategoryTravel,
			Date:     time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			Mode:     model.ModeUPI,
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat(" csv ")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestFileNameAndMediaType(t *testing.T) {
	assert.Equal(t, "transactions.json", FileName(FormatJSON))
	assert.Equal(t, "transactions.csv", FileName(FormatCSV))
	assert.Equal(t, "application/json", MediaType(FormatJSON))
	assert.Equal(t, "text/csv", MediaType(FormatCSV))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample(), FormatJSON))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[\n  {\n"), "pretty-printed: %s", out)
	assert.True(t, strings.HasSuffix(out, "]\n"))
	assert.NotContains(t, out, "suspicious")

	got, err := store.Unmarshal(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b2", got[1].ID)
	assert.True(t, got[1].Amount.Equal(decimal.RequireFromString("127.5")))

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Len(t, raw[0], 7)
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample(), FormatCSV))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, strings.Split(CSVHeader, ","), records[0])
	assert.Equal(t, []string{"a1", "2024-01-01", "credit", "5000", "ACME", "food", "cash"}, records[1])
	assert.Equal(t, `Cafe "Central", Pune`, records[2][colMerchant])
	assert.Equal(t, "127.5", records[2][colAmount])
}

func TestMarshalRow_KeepsEveryDigit(t *testing.T) {
	for _, amount := range []string{"0.004", "10000.004", "12345678901234567890.123456"} {
		txn := sample()[0]
		txn.Amount = decimal.RequireFromString(amount)

		row := MarshalRow(txn)
		assert.Equal(t, amount, row[colAmount])

		got, err := UnmarshalRow(row)
		require.NoError(t, err)
		assert.True(t, txn.Amount.Equal(got.Amount), "amount %s", amount)
	}
}

func TestUnmarshalRow_Errors(t *testing.T) {
	valid := MarshalRow(sample()[0])

	tests := []struct {
		name  string
		col   int
		value string
	}{
		{"missing id", colID, ""},
		{"bad date", colDate, "01/01/2024"},
		{"unknown type", colType, "refund"},
		{"zero amount", colAmount, "0"},
		{"text amount", colAmount, "lots"},
		{"unknown category", colCategory, "crypto"},
		{"unknown mode", colMode, "cheque"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := append([]string(nil), valid...)
			row[tt.col] = tt.value
			_, err := UnmarshalRow(row)
			assert.Error(t, err)
		})
	}

	_, err := UnmarshalRow(valid[:3])
	assert.Error(t, err)
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, sample(), Format("xml")))
}

func TestChart(t *testing.T) {
	var buf bytes.Buffer
	err := Chart(&buf, stats.ByCategory(sample()))
	require.NoError(t, err)

	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic), "output should be a PNG")
}

func TestChart_NoSpending(t *testing.T) {
	var buf bytes.Buffer
	err := Chart(&buf, stats.ByCategory(sample()[:1]))
	assert.ErrorIs(t, err, ErrNoSpending)
	assert.Zero(t, buf.Len())
}
