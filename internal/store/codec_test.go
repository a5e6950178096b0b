package store

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famwallet/famwallet/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func sampleTxns() []model.Transaction {
	return []model.Transaction{
		{
			ID:       "a1",
			Type:     model.TypeCredit,
			Amount:   dec("5000"),
			Merchant: "ACME",
			Category: model.CategoryFood,
			Date:     date(2024, 1, 1),
			Mode:     model.ModeCash,
		},
		{
			ID:       "b2",
			Type:     model.TypeDebit,
			Amount:   dec("127.50"),
			Merchant: `Cafe "Central", Pune`,
			Category: model.CategoryTravel,
			Date:     date(2024, 2, 29),
			Mode:     model.ModeUPI,
		},
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	txns := sampleTxns()

	data, err := Marshal(txns)
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	require.Len(t, got, len(txns))

	for i := range txns {
		assert.Equal(t, txns[i].ID, got[i].ID)
		assert.Equal(t, txns[i].Type, got[i].Type)
		assert.True(t, txns[i].Amount.Equal(got[i].Amount), "amount mismatch row %d", i)
		assert.Equal(t, txns[i].Merchant, got[i].Merchant)
		assert.Equal(t, txns[i].Category, got[i].Category)
		assert.True(t, txns[i].Date.Equal(got[i].Date))
		assert.Equal(t, txns[i].Mode, got[i].Mode)
	}
}

func TestMarshal_WireShape(t *testing.T) {
	data, err := Marshal(sampleTxns()[:1])
	require.NoError(t, err)

	assert.Equal(t,
		`[{"id":"a1","type":"credit","amount":5000,"merchant":"ACME","category":"food","date":"2024-01-01","mode":"cash"}]`,
		string(data))
	assert.NotContains(t, string(data), "suspicious")
}

func TestMarshal_Empty(t *testing.T) {
	data, err := Marshal(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestMarshalIndent(t *testing.T) {
	data, err := MarshalIndent(sampleTxns()[:1])
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "[\n  {\n    \"id\": \"a1\","))

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.NotContains(t, raw[0], "suspicious")
}

func TestUnmarshal_EmptyInputs(t *testing.T) {
	for _, input := range []string{"", "   \n", "null", "[]"} {
		got, err := Unmarshal([]byte(input))
		require.NoError(t, err, "input: %q", input)
		assert.Empty(t, got, "input: %q", input)
	}
}

func TestUnmarshal_IgnoresStoredSuspiciousField(t *testing.T) {
	input := `[{"id":"x","type":"debit","amount":12,"merchant":"m","category":"home","date":"2024-05-05","mode":"card","suspicious":true}]`
	got, err := Unmarshal([]byte(input))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].ID)
}

func TestUnmarshal_Malformed(t *testing.T) {
	valid := `{"id":"x","type":"debit","amount":12,"merchant":"m","category":"home","date":"2024-05-05","mode":"card"}`

	tests := []struct {
		name  string
		input string
	}{
		{"not json", `{{{`},
		{"object not array", valid},
		{"missing id", `[{"type":"debit","amount":12,"merchant":"m","category":"home","date":"2024-05-05","mode":"card"}]`},
		{"duplicate id", "[" + valid + "," + valid + "]"},
		{"zero amount", `[{"id":"x","type":"debit","amount":0,"merchant":"m","category":"home","date":"2024-05-05","mode":"card"}]`},
		{"negative amount", `[{"id":"x","type":"debit","amount":-3,"merchant":"m","category":"home","date":"2024-05-05","mode":"card"}]`},
		{"missing amount", `[{"id":"x","type":"debit","merchant":"m","category":"home","date":"2024-05-05","mode":"card"}]`},
		{"bad type", `[{"id":"x","type":"refund","amount":12,"merchant":"m","category":"home","date":"2024-05-05","mode":"card"}]`},
		{"bad category", `[{"id":"x","type":"debit","amount":12,"merchant":"m","category":"crypto","date":"2024-05-05","mode":"card"}]`},
		{"bad mode", `[{"id":"x","type":"debit","amount":12,"merchant":"m","category":"home","date":"2024-05-05","mode":"barter"}]`},
		{"bad date", `[{"id":"x","type":"debit","amount":12,"merchant":"m","category":"home","date":"05/05/2024","mode":"card"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}
