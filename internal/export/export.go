// Package export writes the stored collection in downloadable formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/famwallet/famwallet/internal/model"
	"github.com/famwallet/famwallet/internal/store"
)

// Format selects the export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// JSONMediaType is the MIME type of a JSON export.
const JSONMediaType = "application/json"

// CSVHeader is the header row of a CSV export.
const CSVHeader = "id,date,type,amount,merchant,category,mode"

// NumFields is the number of columns in a CSV export row.
const NumFields = 7

const (
	colID       = 0
	colDate     = 1
	colType     = 2
	colAmount   = 3
	colMerchant = 4
	colCategory = 5
	colMode     = 6
)

// ParseFormat accepts json or csv.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (want json or csv)", s)
}

// FileName returns the default download name for f.
func FileName(f Format) string {
	return "transactions." + string(f)
}

// MediaType returns the MIME type for f.
func MediaType(f Format) string {
	if f == FormatCSV {
		return "text/csv"
	}
	return JSONMediaType
}

// Write encodes txns to w. JSON is indented by two spaces and ends with a
// newline; neither format carries the suspicious flag.
func Write(w io.Writer, txns []model.Transaction, f Format) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, txns)
	case FormatCSV:
		return WriteCSV(w, txns)
	}
	return fmt.Errorf("unknown export format %q", f)
}

// WriteJSON writes the pretty-printed JSON array.
func WriteJSON(w io.Writer, txns []model.Transaction) error {
	data, err := store.MarshalIndent(txns)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// WriteCSV writes a header row followed by one row per transaction.
func WriteCSV(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(CSVHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, t := range txns {
		if err := cw.Write(MarshalRow(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// MarshalRow converts a Transaction to a CSV row. The amount is written with
// every digit, the same as the JSON export.
func MarshalRow(t model.Transaction) []string {
	rec := store.ToRecord(t)
	row := make([]string, NumFields)
	row[colID] = rec.ID
	row[colDate] = rec.Date
	row[colType] = rec.Type
	row[colAmount] = rec.Amount.String()
	row[colMerchant] = rec.Merchant
	row[colCategory] = rec.Category
	row[colMode] = rec.Mode
	return row
}

// UnmarshalRow parses a CSV row with the same validation as the stored
// JSON.
func UnmarshalRow(row []string) (model.Transaction, error) {
	if len(row) != NumFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", NumFields, len(row))
	}
	return store.ParseRecord(store.Record{
		ID:       row[colID],
		Type:     row[colType],
		Amount:   json.Number(row[colAmount]),
		Merchant: row[colMerchant],
		Category: row[colCategory],
		Date:     row[colDate],
		Mode:     row[colMode],
	})
}
