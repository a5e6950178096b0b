package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/famwallet/famwallet/internal/export"
	"github.com/famwallet/famwallet/internal/model"
	"github.com/famwallet/famwallet/internal/store"
)

// JSONParser reads the JSON export (the same shape as the stored blob).
type JSONParser struct{}

// Format returns the parser name.
func (p *JSONParser) Format() string { return "json" }

// Parse decodes and validates a JSON export.
func (p *JSONParser) Parse(r io.Reader) ([]model.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading JSON: %w", err)
	}
	return store.Unmarshal(data)
}

// CSVParser reads the CSV export.
type CSVParser struct{}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads a CSV export, header row first.
func (p *CSVParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = export.NumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}
	if header := strings.Join(records[0], ","); header != export.CSVHeader {
		return nil, fmt.Errorf("unexpected CSV header %q", header)
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := export.UnmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}
