package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/famwallet/famwallet/internal/model"
)

// ErrMalformed marks a stored blob that cannot be decoded into a valid
// transaction collection.
var ErrMalformed = errors.New("malformed transaction data")

// Record is the wire shape of one stored or exported transaction. Suspicious
// is derived and has no field here.
type Record struct {
	ID       string      `json:"id"`
	Type     string      `json:"type"`
	Amount   json.Number `json:"amount"`
	Merchant string      `json:"merchant"`
	Category string      `json:"category"`
	Date     string      `json:"date"`
	Mode     string      `json:"mode"`
}

// Marshal encodes txns as a compact JSON array.
func Marshal(txns []model.Transaction) ([]byte, error) {
	data, err := json.Marshal(toRecords(txns))
	if err != nil {
		return nil, fmt.Errorf("encoding transactions: %w", err)
	}
	return data, nil
}

// MarshalIndent encodes txns as a JSON array indented by two spaces.
func MarshalIndent(txns []model.Transaction) ([]byte, error) {
	data, err := json.MarshalIndent(toRecords(txns), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding transactions: %w", err)
	}
	return data, nil
}

// Unmarshal decodes and validates a stored blob. An empty blob or JSON null
// is an empty collection. Any other defect is reported as ErrMalformed.
func Unmarshal(data []byte) ([]model.Transaction, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	txns := make([]model.Transaction, 0, len(recs))
	seen := make(map[string]bool, len(recs))
	for i, rec := range recs {
		txn, err := ParseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrMalformed, i, err)
		}
		if seen[txn.ID] {
			return nil, fmt.Errorf("%w: element %d: duplicate id %q", ErrMalformed, i, txn.ID)
		}
		seen[txn.ID] = true
		txns = append(txns, txn)
	}
	return txns, nil
}

func toRecords(txns []model.Transaction) []Record {
	recs := make([]Record, len(txns))
	for i, t := range txns {
		recs[i] = ToRecord(t)
	}
	return recs
}

// ToRecord converts t to its wire shape. The amount keeps every digit.
func ToRecord(t model.Transaction) Record {
	return Record{
		ID:       t.ID,
		Type:     string(t.Type),
		Amount:   json.Number(t.Amount.String()),
		Merchant: t.Merchant,
		Category: string(t.Category),
		Date:     t.Date.Format(model.DateFormat),
		Mode:     string(t.Mode),
	}
}

// ParseRecord validates one wire record: non-empty id, known enums, a
// positive amount and a YYYY-MM-DD date.
func ParseRecord(rec Record) (model.Transaction, error) {
	if rec.ID == "" {
		return model.Transaction{}, errors.New("missing id")
	}

	typ, err := model.ParseTxnType(rec.Type)
	if err != nil {
		return model.Transaction{}, err
	}

	amount, err := decimal.NewFromString(rec.Amount.String())
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", rec.Amount, err)
	}
	if !amount.IsPositive() {
		return model.Transaction{}, fmt.Errorf("amount %s is not positive", amount)
	}

	category, err := model.ParseCategory(rec.Category)
	if err != nil {
		return model.Transaction{}, err
	}

	date, err := model.ParseDate(rec.Date)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", rec.Date, err)
	}

	mode, err := model.ParseMode(rec.Mode)
	if err != nil {
		return model.Transaction{}, err
	}

	return model.Transaction{
		ID:       rec.ID,
		Type:     typ,
		Amount:   amount,
		Merchant: rec.Merchant,
		Category: category,
		Date:     date,
		Mode:     mode,
	}, nil
}
