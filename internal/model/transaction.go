package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the calendar date layout used for storage, export and input.
const DateFormat = "2006-01-02"

// Transaction is one recorded money movement. It is never updated in place.
type Transaction struct {
	ID       string
	Type     TxnType
	Amount   decimal.Decimal // always > 0
	Merchant string
	Category Category
	Date     time.Time // calendar date, UTC midnight
	Mode     Mode
}

// Classified is a Transaction annotated with the derived suspicious flag.
// The flag is never persisted.
type Classified struct {
	Transaction
	Suspicious bool
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// Today returns the calendar date of now in its own location, as UTC midnight.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
