// Package render formats ledger views for a terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/famwallet/famwallet/internal/activitylog"
	"github.com/famwallet/famwallet/internal/classify"
	"github.com/famwallet/famwallet/internal/id"
	"github.com/famwallet/famwallet/internal/ledger"
	"github.com/famwallet/famwallet/internal/model"
	"github.com/famwallet/famwallet/internal/stats"
)

const (
	// EmptyLedger is shown when nothing is stored.
	EmptyLedger = "No transactions yet. Add one with `famwallet add`."
	// NoMatches is shown when the filters hide every stored transaction.
	NoMatches = "No transactions match the current filters."
	// NoActivity is shown when the activity log is missing or empty.
	NoActivity = "No activity recorded yet."

	statusOK         = "OK"
	statusSuspicious = "Suspicious"
)

// Renderer writes money amounts with a currency symbol and locale grouping.
type Renderer struct {
	currency   string
	decimalSep string
	printer    *message.Printer
}

// New creates a Renderer. An unparsable locale falls back to English.
func New(currency, locale string) *Renderer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	return &Renderer{currency: currency, decimalSep: decimalSeparator(p), printer: p}
}

// decimalSeparator asks the locale how it writes one and a half.
func decimalSeparator(p *message.Printer) string {
	s := p.Sprint(number.Decimal(1.5, number.MinFractionDigits(1)))
	if len(s) > 2 && strings.HasPrefix(s, "1") && strings.HasSuffix(s, "5") {
		return s[1 : len(s)-1]
	}
	return "."
}

// Money formats d like "₹12,34,567.5" (en-IN) with at most two decimals.
// Negative amounts put the sign before the currency symbol. The integer
// part is grouped exactly while it fits in an int64; larger amounts are
// written without grouping.
func (r *Renderer) Money(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	d = d.Round(2)
	if d.IsZero() {
		sign = ""
	}

	whole := d.Truncate(0)
	var intPart string
	if whole.LessThanOrEqual(maxInt64) {
		intPart = r.printer.Sprint(number.Decimal(whole.IntPart()))
	} else {
		intPart = whole.String()
	}

	frac := strings.TrimRight(strings.TrimPrefix(d.Sub(whole).StringFixed(2), "0."), "0")
	if frac == "" {
		return sign + r.currency + intPart
	}
	return sign + r.currency + intPart + r.decimalSep + frac
}

var maxInt64 = decimal.NewFromInt(math.MaxInt64)

// Status is the table label for a classified row.
func Status(c model.Classified) string {
	if c.Suspicious {
		return statusSuspicious
	}
	return statusOK
}

// Summary writes the global balance figures.
func (r *Renderer) Summary(w io.Writer, t stats.Totals) error {
	_, err := fmt.Fprintf(w, "Balance: %s   Credit: %s   Debit: %s\n",
		r.Money(t.Balance), r.Money(t.Credit), r.Money(t.Debit))
	return err
}

// View writes the summary followed by the table or an empty-state message.
func (r *Renderer) View(w io.Writer, v ledger.View) error {
	if err := r.Summary(w, v.Totals); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	switch {
	case v.Count == 0:
		_, err := fmt.Fprintln(w, EmptyLedger)
		return err
	case len(v.Rows) == 0:
		_, err := fmt.Fprintln(w, NoMatches)
		return err
	}

	r.Table(w, v.Rows)
	_, err := fmt.Fprintf(w, "%d of %d transactions\n", len(v.Rows), v.Count)
	return err
}

// Table writes one row per transaction.
func (r *Renderer) Table(w io.Writer, rows []model.Classified) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Date", "Merchant", "Category", "Mode", "Type", "Amount", "Status"})
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
	})

	for _, c := range rows {
		table.Append([]string{
			id.Short(c.ID),
			c.Date.Format(model.DateFormat),
			c.Merchant,
			string(c.Category),
			strings.ToUpper(string(c.Mode)),
			strings.ToUpper(string(c.Type)),
			r.Money(c.Amount),
			Status(c),
		})
	}

	table.Render()
}

// Categories writes a per-category breakdown.
func (r *Renderer) Categories(w io.Writer, totals []stats.CategoryTotal) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Category", "Count", "Credit", "Debit"})
	table.SetAutoWrapText(false)

	for _, ct := range totals {
		table.Append([]string{
			string(ct.Category),
			fmt.Sprint(ct.Count),
			r.Money(ct.Credit),
			r.Money(ct.Debit),
		})
	}

	table.Render()
}

// Activity writes activity log entries oldest first.
func Activity(w io.Writer, entries []activitylog.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, NoActivity)
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Time", "Action", "Transaction", "Details"})
	table.SetAutoWrapText(false)

	for _, e := range entries {
		txn := ""
		if e.TxnID != "" {
			txn = id.Short(e.TxnID)
		}
		table.Append([]string{
			e.Timestamp.Local().Format(time.DateTime),
			string(e.Action),
			txn,
			e.Details,
		})
	}

	table.Render()
	return nil
}

// Detail writes one transaction with the rules that flagged it.
func (r *Renderer) Detail(w io.Writer, c model.Classified, reasons []classify.Reason) error {
	status := Status(c)
	if len(reasons) > 0 {
		names := make([]string, len(reasons))
		for i, rs := range reasons {
			names[i] = string(rs)
		}
		status += " (" + strings.Join(names, ", ") + ")"
	}

	_, err := fmt.Fprintf(w,
		"ID:       %s\nDate:     %s\nType:     %s\nAmount:   %s\nMerchant: %s\nCategory: %s\nMode:     %s\nStatus:   %s\n",
		c.ID, c.Date.Format(model.DateFormat), c.Type, r.Money(c.Amount), c.Merchant, c.Category, c.Mode, status)
	return err
}

type jsonRow struct {
	ID         string          `json:"id"`
	Type       model.TxnType   `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Merchant   string          `json:"merchant"`
	Category   model.Category  `json:"category"`
	Date       string          `json:"date"`
	Mode       model.Mode      `json:"mode"`
	Suspicious bool            `json:"suspicious"`
}

// JSON writes the view rows, including the derived suspicious flag, as an
// indented JSON array.
func JSON(w io.Writer, rows []model.Classified) error {
	out := make([]jsonRow, len(rows))
	for i, c := range rows {
		out[i] = jsonRow{
			ID:         c.ID,
			Type:       c.Type,
			Amount:     c.Amount,
			Merchant:   c.Merchant,
			Category:   c.Category,
			Date:       c.Date.Format(model.DateFormat),
			Mode:       c.Mode,
			Suspicious: c.Suspicious,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
