// Package stats computes balance totals over the stored collection.
package stats

import (
	"github.com/shopspring/decimal"

	"github.com/famwallet/famwallet/internal/model"
)

// Totals are the global balance figures.
type Totals struct {
	Credit  decimal.Decimal
	Debit   decimal.Decimal
	Balance decimal.Decimal // Credit - Debit
}

// CategoryTotal sums one category's movements.
type CategoryTotal struct {
	Category model.Category
	Credit   decimal.Decimal
	Debit    decimal.Decimal
	Count    int
}

// Aggregate sums credits and debits. Callers pass the full stored
// collection, never a filtered view.
func Aggregate(txns []model.Transaction) Totals {
	credit := decimal.Zero
	debit := decimal.Zero
	for _, t := range txns {
		switch t.Type {
		case model.TypeCredit:
			credit = credit.Add(t.Amount)
		case model.TypeDebit:
			debit = debit.Add(t.Amount)
		}
	}
	return Totals{Credit: credit, Debit: debit, Balance: credit.Sub(debit)}
}

// ByCategory returns per-category sums in model.Categories order, omitting
// categories with no transactions.
func ByCategory(txns []model.Transaction) []CategoryTotal {
	byCat := make(map[model.Category]*CategoryTotal)
	for _, t := range txns {
		ct, ok := byCat[t.Category]
		if !ok {
			ct = &CategoryTotal{Category: t.Category, Credit: decimal.Zero, Debit: decimal.Zero}
			byCat[t.Category] = ct
		}
		ct.Count++
		switch t.Type {
		case model.TypeCredit:
			ct.Credit = ct.Credit.Add(t.Amount)
		case model.TypeDebit:
			ct.Debit = ct.Debit.Add(t.Amount)
		}
	}

	var out []CategoryTotal
	for _, c := range model.Categories {
		if ct, ok := byCat[c]; ok {
			out = append(out, *ct)
		}
	}
	return out
}
