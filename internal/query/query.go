// Package query narrows and orders classified transactions for display.
package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/famwallet/famwallet/internal/model"
)

// TypeFilter restricts rows by direction or by the suspicious flag.
type TypeFilter string

const (
	FilterAll        TypeFilter = "all"
	FilterCredit     TypeFilter = "credit"
	FilterDebit      TypeFilter = "debit"
	FilterSuspicious TypeFilter = "suspicious"
)

// SortOrder orders the displayed rows.
type SortOrder string

const (
	SortNone       SortOrder = "none"
	SortLatest     SortOrder = "latest"
	SortAmountHigh SortOrder = "amountHigh"
	SortAmountLow  SortOrder = "amountLow"
)

// Options is the view state applied to the table.
type Options struct {
	Search string
	Type   TypeFilter
	Sort   SortOrder
}

// ParseTypeFilter accepts all, credit, debit or suspicious. Empty means all.
func ParseTypeFilter(s string) (TypeFilter, error) {
	switch f := TypeFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterCredit, FilterDebit, FilterSuspicious:
		return f, nil
	}
	return "", fmt.Errorf("unknown type filter %q (want all, credit, debit or suspicious)", s)
}

// ParseSortOrder accepts none, latest, amountHigh or amountLow, ignoring
// case, dashes and underscores. Empty means none.
func ParseSortOrder(s string) (SortOrder, error) {
	key := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case "", "none":
		return SortNone, nil
	case "latest":
		return SortLatest, nil
	case "amounthigh":
		return SortAmountHigh, nil
	case "amountlow":
		return SortAmountLow, nil
	}
	return "", fmt.Errorf("unknown sort order %q (want none, latest, amountHigh or amountLow)", s)
}

// Apply filters rows by search text, then by type, then sorts them. rows
// must already be classified over the full collection. The input slice is
// not modified.
func Apply(rows []model.Classified, opts Options) []model.Classified {
	out := Search(rows, opts.Search)
	out = FilterType(out, opts.Type)
	return Sort(out, opts.Sort)
}

// Search keeps rows whose merchant, category or mode contains text,
// case-insensitively. Blank text keeps everything.
func Search(rows []model.Classified, text string) []model.Classified {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return slices.Clone(rows)
	}

	var out []model.Classified
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Merchant), needle) ||
			strings.Contains(strings.ToLower(string(r.Category)), needle) ||
			strings.Contains(strings.ToLower(string(r.Mode)), needle) {
			out = append(out, r)
		}
	}
	return out
}

// FilterType keeps rows matching f. FilterAll and the zero value keep everything.
func FilterType(rows []model.Classified, f TypeFilter) []model.Classified {
	var keep func(model.Classified) bool
	switch f {
	case FilterCredit:
		keep = func(r model.Classified) bool { return r.Type == model.TypeCredit }
	case FilterDebit:
		keep = func(r model.Classified) bool { return r.Type == model.TypeDebit }
	case FilterSuspicious:
		keep = func(r model.Classified) bool { return r.Suspicious }
	default:
		return slices.Clone(rows)
	}

	var out []model.Classified
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// Sort returns rows in the given order. Equal keys keep their relative order.
func Sort(rows []model.Classified, order SortOrder) []model.Classified {
	out := slices.Clone(rows)
	switch order {
	case SortLatest:
		slices.SortStableFunc(out, func(a, b model.Classified) int {
			return b.Date.Compare(a.Date)
		})
	case SortAmountHigh:
		slices.SortStableFunc(out, func(a, b model.Classified) int {
			return b.Amount.Cmp(a.Amount)
		})
	case SortAmountLow:
		slices.SortStableFunc(out, func(a, b model.Classified) int {
			return a.Amount.Cmp(b.Amount)
		})
	}
	return out
}
