// Package classify derives the suspicious flag for transactions.
//
// The flag is a property of the whole collection, not of a single
// transaction: the merchant rule counts occurrences across every input, so
// Classify must see the complete unfiltered set.
package classify

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/famwallet/famwallet/internal/model"
)

const (
	// AmountThreshold flags any transaction strictly above it.
	AmountThreshold = 10000
	// RepeatThreshold flags every transaction whose merchant occurs at least
	// this many times.
	RepeatThreshold = 3
)

var amountLimit = decimal.NewFromInt(AmountThreshold)

// Reason names a rule that flagged a transaction.
type Reason string

const (
	ReasonLargeAmount      Reason = "large-amount"
	ReasonRepeatedMerchant Reason = "repeated-merchant"
)

// Classify annotates every transaction with its suspicious flag, preserving
// input order.
func Classify(txns []model.Transaction) []model.Classified {
	counts := MerchantCounts(txns)

	out := make([]model.Classified, len(txns))
	for i, t := range txns {
		out[i] = model.Classified{
			Transaction: t,
			Suspicious:  len(reasons(t, counts)) > 0,
		}
	}
	return out
}

// Reasons reports which rules flag t given the full collection txns.
func Reasons(t model.Transaction, txns []model.Transaction) []Reason {
	return reasons(t, MerchantCounts(txns))
}

// MerchantCounts counts occurrences of each normalized merchant name.
func MerchantCounts(txns []model.Transaction) map[string]int {
	counts := make(map[string]int, len(txns))
	for _, t := range txns {
		counts[MerchantKey(t.Merchant)]++
	}
	return counts
}

// MerchantKey normalizes a merchant name for counting.
// "  Amazon " -> "amazon"
func MerchantKey(merchant string) string {
	return strings.ToLower(strings.TrimSpace(merchant))
}

func reasons(t model.Transaction, counts map[string]int) []Reason {
	var rs []Reason
	if t.Amount.GreaterThan(amountLimit) {
		rs = append(rs, ReasonLargeAmount)
	}
	if counts[MerchantKey(t.Merchant)] >= RepeatThreshold {
		rs = append(rs, ReasonRepeatedMerchant)
	}
	return rs
}
