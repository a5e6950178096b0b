package model

import (
	"fmt"
	"strings"
)

// TxnType is the direction of a transaction.
type TxnType string

const (
	TypeCredit TxnType = "credit"
	TypeDebit  TxnType = "debit"
)

// Category is one of a fixed set of spending categories.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryShopping      Category = "shopping"
	CategoryTravel        Category = "travel"
	CategoryBills         Category = "bills"
	CategoryHome          Category = "home"
	CategoryHealth        Category = "health"
	CategoryEntertainment Category = "entertainment"
	CategorySalary        Category = "salary"
	CategoryOther         Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryShopping,
	CategoryTravel,
	CategoryBills,
	CategoryHome,
	CategoryHealth,
	CategoryEntertainment,
	CategorySalary,
	CategoryOther,
}

// Mode is the payment instrument used.
type Mode string

const (
	ModeCash       Mode = "cash"
	ModeCard       Mode = "card"
	ModeUPI        Mode = "upi"
	ModeNetBanking Mode = "netbanking"
	ModeWallet     Mode = "wallet"
)

// Modes lists every payment mode in display order.
var Modes = []Mode{ModeCash, ModeCard, ModeUPI, ModeNetBanking, ModeWallet}

// ParseTxnType parses "credit" or "debit", ignoring case and surrounding space.
func ParseTxnType(s string) (TxnType, error) {
	switch t := TxnType(normalize(s)); t {
	case TypeCredit, TypeDebit:
		return t, nil
	}
	return "", fmt.Errorf("unknown transaction type %q (want credit or debit)", s)
}

// ParseCategory parses a category name, ignoring case and surrounding space.
func ParseCategory(s string) (Category, error) {
	c := Category(normalize(s))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// ParseMode parses a payment mode, ignoring case and surrounding space.
func ParseMode(s string) (Mode, error) {
	m := Mode(normalize(s))
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown payment mode %q", s)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
