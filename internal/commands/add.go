package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/famwallet/famwallet/internal/id"
	"github.com/famwallet/famwallet/internal/ledger"
	"github.com/famwallet/famwallet/internal/model"
)

func newAddCommand(a *app) *cobra.Command {
	var amount, txnType, merchant, category, date, mode string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a credit or debit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseAddParams(amount, txnType, merchant, category, date, mode)
			if err != nil {
				return err
			}

			txn, err := a.ledger.Add(params)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s %s %s (%s, %s, %s)\n",
				id.Short(txn.ID), txn.Type, a.render.Money(txn.Amount), txn.Merchant,
				txn.Category, txn.Mode, txn.Date.Format(model.DateFormat))
			return nil
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "amount, must be positive (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVarP(&txnType, "type", "t", string(model.TypeCredit), "credit or debit")
	cmd.Flags().StringVarP(&merchant, "merchant", "m", "", "merchant name")
	cmd.Flags().StringVarP(&category, "category", "c", string(model.CategoryOther), "category")
	cmd.Flags().StringVarP(&date, "date", "d", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&mode, "mode", string(model.ModeCash), "payment mode")

	return cmd
}

func parseAddParams(amount, txnType, merchant, category, date, mode string) (ledger.AddParams, error) {
	amt, err := ledger.ParseAmount(amount)
	if err != nil {
		return ledger.AddParams{}, err
	}

	typ, err := model.ParseTxnType(txnType)
	if err != nil {
		return ledger.AddParams{}, err
	}

	cat, err := model.ParseCategory(category)
	if err != nil {
		return ledger.AddParams{}, err
	}

	m, err := model.ParseMode(mode)
	if err != nil {
		return ledger.AddParams{}, err
	}

	var d time.Time
	if date != "" {
		d, err = model.ParseDate(date)
		if err != nil {
			return ledger.AddParams{}, fmt.Errorf("parsing date %q: %w", date, err)
		}
	}

	return ledger.AddParams{
		Type:     typ,
		Amount:   amt,
		Merchant: merchant,
		Category: cat,
		Date:     d,
		Mode:     m,
	}, nil
}
