package cli

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kevin07696/securepay-gateway/internal/domain/models"
	"github.com/kevin07696/securepay-gateway/internal/domain/ports"
)

type amountFlags struct {
	amount   string
	currency string
}

func (f *amountFlags) register(cmd *cobra.Command, required bool) {
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "Amount in major units, e.g. 10.50")
	cmd.Flags().StringVar(&f.currency, "currency", "", "ISO 4217 currency (default from config)")
	if required {
		_ = cmd.MarkFlagRequired("amount")
	}
}

// money scales the amount by the minor unit of the currency that will be sent: the
// --currency flag when given, otherwise fallback (the configured default)
func (f *amountFlags) money(fallback string) (models.Money, error) {
	amount, err := decimal.NewFromString(f.amount)
	if err != nil {
		return models.Money{}, fmt.Errorf("invalid amount %q: %w", f.amount, err)
	}
	if !amount.IsPositive() {
		return models.Money{}, fmt.Errorf("amount must be greater than 0")
	}

	code := f.currency
	if code == "" {
		code = fallback
	}
	return models.MoneyFromDecimal(amount, code)
}

type cardFlags struct {
	card models.CreditCard
}

func (f *cardFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.card.Number, "card-number", "", "Card number")
	cmd.Flags().IntVar(&f.card.Month, "month", 0, "Expiry month (1-12)")
	cmd.Flags().IntVar(&f.card.Year, "year", 0, "Expiry year, e.g. 2030")
	cmd.Flags().StringVar(&f.card.VerificationValue, "cvv", "", "Card verification value")
	cmd.Flags().StringVar(&f.card.FirstName, "first-name", "", "Cardholder first name")
	cmd.Flags().StringVar(&f.card.LastName, "last-name", "", "Cardholder last name")
	_ = cmd.MarkFlagRequired("card-number")
	_ = cmd.MarkFlagRequired("month")
	_ = cmd.MarkFlagRequired("year")
}

type cardCall func(ctx context.Context, money models.Money, card models.CreditCard, opts ports.TransactionOptions) (*ports.Result, error)
type referenceCall func(ctx context.Context, money models.Money, authorization string, opts ports.TransactionOptions) (*ports.Result, error)

func newCardCommand(global *globalOptions, use, short string, pick func(s *session) cardCall) *cobra.Command {
	var (
		amount  amountFlags
		card    cardFlags
		orderID string
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := newSession(cmd.Context(), global)
			if err != nil {
				return err
			}
			defer s.finish(&err)

			money, err := amount.money(s.currency)
			if err != nil {
				return err
			}

			result, err := pick(s)(cmd.Context(), money, card.card, ports.TransactionOptions{
				OrderID:  orderID,
				Currency: amount.currency,
			})
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}

	amount.register(cmd, true)
	card.register(cmd)
	cmd.Flags().StringVar(&orderID, "order-id", "", "Merchant order reference (purchaseOrderNo)")
	_ = cmd.MarkFlagRequired("order-id")

	return cmd
}

func newReferenceCommand(global *globalOptions, use, short string, pick func(s *session) referenceCall) *cobra.Command {
	var (
		amount        amountFlags
		authorization string
		orderID       string
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := newSession(cmd.Context(), global)
			if err != nil {
				return err
			}
			defer s.finish(&err)

			money, err := amount.money(s.currency)
			if err != nil {
				return err
			}

			result, err := pick(s)(cmd.Context(), money, authorization, ports.TransactionOptions{
				OrderID:  orderID,
				Currency: amount.currency,
			})
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}

	amount.register(cmd, true)
	cmd.Flags().StringVar(&authorization, "authorization", "", "txn_id (or preauth ID for capture) of the original transaction")
	cmd.Flags().StringVar(&orderID, "order-id", "", "Merchant order reference of the original transaction")
	_ = cmd.MarkFlagRequired("authorization")
	_ = cmd.MarkFlagRequired("order-id")

	return cmd
}

func newPurchaseCommand(global *globalOptions) *cobra.Command {
	return newCardCommand(global, "purchase", "Authorise and capture a card payment", func(s *session) cardCall {
		return s.gateway.Purchase
	})
}

func newAuthorizeCommand(global *globalOptions) *cobra.Command {
	return newCardCommand(global, "authorize", "Reserve funds on a card without capturing", func(s *session) cardCall {
		return s.gateway.Authorize
	})
}

func newCaptureCommand(global *globalOptions) *cobra.Command {
	return newReferenceCommand(global, "capture", "Capture a previous authorisation", func(s *session) referenceCall {
		return s.gateway.Capture
	})
}

func newVoidCommand(global *globalOptions) *cobra.Command {
	return newReferenceCommand(global, "void", "Reverse a transaction before settlement", func(s *session) referenceCall {
		return s.gateway.Void
	})
}

func newRefundCommand(global *globalOptions) *cobra.Command {
	return newReferenceCommand(global, "refund", "Refund a settled transaction", func(s *session) referenceCall {
		return s.gateway.Credit
	})
}
