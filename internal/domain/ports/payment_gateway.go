package ports

import (
	"context"

	"github.com/kevin07696/securepay-gateway/internal/domain/models"
	pkgerrors "github.com/kevin07696/securepay-gateway/pkg/errors"
)

// TransactionOptions carries the per-call fields of a payment transaction
type TransactionOptions struct {
	OrderID     string // purchaseOrderNo; spaces and apostrophes are stripped before sending
	Currency    string // overrides the amount's currency and the gateway default
	Description string
}

// Result is the normalised outcome of one gateway round trip.
// A declined transaction is a Result with Success=false, not an error.
type Result struct {
	Success       bool
	Message       string
	ResponseCode  string
	Authorization string            // txn_id, kept by callers for capture/void/credit
	Params        map[string]string // every leaf of the response, snake_case keys
	Test          bool
	Category      pkgerrors.ErrorCategory
	Duplicates    []string // response keys that appeared more than once
}

// PaymentGateway defines the card transaction operations of a gateway adapter
type PaymentGateway interface {
	// Purchase authorises and captures in one step
	Purchase(ctx context.Context, money models.Money, card models.CreditCard, opts TransactionOptions) (*Result, error)

	// Authorize reserves funds without capturing them
	Authorize(ctx context.Context, money models.Money, card models.CreditCard, opts TransactionOptions) (*Result, error)

	// Capture completes a previous authorisation
	Capture(ctx context.Context, money models.Money, authorization string, opts TransactionOptions) (*Result, error)

	// Void reverses a transaction before settlement
	Void(ctx context.Context, money models.Money, authorization string, opts TransactionOptions) (*Result, error)

	// Credit refunds a settled transaction
	Credit(ctx context.Context, money models.Money, authorization string, opts TransactionOptions) (*Result, error)
}
