package ports

import (
	"context"

	"github.com/kevin07696/securepay-gateway/internal/domain/models"
)

// RecurringGateway defines the stored-profile operations of a gateway adapter.
// Profiles live at the provider; the adapter keeps no state between calls.
type RecurringGateway interface {
	// Recurring stores a card against a profile and schedules payments
	Recurring(ctx context.Context, money models.Money, card models.CreditCard, schedule models.RecurringSchedule) (*Result, error)

	// CancelRecurring deletes a stored profile
	CancelRecurring(ctx context.Context, profileID string) (*Result, error)

	// TriggerRecurring charges a stored profile now; a nil amount uses the stored amount
	TriggerRecurring(ctx context.Context, profileID string, amount *models.Money) (*Result, error)
}
