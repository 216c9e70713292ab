package securepay

import (
	"fmt"

	"github.com/kevin07696/securepay-gateway/internal/domain/models"
	pkgerrors "github.com/kevin07696/securepay-gateway/pkg/errors"
)

// Action is a logical gateway operation
type Action string

const (
	ActionPurchase      Action = "purchase"
	ActionAuthorization Action = "authorization"
	ActionCapture       Action = "capture"
	ActionVoid          Action = "void"
	ActionCredit        Action = "credit"
	ActionRecurring     Action = "recurring"
)

// txnTypes maps actions to SecurePay txnType codes
//
//	0  Standard Payment
//	4  Refund
//	6  Client Reversal (Void)
//	10 Preauthorise
//	11 Preauth Complete (Advice)
//	14 Recurring
var txnTypes = map[Action]int{
	ActionPurchase:      0,
	ActionAuthorization: 10,
	ActionCapture:       11,
	ActionVoid:          6,
	ActionCredit:        4,
	ActionRecurring:     14,
}

// Code returns the numeric txnType for the action
func (a Action) Code() (int, error) {
	code, ok := txnTypes[a]
	if !ok {
		return 0, fmt.Errorf("unmapped transaction action: %q", a)
	}
	return code, nil
}

// IsRecurring reports whether the action goes to the periodic endpoint
func (a Action) IsRecurring() bool {
	return a == ActionRecurring
}

// RecurringAction is the actionType of a PeriodicItem
type RecurringAction string

const (
	RecurringAdd     RecurringAction = "add"
	RecurringDelete  RecurringAction = "delete"
	RecurringTrigger RecurringAction = "trigger"
)

// Valid reports whether the provider accepts the action
func (r RecurringAction) Valid() bool {
	switch r {
	case RecurringAdd, RecurringDelete, RecurringTrigger:
		return true
	}
	return false
}

// periodicTypeCalendar marks a calendar-based schedule
const periodicTypeCalendar = 3

// txnSourceXMLAPI identifies the XML API as the transaction source
const txnSourceXMLAPI = 23

// paymentIntervals maps periodicity to SecurePay paymentInterval codes
var paymentIntervals = map[models.Periodicity]int{
	models.PeriodicityWeekly:     1,
	models.PeriodicityBiWeekly:   2,
	models.PeriodicityMonthly:    3,
	models.PeriodicityQuarterly:  4,
	models.PeriodicityHalfYearly: 5,
	models.PeriodicityYearly:     6,
}

// paymentInterval returns the interval code for a periodicity
func paymentInterval(p models.Periodicity) (int, error) {
	interval, ok := paymentIntervals[p]
	if !ok {
		return 0, pkgerrors.NewValidationError("periodicity", fmt.Sprintf("unsupported periodicity %q", p))
	}
	return interval, nil
}

// successCodes are the responseCode values the provider uses for an approval
var successCodes = map[string]bool{
	"00": true, // Approved
	"08": true, // Honour with ID
	"11": true, // Approved VIP
	"16": true, // Approved, update track 3
	"77": true, // Approved (ANZ only)
}

// IsSuccessCode classifies a responseCode. Only the code counts, never the text.
func IsSuccessCode(code string) bool {
	return successCodes[code]
}
