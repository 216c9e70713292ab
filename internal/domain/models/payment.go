package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	pkgerrors "github.com/kevin07696/securepay-gateway/pkg/errors"
)

// DefaultCurrency is used when neither the call nor the amount names a currency
const DefaultCurrency = "AUD"

// Credentials identify the merchant to the gateway
type Credentials struct {
	Login    string
	Password string
}

// Money is an amount in minor currency units (cents for AUD)
type Money struct {
	Cents    int64
	Currency string // ISO 4217; empty means "use the gateway default"
}

// NewMoney creates a Money value from minor units
func NewMoney(cents int64, currencyCode string) Money {
	return Money{Cents: cents, Currency: strings.ToUpper(currencyCode)}
}

// MoneyFromDecimal converts a major-unit decimal (e.g. 10.50) into minor units using the
// currency's standard scale, so JPY 100 stays 100 while AUD 1.00 becomes 100.
// Amounts finer than the minor unit are rejected, never rounded.
func MoneyFromDecimal(amount decimal.Decimal, currencyCode string) (Money, error) {
	if currencyCode == "" {
		currencyCode = DefaultCurrency
	}

	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return Money{}, pkgerrors.NewValidationError("currency", fmt.Sprintf("unknown currency %q", currencyCode))
	}

	scale, _ := currency.Standard.Rounding(unit)
	minor := amount.Shift(int32(scale))
	if !minor.Equal(minor.Truncate(0)) {
		return Money{}, pkgerrors.NewValidationError("amount",
			fmt.Sprintf("%s allows at most %d decimal places, got %s", unit, scale, amount))
	}

	return Money{Cents: minor.IntPart(), Currency: unit.String()}, nil
}

// MinorUnits renders the amount as the gateway expects it: an integer count of minor units
func (m Money) MinorUnits() string {
	return strconv.FormatInt(m.Cents, 10)
}

// ValidateCurrency checks that code is a known ISO 4217 currency and returns it normalised
func ValidateCurrency(code string) (string, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", pkgerrors.NewValidationError("currency", fmt.Sprintf("unknown currency %q", code))
	}
	return unit.String(), nil
}

// CreditCard carries the card fields for a single call. It is never retained by the gateway.
type CreditCard struct {
	Number            string `json:"number" validate:"required,numeric,min=12,max=19"`
	Month             int    `json:"month" validate:"required,min=1,max=12"`
	Year              int    `json:"year" validate:"required,min=1"`
	VerificationValue string `json:"verification_value" validate:"omitempty,numeric,min=3,max=4"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
}

// Validate checks the structural fields of the card. Expiry in the past is not rejected
// here; the issuer decides that.
func (c CreditCard) Validate() error {
	return validateStruct(c)
}

// ExpiryDate formats the expiry as MM/YY
func (c CreditCard) ExpiryDate() string {
	return fmt.Sprintf("%02d/%02d", c.Month, c.Year%100)
}

// HasVerificationValue reports whether a CVV was supplied
func (c CreditCard) HasVerificationValue() bool {
	return strings.TrimSpace(c.VerificationValue) != ""
}

// Name returns the cardholder name, if any
func (c CreditCard) Name() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
