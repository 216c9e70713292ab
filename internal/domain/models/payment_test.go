package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/kevin07696/securepay-gateway/pkg/errors"
)

func validCard() CreditCard {
	return CreditCard{
		Number:            "4444333322221111",
		Month:             9,
		Year:              2030,
		VerificationValue: "123",
		FirstName:         "Longbob",
		LastName:          "Longsen",
	}
}

func TestMoneyFromDecimal(t *testing.T) {
	tests := []struct {
		name          string
		amount        string
		currency      string
		expectedCents int64
		expectedCode  string
	}{
		{"AUD two decimals", "1.00", "AUD", 100, "AUD"},
		{"trailing zeros are not extra precision", "10.500", "AUD", 1050, "AUD"},
		{"KWD has three decimals", "1.234", "KWD", 1234, "KWD"},
		{"lower case code", "2.5", "nzd", 250, "NZD"},
		{"JPY has no minor unit", "100", "JPY", 100, "JPY"},
		{"empty code uses default", "3.20", "", 320, "AUD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			money, err := MoneyFromDecimal(decimal.RequireFromString(tt.amount), tt.currency)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedCents, money.Cents)
			assert.Equal(t, tt.expectedCode, money.Currency)
		})
	}
}

func TestMoneyFromDecimal_RejectsSubMinorUnits(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
	}{
		{"1.005", "AUD"},
		{"100.5", "JPY"},
		{"0.0001", "KWD"},
	}

	for _, tt := range tests {
		t.Run(tt.currency+" "+tt.amount, func(t *testing.T) {
			_, err := MoneyFromDecimal(decimal.RequireFromString(tt.amount), tt.currency)

			var vErr *pkgerrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "amount", vErr.Field)
		})
	}
}

func TestMoneyFromDecimal_UnknownCurrency(t *testing.T) {
	_, err := MoneyFromDecimal(decimal.NewFromInt(1), "ZZZZ")

	var vErr *pkgerrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "currency", vErr.Field)
}

func TestMoney_MinorUnits(t *testing.T) {
	assert.Equal(t, "100", NewMoney(100, "AUD").MinorUnits())
	assert.Equal(t, "0", NewMoney(0, "AUD").MinorUnits())
	assert.Equal(t, "AUD", NewMoney(1, "aud").Currency)
}

func TestValidateCurrency(t *testing.T) {
	code, err := ValidateCurrency("aud")
	require.NoError(t, err)
	assert.Equal(t, "AUD", code)

	_, err = ValidateCurrency("")
	assert.Error(t, err)
}

func TestCreditCard_Validate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(c *CreditCard)
		expectedField string
	}{
		{"valid", func(c *CreditCard) {}, ""},
		{"no cvv is fine", func(c *CreditCard) { c.VerificationValue = "" }, ""},
		{"expired card is not rejected locally", func(c *CreditCard) { c.Year = 2005 }, ""},
		{"missing number", func(c *CreditCard) { c.Number = "" }, "number"},
		{"non-numeric number", func(c *CreditCard) { c.Number = "4444 3333 2222 1111" }, "number"},
		{"short number", func(c *CreditCard) { c.Number = "41111" }, "number"},
		{"month zero", func(c *CreditCard) { c.Month = 0 }, "month"},
		{"month thirteen", func(c *CreditCard) { c.Month = 13 }, "month"},
		{"missing year", func(c *CreditCard) { c.Year = 0 }, "year"},
		{"cvv too long", func(c *CreditCard) { c.VerificationValue = "12345" }, "verification_value"},
		{"cvv letters", func(c *CreditCard) { c.VerificationValue = "abc" }, "verification_value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := validCard()
			tt.mutate(&card)

			err := card.Validate()
			if tt.expectedField == "" {
				assert.NoError(t, err)
				return
			}

			var vErr *pkgerrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.expectedField, vErr.Field)
			assert.NotEmpty(t, vErr.Message)
		})
	}
}

func TestCreditCard_ExpiryDate(t *testing.T) {
	card := validCard()
	assert.Equal(t, "09/30", card.ExpiryDate())

	card.Month = 12
	card.Year = 2005
	assert.Equal(t, "12/05", card.ExpiryDate())

	card.Year = 7
	assert.Equal(t, "12/07", card.ExpiryDate())
}

func TestCreditCard_Helpers(t *testing.T) {
	card := validCard()
	assert.True(t, card.HasVerificationValue())
	assert.Equal(t, "Longbob Longsen", card.Name())

	card.VerificationValue = "  "
	card.FirstName = ""
	assert.False(t, card.HasVerificationValue())
	assert.Equal(t, "Longsen", card.Name())
}
