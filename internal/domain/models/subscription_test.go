package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/kevin07696/securepay-gateway/pkg/errors"
)

func TestRecurringSchedule_Validate(t *testing.T) {
	valid := RecurringSchedule{ProfileID: "profile-1", Periodicity: PeriodicityMonthly, Payments: 12}

	tests := []struct {
		name          string
		mutate        func(s *RecurringSchedule)
		expectedField string
	}{
		{"valid", func(s *RecurringSchedule) {}, ""},
		{"missing profile", func(s *RecurringSchedule) { s.ProfileID = "" }, "profile_id"},
		{"profile too long", func(s *RecurringSchedule) { s.ProfileID = "abcdefghijklmnopqrstu" }, "profile_id"},
		{"missing periodicity", func(s *RecurringSchedule) { s.Periodicity = "" }, "periodicity"},
		{"unknown periodicity", func(s *RecurringSchedule) { s.Periodicity = "daily" }, "periodicity"},
		{"zero payments", func(s *RecurringSchedule) { s.Payments = 0 }, "payments"},
		{"negative payments", func(s *RecurringSchedule) { s.Payments = -1 }, "payments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)

			err := s.Validate()
			if tt.expectedField == "" {
				assert.NoError(t, err)
				return
			}

			var vErr *pkgerrors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.expectedField, vErr.Field)
		})
	}
}

func TestPeriodicities_AllValidate(t *testing.T) {
	for _, p := range Periodicities {
		s := RecurringSchedule{ProfileID: "p", Periodicity: p, Payments: 1}
		assert.NoError(t, s.Validate(), p)
	}
}
