package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kevin07696/securepay-gateway/internal/domain/models"
)

func newRecurringCommand(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage stored recurring payment profiles",
	}

	cmd.AddCommand(
		newRecurringAddCommand(global),
		newRecurringCancelCommand(global),
		newRecurringTriggerCommand(global),
	)

	return cmd
}

func newRecurringAddCommand(global *globalOptions) *cobra.Command {
	var (
		amount      amountFlags
		card        cardFlags
		profileID   string
		periodicity string
		payments    int
		startDate   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a recurring profile",
		Long: fmt.Sprintf(`Create a calendar-based recurring profile charging the card on a fixed schedule.
Periodicity is one of: %s.`, periodicityList()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			schedule := models.RecurringSchedule{
				ProfileID:   profileID,
				Periodicity: models.Periodicity(strings.ToLower(periodicity)),
				Payments:    payments,
			}
			if startDate != "" {
				schedule.StartingAt, err = time.Parse("2006-01-02", startDate)
				if err != nil {
					return fmt.Errorf("invalid start date %q, want YYYY-MM-DD: %w", startDate, err)
				}
			}

			s, err := newSession(cmd.Context(), global)
			if err != nil {
				return err
			}
			defer s.finish(&err)

			money, err := amount.money(s.currency)
			if err != nil {
				return err
			}

			result, err := s.gateway.Recurring(cmd.Context(), money, card.card, schedule)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}

	amount.register(cmd, true)
	card.register(cmd)
	cmd.Flags().StringVar(&profileID, "profile-id", "", "Client ID of the profile (max 20 characters)")
	cmd.Flags().StringVar(&periodicity, "periodicity", string(models.PeriodicityMonthly), "Charge interval")
	cmd.Flags().IntVar(&payments, "payments", 0, "Number of payments")
	cmd.Flags().StringVar(&startDate, "start-date", "", "First charge date YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("profile-id")
	_ = cmd.MarkFlagRequired("payments")

	return cmd
}

func newRecurringCancelCommand(global *globalOptions) *cobra.Command {
	var profileID string

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Delete a recurring profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := newSession(cmd.Context(), global)
			if err != nil {
				return err
			}
			defer s.finish(&err)

			result, err := s.gateway.CancelRecurring(cmd.Context(), profileID)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&profileID, "profile-id", "", "Client ID of the profile")
	_ = cmd.MarkFlagRequired("profile-id")

	return cmd
}

func newRecurringTriggerCommand(global *globalOptions) *cobra.Command {
	var (
		amount    amountFlags
		profileID string
	)

	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Charge a stored profile now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s, err := newSession(cmd.Context(), global)
			if err != nil {
				return err
			}
			defer s.finish(&err)

			var money *models.Money
			if amount.amount != "" {
				m, err := amount.money(s.currency)
				if err != nil {
					return err
				}
				money = &m
			}

			result, err := s.gateway.TriggerRecurring(cmd.Context(), profileID, money)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}

	amount.register(cmd, false)
	cmd.Flags().StringVar(&profileID, "profile-id", "", "Client ID of the profile")
	_ = cmd.MarkFlagRequired("profile-id")

	return cmd
}

func periodicityList() string {
	names := make([]string, len(models.Periodicities))
	for i, p := range models.Periodicities {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
