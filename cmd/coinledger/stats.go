package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print derived ledger totals",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	_, _, store, _, err := setup(false)
	if err != nil {
		return err
	}

	st, err := store.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("compute stats: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "users:               %d (active 7d: %d, new today: %d)\n",
		st.TotalUsers, st.ActiveUsers7d, st.NewUsersToday)
	fmt.Fprintf(out, "coins in circulation: %d\n", st.TotalCoins)
	fmt.Fprintf(out, "balance in circulation: %s\n", st.TotalBalance)
	fmt.Fprintf(out, "payments:            pending=%d completed=%d rejected=%d\n",
		st.PendingPayments, st.CompletedPayments, st.RejectedPayments)
	fmt.Fprintf(out, "today:               deposits=%s withdrawals=%s\n",
		st.DepositsToday, st.WithdrawalsToday)
	fmt.Fprintf(out, "wagers settled:      %d\n", st.WagersSettled)
	return nil
}
