package main

import (
	"context"
	"fmt"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/boatfinance/pkg/api"
)

func newRatesCmd(opts *rootOptions) *cobra.Command {
	req := &api.SuggestedRatesRequest{}

	cmd := &cobra.Command{
		Use:     "rates",
		Short:   "Suggest typical interest rates for a loan",
		Example: "  financectl rates --amount 80000 --term 240",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			resp, err := opts.client().SuggestedRates(ctx, connect.NewRequest(req))
			if err != nil {
				return describeError(err)
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), resp.Msg)
			}
			for _, r := range resp.Msg.Rates {
				fmt.Fprintf(cmd.OutOrStdout(), "%.2f%%\n", r)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&req.LoanAmount, "amount", 0, "loan amount in dollars")
	cmd.Flags().IntVar(&req.TermMonths, "term", 240, "loan term in months")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
