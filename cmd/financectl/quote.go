package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/boatfinance/pkg/api"
)

func newQuoteCmd(opts *rootOptions) *cobra.Command {
	req := &api.CalculateRequest{}

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Calculate the monthly payment of a boat loan",
		Example: `  financectl quote --price 100000 --down 20000 --rate 6.5 --term 240
  financectl quote --price 45000 --down 5000 --schedule`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			resp, err := opts.client().Calculate(ctx, connect.NewRequest(req))
			if err != nil {
				return describeError(err)
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), resp.Msg)
			}
			return printQuote(cmd, resp.Msg.Calculation)
		},
	}

	paramFlags(cmd, &req.CalculationParameters)
	cmd.Flags().BoolVar(&req.IncludeSchedule, "schedule", false, "print the amortization schedule")
	cmd.Flags().StringVar(&req.ListingID, "listing", "", "marketplace listing ID")
	return cmd
}

func printQuote(cmd *cobra.Command, c *api.Calculation) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Loan amount:      %s\n", money(c.LoanAmount))
	fmt.Fprintf(out, "Monthly payment:  %s\n", money(c.MonthlyPayment))
	fmt.Fprintf(out, "Total interest:   %s\n", money(c.TotalInterest))
	fmt.Fprintf(out, "Total cost:       %s\n", money(c.TotalCost))

	if len(c.PaymentSchedule) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tDate\tPrincipal\tInterest\tPayment\tBalance\t")
	for _, row := range c.PaymentSchedule {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
			row.PaymentNumber,
			row.PaymentDate.Format("2006-01-02"),
			money(row.PrincipalAmount),
			money(row.InterestAmount),
			money(row.TotalPayment),
			money(row.RemainingBalance),
		)
	}
	return tw.Flush()
}
