package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/boatfinance/internal/finance"
	"github.com/mmynk/boatfinance/internal/service"
	"github.com/mmynk/boatfinance/pkg/api"
	"github.com/mmynk/boatfinance/pkg/api/apiconnect"
)

type rootOptions struct {
	server  string
	timeout time.Duration
	asJSON  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "financectl",
		Short:         "Boat loan calculator",
		Long:          "Quotes boat loans, suggests interest rates and compares loan scenarios.",
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.server, "server", "", "FinanceService base URL, e.g. http://localhost:8080 (default: compute locally)")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")
	flags.BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")

	cmd.AddCommand(
		newQuoteCmd(opts),
		newRatesCmd(opts),
		newCompareCmd(opts),
	)
	return cmd
}

// client returns a remote client when --server is set. Otherwise the
// service runs in-process without a store, which serves every
// computation-only procedure.
func (o *rootOptions) client() apiconnect.FinanceServiceClient {
	if o.server != "" {
		return apiconnect.NewFinanceServiceClient(&http.Client{Timeout: o.timeout}, o.server)
	}
	return service.NewFinanceService(finance.NewManager(nil, ""))
}

// paramFlags binds the calculation parameter flags shared by quote and compare.
func paramFlags(cmd *cobra.Command, p *api.CalculationParameters) {
	cmd.Flags().Float64Var(&p.BoatPrice, "price", 0, "boat price in dollars")
	cmd.Flags().Float64Var(&p.DownPayment, "down", 0, "down payment in dollars")
	cmd.Flags().Float64Var(&p.InterestRate, "rate", 6.5, "annual interest rate in percent")
	cmd.Flags().IntVar(&p.TermMonths, "term", 240, "loan term in months")
	_ = cmd.MarkFlagRequired("price")
}
