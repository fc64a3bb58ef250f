package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/mmynk/boatfinance/pkg/api"
)

func newCompareCmd(opts *rootOptions) *cobra.Command {
	req := &api.CalculateScenariosRequest{}
	var scenarios []string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare loan scenarios against a base loan",
		Long: `Compare loan scenarios against a base loan.

Each --scenario overrides some base parameters with comma-separated
key=value pairs. Keys: price, down, rate, term.`,
		Example: `  financectl compare --price 100000 --down 20000 \
    --scenario rate=5.5 --scenario term=120 --scenario down=30000,rate=6`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Scenarios = req.Scenarios[:0]
			for _, s := range scenarios {
				o, err := parseScenario(s)
				if err != nil {
					return err
				}
				req.Scenarios = append(req.Scenarios, o)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			resp, err := opts.client().CalculateScenarios(ctx, connect.NewRequest(req))
			if err != nil {
				return describeError(err)
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), resp.Msg)
			}
			return printScenarios(cmd, resp.Msg.Scenarios)
		},
	}

	paramFlags(cmd, &req.Base)
	cmd.Flags().StringArrayVar(&scenarios, "scenario", nil, "scenario overrides, e.g. rate=5.5,term=120 (repeatable)")
	_ = cmd.MarkFlagRequired("scenario")
	return cmd
}

// parseScenario parses "key=value,..." into an override.
func parseScenario(s string) (api.ScenarioOverride, error) {
	var o api.ScenarioOverride
	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return o, fmt.Errorf("scenario %q: expected key=value, got %q", s, pair)
		}

		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if key == "term" {
			n, err := strconv.Atoi(value)
			if err != nil {
				return o, fmt.Errorf("scenario %q: invalid term %q", s, value)
			}
			o.TermMonths = &n
			continue
		}

		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return o, fmt.Errorf("scenario %q: invalid %s %q", s, key, value)
		}
		switch key {
		case "price":
			o.BoatPrice = &f
		case "down":
			o.DownPayment = &f
		case "rate":
			o.InterestRate = &f
		default:
			return o, fmt.Errorf("scenario %q: unknown key %q", s, key)
		}
	}
	return o, nil
}

func printScenarios(cmd *cobra.Command, results []api.ScenarioResult) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Scenario\tPrice\tDown\tRate\tTerm\tMonthly\tInterest\tTotal cost")
	for _, r := range results {
		p := r.Parameters
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f%%\t%d\terror: %s\t\t\n",
				r.Label, money(p.BoatPrice), money(p.DownPayment), p.InterestRate, p.TermMonths, r.Error)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f%%\t%d\t%s\t%s\t%s\n",
			r.Label, money(p.BoatPrice), money(p.DownPayment), p.InterestRate, p.TermMonths,
			money(r.MonthlyPayment), money(r.TotalInterest), money(r.TotalCost))
	}
	return tw.Flush()
}
