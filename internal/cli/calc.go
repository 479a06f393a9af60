package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"showroom/internal/core"
	"showroom/internal/finance"
)

type calcFlags struct {
	price    string
	down     string
	rate     float64
	term     int
	clamp    bool
	schedule bool
}

func newCalcCmd() *cobra.Command {
	var f calcFlags

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Print the monthly payment for a vehicle loan",
		Example: "  showroom calc --price 320000 --rate 5.5 --term 48\n" +
			"  showroom calc --price '$450,000' --down 100000 --schedule",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.price, "price", fmt.Sprint(finance.DefaultVehiclePrice), "vehicle price in dollars")
	flags.StringVar(&f.down, "down", "", "down payment in dollars (default 20% of price)")
	flags.Float64Var(&f.rate, "rate", finance.DefaultRatePercent, "annual interest rate in percent")
	flags.IntVar(&f.term, "term", finance.DefaultTermMonths, "loan term in months")
	flags.BoolVar(&f.clamp, "clamp", false, "pull inputs into the ranges the finance page allows")
	flags.BoolVar(&f.schedule, "schedule", false, "print the month-by-month schedule")
	return cmd
}

func runCalc(cmd *cobra.Command, f calcFlags) error {
	price, err := core.ParseAmount(f.price)
	if err != nil {
		return fmt.Errorf("--price: %w", err)
	}
	req := finance.LoanRequest{
		VehiclePrice:      price.InexactFloat64(),
		DownPayment:       finance.PresetDownPayment(price.InexactFloat64()),
		AnnualRatePercent: f.rate,
		TermMonths:        f.term,
	}
	if f.down != "" {
		down, err := core.ParseAmount(f.down)
		if err != nil {
			return fmt.Errorf("--down: %w", err)
		}
		req.DownPayment = down.InexactFloat64()
	}
	if f.clamp {
		req = finance.ClampRequest(req)
	}

	out := cmd.OutOrStdout()
	res, ok := finance.Calculate(req)
	if !ok {
		fmt.Fprintln(out, "Not computable: price must exceed the down payment, and rate and term must be positive.")
		return nil
	}

	split := finance.SplitOf(res)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Vehicle price\t%s\n", core.FormatUSD(req.VehiclePrice))
	fmt.Fprintf(tw, "Down payment\t%s\n", core.FormatUSD(req.DownPayment))
	fmt.Fprintf(tw, "Loan amount\t%s\n", core.FormatUSD(res.Principal))
	fmt.Fprintf(tw, "Rate / term\t%s APR, %d months\n", core.FormatPercent(req.AnnualRatePercent), req.TermMonths)
	fmt.Fprintf(tw, "Monthly payment\t%s\n", core.FormatUSD(res.MonthlyPayment))
	fmt.Fprintf(tw, "Total interest\t%s (%s)\n", core.FormatUSD(res.TotalInterest), core.FormatPercent(split.InterestPercent))
	fmt.Fprintf(tw, "Total amount\t%s\n", core.FormatUSD(res.TotalAmount))
	if err := tw.Flush(); err != nil {
		return err
	}

	if !f.schedule {
		return nil
	}
	rows, _ := finance.Schedule(req)
	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Month\tPayment\tPrincipal\tInterest\tBalance\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t\n", r.Month, r.Payment, r.Principal, r.Interest, r.Balance)
	}
	return tw.Flush()
}
