package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"housing-credit/cli"
	"housing-credit/domain"
	"housing-credit/export"
)

var (
	flagPrice       float64
	flagIncome      float64
	flagSavings     float64
	flagSubsidy     float64
	flagRate        float64
	flagInteractive bool
	flagSchedule    bool
	flagExport      string
	flagJSON        bool
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Find a feasible savings and loan plan",
	Example: "  housing-credit solve --price 300000000 --income 8000000 --savings 100000000 --subsidy 20000000\n" +
		"  housing-credit solve -i --schedule",
	RunE: runSolve,
}

func init() {
	f := solveCmd.Flags()
	f.Float64Var(&flagPrice, "price", 0, "Home price")
	f.Float64Var(&flagIncome, "income", 0, "Monthly household income")
	f.Float64Var(&flagSavings, "savings", 0, "Current savings")
	f.Float64Var(&flagSubsidy, "subsidy", 0, "Housing subsidy")
	f.Float64Var(&flagRate, "rate", domain.DefaultAnnualRate, "Annual interest rate as a fraction")
	f.BoolVarP(&flagInteractive, "interactive", "i", false, "Prompt for the household data")
	f.BoolVar(&flagSchedule, "schedule", false, "Print the amortization schedule")
	f.StringVar(&flagExport, "export", "", "Write the schedule to an xlsx file")
	f.BoolVar(&flagJSON, "json", false, "Print the plan as JSON")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	input := domain.HousingInput{
		HomePrice:     flagPrice,
		MonthlyIncome: flagIncome,
		Savings:       flagSavings,
		Subsidy:       flagSubsidy,
		AnnualRate:    flagRate,
	}
	if !cmd.Flags().Changed("rate") && a.cfg.Policy.DefaultAnnualRate > 0 {
		input.AnnualRate = a.cfg.Policy.DefaultAnnualRate
	}

	if flagInteractive {
		if input, err = promptInput(input); err != nil {
			return err
		}
	}

	plan, err := a.service.Solve(cmd.Context(), input)
	out := cmd.OutOrStdout()
	if err != nil {
		return explainFailure(out, err)
	}

	if flagJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(plan); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out)
		fmt.Fprint(out, cli.RenderPlan(plan))
		if flagSchedule {
			fmt.Fprintln(out)
			fmt.Fprint(out, cli.RenderSchedule(plan.Schedule))
		}
	}

	if flagExport != "" {
		if err := writeExport(flagExport, plan); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n  Schedule written to %s\n", flagExport)
	}
	return nil
}

// explainFailure prints a hint for business outcomes and returns err unchanged.
func explainFailure(w io.Writer, err error) error {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		fmt.Fprintln(w, cli.RenderWarning("Savings plus subsidy do not reach the required down payment."))
	case errors.Is(err, domain.ErrNoViableScenario):
		fmt.Fprintln(w, cli.RenderWarning("No savings plan and term keeps the payment within the income cap."))
	}
	return err
}

func writeExport(path string, plan domain.CreditPlan) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := export.WriteWorkbook(f, plan); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func promptInput(def domain.HousingInput) (domain.HousingInput, error) {
	price := formatField(def.HomePrice)
	income := formatField(def.MonthlyIncome)
	savings := formatField(def.Savings)
	subsidy := formatField(def.Subsidy)
	rate := strconv.FormatFloat(def.AnnualRate, 'f', -1, 64)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Home price").Value(&price).Validate(validateAmount),
			huh.NewInput().Title("Monthly income").Value(&income).Validate(validateAmount),
			huh.NewInput().Title("Current savings").Value(&savings).Validate(validateAmount),
			huh.NewInput().Title("Subsidy").Value(&subsidy).Validate(validateAmount),
			huh.NewInput().Title("Annual rate").Description("Fraction, e.g. 0.12").Value(&rate).Validate(validateAmount),
		),
	)
	if err := form.Run(); err != nil {
		return def, err
	}

	var in domain.HousingInput
	var err error
	if in.HomePrice, err = parseAmount(price); err != nil {
		return def, err
	}
	if in.MonthlyIncome, err = parseAmount(income); err != nil {
		return def, err
	}
	if in.Savings, err = parseAmount(savings); err != nil {
		return def, err
	}
	if in.Subsidy, err = parseAmount(subsidy); err != nil {
		return def, err
	}
	if in.AnnualRate, err = parseAmount(rate); err != nil {
		return def, err
	}
	return in, nil
}

func formatField(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseAmount accepts plain numbers with optional thousands separators
// ("300,000,000" or "300_000_000").
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	clean := strings.NewReplacer(",", "", "_", "", "$", "").Replace(s)
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, s)
	}
	return v, nil
}

func validateAmount(s string) error {
	_, err := parseAmount(s)
	return err
}
