package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"housing-credit/cli"
)

var flagLimit int

var plansCmd = &cobra.Command{
	Use:   "plans [id]",
	Short: "List stored plans, or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPlans,
}

func init() {
	plansCmd.Flags().IntVarP(&flagLimit, "limit", "l", 20, "Maximum plans to list (0 = all)")
	rootCmd.AddCommand(plansCmd)
}

func runPlans(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()

	if len(args) == 1 {
		plan, err := a.service.Plan(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, cli.RenderPlan(plan))
		fmt.Fprintln(out)
		fmt.Fprint(out, cli.RenderSchedule(plan.Schedule))
		return nil
	}

	plans, err := a.service.Plans(cmd.Context(), flagLimit)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		fmt.Fprintln(out, "\n  No stored plans.")
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderPlans(plans))
	return nil
}
