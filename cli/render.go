package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"housing-credit/domain"
)

var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	labelStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	moneyStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderWarning renders a one-line warning message.
func RenderWarning(msg string) string {
	return warnStyle.Render("  ! " + msg)
}

// RenderTable renders a bordered table with headers and rows. Every column
// but the first is right-aligned.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = max(widths[i], len(h))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols {
				widths[i] = max(widths[i], len(cell))
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(fmt.Sprintf(" %-*s ", widths[i], h)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			var padded string
			if i == 0 {
				padded = fmt.Sprintf(" %-*s ", widths[i], cell)
			} else {
				padded = fmt.Sprintf(" %*s ", widths[i], cell)
			}
			b.WriteString(valueStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule("╰", "┴", "╯")

	return b.String()
}

// RenderPlan renders the scenario summary of a credit plan.
func RenderPlan(plan domain.CreditPlan) string {
	s := plan.Scenario
	lines := [][2]string{
		{"Home price", FormatMoney(plan.Input.HomePrice)},
		{"Available funds", FormatMoney(plan.Input.AvailableFunds())},
		{"Annual rate", FormatRate(plan.Input.AnnualRate)},
		{"Monthly savings", FormatMoney(s.MonthlySavings)},
		{"Months of saving", FormatMonths(s.MonthsOfSaving)},
		{"Accumulated savings", FormatMoney(s.AccumulatedSavings)},
		{"Loan principal", FormatMoney(s.LoanPrincipal)},
		{"Term (months)", FormatMonths(s.TermMonths)},
		{"Monthly payment", FormatMoney(s.MonthlyPayment)},
		{"Total paid", FormatMoney(plan.TotalPaid)},
		{"Total interest", FormatMoney(plan.TotalInterest)},
	}

	var b strings.Builder
	b.WriteString(RenderTitle("Housing credit plan"))
	b.WriteString("\n")
	if plan.ID != "" {
		b.WriteString(labelStyle.Render(fmt.Sprintf("  Plan %s", plan.ID)))
		b.WriteString("\n")
	}
	for _, l := range lines {
		b.WriteString(labelStyle.Render(fmt.Sprintf("  %-20s", l[0])))
		b.WriteString(moneyStyle.Render(l[1]))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderSchedule renders the amortization rows as a table.
func RenderSchedule(rows []domain.AmortizationRow) string {
	t := Table{
		Title:   "Amortization schedule",
		Headers: []string{"Month", "Payment", "Interest", "Principal", "Balance"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", r.Month),
			FormatMoney(r.Payment),
			FormatMoney(r.Interest),
			FormatMoney(r.PrincipalPortion),
			FormatMoney(r.RemainingBalance),
		})
	}
	return RenderTable(t)
}

// RenderPlans renders stored plan summaries as a table.
func RenderPlans(plans []domain.PlanSummary) string {
	t := Table{
		Title:   "Stored plans",
		Headers: []string{"ID", "Created", "Price", "Savings/mo", "Term", "Payment"},
	}
	for _, p := range plans {
		t.Rows = append(t.Rows, []string{
			p.ID,
			p.CreatedAt.Format("2006-01-02 15:04"),
			FormatMoney(p.HomePrice),
			FormatMoney(p.MonthlySavings),
			fmt.Sprintf("%d", p.TermMonths),
			FormatMoney(p.MonthlyPayment),
		})
	}
	return RenderTable(t)
}
