// Package export writes credit plans to spreadsheet files.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"housing-credit/domain"
)

const (
	SheetName   = "Amortization"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	FileName    = "amortization_schedule.xlsx"
)

var header = []interface{}{"Month", "Payment", "Interest", "Principal Portion", "Remaining Balance"}

// WriteWorkbook writes the plan's schedule as an xlsx workbook with a line
// chart of the remaining balance per month.
func WriteWorkbook(w io.Writer, plan domain.CreditPlan) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range plan.Schedule {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.Month, r.Payment, r.Interest, r.PrincipalPortion, r.RemainingBalance}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing month %d: %w", r.Month, err)
		}
	}

	if n := len(plan.Schedule); n > 0 {
		if err := addBalanceChart(f, n); err != nil {
			return fmt.Errorf("adding chart: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func addBalanceChart(f *excelize.File, rows int) error {
	last := rows + 1
	return f.AddChart(SheetName, "G2", &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("'%s'!$E$1", SheetName),
				Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", SheetName, last),
				Values:     fmt.Sprintf("'%s'!$E$2:$E$%d", SheetName, last),
				Line:       excelize.ChartLine{Width: 1.5},
			},
		},
		Title: []excelize.RichTextRun{{Text: "Remaining balance"}},
		XAxis: excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Month"}}},
		YAxis: excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Balance"}}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	})
}
