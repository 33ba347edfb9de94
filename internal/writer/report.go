// Package writer renders extraction and verification results: a JSON field
// map for the extract mode, and tabular reports for the verify and gnucash
// modes.
package writer

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/radomirbosak/platext/internal/models"
	"github.com/radomirbosak/platext/internal/verify"
)

// WriteExtract writes the flat field map as indented JSON. Absent optional
// amounts serialize as null.
func WriteExtract(w io.Writer, slip *models.Payslip) error {
	opt := func(a models.Amount) any {
		if !a.Present {
			return nil
		}
		return a.Value
	}
	fields := map[string]any{
		"period":           slip.Period,
		"base":             slip.Base,
		"bank":             slip.Bank,
		"gross":            slip.Gross,
		"net":              slip.Net,
		"tax_advance":      opt(slip.TaxAdvance),
		"tax_relief":       opt(slip.TaxRelief),
		"tax_income":       opt(slip.TaxIncome),
		"tax_social":       opt(slip.TaxSocial),
		"tax_health":       opt(slip.TaxHealth),
		"tax_recon":        opt(slip.TaxRecon),
		"meal_deduction":   opt(slip.MealDeduction),
		"travel_expense":   opt(slip.TravelExpense),
		"hours_expected":   slip.HoursExpected,
		"hours_worked":     slip.HoursWorked,
		"hours_holiday":    slip.HoursHoliday,
		"bonuses":          slip.Bonuses,
		"average_earnings": slip.AverageEarnings,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(fields)
}

func newTable(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetAutoFormatHeaders(false)
	return table
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteVerification renders the verification records as a table followed
// by any advisory warnings.
func WriteVerification(w io.Writer, records []models.Record, warnings []string) {
	fmt.Fprintln(w, "Verification")
	table := newTable(w, []string{"Test", "Result", "Diff", "Claim", "Calc."})
	for _, rec := range records {
		diff := ""
		if rec.Status != models.StatusOK {
			diff = formatNumber(rec.Difference)
		}
		table.Append([]string{
			rec.Category,
			string(rec.Status),
			diff,
			formatNumber(rec.Claimed),
			formatNumber(rec.Calculated),
		})
	}
	table.Render()

	for _, warning := range warnings {
		fmt.Fprintf(w, "\nWARNING: %s\n", warning)
	}
}

// WriteAssumptions renders the inputs the verification formulas rely on.
func WriteAssumptions(w io.Writer, a verify.Assumptions) {
	money := newTable(w, []string{"Assumptions", "Amount [CZK]"})
	money.Append([]string{"Monthly base", strconv.Itoa(a.Base)})
	money.Append([]string{"Bonuses", strconv.Itoa(a.Bonuses)})
	money.Append([]string{"Travel expenses", strconv.Itoa(a.TravelExpense)})
	money.Append([]string{"Hourly (last 3 mths)", formatNumber(a.AverageEarnings)})
	money.Render()
	fmt.Fprintln(w)

	hours := newTable(w, []string{"Assumptions", "Hours", "Days"})
	hours.Append([]string{"Expected", strconv.Itoa(a.HoursExpected), formatNumber(float64(a.HoursExpected) / 8)})
	hours.Append([]string{"Worked", strconv.Itoa(a.HoursWorked), formatNumber(float64(a.HoursWorked) / 8)})
	hours.Append([]string{"Holiday", strconv.Itoa(a.HoursHoliday), formatNumber(float64(a.HoursHoliday) / 8)})
	hours.Append([]string{"State holiday workdays", strconv.Itoa(a.StateHolidayWorkdays * 8), strconv.Itoa(a.StateHolidayWorkdays)})
	hours.Render()
	fmt.Fprintln(w)

	meal := newTable(w, []string{"Assumptions", "Amount [CZK]"})
	meal.Append([]string{"Daily meal", strconv.Itoa(a.DailyMeal)})
	meal.Render()
	fmt.Fprintln(w)
}

// WriteGnucash renders the payslip as a ledger-friendly double-entry table.
func WriteGnucash(w io.Writer, slip *models.Payslip) {
	mealTotal := int(math.Round(float64(slip.MealDeduction.Or(0)) / verify.MealEmployeeShare))
	employerMeal := int(math.Round(float64(mealTotal) * (1 - verify.MealEmployeeShare)))

	table := newTable(w, []string{"Account", "To", "From"})
	table.Append([]string{"Bank", strconv.Itoa(slip.Bank), ""})
	table.Append([]string{"Meal tickets", strconv.Itoa(mealTotal), ""})
	table.Append([]string{"Income tax", strconv.Itoa(slip.TaxIncome.Or(0)), ""})
	table.Append([]string{"Social tax", strconv.Itoa(slip.TaxSocial.Or(0)), ""})
	table.Append([]string{"Health tax", strconv.Itoa(slip.TaxHealth.Or(0)), ""})
	table.Append([]string{"Monthly salary", "", strconv.Itoa(slip.Gross - slip.Bonuses)})
	table.Append([]string{"Meal contribution", "", strconv.Itoa(employerMeal)})
	if travel := slip.TravelExpense.Or(0); travel != 0 {
		table.Append([]string{"Travel expenses", "", strconv.Itoa(-travel)})
	}
	if slip.Bonuses != 0 {
		table.Append([]string{"Bonuses", "", strconv.Itoa(slip.Bonuses)})
	}
	if recon := slip.TaxRecon.Or(0); recon != 0 {
		table.Append([]string{"Tax reconciliation", "", strconv.Itoa(-recon)})
	}
	table.Render()
}
