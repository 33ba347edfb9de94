// Package verify recomputes payslip figures from known Czech tax and
// benefit formulas and classifies each against the value the payslip
// claims. Verification failures are reported, never fatal.
package verify

import (
	"fmt"
	"math"

	"github.com/radomirbosak/platext/internal/models"
)

// Formula constants. Rates match the payroll rules of the slips' era;
// MealEmployeeShare is the employee's part of a meal ticket.
const (
	DailyMealValue    = 80
	MealEmployeeShare = 0.45
	FactorSupergross  = 1.34
	FactorTaxIncome   = 0.15
	FactorTaxSocial   = 0.065
	FactorTaxHealth   = 0.045
	TaxpayerRelief    = 2070
)

// Categories that only warn: their formulas are heuristics, not exact
// reconciliations.
const categoryMeal = "Meal contrib."

// Verifier runs the reconciliation checks over one extracted payslip.
// It is a stateless transform; every check is an independent computation.
type Verifier struct {
	slip *models.Payslip
}

// New returns a Verifier over the extracted payslip.
func New(slip *models.Payslip) *Verifier {
	return &Verifier{slip: slip}
}

func record(category string, claimed, calculated float64) models.Record {
	rec := models.Record{
		Category:   category,
		Claimed:    claimed,
		Calculated: calculated,
		Status:     models.StatusOK,
	}
	if claimed != calculated {
		rec.Status = models.StatusFail
		if category == categoryMeal {
			rec.Status = models.StatusWarn
		}
		rec.Difference = claimed - calculated
	}
	return rec
}

func ceil100(x float64) float64 {
	return 100 * math.Ceil(x/100)
}

// VerifyGross recomputes gross pay: the worked share of the base salary,
// plus each holiday entry's hours priced at the average hourly earnings
// (rounded per entry), plus bonuses.
func (v *Verifier) VerifyGross() models.Record {
	s := v.slip
	holidayMoney := 0
	for _, entry := range s.Holidays {
		if entry.Kind != models.KindHoliday {
			continue
		}
		hours := entry.Hours
		if hours == models.HoursUnspecified {
			hours = 0
		}
		holidayMoney += int(math.Round(float64(hours) * s.AverageEarnings))
	}
	calc := math.Round(float64(s.HoursWorked)/float64(s.HoursExpected)*float64(s.Base) +
		float64(holidayMoney) + float64(s.Bonuses))
	return record("Gross", float64(s.Gross), calc)
}

// VerifyTaxAdvance recomputes the withholding-tax advance from the
// supergross base, rounded up to the next multiple of 100.
func (v *Verifier) VerifyTaxAdvance() models.Record {
	supergross := ceil100(float64(v.slip.Gross) * FactorSupergross)
	calc := supergross * FactorTaxIncome
	return record("Tax-advance", float64(v.slip.TaxAdvance.Or(0)), calc)
}

// VerifyTaxIncome recomputes the income tax after the taxpayer relief.
func (v *Verifier) VerifyTaxIncome() models.Record {
	calc := float64(v.slip.TaxAdvance.Or(0) - TaxpayerRelief)
	return record("Tax-income", float64(v.slip.TaxIncome.Or(0)), calc)
}

// VerifyTaxSocial recomputes the social security tax.
func (v *Verifier) VerifyTaxSocial() models.Record {
	calc := math.Ceil(float64(v.slip.Gross) * FactorTaxSocial)
	return record("Tax-social", float64(v.slip.TaxSocial.Or(0)), calc)
}

// VerifyTaxHealth recomputes the health insurance tax.
func (v *Verifier) VerifyTaxHealth() models.Record {
	calc := math.Ceil(float64(v.slip.Gross) * FactorTaxHealth)
	return record("Tax-health", float64(v.slip.TaxHealth.Or(0)), calc)
}

// VerifyNet recomputes net pay as gross minus the three taxes and the
// annual reconciliation when present. Travel expenses deliberately do not
// enter here: they are reimbursed before the bank transfer instead, see
// VerifyBank.
func (v *Verifier) VerifyNet() models.Record {
	s := v.slip
	taxes := s.TaxIncome.Or(0) + s.TaxSocial.Or(0) + s.TaxHealth.Or(0) + s.TaxRecon.Or(0)
	calc := float64(s.Gross - taxes)
	return record("Net", float64(s.Net), calc)
}

// VerifyBank recomputes the bank transfer as net minus the meal deduction
// and travel expenses.
func (v *Verifier) VerifyBank() models.Record {
	s := v.slip
	calc := float64(s.Net - s.MealDeduction.Or(0) - s.TravelExpense.Or(0))
	return record("Bank", float64(s.Bank), calc)
}

// VerifyMeal estimates the expected meal-voucher deduction from the days
// actually worked. Half-days are paid, so eligible days round up. This is
// a heuristic: the result can only WARN.
func (v *Verifier) VerifyMeal() models.Record {
	s := v.slip
	eligibleDays := math.Ceil(float64(s.HoursWorked)/8 - float64(StateHolidayWorkdays(s.Month, s.Year)))
	shouldMeal := eligibleDays * DailyMealValue
	calc := shouldMeal * MealEmployeeShare
	return record(categoryMeal, float64(s.MealDeduction.Or(0)), calc)
}

// Verify runs every check and returns the records in report order.
func (v *Verifier) Verify() []models.Record {
	return []models.Record{
		v.VerifyGross(),
		v.VerifyNet(),
		v.VerifyMeal(),
		v.VerifyBank(),
		v.VerifyTaxAdvance(),
		v.VerifyTaxIncome(),
		v.VerifyTaxSocial(),
		v.VerifyTaxHealth(),
	}
}

// Warnings derives advisory messages from the meal-contribution gap: the
// implied number of missing or extra meal-ticket days, snapped to the
// nearest integer when within 0.4 of one.
func (v *Verifier) Warnings() []string {
	rec := v.VerifyMeal()
	difference := rec.Claimed - rec.Calculated
	days := -difference / (MealEmployeeShare * DailyMealValue)
	if math.Abs(days-math.Round(days)) < 0.4 {
		days = math.Round(days)
	}

	switch {
	case days > 0:
		return []string{fmt.Sprintf(
			"You are missing %v days in meal tickets. Maybe %v sickdays?", days, days)}
	case days < 0:
		return []string{fmt.Sprintf(
			"You have %v days worth of meal tickets more.", -days)}
	}
	return nil
}

// Assumptions lists the extracted inputs the formulas rely on, for the
// verification report's assumptions tables.
type Assumptions struct {
	Base                 int
	Bonuses              int
	TravelExpense        int
	AverageEarnings      float64
	HoursExpected        int
	HoursWorked          int
	HoursHoliday         int
	StateHolidayWorkdays int
	DailyMeal            int
}

// Assumptions returns the inputs used by this verifier.
func (v *Verifier) Assumptions() Assumptions {
	s := v.slip
	return Assumptions{
		Base:                 s.Base,
		Bonuses:              s.Bonuses,
		TravelExpense:        s.TravelExpense.Or(0),
		AverageEarnings:      s.AverageEarnings,
		HoursExpected:        s.HoursExpected,
		HoursWorked:          s.HoursWorked,
		HoursHoliday:         s.HoursHoliday,
		StateHolidayWorkdays: StateHolidayWorkdays(s.Month, s.Year),
		DailyMeal:            DailyMealValue,
	}
}
