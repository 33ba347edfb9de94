package models

// Amount is an optional whole-currency value. Optional payslip figures
// (travel expenses, annual tax reconciliation) are absent rather than zero,
// and downstream formulas substitute zero explicitly.
type Amount struct {
	Value   int  `json:"value"`
	Present bool `json:"present"`
}

// Some returns a present Amount.
func Some(v int) Amount {
	return Amount{Value: v, Present: true}
}

// Or returns the value, or def when the amount is absent.
func (a Amount) Or(def int) int {
	if !a.Present {
		return def
	}
	return a.Value
}

// HolidayKind classifies a holiday block entry.
type HolidayKind string

const (
	KindHoliday     HolidayKind = "holiday"      // "Holiday 2,5d ..."
	KindUnpaidLeave HolidayKind = "unpaid"       // excused unpaid leave
	KindBaseSalary  HolidayKind = "base_salary"  // base salary carry-over row
	KindBonus       HolidayKind = "bonus"        // "Bonus CZK ..."
	KindVacationPay HolidayKind = "vacation_pay" // "Summer vacation pay"
)

// HoursUnspecified marks a holiday entry whose hours column is not printed
// (the older payslip layout predates the hours feature).
const HoursUnspecified = -1

// HolidayEntry is one row of the holiday block.
type HolidayEntry struct {
	Desc   string      `json:"desc"`
	Hours  int         `json:"hours"` // HoursUnspecified if not printed
	Amount int         `json:"amount"`
	Kind   HolidayKind `json:"kind"`
}

// Payslip holds every field extracted from one payslip document.
type Payslip struct {
	Period string `json:"period"`
	Month  int    `json:"month"`
	Year   int    `json:"year"`

	Base  int `json:"base"`
	Bank  int `json:"bank"`
	Gross int `json:"gross"`
	Net   int `json:"net"`

	TaxAdvance    Amount `json:"tax_advance"`
	TaxRelief     Amount `json:"tax_relief"`
	TaxIncome     Amount `json:"tax_income"`
	TaxSocial     Amount `json:"tax_social"`
	TaxHealth     Amount `json:"tax_health"`
	TaxRecon      Amount `json:"tax_recon"`
	MealDeduction Amount `json:"meal_deduction"`
	TravelExpense Amount `json:"travel_expense"`

	HoursExpected int `json:"hours_expected"`
	HoursWorked   int `json:"hours_worked"`
	HoursHoliday  int `json:"hours_holiday"`
	Bonuses       int `json:"bonuses"`

	AverageEarnings float64 `json:"average_earnings"`

	Holidays []HolidayEntry `json:"holidays,omitempty"`
	Taxes    *TaxBlock      `json:"taxes,omitempty"`
}

// Status is the verdict of a single verification check.
type Status string

const (
	StatusOK   Status = "OK"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Record is the outcome of verifying one payslip category: the value the
// payslip claims against the value recomputed from formula. Difference is
// claimed − calculated and only meaningful when the status is not OK.
type Record struct {
	Category   string  `json:"category"`
	Status     Status  `json:"status"`
	Claimed    float64 `json:"claimed"`
	Calculated float64 `json:"calculated"`
	Difference float64 `json:"difference,omitempty"`
}
