package parser

// Anchor texts: literal substrings used to locate lines in the payslip's
// text layer. Field positions are expressed as offsets relative to these.
const (
	anchorTelefon        = "Telefon: 225 335 126"
	anchorSickPayments   = "Sick payments"
	anchorOneOne         = "1/1"
	anchorBaseSalary     = "Base salary"
	anchorNetSalary      = "Net salary"
	anchorWorkingHours   = "Working hours"
	anchorVacationPay    = "vacation pay"
	anchorHolidayBalance = "Holiday balance"
	anchorIllness        = "Illness"
	anchorTaxBase        = "Tax base"
	anchorAvgEarnings    = "Average earnings"
)

// Tax block category labels. The set is closed; which members appear on a
// given payslip is data-dependent.
const (
	LabelTaxAdvance        = "Tax advance"
	LabelTaxRelief         = "Tax relief(§35ba)"
	LabelTaxAfterRelief    = "Tax after relief (§35ba)"
	LabelTaxWithheld       = "Tax withheld"
	LabelTaxAnnualRecon    = "Annual Tax Reconciliation"
	LabelTaxSocial         = "Social security"
	LabelTaxHealth         = "Health insurance"
	LabelTaxReliefTaxpayer = "Tax relief - taxpayer"
	LabelMealDeduction     = "Deduction - meals"
	LabelTravelExpenses    = "Travel Expenses"
)

// TaxLabels lists every recognized tax category in document-canonical order.
// The tax block parser keeps only the labels textually present.
var TaxLabels = []string{
	LabelTaxAdvance,
	LabelTaxRelief,
	LabelTaxAfterRelief,
	LabelTaxWithheld,
	LabelTaxAnnualRecon,
	LabelTaxSocial,
	LabelTaxHealth,
	LabelTaxReliefTaxpayer,
	LabelMealDeduction,
	LabelTravelExpenses,
}
