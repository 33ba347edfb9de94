// Package parser locates and parses payslip fields out of the line-indexed
// text layer. Scalar fields are resolved by anchor search plus fixed line
// offsets; the holiday and tax blocks have their own variable-geometry
// parsers (holiday.go, tax.go).
package parser

import (
	"fmt"
	"strings"
	"sync"

	"github.com/radomirbosak/platext/internal/document"
	"github.com/radomirbosak/platext/internal/models"
)

type fieldKind int

const (
	kindAmount fieldKind = iota
	kindHours
	kindDecimal
	kindText
)

// presenceDelta shifts a field's offset when an optional marker line is
// present: offset = base + delta·presence(anchor).
type presenceDelta struct {
	anchor string
	delta  int
}

// fieldSpec describes how one scalar field is derived from the document.
// With anchor == "" the line index is absolute. Multiple offsets mean the
// target lines are concatenated before parsing.
type fieldSpec struct {
	anchor  string
	line    int
	offsets []int
	deltas  []presenceDelta
	kind    fieldKind
}

var fieldSpecs = map[string]fieldSpec{
	"period":           {line: 4, offsets: []int{0}, kind: kindText},
	"base":             {anchor: anchorBaseSalary, offsets: []int{4}, kind: kindAmount},
	"bank":             {anchor: anchorOneOne, offsets: []int{-2}, deltas: []presenceDelta{{anchorTelefon, -2}}, kind: kindAmount},
	"gross":            {anchor: anchorNetSalary, offsets: []int{-3}, kind: kindAmount},
	"net":              {anchor: anchorSickPayments, offsets: []int{-2}, kind: kindAmount},
	"hours_expected":   {anchor: anchorWorkingHours, offsets: []int{4}, kind: kindHours},
	"hours_worked":     {anchor: anchorWorkingHours, offsets: []int{5}, kind: kindHours},
	"average_earnings": {anchor: anchorAvgEarnings, offsets: []int{4}, kind: kindDecimal},
}

// Extractor resolves payslip fields from one Document. Every accessor
// re-derives its value from the document; the tax block alone is memoized
// as a pure compute-once cache.
type Extractor struct {
	doc *document.Document

	taxOnce  sync.Once
	taxBlock *models.TaxBlock
	taxErr   error
}

// New returns an Extractor over the given document.
func New(doc *document.Document) *Extractor {
	return &Extractor{doc: doc}
}

// Doc exposes the underlying document for presence probes.
func (e *Extractor) Doc() *document.Document {
	return e.doc
}

// resolveRaw computes the target line index(es) for a field and returns
// their concatenated content.
func (e *Extractor) resolveRaw(name string) (string, error) {
	spec, ok := fieldSpecs[name]
	if !ok {
		return "", fmt.Errorf("unknown field %q", name)
	}

	base := spec.line
	if spec.anchor != "" {
		idx, err := e.doc.Find(spec.anchor)
		if err != nil {
			return "", fmt.Errorf("field %q: %w", name, err)
		}
		base = idx
	}

	shift := 0
	for _, d := range spec.deltas {
		if e.doc.Contains(d.anchor) {
			shift += d.delta
		}
	}

	var sb strings.Builder
	for _, off := range spec.offsets {
		line, err := e.doc.Line(base + off + shift)
		if err != nil {
			return "", fmt.Errorf("field %q: %w", name, err)
		}
		sb.WriteString(line)
	}
	return sb.String(), nil
}

func (e *Extractor) amountField(name string) (int, error) {
	raw, err := e.resolveRaw(name)
	if err != nil {
		return 0, err
	}
	v, err := ParseAmount(raw)
	if err != nil {
		return 0, &ParseError{Field: name, Fragments: []string{raw}}
	}
	return v, nil
}

func (e *Extractor) hoursField(name string) (int, error) {
	raw, err := e.resolveRaw(name)
	if err != nil {
		return 0, err
	}
	v, err := ParseHours(raw)
	if err != nil {
		return 0, &ParseError{Field: name, Fragments: []string{raw}}
	}
	return v, nil
}

// Period returns the free-text payslip period, e.g. "May 2016".
func (e *Extractor) Period() (string, error) {
	raw, err := e.resolveRaw("period")
	if err != nil {
		return "", err
	}
	_, rest, found := strings.Cut(raw, ":")
	if !found {
		return "", &ParseError{Field: "period", Fragments: []string{raw}}
	}
	return strings.TrimSpace(rest), nil
}

var monthsByName = map[string]int{
	"January": 1, "February": 2, "March": 3, "April": 4,
	"May": 5, "June": 6, "July": 7, "August": 8,
	"September": 9, "October": 10, "November": 11, "December": 12,
}

// Month returns the payslip month number (1-12).
func (e *Extractor) Month() (int, error) {
	period, err := e.Period()
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(period)
	if len(fields) < 2 {
		return 0, &ParseError{Field: "month", Fragments: []string{period}}
	}
	m, ok := monthsByName[fields[0]]
	if !ok {
		return 0, &ParseError{Field: "month", Fragments: []string{fields[0]}}
	}
	return m, nil
}

// Year returns the payslip year.
func (e *Extractor) Year() (int, error) {
	period, err := e.Period()
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(period)
	if len(fields) < 2 {
		return 0, &ParseError{Field: "year", Fragments: []string{period}}
	}
	var y int
	if _, err := fmt.Sscanf(fields[1], "%d", &y); err != nil {
		return 0, &ParseError{Field: "year", Fragments: []string{fields[1]}}
	}
	return y, nil
}

// Base returns the monthly base salary.
func (e *Extractor) Base() (int, error) { return e.amountField("base") }

// Bank returns the amount transferred to the bank account.
func (e *Extractor) Bank() (int, error) { return e.amountField("bank") }

// Gross returns the gross salary.
func (e *Extractor) Gross() (int, error) { return e.amountField("gross") }

// Net returns the net salary.
func (e *Extractor) Net() (int, error) { return e.amountField("net") }

// HoursExpected returns the month's expected working hours.
func (e *Extractor) HoursExpected() (int, error) { return e.hoursField("hours_expected") }

// HoursWorked returns the hours actually worked.
func (e *Extractor) HoursWorked() (int, error) { return e.hoursField("hours_worked") }

// AverageEarnings returns the average hourly earnings over the previous
// quarter. Unlike amounts this keeps its fractional part.
func (e *Extractor) AverageEarnings() (float64, error) {
	raw, err := e.resolveRaw("average_earnings")
	if err != nil {
		return 0, err
	}
	v, err := ParseDecimal(raw)
	if err != nil {
		return 0, &ParseError{Field: "average_earnings", Fragments: []string{raw}}
	}
	return v, nil
}

// Extract resolves every payslip field, failing fast on the first error.
func (e *Extractor) Extract() (*models.Payslip, error) {
	slip := &models.Payslip{}
	var err error

	if slip.Period, err = e.Period(); err != nil {
		return nil, err
	}
	if slip.Month, err = e.Month(); err != nil {
		return nil, err
	}
	if slip.Year, err = e.Year(); err != nil {
		return nil, err
	}
	if slip.Base, err = e.Base(); err != nil {
		return nil, err
	}
	if slip.Bank, err = e.Bank(); err != nil {
		return nil, err
	}
	if slip.Gross, err = e.Gross(); err != nil {
		return nil, err
	}
	if slip.Net, err = e.Net(); err != nil {
		return nil, err
	}
	if slip.HoursExpected, err = e.HoursExpected(); err != nil {
		return nil, err
	}
	if slip.HoursWorked, err = e.HoursWorked(); err != nil {
		return nil, err
	}
	if slip.AverageEarnings, err = e.AverageEarnings(); err != nil {
		return nil, err
	}

	if slip.Holidays, err = e.HolidayBlock(); err != nil {
		return nil, err
	}
	if slip.HoursHoliday, err = e.HolidayHours(); err != nil {
		return nil, err
	}
	if slip.Bonuses, err = e.Bonuses(); err != nil {
		return nil, err
	}

	if slip.Taxes, err = e.TaxBlock(); err != nil {
		return nil, err
	}
	slip.TaxAdvance = slip.Taxes.Optional(LabelTaxAdvance)
	slip.TaxRelief = slip.Taxes.Optional(LabelTaxRelief)
	slip.TaxIncome = slip.Taxes.Optional(LabelTaxWithheld)
	slip.TaxSocial = slip.Taxes.Optional(LabelTaxSocial)
	slip.TaxHealth = slip.Taxes.Optional(LabelTaxHealth)
	slip.TaxRecon = slip.Taxes.Optional(LabelTaxAnnualRecon)
	slip.MealDeduction = slip.Taxes.Optional(LabelMealDeduction)
	slip.TravelExpense = slip.Taxes.Optional(LabelTravelExpenses)

	return slip, nil
}

// ExtractAll resolves every field like Extract but collects per-field
// errors instead of failing fast. Intended for diagnostics; independent
// fields still extract when one of them fails.
func (e *Extractor) ExtractAll() (*models.Payslip, []error) {
	var errs []error
	slip := &models.Payslip{}

	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	var err error
	slip.Period, err = e.Period()
	collect(err)
	slip.Month, err = e.Month()
	collect(err)
	slip.Year, err = e.Year()
	collect(err)
	slip.Base, err = e.Base()
	collect(err)
	slip.Bank, err = e.Bank()
	collect(err)
	slip.Gross, err = e.Gross()
	collect(err)
	slip.Net, err = e.Net()
	collect(err)
	slip.HoursExpected, err = e.HoursExpected()
	collect(err)
	slip.HoursWorked, err = e.HoursWorked()
	collect(err)
	slip.AverageEarnings, err = e.AverageEarnings()
	collect(err)
	slip.Holidays, err = e.HolidayBlock()
	collect(err)
	slip.HoursHoliday, err = e.HolidayHours()
	collect(err)
	slip.Bonuses, err = e.Bonuses()
	collect(err)

	slip.Taxes, err = e.TaxBlock()
	collect(err)
	if slip.Taxes != nil {
		slip.TaxAdvance = slip.Taxes.Optional(LabelTaxAdvance)
		slip.TaxRelief = slip.Taxes.Optional(LabelTaxRelief)
		slip.TaxIncome = slip.Taxes.Optional(LabelTaxWithheld)
		slip.TaxSocial = slip.Taxes.Optional(LabelTaxSocial)
		slip.TaxHealth = slip.Taxes.Optional(LabelTaxHealth)
		slip.TaxRecon = slip.Taxes.Optional(LabelTaxAnnualRecon)
		slip.MealDeduction = slip.Taxes.Optional(LabelMealDeduction)
		slip.TravelExpense = slip.Taxes.Optional(LabelTravelExpenses)
	}

	return slip, errs
}
