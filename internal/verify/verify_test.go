package verify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/radomirbosak/platext/internal/models"
)

// samplePayslip is a full month at 30 000 CZK base with no holidays,
// bonuses or travel. Every formula reconciles exactly.
func samplePayslip() *models.Payslip {
	return &models.Payslip{
		Period: "May 2016",
		Month:  5,
		Year:   2016,

		Base:  30000,
		Bank:  22020,
		Gross: 30000,
		Net:   22740,

		TaxAdvance:    models.Some(6030),
		TaxRelief:     models.Some(2070),
		TaxIncome:     models.Some(3960),
		TaxSocial:     models.Some(1950),
		TaxHealth:     models.Some(1350),
		MealDeduction: models.Some(720),

		HoursExpected:   160,
		HoursWorked:     160,
		AverageEarnings: 187.5,
	}
}

func TestVerifyAllOK(t *testing.T) {
	records := New(samplePayslip()).Verify()

	wantOrder := []string{
		"Gross", "Net", "Meal contrib.", "Bank",
		"Tax-advance", "Tax-income", "Tax-social", "Tax-health",
	}
	assert.Len(t, records, len(wantOrder))
	for i, rec := range records {
		assert.Equal(t, wantOrder[i], rec.Category)
		assert.Equal(t, models.StatusOK, rec.Status, "category %s", rec.Category)
		assert.Equal(t, rec.Claimed, rec.Calculated, "category %s", rec.Category)
	}
}

func TestVerifyGrossRoundsPerHolidayEntry(t *testing.T) {
	// 8h and 4h at 123.45/h round to 988 + 494 = 1482. Rounding the
	// combined 12h once would give 1481, which must not match.
	slip := samplePayslip()
	slip.Base = 16000
	slip.HoursWorked = 152
	slip.AverageEarnings = 123.45
	slip.Holidays = []models.HolidayEntry{
		{Desc: "Holiday 1,0d", Hours: 8, Kind: models.KindHoliday},
		{Desc: "Holiday 0,5d", Hours: 4, Kind: models.KindHoliday},
	}
	slip.Gross = 15200 + 1482

	rec := New(slip).VerifyGross()
	assert.Equal(t, models.StatusOK, rec.Status)
	assert.Equal(t, float64(16682), rec.Calculated)
}

func TestVerifyGrossSkipsNonHolidayEntries(t *testing.T) {
	slip := samplePayslip()
	slip.Holidays = []models.HolidayEntry{
		{Desc: "Base salary", Kind: models.KindBaseSalary, Amount: 30000},
		{Desc: "Bonus CZK", Kind: models.KindBonus, Amount: 5000},
		{Desc: "Holiday 0,0d", Hours: models.HoursUnspecified, Kind: models.KindHoliday},
	}
	slip.Bonuses = 5000
	slip.Gross = 35000

	rec := New(slip).VerifyGross()
	assert.Equal(t, models.StatusOK, rec.Status)
	assert.Equal(t, float64(35000), rec.Calculated)
}

func TestVerifyNetIgnoresTravelExpenses(t *testing.T) {
	// Travel is reimbursed out of the bank transfer, not out of net pay.
	slip := samplePayslip()
	slip.TravelExpense = models.Some(500)
	slip.Bank = 22020 - 500

	v := New(slip)
	net := v.VerifyNet()
	assert.Equal(t, models.StatusOK, net.Status)
	assert.Equal(t, float64(22740), net.Calculated)

	bank := v.VerifyBank()
	assert.Equal(t, models.StatusOK, bank.Status)
	assert.Equal(t, float64(21520), bank.Calculated)
}

func TestVerifyNetIncludesReconciliation(t *testing.T) {
	slip := samplePayslip()
	slip.TaxRecon = models.Some(-1234)
	slip.Net = 22740 + 1234
	slip.Bank = slip.Net - 720

	rec := New(slip).VerifyNet()
	assert.Equal(t, models.StatusOK, rec.Status)
	assert.Equal(t, float64(23974), rec.Calculated)
}

func TestVerifyMealOnlyWarns(t *testing.T) {
	slip := samplePayslip()
	slip.MealDeduction = models.Some(684)

	rec := New(slip).VerifyMeal()
	assert.Equal(t, models.StatusWarn, rec.Status)
	assert.Equal(t, float64(684), rec.Claimed)
	assert.Equal(t, float64(720), rec.Calculated)
	assert.Equal(t, float64(-36), rec.Difference)
}

func TestVerifyFailOnMismatch(t *testing.T) {
	slip := samplePayslip()
	slip.Net = 22000

	rec := New(slip).VerifyNet()
	assert.Equal(t, models.StatusFail, rec.Status)
	assert.Equal(t, float64(-740), rec.Difference)
}

func TestTaxFormulas(t *testing.T) {
	tests := []struct {
		gross   int
		advance float64
		social  float64
		health  float64
	}{
		// 30 000 * 1.34 = 40 200 is already a multiple of 100.
		{gross: 30000, advance: 6030, social: 1950, health: 1350},
		// 30 100 * 1.34 = 40 334 rounds up to 40 400; the percentage
		// taxes round up to whole crowns.
		{gross: 30100, advance: 6060, social: 1957, health: 1355},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("gross %d", tt.gross), func(t *testing.T) {
			slip := samplePayslip()
			slip.Gross = tt.gross
			v := New(slip)
			assert.Equal(t, tt.advance, v.VerifyTaxAdvance().Calculated)
			assert.Equal(t, tt.social, v.VerifyTaxSocial().Calculated)
			assert.Equal(t, tt.health, v.VerifyTaxHealth().Calculated)
		})
	}
}

func TestVerifyTaxIncomeAppliesRelief(t *testing.T) {
	rec := New(samplePayslip()).VerifyTaxIncome()
	assert.Equal(t, float64(6030-2070), rec.Calculated)
}

func TestWarnings(t *testing.T) {
	tests := []struct {
		name    string
		claimed int
		want    []string
	}{
		{name: "exact", claimed: 720, want: nil},
		{
			name:    "one day missing",
			claimed: 684,
			want:    []string{"You are missing 1 days in meal tickets. Maybe 1 sickdays?"},
		},
		{
			name:    "one day extra",
			claimed: 756,
			want:    []string{"You have 1 days worth of meal tickets more."},
		},
		{
			// 47/36 days snaps to the nearest whole day.
			name:    "near miss snaps",
			claimed: 673,
			want:    []string{"You are missing 1 days in meal tickets. Maybe 1 sickdays?"},
		},
		{
			// Exactly one and a half days stays fractional.
			name:    "half day stays",
			claimed: 666,
			want:    []string{"You are missing 1.5 days in meal tickets. Maybe 1.5 sickdays?"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slip := samplePayslip()
			slip.MealDeduction = models.Some(tt.claimed)
			assert.Equal(t, tt.want, New(slip).Warnings())
		})
	}
}

func TestAssumptions(t *testing.T) {
	slip := samplePayslip()
	slip.Bonuses = 5000
	slip.HoursHoliday = 16

	got := New(slip).Assumptions()
	assert.Equal(t, Assumptions{
		Base:            30000,
		Bonuses:         5000,
		AverageEarnings: 187.5,
		HoursExpected:   160,
		HoursWorked:     160,
		HoursHoliday:    16,
		DailyMeal:       80,
	}, got)
}
