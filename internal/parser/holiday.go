package parser

import (
	"fmt"
	"regexp"

	"github.com/radomirbosak/platext/internal/models"
)

// The five holiday block entry classes. A run of the block consists of
// consecutive lines each matching one of these.
var (
	reHoliday     = regexp.MustCompile(`^Holiday [\d,]+d`)
	reUnpaidLeave = regexp.MustCompile(`^Omluv.*`)
	reBaseCarry   = regexp.MustCompile(`^Base salary`)
	reBonus       = regexp.MustCompile(`^Bonus CZK`)
	reVacationPay = regexp.MustCompile(`^Summer vacation pay`)
)

// classifyHoliday reports which entry class a description line belongs to.
func classifyHoliday(line string) (models.HolidayKind, bool) {
	switch {
	case reHoliday.MatchString(line):
		return models.KindHoliday, true
	case reUnpaidLeave.MatchString(line):
		return models.KindUnpaidLeave, true
	case reBaseCarry.MatchString(line):
		return models.KindBaseSalary, true
	case reBonus.MatchString(line):
		return models.KindBonus, true
	case reVacationPay.MatchString(line):
		return models.KindVacationPay, true
	}
	return "", false
}

// holidayLayout tags which of the two structural payslip variants carries
// the holiday block. Resolved once per document by probing the line after
// the "Illness" marker.
type holidayLayout int

const (
	// layoutColumns: newer slips print descriptions, hours and amounts in
	// three separate page regions whose positions float with the block
	// length.
	layoutColumns holidayLayout = iota
	// layoutGrouped: older slips repeat fixed groups of four lines per
	// entry and print no hours column.
	layoutGrouped
)

func (e *Extractor) holidayLayoutAndStart() (holidayLayout, int, error) {
	illIdx, err := e.doc.Find(anchorIllness)
	if err != nil {
		return 0, 0, err
	}
	probe, err := e.doc.Line(illIdx + 1)
	if err == nil && probe == anchorBaseSalary {
		return layoutColumns, illIdx + 1, nil
	}
	taxBaseIdx, err := e.doc.Find(anchorTaxBase)
	if err != nil {
		return 0, 0, err
	}
	return layoutGrouped, taxBaseIdx + 2, nil
}

// HolidayBlock extracts the ordered holiday/leave/bonus entries.
func (e *Extractor) HolidayBlock() ([]models.HolidayEntry, error) {
	layout, start, err := e.holidayLayoutAndStart()
	if err != nil {
		return nil, err
	}
	if layout == layoutGrouped {
		return e.holidayGrouped(start)
	}
	return e.holidayColumns(start)
}

// holidayColumns handles the newer layout. The run length n is measured
// first; all three column start positions are then recomputed from n,
// since the columns sit in page regions that shift with the block size.
func (e *Extractor) holidayColumns(start int) ([]models.HolidayEntry, error) {
	end := start
	for end < e.doc.Len() {
		line, _ := e.doc.Line(end)
		if _, ok := classifyHoliday(line); !ok {
			break
		}
		end++
	}
	if end == e.doc.Len() {
		return nil, &StructuralError{Msg: "holiday block run does not terminate within the document"}
	}
	n := end - start
	if n == 0 {
		return nil, nil
	}

	holIdx, err := e.doc.Find(anchorHolidayBalance)
	if err != nil {
		return nil, err
	}
	advIdx, err := e.doc.Find(LabelTaxAdvance)
	if err != nil {
		return nil, err
	}

	descs := e.doc.Slice(start, start+n)
	hoursStart := holIdx + 3 + n
	hours := e.doc.Slice(hoursStart, hoursStart+n)
	cashStart := advIdx - n - 1
	cash := e.doc.Slice(cashStart, cashStart+n)

	if len(hours) < n || len(cash) < n {
		return nil, &StructuralError{
			Msg: fmt.Sprintf("holiday block columns shorter than run length %d", n),
		}
	}

	entries := make([]models.HolidayEntry, 0, n)
	for i := 0; i < n; i++ {
		kind, _ := classifyHoliday(descs[i])
		entry := models.HolidayEntry{Desc: descs[i], Kind: kind}

		h, err := ParseHours(hours[i])
		if err != nil {
			if kind == models.KindHoliday {
				return nil, &ParseError{Field: "holiday hours", Fragments: []string{hours[i]}}
			}
			h = models.HoursUnspecified
		}
		entry.Hours = h

		amt, err := ParseAmount(cash[i])
		if err != nil {
			// Only bonus-class amounts are consumed downstream.
			if kind == models.KindBonus || kind == models.KindVacationPay {
				return nil, &ParseError{Field: "holiday amount", Fragments: []string{cash[i]}}
			}
			amt = 0
		}
		entry.Amount = amt

		entries = append(entries, entry)
	}
	return entries, nil
}

// holidayGrouped handles the older layout: fixed-stride groups of four
// lines, description first, amount third, no hours printed.
func (e *Extractor) holidayGrouped(start int) ([]models.HolidayEntry, error) {
	var entries []models.HolidayEntry
	for i := start; ; i += 4 {
		if i >= e.doc.Len() {
			return nil, &StructuralError{Msg: "grouped holiday block run does not terminate within the document"}
		}
		line, _ := e.doc.Line(i)
		kind, ok := classifyHoliday(line)
		if !ok {
			break
		}
		cashLine, err := e.doc.Line(i + 2)
		if err != nil {
			return nil, &StructuralError{
				Msg: fmt.Sprintf("grouped holiday entry at line %d has no amount line", i),
			}
		}
		amt, err := ParseAmount(cashLine)
		if err != nil {
			if kind == models.KindBonus || kind == models.KindVacationPay {
				return nil, &ParseError{Field: "holiday amount", Fragments: []string{cashLine}}
			}
			amt = 0
		}
		entries = append(entries, models.HolidayEntry{
			Desc:   line,
			Hours:  models.HoursUnspecified,
			Amount: amt,
			Kind:   kind,
		})
	}
	return entries, nil
}

// HolidayHours sums the hour counts of holiday-with-day-count entries.
// Entries without a printed hours column contribute zero.
func (e *Extractor) HolidayHours() (int, error) {
	entries, err := e.HolidayBlock()
	if err != nil {
		return 0, err
	}
	total := 0
	for _, entry := range entries {
		if entry.Kind == models.KindHoliday && entry.Hours != models.HoursUnspecified {
			total += entry.Hours
		}
	}
	return total, nil
}

// Bonuses sums the amounts of bonus and vacation-pay entries.
func (e *Extractor) Bonuses() (int, error) {
	entries, err := e.HolidayBlock()
	if err != nil {
		return 0, err
	}
	total := 0
	for _, entry := range entries {
		if entry.Kind == models.KindBonus || entry.Kind == models.KindVacationPay {
			total += entry.Amount
		}
	}
	return total, nil
}
