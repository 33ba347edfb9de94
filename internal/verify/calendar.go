package verify

import "time"

type dayMonth struct {
	Day   int
	Month int
}

// Czech state holidays with fixed dates.
var stateHolidays = []dayMonth{
	{1, 1}, {1, 5}, {8, 5}, {5, 7}, {6, 7}, {28, 9},
	{28, 10}, {17, 11}, {24, 12}, {25, 12}, {26, 12},
}

// Good Friday and Easter Monday fell on these dates in 2016, the year the
// employer started honoring them. Kept as explicit historical data; the
// governing rule is undocumented.
var extraHolidays2016 = []dayMonth{{25, 3}, {28, 3}}

// StateHolidayWorkdays counts the state holidays in the given month that
// fall on a workday (Mon-Fri). Holidays landing on a weekend don't reduce
// the month's working days and are left out.
func StateHolidayWorkdays(month, year int) int {
	holidays := stateHolidays
	if year == 2016 {
		holidays = append(append([]dayMonth{}, holidays...), extraHolidays2016...)
	}

	counted := 0
	for _, h := range holidays {
		if h.Month != month {
			continue
		}
		wd := time.Date(year, time.Month(h.Month), h.Day, 0, 0, 0, 0, time.UTC).Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			counted++
		}
	}
	return counted
}
