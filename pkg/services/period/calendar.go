package period

import "time"

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return date(year, month+1, 0).Day()
}

// addMonths shifts t by n calendar months, clamping the day to the target month's length.
func addMonths(t time.Time, n int) time.Time {
	total := int(t.Month()) - 1 + n
	year := t.Year() + floorDiv(total, 12)
	month := time.Month(floorMod(total, 12) + 1)

	day := t.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}
	return date(year, month, day)
}

func addYears(t time.Time, n int) time.Time {
	return addMonths(t, 12*n)
}

func firstOfMonth(t time.Time) time.Time {
	return date(t.Year(), t.Month(), 1)
}

func firstOfQuarter(t time.Time) time.Time {
	month := 3*((int(t.Month())-1)/3) + 1
	return date(t.Year(), time.Month(month), 1)
}

func firstOfHalf(t time.Time) time.Time {
	if t.Month() <= time.June {
		return date(t.Year(), time.January, 1)
	}
	return date(t.Year(), time.July, 1)
}

func firstOfYear(t time.Time) time.Time {
	return date(t.Year(), time.January, 1)
}

func lastOfYear(t time.Time) time.Time {
	return date(t.Year(), time.December, 31)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
