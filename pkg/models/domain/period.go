package domain

import (
	"fmt"
	"time"
)

type PeriodPolicy string

const (
	PolicyMonth         PeriodPolicy = "month"
	PolicyQuarter       PeriodPolicy = "quarter"
	PolicyHalf          PeriodPolicy = "half"
	PolicyYear          PeriodPolicy = "year"
	PolicyYear3         PeriodPolicy = "year3"
	PolicyYear5         PeriodPolicy = "year5"
	PolicyRollingMonths PeriodPolicy = "rolling_months"
	PolicyRollingYears  PeriodPolicy = "rolling_years"
	PolicyCustom        PeriodPolicy = "custom"
)

// Granularity is the sub-period used for average periodic volume.
type Granularity string

const (
	GranularityMonth    Granularity = "Month"
	GranularityQuarter  Granularity = "Quarter"
	GranularityHalfYear Granularity = "HalfYear"
	GranularityYear     Granularity = "Year"
)

const dateLayout = "2006-01-02"

// Window is a closed date interval.
type Window struct {
	Start time.Time
	End   time.Time
}

// Days returns the inclusive number of calendar days in the window.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

func (w Window) String() string {
	return fmt.Sprintf("%s ~ %s", w.Start.Format(dateLayout), w.End.Format(dateLayout))
}

type Windows struct {
	Policy      PeriodPolicy
	Granularity Granularity
	Current     Window
	Past        Window
}

// LengthMismatch reports whether the two windows cover a different number of days.
func (w Windows) LengthMismatch() bool {
	return w.Current.Days() != w.Past.Days()
}

// Date truncates t to a calendar date at UTC midnight.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Warning returns the notice shown when the windows have different lengths, or "".
func (w Windows) Warning() string {
	if !w.LengthMismatch() {
		return ""
	}
	return fmt.Sprintf(
		"calendar windows differ in length (%d days vs %d days); volumes may not be directly comparable",
		w.Current.Days(), w.Past.Days(),
	)
}
