package period

import (
	"fmt"
	"time"

	"github.com/de-tools/trade-radar/pkg/models/domain"
)

// Selection describes how the two comparison windows are derived.
type Selection struct {
	Policy domain.PeriodPolicy
	// N is the number of months or years for the rolling policies.
	N      int
	Custom *CustomBounds
}

// CustomBounds holds explicit [start, end] endpoints for each window.
type CustomBounds struct {
	Current []time.Time
	Past    []time.Time
}

var yearSpans = map[domain.PeriodPolicy]int{
	domain.PolicyYear:  1,
	domain.PolicyYear3: 3,
	domain.PolicyYear5: 5,
}

// Policies lists every supported period policy in presentation order.
func Policies() []domain.PeriodPolicy {
	return []domain.PeriodPolicy{
		domain.PolicyMonth,
		domain.PolicyQuarter,
		domain.PolicyHalf,
		domain.PolicyYear,
		domain.PolicyYear3,
		domain.PolicyYear5,
		domain.PolicyRollingMonths,
		domain.PolicyRollingYears,
		domain.PolicyCustom,
	}
}

// Resolve computes the current and past windows for the reference date.
func Resolve(ref time.Time, sel Selection) (domain.Windows, error) {
	ref = domain.Date(ref)

	switch sel.Policy {
	case domain.PolicyMonth:
		return precedingUnit(sel.Policy, domain.GranularityMonth, ref, firstOfMonth), nil
	case domain.PolicyQuarter:
		return precedingUnit(sel.Policy, domain.GranularityQuarter, ref, firstOfQuarter), nil
	case domain.PolicyHalf:
		return precedingUnit(sel.Policy, domain.GranularityHalfYear, ref, firstOfHalf), nil
	case domain.PolicyYear, domain.PolicyYear3, domain.PolicyYear5:
		return yearComparison(sel.Policy, ref, yearSpans[sel.Policy]), nil
	case domain.PolicyRollingMonths:
		if sel.N < 1 {
			return domain.Windows{}, fmt.Errorf("%w: rolling window needs at least 1 month, got %d",
				domain.ErrInvalidPeriodSelection, sel.N)
		}
		return rolling(sel.Policy, domain.GranularityMonth, ref, func(t time.Time) time.Time {
			return addMonths(t, -sel.N)
		}), nil
	case domain.PolicyRollingYears:
		if sel.N < 1 {
			return domain.Windows{}, fmt.Errorf("%w: rolling window needs at least 1 year, got %d",
				domain.ErrInvalidPeriodSelection, sel.N)
		}
		return rolling(sel.Policy, domain.GranularityYear, ref, func(t time.Time) time.Time {
			return addYears(t, -sel.N)
		}), nil
	case domain.PolicyCustom:
		return custom(sel.Custom)
	default:
		return domain.Windows{}, fmt.Errorf("%w: unknown policy %q", domain.ErrInvalidPeriodSelection, sel.Policy)
	}
}

// precedingUnit compares the calendar unit to date against the whole unit before it.
func precedingUnit(
	policy domain.PeriodPolicy,
	granularity domain.Granularity,
	ref time.Time,
	unitStart func(time.Time) time.Time,
) domain.Windows {
	currStart := unitStart(ref)
	pastEnd := currStart.AddDate(0, 0, -1)

	return domain.Windows{
		Policy:      policy,
		Granularity: granularity,
		Current:     domain.Window{Start: currStart, End: ref},
		Past:        domain.Window{Start: unitStart(pastEnd), End: pastEnd},
	}
}

// yearComparison compares the reference year to date with the full calendar year
// `years` back.
func yearComparison(policy domain.PeriodPolicy, ref time.Time, years int) domain.Windows {
	currStart := firstOfYear(ref)
	pastStart := addYears(currStart, -years)

	return domain.Windows{
		Policy:      policy,
		Granularity: domain.GranularityYear,
		Current:     domain.Window{Start: currStart, End: ref},
		Past:        domain.Window{Start: pastStart, End: lastOfYear(pastStart)},
	}
}

// rolling builds back-to-back windows of identical length ending at ref.
func rolling(
	policy domain.PeriodPolicy,
	granularity domain.Granularity,
	ref time.Time,
	shift func(time.Time) time.Time,
) domain.Windows {
	current := domain.Window{Start: shift(ref).AddDate(0, 0, 1), End: ref}
	pastEnd := current.Start.AddDate(0, 0, -1)

	return domain.Windows{
		Policy:      policy,
		Granularity: granularity,
		Current:     current,
		Past:        domain.Window{Start: pastEnd.AddDate(0, 0, -(current.Days() - 1)), End: pastEnd},
	}
}

func custom(bounds *CustomBounds) (domain.Windows, error) {
	if bounds == nil {
		return domain.Windows{}, fmt.Errorf("%w: custom bounds are required", domain.ErrInvalidPeriodSelection)
	}

	current, err := customWindow("current", bounds.Current)
	if err != nil {
		return domain.Windows{}, err
	}
	past, err := customWindow("past", bounds.Past)
	if err != nil {
		return domain.Windows{}, err
	}

	return domain.Windows{
		Policy:      domain.PolicyCustom,
		Granularity: domain.GranularityYear,
		Current:     current,
		Past:        past,
	}, nil
}

func customWindow(name string, endpoints []time.Time) (domain.Window, error) {
	if len(endpoints) != 2 {
		return domain.Window{}, fmt.Errorf("%w: %s window needs exactly a start and an end, got %d endpoint(s)",
			domain.ErrInvalidPeriodSelection, name, len(endpoints))
	}

	w := domain.Window{Start: domain.Date(endpoints[0]), End: domain.Date(endpoints[1])}
	if w.Start.After(w.End) {
		return domain.Window{}, fmt.Errorf("%w: %s window starts after it ends (%s)",
			domain.ErrInvalidPeriodSelection, name, w)
	}
	return w, nil
}
