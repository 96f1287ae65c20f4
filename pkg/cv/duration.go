package cv

import (
	"fmt"
	"strings"
	"time"
)

// Date handling for the CV pipeline. Dates are stored as "YYYY-MM"; all
// arithmetic is in whole months, day-of-month is never modeled. "Now" is an
// explicit parameter everywhere so renders are reproducible under test.

var frenchMonths = [12]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// ParseMonth parses a "YYYY-MM" string as the first day of that month.
func ParseMonth(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatMonthYear renders a date as "mars 2020" (fr-FR, lowercase month).
func FormatMonthYear(t time.Time) string {
	return fmt.Sprintf("%s %d", frenchMonths[t.Month()-1], t.Year())
}

// MonthsBetween returns the whole-month difference, floored at zero.
func MonthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if months < 0 {
		return 0
	}
	return months
}

// ExperienceMonths computes the month span of one experience. Ongoing or
// end-less experiences run through now. Returns false when the start date is
// unparseable; such entries contribute nothing to aggregates.
func ExperienceMonths(e Experience, now time.Time) (int, bool) {
	start, ok := ParseMonth(e.StartDate)
	if !ok {
		return 0, false
	}
	end := now
	if !e.IsCurrent {
		if parsed, ok := ParseMonth(e.EndDate); ok {
			end = parsed
		}
	}
	return MonthsBetween(start, end), true
}

// FormatDuration renders a month count as a human duration:
// "Moins d'1 mois", "7 mois", "1 an", "4 ans et 3 mois".
func FormatDuration(months int) string {
	if months < 1 {
		return "Moins d'1 mois"
	}
	if months < 12 {
		return fmt.Sprintf("%d mois", months)
	}
	years := months / 12
	rest := months % 12
	label := fmt.Sprintf("%d an", years)
	if years > 1 {
		label += "s"
	}
	if rest > 0 {
		label += fmt.Sprintf(" et %d mois", rest)
	}
	return label
}

// ExperienceDuration is FormatDuration over one experience; empty string when
// the start date cannot be parsed.
func ExperienceDuration(e Experience, now time.Time) string {
	months, ok := ExperienceMonths(e, now)
	if !ok {
		return ""
	}
	return FormatDuration(months)
}

// ExperiencePeriod renders the period line: "mars 2020 - Présent" for ongoing
// experiences, "mars 2020 - juin 2022" otherwise. Empty when the start date
// cannot be parsed; a missing end date on a non-current entry reads as now.
func ExperiencePeriod(e Experience, now time.Time) string {
	start, ok := ParseMonth(e.StartDate)
	if !ok {
		return ""
	}
	if e.IsCurrent {
		return FormatMonthYear(start) + " - Présent"
	}
	end := now
	if parsed, ok := ParseMonth(e.EndDate); ok {
		end = parsed
	}
	return FormatMonthYear(start) + " - " + FormatMonthYear(end)
}

// TotalExperienceMonths sums month counts across all experiences, skipping
// entries with unparseable start dates.
func TotalExperienceMonths(experiences []Experience, now time.Time) int {
	total := 0
	for _, e := range experiences {
		if months, ok := ExperienceMonths(e, now); ok {
			total += months
		}
	}
	return total
}

// TotalExperienceLabel buckets a total month count into the coarse tenure
// label used by anonymous views. Deliberately coarse: precise tenure would
// narrow down who the candidate is.
func TotalExperienceLabel(months int) string {
	switch {
	case months < 1:
		return "Débutant"
	case months < 12:
		return fmt.Sprintf("%d mois", months)
	}
	years := months / 12
	switch {
	case years < 2:
		return "1 an"
	case years < 5:
		return fmt.Sprintf("%d ans", years)
	case years < 10:
		return "5+ ans"
	default:
		return "10+ ans"
	}
}
