package cv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)

func TestParseMonth(t *testing.T) {
	got, ok := ParseMonth("2020-03")
	require.True(t, ok)
	assert.Equal(t, 2020, got.Year())
	assert.Equal(t, time.March, got.Month())

	for _, bad := range []string{"", "2020", "2020-13", "03-2020", "n/a"} {
		_, ok := ParseMonth(bad)
		assert.False(t, ok, "input %q", bad)
	}
}

func TestFormatMonthYear(t *testing.T) {
	assert.Equal(t, "mars 2020", FormatMonthYear(time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "août 2023", FormatMonthYear(time.Date(2023, time.August, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "décembre 1999", FormatMonthYear(time.Date(1999, time.December, 1, 0, 0, 0, 0, time.UTC)))
}

func TestMonthsBetween(t *testing.T) {
	jan2020 := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, MonthsBetween(jan2020, jan2020))
	assert.Equal(t, 5, MonthsBetween(jan2020, time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24, MonthsBetween(jan2020, time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)))
	// inverted range floors at zero
	assert.Equal(t, 0, MonthsBetween(jan2020, time.Date(2019, time.June, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		months int
		want   string
	}{
		{0, "Moins d'1 mois"},
		{1, "1 mois"},
		{7, "7 mois"},
		{11, "11 mois"},
		{12, "1 an"},
		{13, "1 an et 1 mois"},
		{24, "2 ans"},
		{51, "4 ans et 3 mois"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatDuration(tc.months), "months=%d", tc.months)
	}
}

func TestOngoingExperienceAtExactYearMark(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	e := Experience{StartDate: "2020-03", IsCurrent: true}
	assert.Equal(t, "mars 2020 - Présent", ExperiencePeriod(e, now))
	assert.Equal(t, "4 ans", ExperienceDuration(e, now))
}

func TestExperiencePeriod(t *testing.T) {
	ongoing := Experience{StartDate: "2020-03", IsCurrent: true}
	assert.Equal(t, "mars 2020 - Présent", ExperiencePeriod(ongoing, testNow))

	closed := Experience{StartDate: "2020-03", EndDate: "2022-06"}
	assert.Equal(t, "mars 2020 - juin 2022", ExperiencePeriod(closed, testNow))

	// missing end date on a finished entry reads as now
	open := Experience{StartDate: "2024-01"}
	assert.Equal(t, "janvier 2024 - juin 2024", ExperiencePeriod(open, testNow))

	// unparseable start yields nothing
	assert.Equal(t, "", ExperiencePeriod(Experience{StartDate: "soon"}, testNow))
}

func TestExperienceMonths(t *testing.T) {
	months, ok := ExperienceMonths(Experience{StartDate: "2020-03", EndDate: "2022-06"}, testNow)
	require.True(t, ok)
	assert.Equal(t, 27, months)

	// current entries ignore the stored end date and run through now
	months, ok = ExperienceMonths(Experience{StartDate: "2024-01", EndDate: "2020-01", IsCurrent: true}, testNow)
	require.True(t, ok)
	assert.Equal(t, 5, months)

	_, ok = ExperienceMonths(Experience{StartDate: ""}, testNow)
	assert.False(t, ok)
}

func TestTotalExperienceMonths(t *testing.T) {
	experiences := []Experience{
		{StartDate: "2020-01", EndDate: "2021-01"}, // 12
		{StartDate: "2023-06", IsCurrent: true},    // 12 at testNow
		{StartDate: "invalid"},                     // skipped
	}
	assert.Equal(t, 24, TotalExperienceMonths(experiences, testNow))
	assert.Equal(t, 0, TotalExperienceMonths(nil, testNow))
}

func TestTotalExperienceLabel(t *testing.T) {
	cases := []struct {
		months int
		want   string
	}{
		{0, "Débutant"},
		{5, "5 mois"},
		{11, "11 mois"},
		{12, "1 an"},
		{23, "1 an"},
		{24, "2 ans"},
		{59, "4 ans"},
		{60, "5+ ans"},
		{119, "5+ ans"},
		{120, "10+ ans"},
		{240, "10+ ans"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TotalExperienceLabel(tc.months), "months=%d", tc.months)
	}
}

// The label only coarsens as tenure grows: no bucket boundary maps a larger
// total back to a more precise or smaller-looking label.
func TestTotalExperienceLabelMonotonicBuckets(t *testing.T) {
	order := map[string]int{}
	rank := 0
	prev := ""
	for months := 0; months <= 200; months++ {
		label := TotalExperienceLabel(months)
		if label != prev {
			rank++
			if _, seen := order[label]; seen {
				t.Fatalf("label %q reappeared at %d months", label, months)
			}
			order[label] = rank
			prev = label
		}
	}
}
