// Package period computes the custom month used for attendance: the 16th of
// one month through the 15th of the next.
package period

import (
	"fmt"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
)

const (
	// StartDay is the first day of every period.
	StartDay = 16
	// EndDay is the last day of every period, in the following month.
	EndDay = 15

	isoLayout = "2006-01-02"
)

var monthsPT = [...]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

// Period is one 16th-to-15th cycle.
type Period struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ForDate returns the period enclosing ref. Both bounds are midnight UTC.
func ForDate(ref time.Time) (start, end time.Time) {
	y, m, d := ref.Date()

	if d >= StartDay {
		start = time.Date(y, m, StartDay, 0, 0, 0, 0, time.UTC)
	} else {
		start = time.Date(y, m-1, StartDay, 0, 0, 0, 0, time.UTC)
	}
	end = time.Date(start.Year(), start.Month()+1, EndDay, 0, 0, 0, 0, time.UTC)

	return start, end
}

// Of returns the labelled period enclosing ref.
func Of(ref time.Time) Period {
	start, end := ForDate(ref)
	return Period{Label: Label(start, end), Start: start, End: end}
}

// Recent lists the period enclosing today and the n-1 periods before it,
// most recent first.
func Recent(n int, today time.Time) []Period {
	if n <= 0 {
		return []Period{}
	}

	current, _ := ForDate(today)
	list := make([]Period, 0, n)
	for i := 0; i < n; i++ {
		start := current.AddDate(0, -i, 0)
		end := time.Date(start.Year(), start.Month()+1, EndDay, 0, 0, 0, 0, time.UTC)
		list = append(list, Period{Label: Label(start, end), Start: start, End: end})
	}

	return list
}

// Dates returns every day from start to end inclusive.
func Dates(start, end time.Time) []time.Time {
	start = Day(start)
	end = Day(end)
	if end.Before(start) {
		return []time.Time{}
	}

	n := int(end.Sub(start).Hours()/24) + 1
	list := make([]time.Time, 0, n)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		list = append(list, d)
	}

	return list
}

// Dates returns every day of the period.
func (p Period) Dates() []time.Time {
	return Dates(p.Start, p.End)
}

// Contains reports whether d falls inside the period.
func (p Period) Contains(d time.Time) bool {
	d = Day(d)
	return !d.Before(p.Start) && !d.After(p.End)
}

// Label renders a period as "16 mar 2024 – 15 abr 2024".
func Label(start, end time.Time) string {
	return fmt.Sprintf("%d %s %d – %d %s %d",
		start.Day(), monthsPT[start.Month()-1], start.Year(),
		end.Day(), monthsPT[end.Month()-1], end.Year())
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ISO formats t as yyyy-mm-dd.
func ISO(t time.Time) string {
	return t.Format(isoLayout)
}

// ParseISO parses a yyyy-mm-dd date.
func ParseISO(s string) (time.Time, error) {
	d, err := date.ParseDate(s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parsing date %q", s)
	}
	return Day(d.Time), nil
}
