package entity

import "time"

// RecurrencePattern describes how a single booking request expands into
// multiple dated instances. It is a transient instruction, never persisted.
type RecurrencePattern string

const (
	RecurrenceNone          RecurrencePattern = "ninguna"
	RecurrenceDaily         RecurrencePattern = "diaria"
	RecurrenceEveryThreeDay RecurrencePattern = "cada_3_dias"
	RecurrenceWeekly        RecurrencePattern = "semanal"
	RecurrenceBiweekly      RecurrencePattern = "quincenal"
	RecurrenceMonthly       RecurrencePattern = "mensual"
)

// DateAt returns the concrete date for instance i (0-based) of a recurring
// booking that starts at startDate. The second return value is false when the
// pattern produces no date for that index; an unrecognized pattern behaves
// like RecurrenceNone and only yields the start date at i=0.
//
// Monthly uses calendar month arithmetic (time.AddDate), so day-of-month is
// preserved where valid and normalized otherwise.
func (p RecurrencePattern) DateAt(startDate time.Time, i int) (time.Time, bool) {
	if i == 0 {
		return startDate, true
	}

	switch p {
	case RecurrenceDaily:
		return startDate.AddDate(0, 0, i), true
	case RecurrenceEveryThreeDay:
		return startDate.AddDate(0, 0, 3*i), true
	case RecurrenceWeekly:
		return startDate.AddDate(0, 0, 7*i), true
	case RecurrenceBiweekly:
		return startDate.AddDate(0, 0, 14*i), true
	case RecurrenceMonthly:
		return startDate.AddDate(0, i, 0), true
	default:
		return time.Time{}, false
	}
}

// Expand materializes the dates for a recurring booking of count instances.
// Indexes the pattern yields nothing for are skipped, so the result of a
// RecurrenceNone expansion is always a single date regardless of count.
func (p RecurrencePattern) Expand(startDate time.Time, count int) []time.Time {
	if count < 1 {
		count = 1
	}
	dates := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		if date, ok := p.DateAt(startDate, i); ok {
			dates = append(dates, date)
		}
	}
	return dates
}
