package azurecostmanagement

import "time"

const (
	isoLayout  = "2006-01-02T15:04:05.999999Z07:00"
	dateLayout = "2006-01-02"
)

// LastMonthWindow returns the previous calendar month relative to now, in UTC:
// first day at 00:00:00 through last day at 23:59:59.999999.
func LastMonthWindow(now time.Time) Window {
	now = now.UTC()
	thisMonthStart := getFirstDayOfMonth(now)
	end := thisMonthStart.AddDate(0, 0, -1)
	start := getFirstDayOfMonth(end)

	return Window{
		Start: start,
		End:   time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999999000, time.UTC),
	}
}

// StartISO renders the start as a timezone-aware ISO-8601 string
func (w Window) StartISO() string {
	return w.Start.Format(isoLayout)
}

// EndISO renders the end as a timezone-aware ISO-8601 string
func (w Window) EndISO() string {
	return w.End.Format(isoLayout)
}

// Days is the number of calendar days covered
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

func (w Window) StartDate() string {
	return w.Start.Format(dateLayout)
}

func (w Window) EndDate() string {
	return w.End.Format(dateLayout)
}

func getFirstDayOfMonth(month time.Time) time.Time {
	return time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
}
