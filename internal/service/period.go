package service

import "time"

// dateAfterToday compares calendar dates only, ignoring the time of day.
func dateAfterToday(t time.Time) bool {
	return t.Format("2006-01-02") > time.Now().Format("2006-01-02")
}

// monthRange returns the half-open interval [first of month, first of next
// month) used to scope per-period sums.
func monthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, 0)
}
