package report

import (
	"fmt"
	"time"
)

// weekOfMonth returns the 1-based week of the month for t, with weeks
// starting on Monday.
func weekOfMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	firstWeekday := (int(first.Weekday()) + 6) % 7
	return (t.Day()+firstWeekday-1)/7 + 1
}

// Subject builds the draft subject line for the given day, for example
// "[01/02/2024]: Week 1 Daily Status Report".
func Subject(t time.Time) string {
	return fmt.Sprintf("[%s]: Week %d Daily Status Report", t.Format(dateLayout), weekOfMonth(t))
}
