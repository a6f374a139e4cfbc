// ABOUTME: Date assembly and display formatting for notifications
// ABOUTME: Builds due dates from API components and renders times in the display timezone
package watch

import (
	"time"

	"github.com/harperreed/classwatch/models"
)

// displayLayout matches the human-readable format the notifications use,
// e.g. "September 01, 2026 3:04 PM".
const displayLayout = "January 02, 2006 3:04 PM"

// BuildDueDate composes a deadline from the API's separate date and time
// components. The API reports the clock portion in UTC; absent hour/minute
// components default to midnight, seconds are always zero.
func BuildDueDate(date *models.DueDate, tod *models.DueTime) time.Time {
	var hours, minutes int64
	if tod != nil {
		hours = tod.Hours
		minutes = tod.Minutes
	}
	return time.Date(int(date.Year), time.Month(date.Month), int(date.Day),
		int(hours), int(minutes), 0, 0, time.UTC)
}

// FormatTime renders t in the display timezone.
func FormatTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(displayLayout)
}
