package handlers

import "time"

// Wall-clock values on the wire, interpreted in UTC; the data model carries no
// timezone.
func parseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, time.UTC)
}
