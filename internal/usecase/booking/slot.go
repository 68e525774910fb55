package booking

import (
	"time"

	"github.com/TatianaS7/booksy/internal/httperr"
)

// Wall-clock date/time from the API, no timezone in the data model; slots are
// interpreted in UTC everywhere.
const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

func parseDate(dateStr string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, dateStr, time.UTC)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness(httperr.CodeValidation)
	}
	return d, nil
}

func parseSlotStart(dateStr, timeStr string) (time.Time, error) {
	start, err := time.ParseInLocation(
		dateLayout+" "+timeLayout,
		dateStr+" "+timeStr,
		time.UTC,
	)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness(httperr.CodeValidation)
	}
	return start, nil
}
