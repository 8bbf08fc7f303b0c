package api

import (
	"errors"
	"time"
)

const (
	dateLayout   = "2006-01-02"
	maxRangeDays = 30
)

var (
	errInvalidStartDate = errors.New("invalid start date")
	errInvalidEndDate   = errors.New("invalid end date")
	errStartAfterEnd    = errors.New("start date must be before end date")
	errFutureEndDate    = errors.New("end date cannot be in the future")
	errRangeTooLong     = errors.New("date range cannot exceed 30 days")

	errInvalidTemperatureDate = errors.New("invalid temperature date")
)

// validateDateRange checks a closed YYYY-MM-DD range against today.
func validateDateRange(startDate, endDate string, today time.Time) error {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return errInvalidStartDate
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return errInvalidEndDate
	}

	if start.After(end) {
		return errStartAfterEnd
	}

	y, m, d := today.UTC().Date()
	if end.After(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)) {
		return errFutureEndDate
	}

	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return errRangeTooLong
	}
	return nil
}

func validateDate(date string, invalid error) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return invalid
	}
	return nil
}
