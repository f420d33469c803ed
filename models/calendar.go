package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned for dates not in day/MonthName/year form.
var ErrInvalidDate = errors.New("invalid bulletin date")

var italianMonths = [...]string{
	"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
	"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre",
}

// MonthName returns the lower-case Italian name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return italianMonths[m-1]
}

// ParseMonthName resolves an Italian month name in any letter case.
func ParseMonthName(name string) (time.Month, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range italianMonths {
		if n == name {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// ParseDate reads a "15/GENNAIO/2024" style date. The day must exist in that
// month, so "31/febbraio/2024" is rejected.
func ParseDate(s string) (year int, month time.Month, day int, err error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	day, err = strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) > 2 {
		return 0, 0, 0, fmt.Errorf("%w: day in %q", ErrInvalidDate, s)
	}
	month, ok := ParseMonthName(parts[1])
	if !ok {
		return 0, 0, 0, fmt.Errorf("%w: month in %q", ErrInvalidDate, s)
	}
	year, err = strconv.Atoi(parts[2])
	if err != nil || len(parts[2]) != 4 {
		return 0, 0, 0, fmt.Errorf("%w: year in %q", ErrInvalidDate, s)
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		return 0, 0, 0, fmt.Errorf("%w: %q is not a calendar day", ErrInvalidDate, s)
	}
	return year, month, day, nil
}
