package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CronSchedule is a five-field cron expression restricted to what the billing
// run needs: numeric or wildcard minute, hour, and day-of-month. Month and
// day-of-week must be wildcards.
type CronSchedule struct {
	Minute     int // -1 means every minute
	Hour       int // -1 means every hour
	DayOfMonth int // -1 means every day
}

// ParseCronSchedule parses an expression like "0 1 1 * *" (01:00 on the 1st).
func ParseCronSchedule(expr string) (CronSchedule, error) {
	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return CronSchedule{}, fmt.Errorf("cron schedule must have 5 fields, got %d", len(fields))
	}
	if fields[3] != "*" || fields[4] != "*" {
		return CronSchedule{}, fmt.Errorf("month and day-of-week must be wildcards")
	}

	minute, err := parseCronField(fields[0], 0, 59)
	if err != nil {
		return CronSchedule{}, fmt.Errorf("invalid minute field %q: %w", fields[0], err)
	}
	hour, err := parseCronField(fields[1], 0, 23)
	if err != nil {
		return CronSchedule{}, fmt.Errorf("invalid hour field %q: %w", fields[1], err)
	}
	dayOfMonth, err := parseCronField(fields[2], 1, 31)
	if err != nil {
		return CronSchedule{}, fmt.Errorf("invalid day-of-month field %q: %w", fields[2], err)
	}

	return CronSchedule{Minute: minute, Hour: hour, DayOfMonth: dayOfMonth}, nil
}

func parseCronField(field string, min, max int) (int, error) {
	if field == "*" {
		return -1, nil
	}
	value, err := strconv.Atoi(field)
	if err != nil {
		return 0, err
	}
	if value < min || value > max {
		return 0, fmt.Errorf("value %d out of range [%d, %d]", value, min, max)
	}
	return value, nil
}

// Matches reports whether the schedule fires at the given instant
func (s CronSchedule) Matches(t time.Time) bool {
	if s.Minute >= 0 && t.Minute() != s.Minute {
		return false
	}
	if s.Hour >= 0 && t.Hour() != s.Hour {
		return false
	}
	if s.DayOfMonth >= 0 && t.Day() != s.DayOfMonth {
		return false
	}
	return true
}
