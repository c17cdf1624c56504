package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Now is the server clock. Everything persisted is UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// DayRange returns [start, end) of the calendar day `date` (YYYY-MM-DD)
// in tz, converted to UTC.
func DayRange(date, tz string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, Location(tz))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return day.UTC(), day.AddDate(0, 0, 1).UTC(), nil
}
