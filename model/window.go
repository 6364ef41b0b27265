package model

import "time"

const dateLayout = "2006-01-02"

// LastNDays filters the clicks-by-date breakdown to entries on or after
// start-of-today minus days. "Today" is the host-local calendar date; the
// service does not disclose the timezone of its date keys, so local wall
// clock is assumed, matching how the dates read to the person running the
// analysis. Returns *MalformedDateError if a key does not parse and
// *NoDataInWindowError if nothing falls inside the window. Pure function:
// no network call, no mutation.
func (s *Statistics) LastNDays(days int) (map[string]int, error) {
	return windowedCounts(s.ClicksByDate, days, time.Now())
}

// LastNDaysUnique is LastNDays over the unique clicks-by-date breakdown.
func (s *Statistics) LastNDaysUnique(days int) (map[string]int, error) {
	return windowedCounts(s.UniqueClicksByDate, days, time.Now())
}

func windowedCounts(b *Breakdown, days int, now time.Time) (map[string]int, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	cutoff := midnight.AddDate(0, 0, -days)

	out := make(map[string]int)
	for _, e := range b.Entries() {
		date, err := time.ParseInLocation(dateLayout, e.Key, now.Location())
		if err != nil {
			return nil, &MalformedDateError{Value: e.Key}
		}
		if !date.Before(cutoff) {
			out[e.Key] = e.Count
		}
	}

	if len(out) == 0 {
		return nil, &NoDataInWindowError{Days: days}
	}
	return out, nil
}
