package schedule

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// DayHours is the opening configuration for a single weekday.
// The zero value means closed.
type DayHours struct {
	Open   Minutes
	Close  Minutes
	Closed bool
}

// WeekHours holds opening hours for the full week, indexed by time.Weekday
// (Sunday = 0). A day without an entry is closed.
type WeekHours struct {
	days [7]DayHours
	set  [7]bool
}

// NewWeekHours builds a WeekHours from explicit per-day entries.
func NewWeekHours(days map[time.Weekday]DayHours) WeekHours {
	var wh WeekHours
	for wd, dh := range days {
		wh.days[wd] = dh
		wh.set[wd] = true
	}
	return wh
}

// Day returns the configuration for a weekday. Missing entries are closed.
func (wh WeekHours) Day(wd time.Weekday) DayHours {
	if !wh.set[wd] {
		return DayHours{Closed: true}
	}
	dh := wh.days[wd]
	if dh.Close <= dh.Open {
		return DayHours{Closed: true}
	}
	return dh
}

type dayHoursJSON struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// ParseWeekHours decodes the stored opening-hours JSON, a map from weekday
// number ("0" = Sunday .. "6" = Saturday) to {open, close, closed}. Entries
// that are missing or malformed are treated as closed rather than failing,
// since the calendar must always render something.
func ParseWeekHours(raw []byte) (WeekHours, error) {
	var wh WeekHours
	if len(raw) == 0 {
		return wh, nil
	}
	var m map[string]dayHoursJSON
	if err := json.Unmarshal(raw, &m); err != nil {
		return wh, fmt.Errorf("decode opening hours: %w", err)
	}
	for key, entry := range m {
		wd, err := strconv.Atoi(key)
		if err != nil || wd < 0 || wd > 6 {
			continue
		}
		if entry.Closed {
			wh.days[wd] = DayHours{Closed: true}
			wh.set[wd] = true
			continue
		}
		open, errOpen := ParseClock(entry.Open)
		closeAt, errClose := ParseClock(entry.Close)
		if errOpen != nil || errClose != nil {
			continue
		}
		wh.days[wd] = DayHours{Open: open, Close: closeAt}
		wh.set[wd] = true
	}
	return wh, nil
}

// MarshalWeekHours encodes hours back into the stored JSON shape.
func MarshalWeekHours(wh WeekHours) ([]byte, error) {
	m := make(map[string]dayHoursJSON, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if !wh.set[wd] {
			continue
		}
		dh := wh.days[wd]
		if dh.Closed {
			m[strconv.Itoa(int(wd))] = dayHoursJSON{Closed: true}
			continue
		}
		m[strconv.Itoa(int(wd))] = dayHoursJSON{Open: dh.Open.String(), Close: dh.Close.String()}
	}
	return json.Marshal(m)
}
