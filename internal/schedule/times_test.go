package schedule

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Minutes
		wantErr bool
	}{
		{in: "09:00", want: 9 * 60},
		{in: "18:30", want: 18*60 + 30},
		{in: "00:00", want: 0},
		{in: "24:00", want: MinutesPerDay},
		{in: "9:5", want: 9*60 + 5},
		{in: "25:00", wantErr: true},
		{in: "09:60", wantErr: true},
		{in: "0900", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestMinutesJSON(t *testing.T) {
	b, err := json.Marshal(Minutes(9*60 + 5))
	require.NoError(t, err)
	assert.Equal(t, `"09:05"`, string(b))

	var m Minutes
	require.NoError(t, json.Unmarshal([]byte(`"14:15"`), &m))
	assert.Equal(t, Minutes(14*60+15), m)
}

func TestDateOrderingAndArithmetic(t *testing.T) {
	d := Date{Year: 2026, Month: time.September, Day: 15}
	assert.True(t, d.Before(Date{Year: 2026, Month: time.September, Day: 16}))
	assert.True(t, d.Before(Date{Year: 2026, Month: time.October, Day: 1}))
	assert.True(t, d.After(Date{Year: 2025, Month: time.December, Day: 31}))
	assert.True(t, d.Equal(d))

	assert.Equal(t, Date{Year: 2026, Month: time.October, Day: 1}, d.AddDays(16))
	assert.Equal(t, Date{Year: 2026, Month: time.August, Day: 31}, d.AddDays(-15))
}

func TestWeekStart(t *testing.T) {
	// 2026-09-15 is a Tuesday; the week starts Monday the 14th.
	tue := Date{Year: 2026, Month: time.September, Day: 15}
	assert.Equal(t, Date{Year: 2026, Month: time.September, Day: 14}, WeekStart(tue))

	mon := Date{Year: 2026, Month: time.September, Day: 14}
	assert.Equal(t, mon, WeekStart(mon), "Monday is its own week start")

	sun := Date{Year: 2026, Month: time.September, Day: 20}
	assert.Equal(t, mon, WeekStart(sun), "Sunday belongs to the preceding Monday")
}

func TestRoundUpQuarter(t *testing.T) {
	assert.Equal(t, Minutes(14*60+15), roundUpQuarter(14*60+7))
	assert.Equal(t, Minutes(14*60+15), roundUpQuarter(14*60+15))
	assert.Equal(t, Minutes(14*60+15), roundUpQuarter(14*60+1))
	assert.Equal(t, Minutes(14*60), roundUpQuarter(14*60))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-15")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2026, Month: time.September, Day: 15}, d)
	assert.Equal(t, "2026-09-15", d.String())

	_, err = ParseDate("15/09/2026")
	assert.Error(t, err)
}
