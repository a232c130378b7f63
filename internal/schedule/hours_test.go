package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekHours(t *testing.T) {
	raw := []byte(`{
		"1": {"open": "09:00", "close": "18:00"},
		"2": {"open": "09:00", "close": "18:00"},
		"6": {"open": "10:00", "close": "14:00"},
		"0": {"closed": true}
	}`)

	wh, err := ParseWeekHours(raw)
	require.NoError(t, err)

	mon := wh.Day(time.Monday)
	assert.False(t, mon.Closed)
	assert.Equal(t, Minutes(9*60), mon.Open)
	assert.Equal(t, Minutes(18*60), mon.Close)

	sat := wh.Day(time.Saturday)
	assert.Equal(t, Minutes(10*60), sat.Open)

	assert.True(t, wh.Day(time.Sunday).Closed, "explicit closed entry")
	assert.True(t, wh.Day(time.Wednesday).Closed, "missing entry means closed")
}

func TestParseWeekHours_MalformedEntriesAreClosed(t *testing.T) {
	raw := []byte(`{
		"1": {"open": "nine", "close": "18:00"},
		"7": {"open": "09:00", "close": "18:00"},
		"2": {"open": "12:00", "close": "09:00"}
	}`)

	wh, err := ParseWeekHours(raw)
	require.NoError(t, err)
	assert.True(t, wh.Day(time.Monday).Closed)
	assert.True(t, wh.Day(time.Tuesday).Closed, "close before open means closed")
}

func TestParseWeekHours_EmptyInput(t *testing.T) {
	wh, err := ParseWeekHours(nil)
	require.NoError(t, err)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		assert.True(t, wh.Day(wd).Closed)
	}
}

func TestMarshalWeekHoursRoundTrip(t *testing.T) {
	wh := NewWeekHours(map[time.Weekday]DayHours{
		time.Monday:  {Open: 9 * 60, Close: 18 * 60},
		time.Sunday:  {Closed: true},
		time.Tuesday: {Open: 9*60 + 30, Close: 17 * 60},
	})

	raw, err := MarshalWeekHours(wh)
	require.NoError(t, err)

	back, err := ParseWeekHours(raw)
	require.NoError(t, err)
	assert.Equal(t, wh.Day(time.Monday), back.Day(time.Monday))
	assert.Equal(t, wh.Day(time.Tuesday), back.Day(time.Tuesday))
	assert.True(t, back.Day(time.Sunday).Closed)
}
