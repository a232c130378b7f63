package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bellezza/internal/schedule"
)

func TestNewAppointmentCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := newAppointmentCode()
		assert.Len(t, code, 8)
		assert.Regexp(t, "^[0-9A-F]{8}$", code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1, "codes should not repeat every time")
}

func TestSlotRejectedErrorMessages(t *testing.T) {
	cases := []struct {
		reason schedule.Reason
		want   string
	}{
		{schedule.ReasonTooEarly, "requested time is before opening"},
		{schedule.ReasonTooLate, "requested time does not fit before closing"},
		{schedule.ReasonConflict, "requested time conflicts with an existing appointment"},
		{schedule.Reason("unknown"), "requested time is not available"},
	}
	for _, tc := range cases {
		err := &SlotRejectedError{Reason: tc.reason}
		assert.Equal(t, tc.want, err.Error())
	}
}

func TestResolveEmployeeFilter(t *testing.T) {
	_, ok := resolveEmployeeFilter("").Employee()
	assert.False(t, ok, "empty id should mean no preference")

	_, ok = resolveEmployeeFilter(EmployeeAny).Employee()
	assert.False(t, ok, "the sentinel should mean no preference")

	id, ok := resolveEmployeeFilter("6f1d").Employee()
	assert.True(t, ok)
	assert.Equal(t, "6f1d", id)
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "0.00 €", FormatCents(0))
	assert.Equal(t, "0.05 €", FormatCents(5))
	assert.Equal(t, "12.50 €", FormatCents(1250))
	assert.Equal(t, "100.00 €", FormatCents(10000))
}
