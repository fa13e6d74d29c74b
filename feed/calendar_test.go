package feed

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCalendarWeekdayBitmask(t *testing.T) {
	content := "service_id,start_date,end_date,monday,tuesday,wednesday,thursday,friday,saturday,sunday\n" +
		"s1,20260101,20261231,1,0,1,0,0,0,0\n"

	calendars, warnings := parseCalendar("SNCF", bytes.NewBufferString(content))
	require.Empty(t, warnings)
	require.Len(t, calendars, 1)

	c := calendars["SNCF:s1"]
	require.NotNil(t, c)
	assert.NotZero(t, c.Weekday&(1<<time.Monday))
	assert.NotZero(t, c.Weekday&(1<<time.Wednesday))
	assert.Zero(t, c.Weekday&(1<<time.Tuesday))
	assert.Equal(t, 2026, c.StartDate.Year())
}

func TestParseCalendarRejectsBadDate(t *testing.T) {
	content := "service_id,start_date,end_date,monday,tuesday,wednesday,thursday,friday,saturday,sunday\n" +
		"s1,notadate,20261231,1,0,0,0,0,0,0\n"

	calendars, warnings := parseCalendar("SNCF", bytes.NewBufferString(content))
	assert.Len(t, warnings, 1)
	assert.Empty(t, calendars)
}

func TestParseCalendarDatesExceptions(t *testing.T) {
	content := "service_id,date,exception_type\ns1,20260704,2\ns1,20260705,1\n"

	dates, warnings := parseCalendarDates("SNCF", bytes.NewBufferString(content))
	require.Empty(t, warnings)
	require.Len(t, dates, 2)
	assert.Equal(t, ServiceRemoved, dates[0].Exception)
	assert.Equal(t, ServiceAdded, dates[1].Exception)
}
