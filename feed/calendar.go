package feed

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/TrainNomad/raptor-backend/model"
)

type calendarCSV struct {
	ServiceID string `csv:"service_id"`
	StartDate string `csv:"start_date"`
	EndDate   string `csv:"end_date"`
	Monday    int8   `csv:"monday"`
	Tuesday   int8   `csv:"tuesday"`
	Wednesday int8   `csv:"wednesday"`
	Thursday  int8   `csv:"thursday"`
	Friday    int8   `csv:"friday"`
	Saturday  int8   `csv:"saturday"`
	Sunday    int8   `csv:"sunday"`
}

// Calendar is the raw weekly-recurrence row for one service, before
// the per-date expansion done by the timetable builder.
type Calendar struct {
	ServiceID model.ServiceId
	StartDate time.Time
	EndDate   time.Time
	Weekday   int8 // bit time.Sunday..time.Saturday set when the service runs that day
}

// ExceptionType mirrors calendar_dates.txt exception_type: 1 adds
// service on the date, 2 removes it.
type ExceptionType int8

const (
	ServiceAdded   ExceptionType = 1
	ServiceRemoved ExceptionType = 2
)

// CalendarDate is a single-date addition or removal layered on top of
// the weekly pattern in Calendar.
type CalendarDate struct {
	ServiceID model.ServiceId
	Date      time.Time
	Exception ExceptionType
}

// parseCalendar reads calendar.txt. A feed with no calendar.txt at all
// is not an error here: calendar_dates.txt alone is a legal way to
// define service in GTFS, so the caller decides whether the resulting
// empty map plus a populated calendar_dates table is acceptable.
func parseCalendar(operator model.Operator, data io.Reader) (map[model.ServiceId]*Calendar, []error) {
	rows := []*calendarCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return map[model.ServiceId]*Calendar{}, []error{fmt.Errorf("unmarshaling calendar.txt: %w", err)}
	}

	calendars := map[model.ServiceId]*Calendar{}
	var warnings []error

	for i, c := range rows {
		if c.ServiceID == "" {
			warnings = append(warnings, &MalformedRowError{File: "calendar.txt", Row: i + 1, Err: fmt.Errorf("empty service_id")})
			continue
		}

		start, err := time.ParseInLocation("20060102", c.StartDate, time.UTC)
		if err != nil {
			warnings = append(warnings, &MalformedRowError{File: "calendar.txt", Row: i + 1, Err: fmt.Errorf("start_date: %w", err)})
			continue
		}
		end, err := time.ParseInLocation("20060102", c.EndDate, time.UTC)
		if err != nil {
			warnings = append(warnings, &MalformedRowError{File: "calendar.txt", Row: i + 1, Err: fmt.Errorf("end_date: %w", err)})
			continue
		}

		var weekday int8
		weekday |= dayBit(c.Sunday, time.Sunday)
		weekday |= dayBit(c.Monday, time.Monday)
		weekday |= dayBit(c.Tuesday, time.Tuesday)
		weekday |= dayBit(c.Wednesday, time.Wednesday)
		weekday |= dayBit(c.Thursday, time.Thursday)
		weekday |= dayBit(c.Friday, time.Friday)
		weekday |= dayBit(c.Saturday, time.Saturday)

		id := prefixServiceID(operator, c.ServiceID)
		calendars[id] = &Calendar{
			ServiceID: id,
			StartDate: start,
			EndDate:   end,
			Weekday:   weekday,
		}
	}

	for _, w := range warnings {
		log.Printf("feed: %v", w)
	}

	return calendars, warnings
}

func dayBit(v int8, day time.Weekday) int8 {
	if v == 1 {
		return 1 << uint(day)
	}
	return 0
}

type calendarDateCSV struct {
	ServiceID     string `csv:"service_id"`
	Date          string `csv:"date"`
	ExceptionType int8   `csv:"exception_type"`
}

// parseCalendarDates reads calendar_dates.txt. A missing file is not
// an error: most feeds carry exceptions for only a handful of
// services.
func parseCalendarDates(operator model.Operator, data io.Reader) ([]*CalendarDate, []error) {
	rows := []*calendarDateCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, []error{fmt.Errorf("unmarshaling calendar_dates.txt: %w", err)}
	}

	var dates []*CalendarDate
	var warnings []error

	for i, r := range rows {
		if r.ServiceID == "" {
			warnings = append(warnings, &MalformedRowError{File: "calendar_dates.txt", Row: i + 1, Err: fmt.Errorf("empty service_id")})
			continue
		}

		d, err := time.ParseInLocation("20060102", r.Date, time.UTC)
		if err != nil {
			warnings = append(warnings, &MalformedRowError{File: "calendar_dates.txt", Row: i + 1, Err: fmt.Errorf("date: %w", err)})
			continue
		}

		exc := ExceptionType(r.ExceptionType)
		if exc != ServiceAdded && exc != ServiceRemoved {
			warnings = append(warnings, &MalformedRowError{File: "calendar_dates.txt", Row: i + 1, Err: fmt.Errorf("invalid exception_type %d", r.ExceptionType)})
			continue
		}

		dates = append(dates, &CalendarDate{
			ServiceID: prefixServiceID(operator, r.ServiceID),
			Date:      d,
			Exception: exc,
		})
	}

	for _, w := range warnings {
		log.Printf("feed: %v", w)
	}

	return dates, warnings
}
