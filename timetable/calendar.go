package timetable

import (
	"time"

	"github.com/TrainNomad/raptor-backend/feed"
	"github.com/TrainNomad/raptor-backend/model"
)

// CalendarIndex maps a service date (normalized to UTC midnight) to
// the set of services active that day.
type CalendarIndex map[string][]model.ServiceId

// DateKey formats t the way CalendarIndex keys and calendar_index.json
// are keyed: "yyyy-mm-dd".
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ExpandCalendar walks each service's weekly pattern over its validity
// interval, then applies calendar_dates.txt additions and removals, to
// produce the per-date active-service index.
func ExpandCalendar(calendars map[model.ServiceId]*feed.Calendar, calendarDates []*feed.CalendarDate) CalendarIndex {
	index := CalendarIndex{}

	for _, cal := range calendars {
		for d := cal.StartDate; !d.After(cal.EndDate); d = d.AddDate(0, 0, 1) {
			if cal.Weekday&(1<<uint(d.Weekday())) == 0 {
				continue
			}
			key := DateKey(d)
			index[key] = append(index[key], cal.ServiceID)
		}
	}

	for _, cd := range calendarDates {
		key := DateKey(cd.Date)
		switch cd.Exception {
		case feed.ServiceAdded:
			if !containsService(index[key], cd.ServiceID) {
				index[key] = append(index[key], cd.ServiceID)
			}
		case feed.ServiceRemoved:
			index[key] = removeService(index[key], cd.ServiceID)
		}
	}

	return index
}

func containsService(services []model.ServiceId, id model.ServiceId) bool {
	for _, s := range services {
		if s == id {
			return true
		}
	}
	return false
}

func removeService(services []model.ServiceId, id model.ServiceId) []model.ServiceId {
	out := services[:0]
	for _, s := range services {
		if s != id {
			out = append(out, s)
		}
	}
	return out
}

// ActiveOn returns the set of services active on date (formatted
// "yyyy-mm-dd") as a lookup-friendly map.
func (ci CalendarIndex) ActiveOn(date string) map[model.ServiceId]bool {
	active := map[model.ServiceId]bool{}
	for _, s := range ci[date] {
		active[s] = true
	}
	return active
}
