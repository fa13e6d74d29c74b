package feed

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/spkg/bom"

	"github.com/TrainNomad/raptor-backend/model"
)

// RawFeed is everything read out of one operator's directory, before
// calendar expansion, repair or cross-operator reconciliation.
type RawFeed struct {
	Operator      model.Operator
	Stops         map[model.StopId]*model.Stop
	Routes        map[model.RouteId]*model.RouteInfo
	Trips         map[model.TripId]*model.Trip
	Calendars     map[model.ServiceId]*Calendar
	CalendarDates []*CalendarDate
}

var setCSVReaderOnce sync.Once

// useLazyBOMReader configures gocsv process-wide to tolerate sloppy
// quoting and to strip a leading byte-order-mark, matching every feed
// actually seen in production. gocsv.SetCSVReader is global, so this
// runs exactly once no matter how many operators are read.
func useLazyBOMReader() {
	setCSVReaderOnce.Do(func() {
		gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
			return gocsv.LazyCSVReader(bom.NewReader(in))
		})
	})
}

var requiredFiles = []string{"routes.txt", "stops.txt", "trips.txt", "stop_times.txt"}

// ReadOperator reads the standard set of GTFS-style files from dir and
// returns the raw, operator-prefixed feed. No file, required or
// optional, is allowed to abort ingestion: a missing file yields an
// empty table for that file plus a MissingFeedFileError warning, so
// that one broken operator directory never blocks the others from
// being read. The third return value is reserved for genuine I/O
// failures on a file that does exist (permissions, a directory in its
// place) and is otherwise always nil.
func ReadOperator(dir string, operator model.Operator) (*RawFeed, []error, error) {
	useLazyBOMReader()

	var warnings []error

	for _, f := range requiredFiles {
		if !fileExists(filepath.Join(dir, f)) {
			warnings = append(warnings, &MissingFeedFileError{Operator: string(operator), File: f})
		}
	}

	routes := map[model.RouteId]*model.RouteInfo{}
	if fileExists(filepath.Join(dir, "routes.txt")) {
		routesData, err := os.Open(filepath.Join(dir, "routes.txt"))
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening routes.txt")
		}
		var w []error
		routes, w = parseRoutes(operator, routesData)
		routesData.Close()
		warnings = append(warnings, w...)
	}

	stops := map[model.StopId]*model.Stop{}
	if fileExists(filepath.Join(dir, "stops.txt")) {
		stopsData, err := os.Open(filepath.Join(dir, "stops.txt"))
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening stops.txt")
		}
		var w []error
		stops, w = parseStops(operator, stopsData)
		stopsData.Close()
		warnings = append(warnings, w...)
	}

	trips := map[model.TripId]*model.Trip{}
	if fileExists(filepath.Join(dir, "trips.txt")) {
		tripsData, err := os.Open(filepath.Join(dir, "trips.txt"))
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening trips.txt")
		}
		var w []error
		trips, w = parseTrips(operator, tripsData, routes)
		tripsData.Close()
		warnings = append(warnings, w...)
	}

	if fileExists(filepath.Join(dir, "stop_times.txt")) {
		stopTimesData, err := os.Open(filepath.Join(dir, "stop_times.txt"))
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening stop_times.txt")
		}
		w := parseStopTimes(operator, stopTimesData, trips, stops)
		stopTimesData.Close()
		warnings = append(warnings, w...)
	}

	hasCalendar := fileExists(filepath.Join(dir, "calendar.txt"))
	hasCalendarDates := fileExists(filepath.Join(dir, "calendar_dates.txt"))

	calendars := map[model.ServiceId]*Calendar{}
	if hasCalendar {
		calendarData, err := os.Open(filepath.Join(dir, "calendar.txt"))
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening calendar.txt")
		}
		var w []error
		calendars, w = parseCalendar(operator, calendarData)
		calendarData.Close()
		warnings = append(warnings, w...)
	} else {
		warnings = append(warnings, &MissingFeedFileError{Operator: string(operator), File: "calendar.txt"})
	}

	var calendarDates []*CalendarDate
	if hasCalendarDates {
		calendarDatesData, err := os.Open(filepath.Join(dir, "calendar_dates.txt"))
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening calendar_dates.txt")
		}
		var w []error
		calendarDates, w = parseCalendarDates(operator, calendarDatesData)
		calendarDatesData.Close()
		warnings = append(warnings, w...)
	} else {
		warnings = append(warnings, &MissingFeedFileError{Operator: string(operator), File: "calendar_dates.txt"})
	}

	dropEmptyTrips(trips, &warnings)

	return &RawFeed{
		Operator:      operator,
		Stops:         stops,
		Routes:        routes,
		Trips:         trips,
		Calendars:     calendars,
		CalendarDates: calendarDates,
	}, warnings, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// dropEmptyTrips removes trips that ended up with fewer than two stop
// times: a single-stop trip cannot carry a passenger anywhere and only
// confuses the round-based search's route scan.
func dropEmptyTrips(trips map[model.TripId]*model.Trip, warnings *[]error) {
	for id, t := range trips {
		if len(t.StopTimes) < 2 {
			*warnings = append(*warnings, fmt.Errorf("trip %s: fewer than 2 stop_times, dropped", id))
			delete(trips, id)
		}
	}
}
