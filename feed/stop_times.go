package feed

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/TrainNomad/raptor-backend/model"
)

type stopTimeCSV struct {
	TripID        string `csv:"trip_id"`
	StopID        string `csv:"stop_id"`
	StopSequence  int    `csv:"stop_sequence"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
}

// parseHMS parses a GTFS HH:MM:SS field into seconds since midnight.
// The hour component is allowed to exceed 23, the usual GTFS idiom for
// a trip that runs past midnight on its service day.
func parseHMS(s string) (model.Seconds, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("found %d parts in %q", len(parts), s)
	}

	hms := [3]int{}
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("non-integer field in %q", s)
		}
		hms[i] = v
	}

	if hms[0] < 0 || hms[1] < 0 || hms[1] > 59 || hms[2] < 0 || hms[2] > 59 {
		return 0, fmt.Errorf("out of range time %q", s)
	}

	return model.Seconds(hms[0]*3600 + hms[1]*60 + hms[2]), nil
}

type stopTimeEntry struct {
	tripID   model.TripId
	sequence int
	st       model.StopTime
}

// parseStopTimes reads stop_times.txt and attaches the stop visits to
// the corresponding entry of trips, in stop_sequence order. Rows for a
// trip that was dropped by parseTrips (filtered route, empty trip_id)
// are ignored rather than reported, since the trip is intentionally
// absent. When trips.txt repeats a trip_id, the first row's trip is
// kept and every stop_times row with that ID attaches to it.
func parseStopTimes(operator model.Operator, data io.Reader, trips map[model.TripId]*model.Trip, stops map[model.StopId]*model.Stop) []error {
	rows := []*stopTimeCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return []error{fmt.Errorf("unmarshaling stop_times.txt: %w", err)}
	}

	var warnings []error
	byTrip := map[model.TripId][]stopTimeEntry{}

	for i, r := range rows {
		tripID := prefixTripID(operator, r.TripID)
		if _, ok := trips[tripID]; !ok {
			continue
		}

		stopID := prefixStopID(operator, r.StopID)
		if _, ok := stops[stopID]; !ok {
			warnings = append(warnings, &MalformedRowError{File: "stop_times.txt", Row: i + 1, Err: fmt.Errorf("unknown stop_id %q", r.StopID)})
			continue
		}

		arrival, err := parseHMS(r.ArrivalTime)
		if err != nil {
			warnings = append(warnings, &MalformedRowError{File: "stop_times.txt", Row: i + 1, Err: fmt.Errorf("arrival_time: %w", err)})
			continue
		}
		departure, err := parseHMS(r.DepartureTime)
		if err != nil {
			warnings = append(warnings, &MalformedRowError{File: "stop_times.txt", Row: i + 1, Err: fmt.Errorf("departure_time: %w", err)})
			continue
		}

		byTrip[tripID] = append(byTrip[tripID], stopTimeEntry{
			tripID:   tripID,
			sequence: r.StopSequence,
			st: model.StopTime{
				StopID:    stopID,
				Arrival:   arrival,
				Departure: departure,
			},
		})
	}

	for tripID, entries := range byTrip {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].sequence < entries[j].sequence
		})

		trip := trips[tripID]
		trip.StopTimes = make([]model.StopTime, len(entries))
		for i, e := range entries {
			trip.StopTimes[i] = e.st
		}
		if len(trip.StopTimes) > 0 {
			trip.FirstDepartureTime = trip.StopTimes[0].Departure
		}
	}

	for _, w := range warnings {
		log.Printf("feed: %v", w)
	}

	return warnings
}
