package feed

import (
	"fmt"
	"io"
	"log"

	"github.com/gocarina/gocsv"

	"github.com/TrainNomad/raptor-backend/model"
)

type tripCSV struct {
	ID        string `csv:"trip_id"`
	RouteID   string `csv:"route_id"`
	ServiceID string `csv:"service_id"`
}

// parseTrips reads trips.txt and returns the operator-prefixed trip
// table, keyed by trip ID. StopTimes is left empty: it is filled in by
// parseStopTimes. A trip referencing a route that was filtered out by
// keepRoute is silently dropped, not reported as malformed.
func parseTrips(operator model.Operator, data io.Reader, routes map[model.RouteId]*model.RouteInfo) (map[model.TripId]*model.Trip, []error) {
	rows := []*tripCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return map[model.TripId]*model.Trip{}, []error{fmt.Errorf("unmarshaling trips.txt: %w", err)}
	}

	trips := map[model.TripId]*model.Trip{}
	var warnings []error

	for i, t := range rows {
		if t.ID == "" {
			warnings = append(warnings, &MalformedRowError{File: "trips.txt", Row: i + 1, Err: fmt.Errorf("empty trip_id")})
			continue
		}

		routeID := prefixRouteID(operator, t.RouteID)
		if _, ok := routes[routeID]; !ok {
			continue
		}

		id := prefixTripID(operator, t.ID)
		if _, dup := trips[id]; dup {
			warnings = append(warnings, &MalformedRowError{File: "trips.txt", Row: i + 1, Err: fmt.Errorf("repeated trip_id %q", t.ID)})
			continue
		}

		trips[id] = &model.Trip{
			ID:        id,
			RouteID:   routeID,
			ServiceID: prefixServiceID(operator, t.ServiceID),
			Operator:  operator,
		}
	}

	for _, w := range warnings {
		log.Printf("feed: %v", w)
	}

	return trips, warnings
}

func prefixTripID(operator model.Operator, raw string) model.TripId {
	return model.TripId(string(operator) + ":" + raw)
}

func prefixServiceID(operator model.Operator, raw string) model.ServiceId {
	return model.ServiceId(string(operator) + ":" + raw)
}
