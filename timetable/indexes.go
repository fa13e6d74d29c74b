package timetable

import (
	"sort"

	"github.com/TrainNomad/raptor-backend/model"
)

// Timetable is the fully built, repaired and indexed schedule for one
// merged feed, ready to be persisted through package artifact or
// consumed directly by package query.
type Timetable struct {
	Stops        map[model.StopId]*model.Stop
	RoutesInfo   map[model.RouteId]*model.RouteInfo
	RouteStops   map[model.RouteId][]model.StopId
	RouteTrips   map[model.RouteId][]*model.Trip
	RoutesByStop map[model.StopId][]model.RouteId
	Calendar     CalendarIndex
}

// buildRouteStops sets routeStops[routeId] to the stop sequence of the
// longest observed trip on that route, since the longest trip is the
// only one guaranteed to carry every stop the route ever serves.
func buildRouteStops(tripsByRoute map[model.RouteId][]*model.Trip) map[model.RouteId][]model.StopId {
	routeStops := map[model.RouteId][]model.StopId{}

	for routeID, trips := range tripsByRoute {
		var longest *model.Trip
		for _, t := range trips {
			if longest == nil || len(t.StopTimes) > len(longest.StopTimes) {
				longest = t
			}
		}
		if longest == nil {
			continue
		}

		stops := make([]model.StopId, len(longest.StopTimes))
		for i, st := range longest.StopTimes {
			stops[i] = st.StopID
		}
		routeStops[routeID] = stops
	}

	return routeStops
}

// buildRouteTrips sorts each route's trips by first departure time,
// the order the round-based search relies on for its tie-break rule.
func buildRouteTrips(tripsByRoute map[model.RouteId][]*model.Trip) map[model.RouteId][]*model.Trip {
	routeTrips := map[model.RouteId][]*model.Trip{}

	for routeID, trips := range tripsByRoute {
		sorted := append([]*model.Trip(nil), trips...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].FirstDepartureTime < sorted[j].FirstDepartureTime
		})
		routeTrips[routeID] = sorted
	}

	return routeTrips
}

// buildRoutesByStop derives, for every stop, the set of routes that
// visit it, from routeStops.
func buildRoutesByStop(routeStops map[model.RouteId][]model.StopId) map[model.StopId][]model.RouteId {
	routesByStop := map[model.StopId][]model.RouteId{}

	for routeID, stops := range routeStops {
		seen := map[model.StopId]bool{}
		for _, stopID := range stops {
			if seen[stopID] {
				continue
			}
			seen[stopID] = true
			routesByStop[stopID] = append(routesByStop[stopID], routeID)
		}
	}

	return routesByStop
}
