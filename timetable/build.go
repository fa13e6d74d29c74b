package timetable

import (
	"github.com/TrainNomad/raptor-backend/feed"
	"github.com/TrainNomad/raptor-backend/model"
)

// Build assembles the merged, repaired, indexed Timetable from the raw
// per-operator feeds read by package feed. Trip repair and train-type
// classification happen here, once, so every downstream consumer
// (artifact persistence, the round-based search) sees the canonical
// trip shape.
func Build(feeds []*feed.RawFeed) *Timetable {
	stops := map[model.StopId]*model.Stop{}
	routesInfo := map[model.RouteId]*model.RouteInfo{}
	tripsByRoute := map[model.RouteId][]*model.Trip{}
	calendars := map[model.ServiceId]*feed.Calendar{}
	var calendarDates []*feed.CalendarDate

	for _, f := range feeds {
		for id, s := range f.Stops {
			stops[id] = s
		}
		for id, r := range f.Routes {
			routesInfo[id] = r
		}
		for id, c := range f.Calendars {
			calendars[id] = c
		}
		calendarDates = append(calendarDates, f.CalendarDates...)

		for _, trip := range f.Trips {
			trip.StopTimes = RepairTrip(trip.StopTimes)
			if len(trip.StopTimes) == 0 {
				continue
			}
			trip.FirstDepartureTime = trip.StopTimes[0].Departure

			routeShort := ""
			if ri, ok := routesInfo[trip.RouteID]; ok {
				routeShort = ri.Short
			}
			trip.TrainType = ClassifyTrip(trip.Operator, trip.StopTimes[0].StopID, trip.ID, routeShort)

			tripsByRoute[trip.RouteID] = append(tripsByRoute[trip.RouteID], trip)
		}
	}

	routeStops := buildRouteStops(tripsByRoute)

	return &Timetable{
		Stops:        stops,
		RoutesInfo:   routesInfo,
		RouteStops:   routeStops,
		RouteTrips:   buildRouteTrips(tripsByRoute),
		RoutesByStop: buildRoutesByStop(routeStops),
		Calendar:     ExpandCalendar(calendars, calendarDates),
	}
}
