package artifact

import (
	"github.com/pkg/errors"

	"github.com/TrainNomad/raptor-backend/model"
	"github.com/TrainNomad/raptor-backend/timetable"
)

// PersistTimetable writes every table of a built Timetable, plus the
// reconciler's transfer index and station list, through w and closes
// it. This is the single call site cmd/raptor-ingest needs.
func PersistTimetable(w Writer, tt *timetable.Timetable, transfers map[model.StopId][]model.TransferEdge, stations []*model.Station, meta Meta) error {
	for id, stop := range tt.Stops {
		if err := w.WriteStop(id, stop); err != nil {
			return errors.Wrap(err, "writing stop")
		}
	}
	for id, info := range tt.RoutesInfo {
		if err := w.WriteRouteInfo(id, info); err != nil {
			return errors.Wrap(err, "writing route info")
		}
	}
	for id, stops := range tt.RouteStops {
		if err := w.WriteRouteStops(id, stops); err != nil {
			return errors.Wrap(err, "writing route stops")
		}
	}
	for id, routes := range tt.RoutesByStop {
		if err := w.WriteRoutesByStop(id, routes); err != nil {
			return errors.Wrap(err, "writing routes by stop")
		}
	}

	if err := w.BeginRouteTrips(); err != nil {
		return errors.Wrap(err, "beginning route trips")
	}
	for id, trips := range tt.RouteTrips {
		if err := w.WriteRouteTrips(id, trips); err != nil {
			return errors.Wrap(err, "writing route trips")
		}
	}
	if err := w.EndRouteTrips(); err != nil {
		return errors.Wrap(err, "ending route trips")
	}

	for date, services := range tt.Calendar {
		if err := w.WriteCalendarDate(date, services); err != nil {
			return errors.Wrap(err, "writing calendar date")
		}
	}

	for id, edges := range transfers {
		if err := w.WriteTransfers(id, edges); err != nil {
			return errors.Wrap(err, "writing transfers")
		}
	}

	for _, s := range stations {
		if err := w.WriteStation(s); err != nil {
			return errors.Wrap(err, "writing station")
		}
	}

	if err := w.WriteMeta(meta); err != nil {
		return errors.Wrap(err, "writing meta")
	}

	return w.Close()
}

// LoadTimetable reconstructs a Timetable plus the reconciler outputs
// from a Reader, the shape the query engine's startup needs.
func LoadTimetable(r Reader) (*timetable.Timetable, map[model.StopId][]model.TransferEdge, []*model.Station, error) {
	stops, err := r.Stops()
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "loading stops")
	}
	routesInfo, err := r.RoutesInfo()
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "loading route info")
	}
	routeStops, err := r.RouteStops()
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "loading route stops")
	}
	routesByStop, err := r.RoutesByStop()
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "loading routes by stop")
	}
	routeTrips, err := r.RouteTrips()
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "loading route trips")
	}
	calendar, err := r.CalendarIndex()
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "loading calendar index")
	}
	transfers, err := r.TransferIndex()
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "loading transfer index")
	}
	stations, err := r.Stations()
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "loading stations")
	}

	tt := &timetable.Timetable{
		Stops:        stops,
		RoutesInfo:   routesInfo,
		RouteStops:   routeStops,
		RouteTrips:   routeTrips,
		RoutesByStop: routesByStop,
		Calendar:     timetable.CalendarIndex(calendar),
	}

	return tt, transfers, stations, nil
}
