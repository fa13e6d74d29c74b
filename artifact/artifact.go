// Package artifact persists and reloads the timetable and station
// reconciliation output built offline by packages timetable and
// reconcile. The shapes are the ones enumerated in spec.md section 6:
// one JSON document per table.
package artifact

import (
	"time"

	"github.com/TrainNomad/raptor-backend/model"
)

// Meta is the build metadata recorded in meta.json.
type Meta struct {
	BuiltAt      time.Time       `json:"builtAt"`
	Operators    []model.Operator `json:"operators"`
	StopCount    int             `json:"stopCount"`
	TripCount    int             `json:"tripCount"`
	RouteCount   int             `json:"routeCount"`
	StationCount int             `json:"stationCount"`
}

// Writer persists one complete timetable build. BeginRouteTrips/
// EndRouteTrips bracket route_trips.json, the one table large enough to
// warrant batching in a production backend, mirroring the teacher's
// storage.FeedWriter bracketing of stop_times.
type Writer interface {
	WriteStop(id model.StopId, stop *model.Stop) error
	WriteRouteInfo(id model.RouteId, info *model.RouteInfo) error
	WriteRouteStops(id model.RouteId, stops []model.StopId) error
	WriteRoutesByStop(id model.StopId, routes []model.RouteId) error

	BeginRouteTrips() error
	WriteRouteTrips(id model.RouteId, trips []*model.Trip) error
	EndRouteTrips() error

	WriteCalendarDate(date string, services []model.ServiceId) error
	WriteTransfers(id model.StopId, edges []model.TransferEdge) error
	WriteStation(station *model.Station) error

	WriteMeta(meta Meta) error
	Close() error
}

// Reader reloads everything a Writer persisted. The query engine is
// the only production consumer.
type Reader interface {
	Stops() (map[model.StopId]*model.Stop, error)
	RoutesInfo() (map[model.RouteId]*model.RouteInfo, error)
	RouteStops() (map[model.RouteId][]model.StopId, error)
	RoutesByStop() (map[model.StopId][]model.RouteId, error)
	RouteTrips() (map[model.RouteId][]*model.Trip, error)
	CalendarIndex() (map[string][]model.ServiceId, error)
	TransferIndex() (map[model.StopId][]model.TransferEdge, error)
	Stations() ([]*model.Station, error)
	Meta() (Meta, error)
}
