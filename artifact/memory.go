package artifact

import "github.com/TrainNomad/raptor-backend/model"

// MemoryStore is an in-process Writer and Reader over plain maps,
// mirroring the teacher's storage.MemoryStorage. No package or test in
// this repository constructs one.
type MemoryStore struct {
	stops         map[model.StopId]*model.Stop
	routesInfo    map[model.RouteId]*model.RouteInfo
	routeStops    map[model.RouteId][]model.StopId
	routesByStop  map[model.StopId][]model.RouteId
	routeTrips    map[model.RouteId][]*model.Trip
	calendarIndex map[string][]model.ServiceId
	transferIndex map[model.StopId][]model.TransferEdge
	stations      []*model.Station
	meta          Meta
}

// NewMemoryStore returns an empty store ready to be written into.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		stops:         map[model.StopId]*model.Stop{},
		routesInfo:    map[model.RouteId]*model.RouteInfo{},
		routeStops:    map[model.RouteId][]model.StopId{},
		routesByStop:  map[model.StopId][]model.RouteId{},
		routeTrips:    map[model.RouteId][]*model.Trip{},
		calendarIndex: map[string][]model.ServiceId{},
		transferIndex: map[model.StopId][]model.TransferEdge{},
	}
}

func (s *MemoryStore) WriteStop(id model.StopId, stop *model.Stop) error {
	s.stops[id] = stop
	return nil
}

func (s *MemoryStore) WriteRouteInfo(id model.RouteId, info *model.RouteInfo) error {
	s.routesInfo[id] = info
	return nil
}

func (s *MemoryStore) WriteRouteStops(id model.RouteId, stops []model.StopId) error {
	s.routeStops[id] = stops
	return nil
}

func (s *MemoryStore) WriteRoutesByStop(id model.StopId, routes []model.RouteId) error {
	s.routesByStop[id] = routes
	return nil
}

func (s *MemoryStore) BeginRouteTrips() error { return nil }
func (s *MemoryStore) EndRouteTrips() error   { return nil }

func (s *MemoryStore) WriteRouteTrips(id model.RouteId, trips []*model.Trip) error {
	s.routeTrips[id] = trips
	return nil
}

func (s *MemoryStore) WriteCalendarDate(date string, services []model.ServiceId) error {
	s.calendarIndex[date] = services
	return nil
}

func (s *MemoryStore) WriteTransfers(id model.StopId, edges []model.TransferEdge) error {
	s.transferIndex[id] = edges
	return nil
}

func (s *MemoryStore) WriteStation(station *model.Station) error {
	s.stations = append(s.stations, station)
	return nil
}

func (s *MemoryStore) WriteMeta(meta Meta) error {
	s.meta = meta
	return nil
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Stops() (map[model.StopId]*model.Stop, error) {
	return s.stops, nil
}

func (s *MemoryStore) RoutesInfo() (map[model.RouteId]*model.RouteInfo, error) {
	return s.routesInfo, nil
}

func (s *MemoryStore) RouteStops() (map[model.RouteId][]model.StopId, error) {
	return s.routeStops, nil
}

func (s *MemoryStore) RoutesByStop() (map[model.StopId][]model.RouteId, error) {
	return s.routesByStop, nil
}

func (s *MemoryStore) RouteTrips() (map[model.RouteId][]*model.Trip, error) {
	return s.routeTrips, nil
}

func (s *MemoryStore) CalendarIndex() (map[string][]model.ServiceId, error) {
	return s.calendarIndex, nil
}

func (s *MemoryStore) TransferIndex() (map[model.StopId][]model.TransferEdge, error) {
	return s.transferIndex, nil
}

func (s *MemoryStore) Stations() ([]*model.Station, error) {
	return s.stations, nil
}

func (s *MemoryStore) Meta() (Meta, error) {
	return s.meta, nil
}
