package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/TrainNomad/raptor-backend/model"
)

const (
	fileStops         = "stops.json"
	fileRoutesInfo    = "routes_info.json"
	fileRoutesByStop  = "routes_by_stop.json"
	fileRouteStops    = "route_stops.json"
	fileRouteTrips    = "route_trips.json"
	fileCalendarIndex = "calendar_index.json"
	fileTransferIndex = "transfer_index.json"
	fileStations      = "stations.json"
	fileMeta          = "meta.json"
)

// DiskStore is the production artifact.Writer/Reader: one JSON
// document per file, written with encoding/json, named exactly as
// spec.md section 6 lists them (plus stations.json, a supplement the
// query engine's city-deduplication and "search from city" features
// need but section 6's table does not enumerate).
type DiskStore struct {
	dir string

	stops        map[string]wireStop
	routesInfo   map[string]wireRouteInfo
	routesByStop map[string][]string
	routeStops   map[string][]string
	routeTrips   map[string][]wireTrip
	calendar     map[string][]string
	transfers    map[string][]json.RawMessage
	stations     []wireStation
	meta         Meta
}

// NewDiskStore returns a writer that accumulates in memory and flushes
// every table to dir on Close, the way the teacher's SQLite/Postgres
// writers batch inside Begin/End brackets but commit as a unit.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{
		dir:          dir,
		stops:        map[string]wireStop{},
		routesInfo:   map[string]wireRouteInfo{},
		routesByStop: map[string][]string{},
		routeStops:   map[string][]string{},
		routeTrips:   map[string][]wireTrip{},
		calendar:     map[string][]string{},
		transfers:    map[string][]json.RawMessage{},
	}
}

func (d *DiskStore) WriteStop(id model.StopId, stop *model.Stop) error {
	d.stops[string(id)] = stopToWire(stop)
	return nil
}

func (d *DiskStore) WriteRouteInfo(id model.RouteId, info *model.RouteInfo) error {
	d.routesInfo[string(id)] = routeInfoToWire(info)
	return nil
}

func (d *DiskStore) WriteRouteStops(id model.RouteId, stops []model.StopId) error {
	s := make([]string, len(stops))
	for i, st := range stops {
		s[i] = string(st)
	}
	d.routeStops[string(id)] = s
	return nil
}

func (d *DiskStore) WriteRoutesByStop(id model.StopId, routes []model.RouteId) error {
	r := make([]string, len(routes))
	for i, rt := range routes {
		r[i] = string(rt)
	}
	d.routesByStop[string(id)] = r
	return nil
}

func (d *DiskStore) BeginRouteTrips() error { return nil }
func (d *DiskStore) EndRouteTrips() error   { return nil }

func (d *DiskStore) WriteRouteTrips(id model.RouteId, trips []*model.Trip) error {
	w := make([]wireTrip, len(trips))
	for i, t := range trips {
		w[i] = tripToWire(t)
	}
	d.routeTrips[string(id)] = w
	return nil
}

func (d *DiskStore) WriteCalendarDate(date string, services []model.ServiceId) error {
	s := make([]string, len(services))
	for i, sv := range services {
		s[i] = string(sv)
	}
	d.calendar[date] = s
	return nil
}

func (d *DiskStore) WriteTransfers(id model.StopId, edges []model.TransferEdge) error {
	raw, err := transfersToWire(edges)
	if err != nil {
		return errors.Wrapf(err, "encoding transfers for %s", id)
	}
	d.transfers[string(id)] = raw
	return nil
}

func (d *DiskStore) WriteStation(station *model.Station) error {
	d.stations = append(d.stations, stationToWire(station))
	return nil
}

func (d *DiskStore) WriteMeta(meta Meta) error {
	d.meta = meta
	return nil
}

// Close writes every accumulated table to its file under dir.
func (d *DiskStore) Close() error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return errors.Wrap(err, "creating artifact directory")
	}

	writes := []struct {
		name string
		v    interface{}
	}{
		{fileStops, d.stops},
		{fileRoutesInfo, d.routesInfo},
		{fileRoutesByStop, d.routesByStop},
		{fileRouteStops, d.routeStops},
		{fileRouteTrips, d.routeTrips},
		{fileCalendarIndex, d.calendar},
		{fileTransferIndex, d.transfers},
		{fileStations, d.stations},
		{fileMeta, d.meta},
	}

	for _, w := range writes {
		if err := writeJSONFile(filepath.Join(d.dir, w.name), w.v); err != nil {
			return errors.Wrapf(err, "writing %s", w.name)
		}
	}

	return nil
}

func writeJSONFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// OpenDiskStore loads every artifact file from dir for reading. A
// missing file is a MissingArtifactError, which is fatal at query
// engine startup per spec.md section 7.
func OpenDiskStore(dir string) (*DiskStore, error) {
	d := &DiskStore{dir: dir}

	if err := readJSONFile(filepath.Join(dir, fileStops), &d.stops); err != nil {
		return nil, err
	}
	if err := readJSONFile(filepath.Join(dir, fileRoutesInfo), &d.routesInfo); err != nil {
		return nil, err
	}
	if err := readJSONFile(filepath.Join(dir, fileRoutesByStop), &d.routesByStop); err != nil {
		return nil, err
	}
	if err := readJSONFile(filepath.Join(dir, fileRouteStops), &d.routeStops); err != nil {
		return nil, err
	}
	if err := readJSONFile(filepath.Join(dir, fileRouteTrips), &d.routeTrips); err != nil {
		return nil, err
	}
	if err := readJSONFile(filepath.Join(dir, fileCalendarIndex), &d.calendar); err != nil {
		return nil, err
	}
	if err := readJSONFile(filepath.Join(dir, fileTransferIndex), &d.transfers); err != nil {
		return nil, err
	}
	if err := readJSONFile(filepath.Join(dir, fileStations), &d.stations); err != nil {
		return nil, err
	}
	if err := readJSONFile(filepath.Join(dir, fileMeta), &d.meta); err != nil {
		return nil, err
	}

	return d, nil
}

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &MissingArtifactError{Path: path}
		}
		return errors.Wrapf(err, "reading %s", path)
	}
	return errors.Wrapf(json.Unmarshal(data, v), "unmarshaling %s", path)
}

// MissingArtifactError is fatal at query engine startup: there is
// nothing useful to serve without a complete artifact set.
type MissingArtifactError struct {
	Path string
}

func (e *MissingArtifactError) Error() string {
	return "missing artifact: " + e.Path
}

func (d *DiskStore) Stops() (map[model.StopId]*model.Stop, error) {
	out := make(map[model.StopId]*model.Stop, len(d.stops))
	for id, w := range d.stops {
		out[model.StopId(id)] = stopFromWire(model.StopId(id), w)
	}
	return out, nil
}

func (d *DiskStore) RoutesInfo() (map[model.RouteId]*model.RouteInfo, error) {
	out := make(map[model.RouteId]*model.RouteInfo, len(d.routesInfo))
	for id, w := range d.routesInfo {
		out[model.RouteId(id)] = routeInfoFromWire(model.RouteId(id), w)
	}
	return out, nil
}

func (d *DiskStore) RouteStops() (map[model.RouteId][]model.StopId, error) {
	out := make(map[model.RouteId][]model.StopId, len(d.routeStops))
	for id, stops := range d.routeStops {
		s := make([]model.StopId, len(stops))
		for i, st := range stops {
			s[i] = model.StopId(st)
		}
		out[model.RouteId(id)] = s
	}
	return out, nil
}

func (d *DiskStore) RoutesByStop() (map[model.StopId][]model.RouteId, error) {
	out := make(map[model.StopId][]model.RouteId, len(d.routesByStop))
	for id, routes := range d.routesByStop {
		r := make([]model.RouteId, len(routes))
		for i, rt := range routes {
			r[i] = model.RouteId(rt)
		}
		out[model.StopId(id)] = r
	}
	return out, nil
}

func (d *DiskStore) RouteTrips() (map[model.RouteId][]*model.Trip, error) {
	out := make(map[model.RouteId][]*model.Trip, len(d.routeTrips))
	for id, trips := range d.routeTrips {
		routeID := model.RouteId(id)
		ts := make([]*model.Trip, len(trips))
		for i, w := range trips {
			ts[i] = tripFromWire(routeID, w)
		}
		out[routeID] = ts
	}
	return out, nil
}

func (d *DiskStore) CalendarIndex() (map[string][]model.ServiceId, error) {
	out := make(map[string][]model.ServiceId, len(d.calendar))
	for date, services := range d.calendar {
		s := make([]model.ServiceId, len(services))
		for i, sv := range services {
			s[i] = model.ServiceId(sv)
		}
		out[date] = s
	}
	return out, nil
}

func (d *DiskStore) TransferIndex() (map[model.StopId][]model.TransferEdge, error) {
	out := make(map[model.StopId][]model.TransferEdge, len(d.transfers))
	for id, entries := range d.transfers {
		edges, err := transfersFromWire(model.StopId(id), entries)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding transfers for %s", id)
		}
		out[model.StopId(id)] = edges
	}
	return out, nil
}

func (d *DiskStore) Stations() ([]*model.Station, error) {
	out := make([]*model.Station, len(d.stations))
	for i, w := range d.stations {
		out[i] = stationFromWire(w)
	}
	return out, nil
}

func (d *DiskStore) Meta() (Meta, error) {
	return d.meta, nil
}
