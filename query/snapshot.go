package query

import (
	"sync"

	"github.com/TrainNomad/raptor-backend/model"
	"github.com/TrainNomad/raptor-backend/timetable"
)

// dateCacheSize is the maximum number of date-filtered stopToTrips
// indexes kept resident at once, per spec.md section 4.4.1.
const dateCacheSize = 7

// Snapshot is the single process-wide, read-only-after-startup value
// that owns the unfiltered stopToTrips index plus the mutable,
// oldest-inserted-evicted date cache, per the TimetableSnapshot design
// note in spec.md section 9. All request handling reads through a
// Snapshot; the mutex only ever protects cache insertion.
type Snapshot struct {
	Timetable *timetable.Timetable
	Transfers map[model.StopId][]model.TransferEdge
	Stations  []*model.Station
	StopNames map[model.StopId]string

	unfiltered map[model.StopId][]StopTripEntry

	mu         sync.Mutex
	cache      map[string]map[model.StopId][]StopTripEntry
	cacheOrder []string
}

// NewSnapshot builds the startup-time derived indexes from a loaded
// timetable and reconciler output. StopNames overrides feed display
// names with manifest names where the station index provides one.
func NewSnapshot(tt *timetable.Timetable, transfers map[model.StopId][]model.TransferEdge, stations []*model.Station) *Snapshot {
	s := &Snapshot{
		Timetable:  tt,
		Transfers:  transfers,
		Stations:   stations,
		unfiltered: buildStopToTrips(tt),
		cache:      map[string]map[model.StopId][]StopTripEntry{},
	}
	s.StopNames = buildStopNames(tt, stations)
	return s
}

func buildStopNames(tt *timetable.Timetable, stations []*model.Station) map[model.StopId]string {
	names := make(map[model.StopId]string, len(tt.Stops))
	for id, stop := range tt.Stops {
		names[id] = stop.Name
	}
	for _, st := range stations {
		if st.DisplayName == "" {
			continue
		}
		for _, id := range st.MemberStopIDs {
			names[id] = st.DisplayName
		}
	}
	return names
}

// StopToTrips returns the stopToTrips index filtered to the services
// active on date. A blank date returns the unfiltered index (used by
// Explore, which has no meaningful single service date).
func (s *Snapshot) StopToTrips(date string) map[model.StopId][]StopTripEntry {
	if date == "" {
		return s.unfiltered
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.cache[date]; ok {
		return cached
	}

	active := s.Timetable.Calendar.ActiveOn(date)
	filtered := filterStopToTrips(s.unfiltered, active)

	s.cache[date] = filtered
	s.cacheOrder = append(s.cacheOrder, date)
	if len(s.cacheOrder) > dateCacheSize {
		evict := s.cacheOrder[0]
		s.cacheOrder = s.cacheOrder[1:]
		delete(s.cache, evict)
	}

	return filtered
}
