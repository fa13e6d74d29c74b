package query

import (
	"sort"

	"github.com/TrainNomad/raptor-backend/model"
	"github.com/TrainNomad/raptor-backend/timetable"
)

// StopTripEntry is one (route, trip, position-within-trip) triple for
// a stop: the shape the round-based search scans instead of the
// classical per-route pass, per spec.md section 4.4.2.
type StopTripEntry struct {
	RouteID model.RouteId
	Trip    *model.Trip
	Index   int
}

// buildStopToTrips builds stopToTrips over every trip in tt,
// regardless of calendar activity; per-date filtering is applied
// separately so the expensive full index is built exactly once.
// Route IDs are visited in sorted order so that insertion order — and
// therefore the tie-break order ties within one round rely on — is
// deterministic across builds of the same timetable.
func buildStopToTrips(tt *timetable.Timetable) map[model.StopId][]StopTripEntry {
	routeIDs := make([]model.RouteId, 0, len(tt.RouteTrips))
	for id := range tt.RouteTrips {
		routeIDs = append(routeIDs, id)
	}
	sort.Slice(routeIDs, func(i, j int) bool { return routeIDs[i] < routeIDs[j] })

	out := map[model.StopId][]StopTripEntry{}
	for _, routeID := range routeIDs {
		for _, trip := range tt.RouteTrips[routeID] {
			for i, st := range trip.StopTimes {
				out[st.StopID] = append(out[st.StopID], StopTripEntry{RouteID: routeID, Trip: trip, Index: i})
			}
		}
	}
	return out
}

// filterStopToTrips rebuilds the index restricted to the services
// active on one date, preserving the relative per-stop trip order of
// the unfiltered index.
func filterStopToTrips(unfiltered map[model.StopId][]StopTripEntry, active map[model.ServiceId]bool) map[model.StopId][]StopTripEntry {
	out := make(map[model.StopId][]StopTripEntry, len(unfiltered))
	for stopID, entries := range unfiltered {
		var kept []StopTripEntry
		for _, e := range entries {
			if active[e.Trip.ServiceID] {
				kept = append(kept, e)
			}
		}
		if len(kept) > 0 {
			out[stopID] = kept
		}
	}
	return out
}
