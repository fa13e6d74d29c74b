package query

import "github.com/TrainNomad/raptor-backend/model"

// TripDebugInfo is the inspection-only view of one trip exposed by the
// debug endpoint, for diagnosing timetable or reconciliation issues
// without re-deriving a journey through Search.
type TripDebugInfo struct {
	TripID    model.TripId
	RouteID   model.RouteId
	Operator  model.Operator
	TrainType model.TrainType
	StopTimes []model.StopTime
}

// TripsThrough returns debug info for every trip of stopToTrips that
// visits stop, in the same order the round-based scan would encounter
// them. Unlike Search and Explore, it performs no boarding logic: it
// is a direct read of the index for manual inspection.
func TripsThrough(snap *Snapshot, date string, stop model.StopId) []TripDebugInfo {
	entries := snap.StopToTrips(date)[stop]

	out := make([]TripDebugInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, TripDebugInfo{
			TripID:    e.Trip.ID,
			RouteID:   e.RouteID,
			Operator:  e.Trip.Operator,
			TrainType: e.Trip.TrainType,
			StopTimes: e.Trip.StopTimes,
		})
	}
	return out
}
