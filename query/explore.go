package query

import "github.com/TrainNomad/raptor-backend/model"

// exploreStartTimes are the eight fixed start-of-day times probed by
// Explore, per spec.md section 4.4.4: a coarse reachability sweep
// rather than the fine-grained enumeration Search performs.
var exploreStartTimes = []model.Seconds{
	5 * 3600, 7 * 3600, 9 * 3600, 11 * 3600,
	13 * 3600, 15 * 3600, 17 * 3600, 19 * 3600,
}

// Reachability is the best duration found to reach one stop across
// every probed start time in an Explore call.
type Reachability struct {
	StopID   model.StopId
	Duration model.Seconds
}

// Explore runs the round-based core once per exploreStartTimes entry
// from origins and keeps, for every stop reached by any of them,
// the shortest duration observed. It is used for "where can I get to"
// style queries where no single destination is known in advance, so
// it reads the unfiltered (date-independent) index.
func Explore(snap *Snapshot, origins []model.StopId) []Reachability {
	best := map[model.StopId]model.Seconds{}
	stopToTrips := snap.StopToTrips("")

	for _, start := range exploreStartTimes {
		state := runRounds(stopToTrips, snap.Transfers, origins, start, "")
		for stop, arrival := range state.tauBest {
			if state.origins[stop] {
				continue
			}
			d := arrival - start
			if cur, ok := best[stop]; !ok || d < cur {
				best[stop] = d
			}
		}
	}

	out := make([]Reachability, 0, len(best))
	for stop, d := range best {
		out = append(out, Reachability{StopID: stop, Duration: d})
	}
	return out
}
