package query

import (
	"math"
	"sort"

	"github.com/TrainNomad/raptor-backend/model"
)

// Infinity is the sentinel arrival time for a stop that has not been
// reached by any round so far.
const Infinity = model.Seconds(math.MaxInt32)

// MaxRounds is the hard cap on round-based search iterations, per
// spec.md section 5: a journey with k transfers is discovered within
// k+1 rounds, and no itinerary this system models needs more than 5.
const MaxRounds = 5

// roundState is the mutable working set for one round-based
// invocation (one call to runRounds): the best arrival found so far at
// every stop, and the predecessor used to reach it.
type roundState struct {
	tauBest map[model.StopId]model.Seconds
	parent  map[model.StopId]Parent
	origins map[model.StopId]bool
}

func newRoundState() *roundState {
	return &roundState{
		tauBest: map[model.StopId]model.Seconds{},
		parent:  map[model.StopId]Parent{},
		origins: map[model.StopId]bool{},
	}
}

func (r *roundState) tau(stop model.StopId) model.Seconds {
	if v, ok := r.tauBest[stop]; ok {
		return v
	}
	return Infinity
}

// runRounds executes the round-based core once, for one start time and
// one date, seeding origins and their transfer neighbours, then
// alternating trip scans and transfer relaxation until no stop is
// marked or MaxRounds is reached. The returned roundState lets the
// caller reconstruct a journey to any stop that was reached.
func runRounds(stopToTrips map[model.StopId][]StopTripEntry, transfers map[model.StopId][]model.TransferEdge, origins []model.StopId, startTime model.Seconds, date string) *roundState {
	state := newRoundState()

	marked := map[model.StopId]bool{}
	for _, o := range origins {
		state.origins[o] = true
		if startTime < state.tau(o) {
			state.tauBest[o] = startTime
		}
		marked[o] = true
	}

	// Seed transfer neighbours of every origin before round 1: a
	// same-station neighbour joins the origin set (boarding there
	// costs no transfer); an inter-city-same-metro neighbour is
	// reachable but stays outside the origin set.
	relaxTransfers(state, transfers, origins, marked, true)

	for round := 0; round < MaxRounds && len(marked) > 0; round++ {
		rideMarked := scanTrips(state, stopToTrips, marked, date)
		if len(rideMarked) == 0 {
			break
		}
		transferMarked := relaxTransfers(state, transfers, sortedStops(rideMarked), rideMarked, false)
		for stop := range transferMarked {
			rideMarked[stop] = true
		}
		marked = rideMarked
	}

	return state
}

func sortedStops(set map[model.StopId]bool) []model.StopId {
	out := make([]model.StopId, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// scanTrips performs one round's per-stop scan: for every marked stop
// and every (route, trip, idx) entry in stopToTrips[stop], it boards
// the trip at the first stop at-or-after idx whose current best
// arrival permits boarding, then relaxes arrivals at every subsequent
// stop on that trip. Returns the set of stops improved this round.
func scanTrips(state *roundState, stopToTrips map[model.StopId][]StopTripEntry, marked map[model.StopId]bool, date string) map[model.StopId]bool {
	improved := map[model.StopId]bool{}

	for _, stop := range sortedStops(marked) {
		for _, entry := range stopToTrips[stop] {
			trip := entry.Trip
			boarded := false
			var boardStop model.StopId
			var boardDep model.Seconds

			for i := entry.Index; i < len(trip.StopTimes); i++ {
				st := trip.StopTimes[i]
				dep := adjustTITime(trip.Operator, st.Departure, date)

				if !boarded {
					if state.tau(st.StopID) <= dep {
						boarded = true
						boardStop = st.StopID
						boardDep = dep
					}
					continue
				}

				arr := adjustTITime(trip.Operator, st.Arrival, date)
				if arr < state.tau(st.StopID) {
					state.tauBest[st.StopID] = arr
					state.parent[st.StopID] = RideParent{
						BoardStop: boardStop,
						BoardDep:  boardDep,
						Arrival:   arr,
						TripID:    trip.ID,
						RouteID:   entry.RouteID,
						TrainType: trip.TrainType,
						Operator:  trip.Operator,
					}
					improved[st.StopID] = true
				}
			}
		}
	}

	return improved
}

// relaxTransfers relaxes every transfer edge out of the given stops.
// When seedingOrigins is true this is the pre-round-1 seeding pass
// described in spec.md section 4.4.2: same-station neighbours are
// folded into the origin set, inter-city neighbours are not.
func relaxTransfers(state *roundState, transfers map[model.StopId][]model.TransferEdge, from []model.StopId, tauCurSet map[model.StopId]bool, seedingOrigins bool) map[model.StopId]bool {
	marked := map[model.StopId]bool{}

	for _, stop := range from {
		cur := state.tau(stop)
		for _, edge := range transfers[stop] {
			cand := cur + edge.Category.MinDwell()
			if cand >= state.tau(edge.SiblingStopID) {
				continue
			}
			state.tauBest[edge.SiblingStopID] = cand
			state.parent[edge.SiblingStopID] = TransferParent{FromStop: stop, Category: edge.Category}
			marked[edge.SiblingStopID] = true

			if seedingOrigins && edge.Category != model.TransferInterCitySameMetro {
				state.origins[edge.SiblingStopID] = true
			}
		}
	}

	if seedingOrigins {
		for _, stop := range from {
			marked[stop] = true
		}
	}

	return marked
}
