package query

import (
	"sort"

	"github.com/TrainNomad/raptor-backend/model"
)

// maxEmptyAdvances bounds the later-start-time enumeration loop: once
// this many consecutive advances produce no new journey, the
// enumeration stops even if maxSpan has not been reached.
const maxEmptyAdvances = 4

// maxSpanSeconds bounds the total width of the enumeration window: no
// later start time is tried once the window from the first requested
// start time exceeds 14 hours, per spec.md section 4.4.3.
const maxSpanSeconds = 14 * 3600

// emptyAdvanceStep is how far a start time advances after a round that
// discovers no new journey.
const emptyAdvanceStep = 30 * 60

// SearchRequest is one origin-to-destination query.
type SearchRequest struct {
	Origins      []model.StopId
	Destinations []model.StopId
	Date         string
	StartTime    model.Seconds
	TrainTypes   map[model.TrainType]bool // nil or empty means no filter
}

// Search enumerates Pareto-optimal journeys from any of req.Origins to
// any of req.Destinations, by repeatedly running the round-based core
// at successively later start times until the enumeration window
// closes, per spec.md section 4.4.3. Results are deduplicated by trip
// sequence, sorted by (transfers, duration, departure), then
// deduplicated by destination city, which keeps the sorted order.
func Search(snap *Snapshot, req SearchRequest) []Journey {
	stopToTrips := snap.StopToTrips(req.Date)

	seen := map[string]bool{}
	var journeys []Journey

	startTime := req.StartTime
	emptyAdvances := 0

	for startTime-req.StartTime <= maxSpanSeconds && emptyAdvances < maxEmptyAdvances {
		state := runRounds(stopToTrips, snap.Transfers, req.Origins, startTime, req.Date)

		found, nextStart := collectRoundJourneys(state, req.Destinations, seen, snap.Timetable.RoutesInfo, req.TrainTypes)
		if len(found) == 0 {
			emptyAdvances++
			startTime += emptyAdvanceStep
			continue
		}

		emptyAdvances = 0
		for _, j := range found {
			key := journeyKey(j)
			if seen[key] {
				continue
			}
			seen[key] = true
			journeys = append(journeys, j)
		}

		if nextStart <= startTime {
			nextStart = startTime + 1
		}
		startTime = nextStart
	}

	sortJourneys(journeys)
	journeys = dedupeByDestinationCity(snap, journeys)
	return journeys
}

// collectRoundJourneys reconstructs a journey to every reachable
// destination in one round's state, filters by train type and
// previously-seen dedup key, and returns the new journeys plus the
// next start time to try (one second past the latest departure found
// this round).
func collectRoundJourneys(state *roundState, destinations []model.StopId, seen map[string]bool, routesInfo map[model.RouteId]*model.RouteInfo, trainTypes map[model.TrainType]bool) ([]Journey, model.Seconds) {
	var found []Journey
	var latestDep model.Seconds

	for _, dest := range destinations {
		j, ok := reconstruct(state, dest, routesInfo)
		if !ok {
			continue
		}
		if !passesTrainTypeFilter(j, trainTypes) {
			continue
		}
		key := journeyKey(*j)
		if seen[key] {
			continue
		}
		found = append(found, *j)
		if j.Departure > latestDep {
			latestDep = j.Departure
		}
	}

	return found, latestDep + 1
}

func passesTrainTypeFilter(j *Journey, trainTypes map[model.TrainType]bool) bool {
	if len(trainTypes) == 0 {
		return true
	}
	for _, leg := range j.Legs {
		if trainTypes[leg.TrainType] {
			return true
		}
	}
	return false
}

func journeyKey(j Journey) string {
	key := ""
	for _, leg := range j.Legs {
		key += string(leg.TripID) + "|"
	}
	return key
}

// dedupeByDestinationCity collapses one physical departure that lands
// on multiple platforms of the same city: when two journeys share a
// departure time and arrive at different stops of the same
// (city, country), the one with no fewer transfers and no shorter
// duration is redundant and is dropped, per spec.md section 4.4.3
// scenario 5. Journeys to the same city at different departure times
// are a distinct, later-departing Pareto option and are never merged
// here — that axis is what Search's later-start-time enumeration loop
// exists to surface.
func dedupeByDestinationCity(snap *Snapshot, journeys []Journey) []Journey {
	cityOf := make(map[model.StopId]string, len(snap.StopNames))
	for _, st := range snap.Stations {
		for _, id := range st.MemberStopIDs {
			cityOf[id] = st.City
		}
	}

	var kept []Journey
	for _, j := range journeys {
		dest := j.Legs[len(j.Legs)-1].AlightStop
		city, hasCity := cityOf[dest]

		dominated := false
		for _, k := range kept {
			kDest := k.Legs[len(k.Legs)-1].AlightStop
			kCity, kHasCity := cityOf[kDest]
			sameCity := hasCity && kHasCity && city == kCity && city != ""
			sameStop := kDest == dest
			if !sameCity && !sameStop {
				continue
			}
			if k.Departure != j.Departure {
				continue
			}
			if k.Transfers <= j.Transfers && duration(k) <= duration(j) {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, j)
		}
	}
	return kept
}

func duration(j Journey) model.Seconds {
	return j.Arrival - j.Departure
}

func sortJourneys(journeys []Journey) {
	sort.Slice(journeys, func(i, j int) bool {
		a, b := journeys[i], journeys[j]
		if a.Transfers != b.Transfers {
			return a.Transfers < b.Transfers
		}
		if duration(a) != duration(b) {
			return duration(a) < duration(b)
		}
		return a.Departure < b.Departure
	})
}
