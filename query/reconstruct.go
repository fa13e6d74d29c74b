package query

import "github.com/TrainNomad/raptor-backend/model"

// Leg is one scheduled ride within a reconstructed journey.
type Leg struct {
	BoardStop  model.StopId
	AlightStop model.StopId
	Departure  model.Seconds
	Arrival    model.Seconds
	Duration   model.Seconds
	TripID     model.TripId
	RouteID    model.RouteId
	RouteName  string
	TrainType  model.TrainType
	Operator   model.Operator
}

// Journey is one complete origin-to-destination itinerary reconstructed
// from a roundState's parent map.
type Journey struct {
	Legs       []Leg
	Departure  model.Seconds
	Arrival    model.Seconds
	Transfers  int
	TrainTypes map[model.TrainType]bool
}

// reconstruct walks the parent chain from dest back to an origin,
// collecting ride legs in traversal order (destination to origin) and
// reversing them before returning. It stops on the first stop with no
// parent entry (a seeded origin) or on detecting a repeated stop,
// which would indicate a cycle in the parent map; a well-formed
// roundState never cycles, but reconstruction does not trust that.
//
// Transfer count is the number of ride legs minus one, except when the
// walk-back terminates at a TransferParent rooted at a true origin
// with category TransferInterCitySameMetro: reaching the destination
// required boarding from an inter-city-linked neighbour rather than
// the origin itself, which spec.md counts as one transfer even though
// it was seeded before round 1.
func reconstruct(state *roundState, dest model.StopId, routesInfo map[model.RouteId]*model.RouteInfo) (*Journey, bool) {
	if _, reached := state.tauBest[dest]; !reached {
		return nil, false
	}

	var rideLegs []Leg
	visited := map[model.StopId]bool{}
	cur := dest
	interCityOrigin := false

	for {
		if visited[cur] {
			return nil, false
		}
		visited[cur] = true

		p, ok := state.parent[cur]
		if !ok {
			break
		}

		switch par := p.(type) {
		case RideParent:
			rideLegs = append(rideLegs, Leg{
				BoardStop:  par.BoardStop,
				AlightStop: cur,
				Departure:  par.BoardDep,
				Arrival:    par.Arrival,
				Duration:   par.Arrival - par.BoardDep,
				TripID:     par.TripID,
				RouteID:    par.RouteID,
				RouteName:  routeName(routesInfo, par.RouteID),
				TrainType:  par.TrainType,
				Operator:   par.Operator,
			})
			cur = par.BoardStop
		case TransferParent:
			if _, fromHasParent := state.parent[par.FromStop]; !fromHasParent && state.origins[par.FromStop] {
				if par.Category == model.TransferInterCitySameMetro {
					interCityOrigin = true
				}
			}
			cur = par.FromStop
		}
	}

	if len(rideLegs) == 0 {
		return nil, false
	}

	// Reverse rideLegs into departure order.
	for i, j := 0, len(rideLegs)-1; i < j; i, j = i+1, j-1 {
		rideLegs[i], rideLegs[j] = rideLegs[j], rideLegs[i]
	}

	transfers := len(rideLegs) - 1
	if interCityOrigin {
		transfers++
	}

	trainTypes := make(map[model.TrainType]bool, len(rideLegs))
	for _, leg := range rideLegs {
		trainTypes[leg.TrainType] = true
	}

	return &Journey{
		Legs:       rideLegs,
		Departure:  rideLegs[0].Departure,
		Arrival:    rideLegs[len(rideLegs)-1].Arrival,
		Transfers:  transfers,
		TrainTypes: trainTypes,
	}, true
}

// routeName prefers the short name a rider sees on a platform display,
// falling back to the long name when no short name was provided.
func routeName(routesInfo map[model.RouteId]*model.RouteInfo, id model.RouteId) string {
	info, ok := routesInfo[id]
	if !ok {
		return ""
	}
	if info.Short != "" {
		return info.Short
	}
	return info.Long
}
