package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrainNomad/raptor-backend/model"
	"github.com/TrainNomad/raptor-backend/timetable"
)

func sec(h, m int) model.Seconds { return model.Seconds(h*3600 + m*60) }

// buildTrip constructs a trip on one route visiting stops in order,
// each entry a (stopID, arrival, departure) triple expressed in hours
// and minutes for readability.
type stopSpec struct {
	id       model.StopId
	arr, dep int // hh*100+mm packed as arr/100, arr%100
}

func sp(id model.StopId, ah, am, dh, dm int) stopSpec {
	return stopSpec{id: id, arr: ah*100 + am, dep: dh*100 + dm}
}

func buildTrip(tripID model.TripId, routeID model.RouteId, serviceID model.ServiceId, op model.Operator, trainType model.TrainType, stops []stopSpec) *model.Trip {
	sts := make([]model.StopTime, len(stops))
	for i, s := range stops {
		sts[i] = model.StopTime{
			StopID:    s.id,
			Arrival:   sec(s.arr/100, s.arr%100),
			Departure: sec(s.dep/100, s.dep%100),
		}
	}
	return &model.Trip{
		ID:                 tripID,
		RouteID:            routeID,
		ServiceID:          serviceID,
		Operator:           op,
		TrainType:          trainType,
		FirstDepartureTime: sts[0].Departure,
		StopTimes:          sts,
	}
}

func snapshotFromTrips(trips map[model.RouteId][]*model.Trip, transfers map[model.StopId][]model.TransferEdge, active map[model.ServiceId]bool) *Snapshot {
	tt := &timetable.Timetable{
		Stops:      map[model.StopId]*model.Stop{},
		RouteTrips: trips,
	}
	for _, ts := range trips {
		for _, t := range ts {
			for _, st := range t.StopTimes {
				if _, ok := tt.Stops[st.StopID]; !ok {
					tt.Stops[st.StopID] = &model.Stop{ID: st.StopID, Operator: t.Operator}
				}
			}
		}
	}
	snap := NewSnapshot(tt, transfers, nil)
	if active != nil {
		filtered := filterStopToTrips(snap.unfiltered, active)
		snap.cache["2026-07-31"] = filtered
	}
	return snap
}

// TestSearchSingleDirectTrip covers spec.md scenario 1: a single
// direct service from an origin to a destination is found with zero
// transfers and the trip's own scheduled departure and arrival.
func TestSearchSingleDirectTrip(t *testing.T) {
	const origin, dest model.StopId = "SNCF:A", "SNCF:B"
	trip := buildTrip("SNCF:T1", "SNCF:R1", "SNCF:S1", model.OperatorSNCF, model.TrainTypeINOUI, []stopSpec{
		sp(origin, 0, 0, 8, 0),
		sp(dest, 10, 0, 0, 0),
	})
	snap := snapshotFromTrips(map[model.RouteId][]*model.Trip{"SNCF:R1": {trip}}, nil, nil)

	journeys := Search(snap, SearchRequest{
		Origins:      []model.StopId{origin},
		Destinations: []model.StopId{dest},
		StartTime:    sec(7, 0),
	})

	require.Len(t, journeys, 1)
	assert.Equal(t, 0, journeys[0].Transfers)
	assert.Equal(t, sec(8, 0), journeys[0].Departure)
	assert.Equal(t, sec(10, 0), journeys[0].Arrival)
	require.Len(t, journeys[0].Legs, 1)
	assert.Equal(t, model.TripId("SNCF:T1"), journeys[0].Legs[0].TripID)
}

// TestSearchBoardingBoundaryIsRazorThin asserts that a connection at
// the same stop with one minute between the inbound arrival and the
// outbound departure is boardable. No transfer edge, and so no
// minimum dwell, is involved.
func TestSearchBoardingBoundaryIsRazorThin(t *testing.T) {
	const origin, mid, dest model.StopId = "SNCF:A", "SNCF:B", "SNCF:C"
	inbound := buildTrip("SNCF:T1", "SNCF:R1", "SNCF:S1", model.OperatorSNCF, model.TrainTypeINOUI, []stopSpec{
		sp(origin, 0, 0, 7, 0),
		sp(mid, 8, 2, 0, 0),
	})
	outbound := buildTrip("SNCF:T2", "SNCF:R2", "SNCF:S1", model.OperatorSNCF, model.TrainTypeINOUI, []stopSpec{
		sp(mid, 0, 0, 8, 3),
		sp(dest, 8, 45, 0, 0),
	})
	snap := snapshotFromTrips(map[model.RouteId][]*model.Trip{
		"SNCF:R1": {inbound},
		"SNCF:R2": {outbound},
	}, nil, nil)

	journeys := Search(snap, SearchRequest{
		Origins:      []model.StopId{origin},
		Destinations: []model.StopId{dest},
		StartTime:    sec(6, 0),
	})

	require.Len(t, journeys, 1)
	assert.Equal(t, sec(8, 45), journeys[0].Arrival)
}

// TestSearchMissedConnectionIsNotFound covers the inverse of the above:
// a one-minute-earlier outbound departure makes the connection
// unboardable, so no journey through mid exists.
func TestSearchMissedConnectionIsNotFound(t *testing.T) {
	const origin, mid, dest model.StopId = "SNCF:A", "SNCF:B", "SNCF:C"
	inbound := buildTrip("SNCF:T1", "SNCF:R1", "SNCF:S1", model.OperatorSNCF, model.TrainTypeINOUI, []stopSpec{
		sp(origin, 0, 0, 7, 0),
		sp(mid, 8, 3, 0, 0),
	})
	outbound := buildTrip("SNCF:T2", "SNCF:R2", "SNCF:S1", model.OperatorSNCF, model.TrainTypeINOUI, []stopSpec{
		sp(mid, 0, 0, 8, 2),
		sp(dest, 8, 44, 0, 0),
	})
	snap := snapshotFromTrips(map[model.RouteId][]*model.Trip{
		"SNCF:R1": {inbound},
		"SNCF:R2": {outbound},
	}, nil, nil)

	journeys := Search(snap, SearchRequest{
		Origins:      []model.StopId{origin},
		Destinations: []model.StopId{dest},
		StartTime:    sec(6, 0),
	})

	assert.Empty(t, journeys)
}

// TestSearchRoundBoundHoldsForTwoTransfers asserts a journey needing
// two transfers (three ride legs) is discoverable: runRounds' MaxRounds
// of 5 covers up to four transfers, well above what this fixture needs.
func TestSearchRoundBoundHoldsForTwoTransfers(t *testing.T) {
	const a, b, c, d model.StopId = "SNCF:A", "SNCF:B", "SNCF:C", "SNCF:D"
	leg1 := buildTrip("SNCF:T1", "SNCF:R1", "SNCF:S1", model.OperatorSNCF, model.TrainTypeTER, []stopSpec{
		sp(a, 0, 0, 7, 0), sp(b, 8, 0, 0, 0),
	})
	leg2 := buildTrip("SNCF:T2", "SNCF:R2", "SNCF:S1", model.OperatorSNCF, model.TrainTypeTER, []stopSpec{
		sp(b, 0, 0, 8, 10), sp(c, 9, 0, 0, 0),
	})
	leg3 := buildTrip("SNCF:T3", "SNCF:R3", "SNCF:S1", model.OperatorSNCF, model.TrainTypeTER, []stopSpec{
		sp(c, 0, 0, 9, 10), sp(d, 10, 0, 0, 0),
	})
	snap := snapshotFromTrips(map[model.RouteId][]*model.Trip{
		"SNCF:R1": {leg1}, "SNCF:R2": {leg2}, "SNCF:R3": {leg3},
	}, nil, nil)

	journeys := Search(snap, SearchRequest{
		Origins:      []model.StopId{a},
		Destinations: []model.StopId{d},
		StartTime:    sec(6, 0),
	})

	require.Len(t, journeys, 1)
	assert.Equal(t, 2, journeys[0].Transfers)
	require.Len(t, journeys[0].Legs, 3)
}

// TestSearchParetoOrderPrefersFewerTransfers covers spec.md scenario 6:
// of two journeys with the same destination, the one with fewer
// transfers sorts first even when its duration is longer. The direct
// trip leaves after the first hop, so the 06:00 search finds the
// one-transfer journey and the later start time tried after it finds
// the direct one.
func TestSearchParetoOrderPrefersFewerTransfers(t *testing.T) {
	const a, b, dest model.StopId = "SNCF:A", "SNCF:B", "SNCF:C"
	direct := buildTrip("SNCF:DIRECT", "SNCF:RD", "SNCF:S1", model.OperatorSNCF, model.TrainTypeINOUI, []stopSpec{
		sp(a, 0, 0, 7, 10), sp(dest, 10, 0, 0, 0),
	})
	hop1 := buildTrip("SNCF:HOP1", "SNCF:RH1", "SNCF:S1", model.OperatorSNCF, model.TrainTypeTER, []stopSpec{
		sp(a, 0, 0, 7, 5), sp(b, 7, 30, 0, 0),
	})
	hop2 := buildTrip("SNCF:HOP2", "SNCF:RH2", "SNCF:S1", model.OperatorSNCF, model.TrainTypeTER, []stopSpec{
		sp(b, 0, 0, 7, 40), sp(dest, 8, 0, 0, 0),
	})
	snap := snapshotFromTrips(map[model.RouteId][]*model.Trip{
		"SNCF:RD": {direct}, "SNCF:RH1": {hop1}, "SNCF:RH2": {hop2},
	}, nil, nil)

	journeys := Search(snap, SearchRequest{
		Origins:      []model.StopId{a},
		Destinations: []model.StopId{dest},
		StartTime:    sec(6, 0),
	})

	require.Len(t, journeys, 2)
	assert.Equal(t, 0, journeys[0].Transfers)
	assert.Equal(t, 1, journeys[1].Transfers)
}
