package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrainNomad/raptor-backend/model"
)

// TestDedupeByDestinationCityDropsDominatedJourney covers spec.md
// scenario 5: two stations in the same city are both reachable, but
// the one reached with strictly more transfers and no shorter
// duration is redundant once the better one is known.
func TestDedupeByDestinationCityDropsDominatedJourney(t *testing.T) {
	const stationA, stationB model.StopId = "SNCF:STATION_A", "SNCF:STATION_B"
	stations := []*model.Station{
		{DisplayName: "Paris A", City: "Paris", Country: "FR", MemberStopIDs: []model.StopId{stationA}},
		{DisplayName: "Paris B", City: "Paris", Country: "FR", MemberStopIDs: []model.StopId{stationB}},
	}
	snap := &Snapshot{Stations: stations}

	better := Journey{
		Legs:      []Leg{{AlightStop: stationA, Departure: sec(8, 0), Arrival: sec(9, 0)}},
		Departure: sec(8, 0), Arrival: sec(9, 0), Transfers: 0,
	}
	worse := Journey{
		Legs: []Leg{
			{AlightStop: "SNCF:MID", Departure: sec(8, 0), Arrival: sec(8, 30)},
			{AlightStop: stationB, Departure: sec(8, 40), Arrival: sec(9, 30)},
		},
		Departure: sec(8, 0), Arrival: sec(9, 30), Transfers: 1,
	}

	kept := dedupeByDestinationCity(snap, []Journey{better, worse})

	require.Len(t, kept, 1)
	assert.Equal(t, 0, kept[0].Transfers)
}

// TestDedupeByDestinationCityKeepsIncomparableJourneys asserts that a
// journey reaching the same city with fewer transfers but a longer
// duration is NOT dropped: neither journey dominates the other, so
// both survive for the caller to choose between.
func TestDedupeByDestinationCityKeepsIncomparableJourneys(t *testing.T) {
	const stationA, stationB model.StopId = "SNCF:STATION_A", "SNCF:STATION_B"
	stations := []*model.Station{
		{DisplayName: "Paris A", City: "Paris", Country: "FR", MemberStopIDs: []model.StopId{stationA}},
		{DisplayName: "Paris B", City: "Paris", Country: "FR", MemberStopIDs: []model.StopId{stationB}},
	}
	snap := &Snapshot{Stations: stations}

	slowDirect := Journey{
		Legs:      []Leg{{AlightStop: stationA, Departure: sec(8, 0), Arrival: sec(11, 0)}},
		Departure: sec(8, 0), Arrival: sec(11, 0), Transfers: 0,
	}
	fastWithTransfer := Journey{
		Legs: []Leg{
			{AlightStop: "SNCF:MID", Departure: sec(8, 0), Arrival: sec(8, 30)},
			{AlightStop: stationB, Departure: sec(8, 40), Arrival: sec(9, 30)},
		},
		Departure: sec(8, 0), Arrival: sec(9, 30), Transfers: 1,
	}

	kept := dedupeByDestinationCity(snap, []Journey{slowDirect, fastWithTransfer})

	assert.Len(t, kept, 2)
}

// TestDedupeByDestinationCityKeepsLaterDeparture asserts that a
// dominated-looking journey (same city, no fewer transfers, no shorter
// duration) is kept rather than merged away when it departs at a
// different time: it is a distinct, later Pareto option, not a
// same-departure platform duplicate.
func TestDedupeByDestinationCityKeepsLaterDeparture(t *testing.T) {
	const stationA, stationB model.StopId = "SNCF:STATION_A", "SNCF:STATION_B"
	stations := []*model.Station{
		{DisplayName: "Paris A", City: "Paris", Country: "FR", MemberStopIDs: []model.StopId{stationA}},
		{DisplayName: "Paris B", City: "Paris", Country: "FR", MemberStopIDs: []model.StopId{stationB}},
	}
	snap := &Snapshot{Stations: stations}

	earlier := Journey{
		Legs:      []Leg{{AlightStop: stationA, Departure: sec(8, 0), Arrival: sec(9, 0)}},
		Departure: sec(8, 0), Arrival: sec(9, 0), Transfers: 0,
	}
	later := Journey{
		Legs:      []Leg{{AlightStop: stationB, Departure: sec(9, 0), Arrival: sec(10, 0)}},
		Departure: sec(9, 0), Arrival: sec(10, 0), Transfers: 0,
	}

	kept := dedupeByDestinationCity(snap, []Journey{earlier, later})

	assert.Len(t, kept, 2)
}

// TestJourneyKeyDedupSoundness asserts that two reconstructions of the
// exact same trip sequence produce identical dedup keys, while a
// different trip sequence produces a different key.
func TestJourneyKeyDedupSoundness(t *testing.T) {
	a := Journey{Legs: []Leg{{TripID: "SNCF:T1"}, {TripID: "SNCF:T2"}}}
	b := Journey{Legs: []Leg{{TripID: "SNCF:T1"}, {TripID: "SNCF:T2"}}}
	c := Journey{Legs: []Leg{{TripID: "SNCF:T1"}, {TripID: "SNCF:T3"}}}

	assert.Equal(t, journeyKey(a), journeyKey(b))
	assert.NotEqual(t, journeyKey(a), journeyKey(c))
}
