package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrainNomad/raptor-backend/model"
)

func TestBuildStationIndexManifestPrimaryPass(t *testing.T) {
	stops := map[model.StopId]*model.Stop{
		"SNCF:A": {ID: "SNCF:A", Name: "Paris Gare de Lyon", Lat: 48.84, Lon: 2.37, Operator: model.OperatorSNCF},
		"TI:A":   {ID: "TI:A", Name: "Paris Gare de Lyon", Lat: 48.84, Lon: 2.37, Operator: model.OperatorTI},
	}
	manifest := []ManifestEntry{{UIC: "87", DisplayName: "Paris Gare de Lyon", City: "Paris", Country: "FR",
		StopIDs: []model.StopId{"SNCF:A", "TI:A"}}}

	stations := BuildStationIndex(stops, manifest, nil, nil)

	require.Len(t, stations, 1)
	assert.Equal(t, "Paris Gare de Lyon", stations[0].DisplayName)
	assert.ElementsMatch(t, []model.StopId{"SNCF:A", "TI:A"}, stations[0].MemberStopIDs)
	assert.ElementsMatch(t, []model.Operator{model.OperatorSNCF, model.OperatorTI}, stations[0].Operators)
}

func TestBuildStationIndexOrphanFoldByName(t *testing.T) {
	stops := map[model.StopId]*model.Stop{
		"SNCF:StopPoint-87756056": {ID: "SNCF:StopPoint-87756056", Name: "Nice-Ville", Lat: 43.0, Lon: 7.0, Operator: model.OperatorSNCF},
	}

	stations := BuildStationIndex(stops, nil, nil, nil)

	require.Len(t, stations, 1)
	assert.Equal(t, []model.StopId{"SNCF:StopPoint-87756056"}, stations[0].MemberStopIDs)
	assert.Equal(t, "FR", stations[0].Country)
}

// TestBuildStationIndexOrphanFoldByParentStation covers the
// administrative-parent-area half of the orphan fold: two platform
// stops sharing a parent_station, with names too different for the
// normalized-name fallback to ever group them, still land in one
// station.
func TestBuildStationIndexOrphanFoldByParentStation(t *testing.T) {
	stops := map[model.StopId]*model.Stop{
		"SNCF:platform-1": {ID: "SNCF:platform-1", Name: "Voie A", Lat: 45.75, Lon: 4.83, Operator: model.OperatorSNCF, ParentStation: "SNCF:hub"},
		"SNCF:platform-2": {ID: "SNCF:platform-2", Name: "Voie B", Lat: 45.76, Lon: 4.84, Operator: model.OperatorSNCF, ParentStation: "SNCF:hub"},
		"SNCF:hub":        {ID: "SNCF:hub", Name: "Lyon Part-Dieu", Lat: 45.77, Lon: 4.85, Operator: model.OperatorSNCF},
	}

	stations := BuildStationIndex(stops, nil, nil, nil)

	require.Len(t, stations, 1)
	assert.ElementsMatch(t, []model.StopId{"SNCF:platform-1", "SNCF:platform-2", "SNCF:hub"}, stations[0].MemberStopIDs)
}

func TestBuildStationIndexOperatorPresenceSort(t *testing.T) {
	stops := map[model.StopId]*model.Stop{
		"TI:A":   {ID: "TI:A", Name: "Stazione A", Lat: 45.0, Lon: 9.0, Operator: model.OperatorTI},
		"SNCF:B": {ID: "SNCF:B", Name: "Gare B", Lat: 48.0, Lon: 2.0, Operator: model.OperatorSNCF},
	}

	stations := BuildStationIndex(stops, nil, nil, nil)

	require.Len(t, stations, 2)
	assert.Equal(t, model.OperatorSNCF, stations[0].Operators[0])
	assert.Equal(t, model.OperatorTI, stations[1].Operators[0])
}

func TestBuildCityGroupsRequiresAtLeastTwoStations(t *testing.T) {
	stations := []*model.Station{
		{DisplayName: "A", City: "Lyon", Country: "FR"},
		{DisplayName: "B", City: "Lyon", Country: "FR"},
		{DisplayName: "C", City: "Paris", Country: "FR"},
	}

	groups := BuildCityGroups(stations)

	require.Len(t, groups, 1)
	assert.Equal(t, "Lyon", groups[0].City)
	assert.ElementsMatch(t, []int{0, 1}, groups[0].StationNo)
}
