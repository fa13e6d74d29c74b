package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrainNomad/raptor-backend/model"
)

func TestGeographicPairingIsSymmetric(t *testing.T) {
	stops := map[model.StopId]*model.Stop{
		"SNCF:A": {ID: "SNCF:A", Name: "Gare A", Lat: 48.8566, Lon: 2.3522, Operator: model.OperatorSNCF},
		"TI:B":   {ID: "TI:B", Name: "Gare B", Lat: 48.8568, Lon: 2.3524, Operator: model.OperatorTI},
		"SNCF:C": {ID: "SNCF:C", Name: "Gare C", Lat: 45.0, Lon: 7.0, Operator: model.OperatorSNCF},
	}

	index := BuildTransferIndex(stops, nil, nil)

	aToB := findEdge(index["SNCF:A"], "TI:B")
	bToA := findEdge(index["TI:B"], "SNCF:A")
	require.NotNil(t, aToB)
	require.NotNil(t, bToA)
	assert.Equal(t, model.TransferSameStationCrossOperator, aToB.Category)
	assert.Equal(t, model.TransferSameStationCrossOperator, bToA.Category)

	assert.Nil(t, findEdge(index["SNCF:A"], "SNCF:C"))
}

func TestManifestEnrichmentOverridesGeography(t *testing.T) {
	stops := map[model.StopId]*model.Stop{
		"SNCF:A": {ID: "SNCF:A", Name: "Gare A", Lat: 0, Lon: 0, Operator: model.OperatorSNCF},
		"SNCF:B": {ID: "SNCF:B", Name: "Gare B", Lat: 10, Lon: 10, Operator: model.OperatorSNCF},
	}
	manifest := []ManifestEntry{{UIC: "1", StopIDs: []model.StopId{"SNCF:A", "SNCF:B"}}}

	index := BuildTransferIndex(stops, manifest, nil)

	edge := findEdge(index["SNCF:A"], "SNCF:B")
	require.NotNil(t, edge)
	assert.Equal(t, model.TransferSameStationSameOperator, edge.Category)
}

func TestInterCityLinksConnectStationsInSameCity(t *testing.T) {
	stops := map[model.StopId]*model.Stop{
		"SNCF:A": {ID: "SNCF:A", Name: "Gare A", Lat: 45.0, Lon: 4.8, Operator: model.OperatorSNCF},
		"SNCF:B": {ID: "SNCF:B", Name: "Gare B", Lat: 45.1, Lon: 4.9, Operator: model.OperatorSNCF},
	}
	stations := []*model.Station{
		{DisplayName: "A", City: "Lyon", Country: "FR", MemberStopIDs: []model.StopId{"SNCF:A"}},
		{DisplayName: "B", City: "Lyon", Country: "FR", MemberStopIDs: []model.StopId{"SNCF:B"}},
	}

	index := BuildTransferIndex(stops, nil, stations)

	edge := findEdge(index["SNCF:A"], "SNCF:B")
	require.NotNil(t, edge)
	assert.Equal(t, model.TransferInterCitySameMetro, edge.Category)
}

func findEdge(edges []model.TransferEdge, sibling model.StopId) *model.TransferEdge {
	for i := range edges {
		if edges[i].SiblingStopID == sibling {
			return &edges[i]
		}
	}
	return nil
}
