package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrainNomad/raptor-backend/model"
)

func TestDiskStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	w := NewDiskStore(dir)
	require.NoError(t, w.WriteStop("SNCF:A", &model.Stop{ID: "SNCF:A", Name: "Paris-Lyon", Lat: 48.8, Lon: 2.3, Operator: model.OperatorSNCF}))
	require.NoError(t, w.WriteRouteInfo("SNCF:R1", &model.RouteInfo{ID: "SNCF:R1", Short: "INOUI", Type: 2, Operator: model.OperatorSNCF}))
	require.NoError(t, w.WriteRouteStops("SNCF:R1", []model.StopId{"SNCF:A", "SNCF:B"}))
	require.NoError(t, w.WriteRoutesByStop("SNCF:A", []model.RouteId{"SNCF:R1"}))
	require.NoError(t, w.BeginRouteTrips())
	require.NoError(t, w.WriteRouteTrips("SNCF:R1", []*model.Trip{{
		ID: "SNCF:T1", RouteID: "SNCF:R1", ServiceID: "SNCF:S1", Operator: model.OperatorSNCF,
		TrainType: model.TrainTypeINOUI, FirstDepartureTime: 25200,
		StopTimes: []model.StopTime{
			{StopID: "SNCF:A", Arrival: 25200, Departure: 25200},
			{StopID: "SNCF:B", Arrival: 32400, Departure: 32400},
		},
	}}))
	require.NoError(t, w.EndRouteTrips())
	require.NoError(t, w.WriteCalendarDate("2025-01-10", []model.ServiceId{"SNCF:S1"}))
	require.NoError(t, w.WriteTransfers("SNCF:A", []model.TransferEdge{
		{SiblingStopID: "SNCF:A2", Category: model.TransferSameStationSameOperator},
		{SiblingStopID: "TI:A3", Category: model.TransferSameStationCrossOperator},
		{SiblingStopID: "SNCF:C", Category: model.TransferInterCitySameMetro},
	}))
	require.NoError(t, w.WriteStation(&model.Station{
		DisplayName: "Paris Lyon", City: "Paris", Country: "FR",
		MemberStopIDs: []model.StopId{"SNCF:A"}, Operators: []model.Operator{model.OperatorSNCF},
		Lat: 48.8, Lon: 2.3,
	}))
	require.NoError(t, w.WriteMeta(Meta{Operators: []model.Operator{model.OperatorSNCF}, StopCount: 1}))

	r, err := OpenDiskStore(dir)
	require.NoError(t, err)

	stops, err := r.Stops()
	require.NoError(t, err)
	assert.Equal(t, "Paris-Lyon", stops["SNCF:A"].Name)

	trips, err := r.RouteTrips()
	require.NoError(t, err)
	require.Len(t, trips["SNCF:R1"], 1)
	assert.Equal(t, model.TrainTypeINOUI, trips["SNCF:R1"][0].TrainType)
	assert.Equal(t, model.Seconds(32400), trips["SNCF:R1"][0].StopTimes[1].Arrival)

	transfers, err := r.TransferIndex()
	require.NoError(t, err)
	edges := transfers["SNCF:A"]
	require.Len(t, edges, 3)
	assert.Equal(t, model.TransferSameStationSameOperator, edges[0].Category)
	assert.Equal(t, model.TransferSameStationCrossOperator, edges[1].Category)
	assert.Equal(t, model.TransferInterCitySameMetro, edges[2].Category)

	stations, err := r.Stations()
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, "Paris Lyon", stations[0].DisplayName)

	meta, err := r.Meta()
	require.NoError(t, err)
	assert.Equal(t, 1, meta.StopCount)
}

func TestOpenDiskStoreMissingArtifact(t *testing.T) {
	dir := t.TempDir()
	_, err := OpenDiskStore(dir)
	require.Error(t, err)
	var missing *MissingArtifactError
	assert.ErrorAs(t, err, &missing)
}
