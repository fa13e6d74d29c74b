package feed

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrainNomad/raptor-backend/model"
)

func testRoutes() map[model.RouteId]*model.RouteInfo {
	return map[model.RouteId]*model.RouteInfo{
		"SNCF:r1": {ID: "SNCF:r1"},
	}
}

func TestParseTripsDropsUnknownRoute(t *testing.T) {
	content := "trip_id,route_id,service_id\nt1,r1,s1\nt2,other,s1\n"

	trips, warnings := parseTrips(model.OperatorSNCF, bytes.NewBufferString(content), testRoutes())
	require.Empty(t, warnings)
	require.Len(t, trips, 1)

	trip, ok := trips["SNCF:t1"]
	require.True(t, ok)
	assert.Equal(t, model.RouteId("SNCF:r1"), trip.RouteID)
	assert.Equal(t, model.ServiceId("SNCF:s1"), trip.ServiceID)
}

func TestParseTripsRejectsDuplicateID(t *testing.T) {
	content := "trip_id,route_id,service_id\nt1,r1,s1\nt1,r1,s2\n"

	trips, warnings := parseTrips(model.OperatorSNCF, bytes.NewBufferString(content), testRoutes())
	assert.Len(t, warnings, 1)
	assert.Len(t, trips, 1)
}

func TestParseStopTimesSortsBySequenceAndSetsFirstDeparture(t *testing.T) {
	trips := map[model.TripId]*model.Trip{
		"SNCF:t1": {ID: "SNCF:t1"},
	}
	stops := map[model.StopId]*model.Stop{
		"SNCF:a": {ID: "SNCF:a"},
		"SNCF:b": {ID: "SNCF:b"},
	}

	content := "trip_id,stop_id,stop_sequence,arrival_time,departure_time\n" +
		"t1,b,2,10:05:00,10:06:00\n" +
		"t1,a,1,10:00:00,10:01:00\n"

	warnings := parseStopTimes(model.OperatorSNCF, bytes.NewBufferString(content), trips, stops)
	require.Empty(t, warnings)

	trip := trips["SNCF:t1"]
	require.Len(t, trip.StopTimes, 2)
	assert.Equal(t, model.StopId("SNCF:a"), trip.StopTimes[0].StopID)
	assert.Equal(t, model.StopId("SNCF:b"), trip.StopTimes[1].StopID)
	assert.Equal(t, model.Seconds(10*3600+1*60), trip.FirstDepartureTime)
}

func TestParseHMSAllowsHourPast23(t *testing.T) {
	s, err := parseHMS("25:30:00")
	require.NoError(t, err)
	assert.Equal(t, model.Seconds(25*3600+30*60), s)
}

func TestParseHMSRejectsMalformed(t *testing.T) {
	_, err := parseHMS("10:99:00")
	assert.Error(t, err)

	_, err = parseHMS("10:00")
	assert.Error(t, err)
}
