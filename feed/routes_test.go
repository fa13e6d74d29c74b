package feed

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrainNomad/raptor-backend/model"
)

func TestParseRoutesAppliesOperatorFilter(t *testing.T) {
	content := "route_id,route_short_name,route_long_name,route_type\n" +
		"1,TGV,Paris-Lyon,2\n" +
		"2,CAR,Paris-Rouen,3\n" +
		"3,NAVETTE,Navette,2\n"

	routes, warnings := parseRoutes(model.OperatorSNCF, bytes.NewBufferString(content))
	require.Empty(t, warnings)
	require.Len(t, routes, 1)

	r, ok := routes["SNCF:1"]
	require.True(t, ok)
	assert.Equal(t, "TGV", r.Short)
}

func TestParseRoutesSNCBKeepsOnlyListedShortNames(t *testing.T) {
	content := "route_id,route_short_name,route_long_name,route_type\n" +
		"1,IC,IC Brussels-Gent,2\n" +
		"2,L,Local,2\n"

	routes, warnings := parseRoutes(model.OperatorSNCB, bytes.NewBufferString(content))
	require.Empty(t, warnings)
	require.Len(t, routes, 1)
	_, ok := routes["SNCB:1"]
	assert.True(t, ok)
}

func TestParseRoutesSkipsBadRouteType(t *testing.T) {
	content := "route_id,route_short_name,route_long_name,route_type\n1,TGV,Paris-Lyon,x\n"

	routes, warnings := parseRoutes(model.OperatorSNCF, bytes.NewBufferString(content))
	assert.Len(t, warnings, 1)
	assert.Empty(t, routes)
}
