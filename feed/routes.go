package feed

import (
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/TrainNomad/raptor-backend/model"
)

type routeCSV struct {
	ID        string `csv:"route_id"`
	ShortName string `csv:"route_short_name"`
	LongName  string `csv:"route_long_name"`
	Type      string `csv:"route_type"`
}

// parseRoutes reads routes.txt, applies the operator keep-rule, and
// returns the operator-prefixed route table. Routes that are filtered
// out are not an error: they are simply absent from the returned map.
func parseRoutes(operator model.Operator, data io.Reader) (map[model.RouteId]*model.RouteInfo, []error) {
	rows := []*routeCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return map[model.RouteId]*model.RouteInfo{}, []error{fmt.Errorf("unmarshaling routes.txt: %w", err)}
	}

	routes := map[model.RouteId]*model.RouteInfo{}
	var warnings []error

	for i, r := range rows {
		if r.ID == "" {
			warnings = append(warnings, &MalformedRowError{File: "routes.txt", Row: i + 1, Err: fmt.Errorf("empty route_id")})
			continue
		}

		routeType, err := strconv.Atoi(r.Type)
		if err != nil {
			warnings = append(warnings, &MalformedRowError{File: "routes.txt", Row: i + 1, Err: fmt.Errorf("bad route_type %q", r.Type)})
			continue
		}

		if !keepRoute(operator, routeType, r.ShortName) {
			continue
		}

		id := prefixRouteID(operator, r.ID)
		routes[id] = &model.RouteInfo{
			ID:       id,
			Short:    r.ShortName,
			Long:     r.LongName,
			Type:     routeType,
			Operator: operator,
		}
	}

	for _, w := range warnings {
		log.Printf("feed: %v", w)
	}

	return routes, warnings
}

func prefixRouteID(operator model.Operator, raw string) model.RouteId {
	return model.RouteId(string(operator) + ":" + raw)
}
