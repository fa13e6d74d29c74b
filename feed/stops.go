package feed

import (
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/TrainNomad/raptor-backend/model"
)

type stopCSV struct {
	ID            string `csv:"stop_id"`
	Name          string `csv:"stop_name"`
	Lat           string `csv:"stop_lat"`
	Lon           string `csv:"stop_lon"`
	ParentStation string `csv:"parent_station"`
}

// parseStops reads stops.txt and returns the operator-prefixed stop
// table. Rows with an unparseable lat/lon are logged and skipped; a
// stop is otherwise kept even with a blank name (some feeds omit it
// for platforms that only ever appear as part of a larger station).
// A non-empty parent_station is carried through operator-prefixed, the
// way every other cross-referencing stop ID in this feed is: it names
// the administrative parent area reconcile.BuildStationIndex folds
// orphan stops into ahead of its name-normalization fallback.
func parseStops(operator model.Operator, data io.Reader) (map[model.StopId]*model.Stop, []error) {
	rows := []*stopCSV{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return map[model.StopId]*model.Stop{}, []error{fmt.Errorf("unmarshaling stops.txt: %w", err)}
	}

	stops := map[model.StopId]*model.Stop{}
	var warnings []error

	for i, r := range rows {
		if r.ID == "" {
			warnings = append(warnings, &MalformedRowError{File: "stops.txt", Row: i + 1, Err: fmt.Errorf("empty stop_id")})
			continue
		}

		lat, errLat := strconv.ParseFloat(r.Lat, 64)
		lon, errLon := strconv.ParseFloat(r.Lon, 64)
		if errLat != nil || errLon != nil {
			warnings = append(warnings, &MalformedRowError{File: "stops.txt", Row: i + 1, Err: fmt.Errorf("bad lat/lon")})
			continue
		}

		id := prefixStopID(operator, r.ID)
		var parent model.StopId
		if r.ParentStation != "" {
			parent = prefixStopID(operator, r.ParentStation)
		}
		stops[id] = &model.Stop{
			ID:            id,
			Name:          r.Name,
			Lat:           lat,
			Lon:           lon,
			Operator:      operator,
			ParentStation: parent,
		}
	}

	for _, w := range warnings {
		log.Printf("feed: %v", w)
	}

	return stops, warnings
}

func prefixStopID(operator model.Operator, raw string) model.StopId {
	return model.StopId(string(operator) + ":" + raw)
}
