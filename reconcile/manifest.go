package reconcile

import (
	"io"

	"github.com/gocarina/gocsv"

	"github.com/TrainNomad/raptor-backend/model"
)

// ManifestEntry is one logical station from the curated, offline-built
// station manifest (built from an open-data operator-mapping CSV keyed
// by UIC code): the set of stop identifiers that belong together.
type ManifestEntry struct {
	UIC         string
	DisplayName string
	City        string
	Country     string
	StopIDs     []model.StopId
}

type manifestRow struct {
	UIC         string `csv:"uic"`
	DisplayName string `csv:"display_name"`
	City        string `csv:"city"`
	Country     string `csv:"country"`
	StopID      string `csv:"stop_id"`
}

// LoadManifest reads the curated manifest CSV (one row per member
// stop, grouped by a shared uic code) and aggregates it into one entry
// per station.
func LoadManifest(data io.Reader) ([]ManifestEntry, error) {
	rows := []*manifestRow{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, err
	}

	order := []string{}
	byKey := map[string]*ManifestEntry{}

	for _, r := range rows {
		if r.StopID == "" {
			continue
		}
		key := r.UIC
		if key == "" {
			key = r.DisplayName
		}
		entry, ok := byKey[key]
		if !ok {
			entry = &ManifestEntry{UIC: r.UIC, DisplayName: r.DisplayName, City: r.City, Country: r.Country}
			byKey[key] = entry
			order = append(order, key)
		}
		entry.StopIDs = append(entry.StopIDs, model.StopId(r.StopID))
	}

	out := make([]ManifestEntry, 0, len(order))
	for _, k := range order {
		out = append(out, *byKey[k])
	}
	return out, nil
}

// StopPair is an unordered pair of stop identifiers, used to represent
// blacklist and whitelist entries for station-index reconciliation.
type StopPair [2]model.StopId

// Normalized returns the pair in a canonical order so it can be used
// as a map key regardless of which side was observed first.
func (p StopPair) Normalized() StopPair {
	if p[0] <= p[1] {
		return p
	}
	return StopPair{p[1], p[0]}
}

type pairRow struct {
	A string `csv:"stop_a"`
	B string `csv:"stop_b"`
}

// LoadPairs reads a two-column stop_a,stop_b CSV into a set of
// normalized pairs, the shape both the blacklist and the whitelist
// take.
func LoadPairs(data io.Reader) (map[StopPair]bool, error) {
	rows := []*pairRow{}
	if err := gocsv.Unmarshal(data, &rows); err != nil {
		return nil, err
	}

	out := map[StopPair]bool{}
	for _, r := range rows {
		if r.A == "" || r.B == "" {
			continue
		}
		out[StopPair{model.StopId(r.A), model.StopId(r.B)}.Normalized()] = true
	}
	return out, nil
}
