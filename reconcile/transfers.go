package reconcile

import (
	"sort"

	"github.com/TrainNomad/raptor-backend/model"
)

type edgeTable map[model.StopId]map[model.StopId]model.TransferCategory

func (t edgeTable) set(origin, sibling model.StopId, category model.TransferCategory, override bool) {
	if origin == sibling {
		return
	}
	if t[origin] == nil {
		t[origin] = map[model.StopId]model.TransferCategory{}
	}
	if _, exists := t[origin][sibling]; exists && !override {
		return
	}
	t[origin][sibling] = category
}

func sameOperatorCategory(stops map[model.StopId]*model.Stop, a, b model.StopId) model.TransferCategory {
	if stops[a].Operator == stops[b].Operator {
		return model.TransferSameStationSameOperator
	}
	return model.TransferSameStationCrossOperator
}

// BuildTransferIndex runs the four-step construction from spec.md
// section 4.3: geographic pairing, manifest enrichment (overriding
// geography), cross-operator TI/SNCF name linking, and inter-city
// links derived from the already-reconciled station index.
func BuildTransferIndex(stops map[model.StopId]*model.Stop, manifest []ManifestEntry, stations []*model.Station) map[model.StopId][]model.TransferEdge {
	edges := edgeTable{}

	geographicPairing(stops, edges)
	manifestEnrichment(stops, manifest, edges)
	crossOperatorNameLinking(stops, edges)
	interCityLinks(stations, edges)

	return edges.toTransferIndex()
}

// geographicPairing emits a symmetric pair for every two stops within
// GeoPairingRadiusMeters. Quadratic in stop count, acceptable at the
// scale spec.md section 4.3 calls out (tens of thousands of stops).
func geographicPairing(stops map[model.StopId]*model.Stop, edges edgeTable) {
	ids := sortedStopIDs(stops)
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := stops[ids[i]], stops[ids[j]]
			if !withinPairingRadius(&stopPoint{a.Lat, a.Lon}, &stopPoint{b.Lat, b.Lon}) {
				continue
			}
			edges.set(ids[i], ids[j], sameOperatorCategory(stops, ids[i], ids[j]), false)
			edges.set(ids[j], ids[i], sameOperatorCategory(stops, ids[j], ids[i]), false)
		}
	}
}

// manifestEnrichment adds a same-station link for every unordered pair
// within a manifest station, overriding whatever geographic pairing
// produced for that pair.
func manifestEnrichment(stops map[model.StopId]*model.Stop, manifest []ManifestEntry, edges edgeTable) {
	for _, entry := range manifest {
		members := make([]model.StopId, 0, len(entry.StopIDs))
		for _, id := range entry.StopIDs {
			if _, ok := stops[id]; ok {
				members = append(members, id)
			}
		}
		for i := 0; i < len(members); i++ {
			for j := 0; j < len(members); j++ {
				if i == j {
					continue
				}
				edges.set(members[i], members[j], sameOperatorCategory(stops, members[i], members[j]), true)
			}
		}
	}
}

// crossOperatorNameLinking finds, for every TI-prefixed stop, the SNCF
// stops sharing a normalized name and adds bidirectional links.
func crossOperatorNameLinking(stops map[model.StopId]*model.Stop, edges edgeTable) {
	sncfByName := map[string][]model.StopId{}
	for id, s := range stops {
		if s.Operator == model.OperatorSNCF {
			sncfByName[normalizeName(s.Name)] = append(sncfByName[normalizeName(s.Name)], id)
		}
	}

	for id, s := range stops {
		if s.Operator != model.OperatorTI {
			continue
		}
		for _, sncfID := range sncfByName[normalizeName(s.Name)] {
			edges.set(id, sncfID, model.TransferSameStationCrossOperator, false)
			edges.set(sncfID, id, model.TransferSameStationCrossOperator, false)
		}
	}
}

// interCityLinks connects stops belonging to different stations that
// share a (city, country) key with the inter-city-same-metro category.
// It never overrides an edge a finer pass already established.
func interCityLinks(stations []*model.Station, edges edgeTable) {
	byCity := map[[2]string][]*model.Station{}
	for _, st := range stations {
		if st.City == "" {
			continue
		}
		key := [2]string{st.City, st.Country}
		byCity[key] = append(byCity[key], st)
	}

	for _, group := range byCity {
		if len(group) < 2 {
			continue
		}
		for i, a := range group {
			for j, b := range group {
				if i == j {
					continue
				}
				for _, x := range a.MemberStopIDs {
					for _, y := range b.MemberStopIDs {
						edges.set(x, y, model.TransferInterCitySameMetro, false)
					}
				}
			}
		}
	}
}

func (t edgeTable) toTransferIndex() map[model.StopId][]model.TransferEdge {
	out := make(map[model.StopId][]model.TransferEdge, len(t))
	for origin, siblings := range t {
		list := make([]model.TransferEdge, 0, len(siblings))
		for sibling, cat := range siblings {
			list = append(list, model.TransferEdge{SiblingStopID: sibling, Category: cat})
		}
		sort.Slice(list, func(i, j int) bool { return list[i].SiblingStopID < list[j].SiblingStopID })
		out[origin] = list
	}
	return out
}
