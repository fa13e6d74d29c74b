package reconcile

import (
	"sort"
	"strings"

	"github.com/TrainNomad/raptor-backend/model"
)

// uicCountryPrefix maps the first two digits of a UIC station code to
// the country it belongs to, per spec.md section 4.3.
var uicCountryPrefix = map[string]string{
	"87": "FR", "86": "FR",
	"88": "BE",
	"80": "DE", "81": "DE",
	"82": "AT",
	"83": "IT",
	"84": "ES",
	"85": "PT",
	"71": "ES",
	"70": "GB",
	"74": "CH",
	"79": "NL", "78": "NL",
	"55": "PL",
	"54": "CZ",
	"53": "SK",
}

// operatorPresenceRank orders stations for the final sort: SNCF first,
// then RENFE, OUIGO_ES, ES, TI, and everything else last.
var operatorPresenceRank = map[model.Operator]int{
	model.OperatorSNCF:    0,
	model.OperatorRENFE:   1,
	model.OperatorOuigoES: 2,
	model.OperatorES:      3,
	model.OperatorTI:      4,
}

func uicCode(id model.StopId) string {
	local := string(id)
	if i := strings.IndexByte(local, ':'); i >= 0 {
		local = local[i+1:]
	}
	digits := extractLeadingDigitRun(local)
	if len(digits) < 2 {
		return ""
	}
	return digits[:2]
}

func extractLeadingDigitRun(s string) string {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			return s[start:i]
		}
	}
	if start != -1 {
		return s[start:]
	}
	return ""
}

// countryOf infers the station's country from the operator and, for
// SNCF-style UIC-numbered stops, the UIC prefix table. Spanish
// operators are always forced to ES regardless of any numeric prefix.
func countryOf(stop *model.Stop) string {
	if stop.Operator == model.OperatorRENFE || stop.Operator == model.OperatorOuigoES {
		return "ES"
	}
	if country, ok := uicCountryPrefix[uicCode(stop.ID)]; ok {
		return country
	}
	return ""
}

// eurostarSlugBase strips the trailing numeric platform suffix off a
// Eurostar slug identifier ("ES:paris_nord_3" -> "paris_nord"), the
// heuristic that groups a station's several boarding-area stops.
func eurostarSlugBase(id model.StopId) string {
	local := string(id)
	if i := strings.IndexByte(local, ':'); i >= 0 {
		local = local[i+1:]
	}
	parts := strings.Split(local, "_")
	if len(parts) > 1 {
		last := parts[len(parts)-1]
		if isAllDigits(last) {
			return strings.Join(parts[:len(parts)-1], "_")
		}
	}
	return local
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type stationBuilder struct {
	entry   *ManifestEntry
	members []model.StopId
}

// BuildStationIndex reconciles the stop universe into logical
// stations: a primary pass from the curated manifest, a Eurostar-slug
// heuristic pass, a whitelist/geographic merge pass (skipping any pair
// the blacklist marks as a known-bad link), an orphan fold of anything
// still unassigned, a post-pass UIC fusion of SNCF- and ES-only
// duplicates, and the final operator-presence sort.
func BuildStationIndex(stops map[model.StopId]*model.Stop, manifest []ManifestEntry, blacklist, whitelist map[StopPair]bool) []*model.Station {
	assigned := map[model.StopId]int{}
	var builders []*stationBuilder

	// (a) primary pass: the curated manifest is authoritative.
	for i := range manifest {
		entry := &manifest[i]
		var members []model.StopId
		for _, id := range entry.StopIDs {
			if _, ok := stops[id]; !ok {
				continue
			}
			if _, taken := assigned[id]; taken {
				continue
			}
			members = append(members, id)
		}
		if len(members) == 0 {
			continue
		}
		b := &stationBuilder{entry: entry, members: members}
		builders = append(builders, b)
		idx := len(builders) - 1
		for _, id := range members {
			assigned[id] = idx
		}
	}

	// (b) Eurostar-slug heuristic: group still-unassigned ES stops
	// sharing a slug base.
	slugGroups := map[string][]model.StopId{}
	var slugOrder []string
	for id, s := range stops {
		if s.Operator != model.OperatorES {
			continue
		}
		if _, taken := assigned[id]; taken {
			continue
		}
		base := eurostarSlugBase(id)
		if _, ok := slugGroups[base]; !ok {
			slugOrder = append(slugOrder, base)
		}
		slugGroups[base] = append(slugGroups[base], id)
	}
	sort.Strings(slugOrder)
	for _, base := range slugOrder {
		members := slugGroups[base]
		b := &stationBuilder{members: members}
		builders = append(builders, b)
		idx := len(builders) - 1
		for _, id := range members {
			assigned[id] = idx
		}
	}

	// (c)/(d) whitelist-driven merge, excluding the blacklist, plus
	// the geographic candidate pairs that play the role of "the feed's
	// own transfer table" when no explicit whitelist row exists.
	candidates := mergeCandidatePairs(stops, whitelist)
	for pair := range candidates {
		if blacklist[pair] {
			continue
		}
		mergeStationsAcrossPair(stops, assigned, &builders, pair[0], pair[1])
	}

	// Orphan fold, step one: anything still unassigned whose
	// parent_station already belongs to a station joins that station,
	// the administrative-parent-area half of the fold.
	orphanIDs := func() []model.StopId {
		ids := make([]model.StopId, 0)
		for id := range stops {
			if _, taken := assigned[id]; !taken {
				ids = append(ids, id)
			}
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		return ids
	}

	for _, id := range orphanIDs() {
		parent := stops[id].ParentStation
		if parent == "" {
			continue
		}
		if idx, ok := assigned[parent]; ok {
			builders[idx].members = append(builders[idx].members, id)
			assigned[id] = idx
		}
	}

	// Orphan fold, step two: remaining stops sharing a still-unassigned
	// parent_station form a station together, parent included.
	parentGroups := map[model.StopId][]model.StopId{}
	var parentOrder []model.StopId
	for _, id := range orphanIDs() {
		parent := stops[id].ParentStation
		if parent == "" {
			continue
		}
		if _, ok := parentGroups[parent]; !ok {
			parentOrder = append(parentOrder, parent)
		}
		parentGroups[parent] = append(parentGroups[parent], id)
	}
	sort.Slice(parentOrder, func(i, j int) bool { return parentOrder[i] < parentOrder[j] })
	for _, parent := range parentOrder {
		members := parentGroups[parent]
		if _, ok := stops[parent]; ok {
			if _, taken := assigned[parent]; !taken {
				members = append(members, parent)
			}
		}
		b := &stationBuilder{members: members}
		builders = append(builders, b)
		idx := len(builders) - 1
		for _, id := range members {
			assigned[id] = idx
		}
	}

	// Orphan fold, fallback: anything still unassigned (no
	// parent_station at all) groups with its same-normalized-name
	// siblings.
	orphanGroups := map[string][]model.StopId{}
	var orphanOrder []string
	for _, id := range orphanIDs() {
		key := normalizeName(stops[id].Name)
		if _, ok := orphanGroups[key]; !ok {
			orphanOrder = append(orphanOrder, key)
		}
		orphanGroups[key] = append(orphanGroups[key], id)
	}
	sort.Strings(orphanOrder)
	for _, key := range orphanOrder {
		members := orphanGroups[key]
		b := &stationBuilder{members: members}
		builders = append(builders, b)
		idx := len(builders) - 1
		for _, id := range members {
			assigned[id] = idx
		}
	}

	// Post-pass UIC fusion: an SNCF-only station and an ES-only
	// station sharing a UIC code, connected via the whitelist, are one
	// physical place.
	builders = fuseUICDuplicates(stops, builders, whitelist, blacklist)

	return finalizeStations(stops, builders)
}

// mergeCandidatePairs returns every pair considered for station
// merging: the explicit whitelist, unioned with geographically close
// pairs (the 300 m threshold shared with transfer-index pairing).
func mergeCandidatePairs(stops map[model.StopId]*model.Stop, whitelist map[StopPair]bool) map[StopPair]bool {
	out := map[StopPair]bool{}
	for pair := range whitelist {
		out[pair.Normalized()] = true
	}

	ids := sortedStopIDs(stops)
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := stops[ids[i]], stops[ids[j]]
			if withinPairingRadius(&stopPoint{a.Lat, a.Lon}, &stopPoint{b.Lat, b.Lon}) {
				out[StopPair{ids[i], ids[j]}.Normalized()] = true
			}
		}
	}

	return out
}

func sortedStopIDs(stops map[model.StopId]*model.Stop) []model.StopId {
	ids := make([]model.StopId, 0, len(stops))
	for id := range stops {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// mergeStationsAcrossPair folds b's station into a's (creating a
// station for either side if it has none yet).
func mergeStationsAcrossPair(stops map[model.StopId]*model.Stop, assigned map[model.StopId]int, builders *[]*stationBuilder, a, b model.StopId) {
	_, aOK := stops[a]
	_, bOK := stops[b]
	if !aOK || !bOK {
		return
	}

	aIdx, aAssigned := assigned[a]
	bIdx, bAssigned := assigned[b]

	switch {
	case aAssigned && bAssigned:
		if aIdx == bIdx {
			return
		}
		// Both sides already have a station: merge b's builder into
		// a's and drop b's (mark empty, cleaned up later).
		from := (*builders)[bIdx]
		(*builders)[aIdx].members = append((*builders)[aIdx].members, from.members...)
		for _, id := range from.members {
			assigned[id] = aIdx
		}
		from.members = nil
	case aAssigned && !bAssigned:
		(*builders)[aIdx].members = append((*builders)[aIdx].members, b)
		assigned[b] = aIdx
	case !aAssigned && bAssigned:
		(*builders)[bIdx].members = append((*builders)[bIdx].members, a)
		assigned[a] = bIdx
	default:
		nb := &stationBuilder{members: []model.StopId{a, b}}
		*builders = append(*builders, nb)
		idx := len(*builders) - 1
		assigned[a] = idx
		assigned[b] = idx
	}
}

// fuseUICDuplicates merges an SNCF-only station with an ES-only
// station sharing a UIC code when the whitelist (minus the blacklist)
// links a member of one to a member of the other.
func fuseUICDuplicates(stops map[model.StopId]*model.Stop, builders []*stationBuilder, whitelist, blacklist map[StopPair]bool) []*stationBuilder {
	isSNCFOnly := func(b *stationBuilder) bool { return stationIsOperatorOnly(stops, b, model.OperatorSNCF) }
	isESOnly := func(b *stationBuilder) bool { return stationIsOperatorOnly(stops, b, model.OperatorES) }

	for i, sncf := range builders {
		if sncf == nil || len(sncf.members) == 0 || !isSNCFOnly(sncf) {
			continue
		}
		sncfUIC := commonUIC(sncf.members)
		if sncfUIC == "" {
			continue
		}

		for j, es := range builders {
			if i == j || es == nil || len(es.members) == 0 || !isESOnly(es) {
				continue
			}
			if commonUIC(es.members) != sncfUIC {
				continue
			}
			if !anyWhitelistedLink(sncf.members, es.members, whitelist, blacklist) {
				continue
			}
			sncf.members = append(sncf.members, es.members...)
			es.members = nil
		}
	}

	out := builders[:0]
	for _, b := range builders {
		if b != nil && len(b.members) > 0 {
			out = append(out, b)
		}
	}
	return out
}

func stationIsOperatorOnly(stops map[model.StopId]*model.Stop, b *stationBuilder, op model.Operator) bool {
	for _, id := range b.members {
		if s, ok := stops[id]; ok && s.Operator != op {
			return false
		}
	}
	return len(b.members) > 0
}

func commonUIC(members []model.StopId) string {
	for _, id := range members {
		if c := uicCode(id); c != "" {
			return c
		}
	}
	return ""
}

func anyWhitelistedLink(a, b []model.StopId, whitelist, blacklist map[StopPair]bool) bool {
	for _, x := range a {
		for _, y := range b {
			pair := StopPair{x, y}.Normalized()
			if blacklist[pair] {
				continue
			}
			if whitelist[pair] {
				return true
			}
		}
	}
	return false
}

func finalizeStations(stops map[model.StopId]*model.Stop, builders []*stationBuilder) []*model.Station {
	var out []*model.Station

	for _, b := range builders {
		if len(b.members) == 0 {
			continue
		}
		sort.Slice(b.members, func(i, j int) bool { return b.members[i] < b.members[j] })

		station := &model.Station{MemberStopIDs: b.members}
		if b.entry != nil {
			station.DisplayName = b.entry.DisplayName
			station.City = b.entry.City
			station.Country = b.entry.Country
		}

		var latSum, lonSum float64
		opSeen := map[model.Operator]bool{}
		for _, id := range b.members {
			s := stops[id]
			latSum += s.Lat
			lonSum += s.Lon
			if !opSeen[s.Operator] {
				opSeen[s.Operator] = true
				station.Operators = append(station.Operators, s.Operator)
			}
			if station.DisplayName == "" {
				station.DisplayName = s.Name
			}
			if station.Country == "" {
				station.Country = countryOf(s)
			}
		}
		station.Lat = latSum / float64(len(b.members))
		station.Lon = lonSum / float64(len(b.members))
		sort.Slice(station.Operators, func(i, j int) bool { return station.Operators[i] < station.Operators[j] })

		out = append(out, station)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := stationRank(out[i]), stationRank(out[j])
		if ri != rj {
			return ri < rj
		}
		return out[i].DisplayName < out[j].DisplayName
	})

	return out
}

func stationRank(s *model.Station) int {
	best := len(operatorPresenceRank)
	for _, op := range s.Operators {
		if r, ok := operatorPresenceRank[op]; ok && r < best {
			best = r
		}
	}
	return best
}
