package reconcile

import (
	"sort"

	"github.com/TrainNomad/raptor-backend/model"
)

// BuildCityGroups derives the (city, country) groups exposed for
// "search from city" queries: any key shared by at least two stations.
func BuildCityGroups(stations []*model.Station) []model.CityGroup {
	byKey := map[[2]string][]int{}
	var order [][2]string

	for i, st := range stations {
		if st.City == "" {
			continue
		}
		key := [2]string{st.City, st.Country}
		if _, ok := byKey[key]; !ok {
			order = append(order, key)
		}
		byKey[key] = append(byKey[key], i)
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i][0] != order[j][0] {
			return order[i][0] < order[j][0]
		}
		return order[i][1] < order[j][1]
	})

	var groups []model.CityGroup
	for _, key := range order {
		indices := byKey[key]
		if len(indices) < 2 {
			continue
		}
		groups = append(groups, model.CityGroup{City: key[0], Country: key[1], StationNo: indices})
	}
	return groups
}
