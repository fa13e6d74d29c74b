package artifact

import "github.com/TrainNomad/raptor-backend/model"

// The wire* types below are the literal JSON shapes from spec.md
// section 6. They exist only at the DiskStore boundary; every other
// package deals exclusively in package model types.

type wireStop struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Operator string  `json:"operator"`
}

type wireRouteInfo struct {
	Short    string `json:"short"`
	Long     string `json:"long"`
	Type     int    `json:"type"`
	Operator string `json:"operator"`
}

type wireStopTime struct {
	StopID        string `json:"stopId"`
	ArrivalTime   int    `json:"arrivalTime"`
	DepartureTime int    `json:"departureTime"`
}

type wireTrip struct {
	TripID             string         `json:"tripId"`
	ServiceID          string         `json:"serviceId"`
	Operator           string         `json:"operator"`
	TrainType          string         `json:"trainType"`
	FirstDepartureTime int            `json:"firstDepartureTime"`
	StopTimes          []wireStopTime `json:"stopTimes"`
}

type wireStation struct {
	DisplayName   string   `json:"displayName"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	MemberStopIDs []string `json:"memberStopIds"`
	Operators     []string `json:"operators"`
	Lat           float64  `json:"lat"`
	Lon           float64  `json:"lon"`
}

func stopToWire(s *model.Stop) wireStop {
	return wireStop{Name: s.Name, Lat: s.Lat, Lon: s.Lon, Operator: string(s.Operator)}
}

func stopFromWire(id model.StopId, w wireStop) *model.Stop {
	return &model.Stop{ID: id, Name: w.Name, Lat: w.Lat, Lon: w.Lon, Operator: model.Operator(w.Operator)}
}

func routeInfoToWire(r *model.RouteInfo) wireRouteInfo {
	return wireRouteInfo{Short: r.Short, Long: r.Long, Type: r.Type, Operator: string(r.Operator)}
}

func routeInfoFromWire(id model.RouteId, w wireRouteInfo) *model.RouteInfo {
	return &model.RouteInfo{ID: id, Short: w.Short, Long: w.Long, Type: w.Type, Operator: model.Operator(w.Operator)}
}

func tripToWire(t *model.Trip) wireTrip {
	sts := make([]wireStopTime, len(t.StopTimes))
	for i, st := range t.StopTimes {
		sts[i] = wireStopTime{StopID: string(st.StopID), ArrivalTime: int(st.Arrival), DepartureTime: int(st.Departure)}
	}
	return wireTrip{
		TripID:             string(t.ID),
		ServiceID:          string(t.ServiceID),
		Operator:           string(t.Operator),
		TrainType:          string(t.TrainType),
		FirstDepartureTime: int(t.FirstDepartureTime),
		StopTimes:          sts,
	}
}

func tripFromWire(routeID model.RouteId, w wireTrip) *model.Trip {
	sts := make([]model.StopTime, len(w.StopTimes))
	for i, st := range w.StopTimes {
		sts[i] = model.StopTime{
			StopID:    model.StopId(st.StopID),
			Arrival:   model.Seconds(st.ArrivalTime),
			Departure: model.Seconds(st.DepartureTime),
		}
	}
	return &model.Trip{
		ID:                 model.TripId(w.TripID),
		RouteID:            routeID,
		ServiceID:          model.ServiceId(w.ServiceID),
		Operator:           model.Operator(w.Operator),
		TrainType:          model.TrainType(w.TrainType),
		FirstDepartureTime: model.Seconds(w.FirstDepartureTime),
		StopTimes:          sts,
	}
}

func stationToWire(s *model.Station) wireStation {
	members := make([]string, len(s.MemberStopIDs))
	for i, m := range s.MemberStopIDs {
		members[i] = string(m)
	}
	ops := make([]string, len(s.Operators))
	for i, o := range s.Operators {
		ops[i] = string(o)
	}
	return wireStation{
		DisplayName:   s.DisplayName,
		City:          s.City,
		Country:       s.Country,
		MemberStopIDs: members,
		Operators:     ops,
		Lat:           s.Lat,
		Lon:           s.Lon,
	}
}

func stationFromWire(w wireStation) *model.Station {
	members := make([]model.StopId, len(w.MemberStopIDs))
	for i, m := range w.MemberStopIDs {
		members[i] = model.StopId(m)
	}
	ops := make([]model.Operator, len(w.Operators))
	for i, o := range w.Operators {
		ops[i] = model.Operator(o)
	}
	return &model.Station{
		DisplayName:   w.DisplayName,
		City:          w.City,
		Country:       w.Country,
		MemberStopIDs: members,
		Operators:     ops,
		Lat:           w.Lat,
		Lon:           w.Lon,
	}
}
