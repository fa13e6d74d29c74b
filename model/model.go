// Package model holds the external-facing data types shared by every
// stage of the pipeline: feed reading, timetable building, station
// reconciliation and query serving.
package model

// StopId is an opaque identifier, always carrying an operator prefix
// (e.g. "SNCF:...-87391003", "TI:S01700", "ES:paris_nord_3"). The
// prefix is authoritative: no bare numeric identifier should ever
// leave the feed reader.
type StopId string

// ServiceId is an operator-prefixed calendar identifier.
type ServiceId string

// RouteId is an operator-prefixed logical route: an equivalence class
// of trips sharing the same ordered stop sequence.
type RouteId string

// TripId is an operator-prefixed trip identifier.
type TripId string

// Operator is the short code embedded as a prefix on every identifier
// ("SNCF", "TI", "ES", "SNCB", "DB", "RENFE", "OUIGO_ES", ...).
type Operator string

const (
	OperatorSNCF    Operator = "SNCF"
	OperatorTI      Operator = "TI"
	OperatorES      Operator = "ES"
	OperatorSNCB    Operator = "SNCB"
	OperatorDB      Operator = "DB"
	OperatorRENFE   Operator = "RENFE"
	OperatorOuigoES Operator = "OUIGO_ES"
)

// TrainType is the product classification assigned to a trip at
// ingestion time.
type TrainType string

const (
	TrainTypeINOUI          TrainType = "INOUI"
	TrainTypeOUIGO          TrainType = "OUIGO"
	TrainTypeOuigoClassique TrainType = "OUIGO_CLASSIQUE"
	TrainTypeIC             TrainType = "IC"
	TrainTypeICNuit         TrainType = "IC_NUIT"
	TrainTypeLYRIA          TrainType = "LYRIA"
	TrainTypeTER            TrainType = "TER"
	TrainTypeFrecciarossa   TrainType = "FRECCIAROSSA"
	TrainTypeEurostar       TrainType = "EUROSTAR"
	TrainTypeNightjet       TrainType = "NIGHTJET"
	TrainTypeEC             TrainType = "EC"
	TrainTypeThalys         TrainType = "THALYS_CORRIDOR"
	TrainTypeICSNCB         TrainType = "IC_SNCB"
	TrainTypeICE            TrainType = "ICE"
	TrainTypeICDB           TrainType = "IC_DB"
	TrainTypeAVE            TrainType = "AVE"
	TrainTypeALVIA          TrainType = "ALVIA"
	TrainTypeUnknown        TrainType = ""
)

// Seconds is an offset in seconds from local midnight on the service
// day. It may exceed 86400 for trips that run past midnight.
type Seconds int

// Stop is immutable after ingestion.
type Stop struct {
	ID            StopId
	Name          string
	Lat           float64
	Lon           float64
	Operator      Operator
	ParentStation StopId // GTFS parent_station, operator-prefixed; empty if none
}

// StopTime is one scheduled visit of a trip at a stop.
type StopTime struct {
	StopID    StopId
	Arrival   Seconds
	Departure Seconds
}

// Trip is one scheduled service instance along a fixed ordered stop
// sequence.
type Trip struct {
	ID                 TripId
	RouteID            RouteId
	ServiceID          ServiceId
	Operator           Operator
	TrainType          TrainType
	FirstDepartureTime Seconds
	StopTimes          []StopTime
}

// RouteInfo is the descriptive (non-timetable) half of a route.
type RouteInfo struct {
	ID       RouteId
	Short    string
	Long     string
	Type     int
	Operator Operator
}

// TransferCategory governs the minimum dwell time applied when a
// journey crosses the edge it labels.
type TransferCategory int

const (
	TransferSameStationSameOperator TransferCategory = iota
	TransferSameStationCrossOperator
	TransferInterCitySameMetro
)

// MinDwell returns the minimum transfer time enforced for the category.
func (c TransferCategory) MinDwell() Seconds {
	switch c {
	case TransferSameStationSameOperator:
		return 3 * 60
	case TransferSameStationCrossOperator:
		return 10 * 60
	case TransferInterCitySameMetro:
		return 45 * 60
	default:
		return 0
	}
}

// TransferEdge is one directed walking link out of a stop. Category is
// a property of the edge, not of the endpoints: symmetry is not
// guaranteed by construction.
type TransferEdge struct {
	SiblingStopID StopId
	Category      TransferCategory
}

// Station is a logical grouping of stops that constitute one physical
// place, potentially spanning several operators.
type Station struct {
	DisplayName   string
	City          string
	Country       string
	MemberStopIDs []StopId
	Operators     []Operator
	Lat           float64
	Lon           float64
}

// CityGroup is derived from the station index: stations sharing the
// same (City, Country) key, when there are at least two of them, form
// one city group exposed for "search from city" queries.
type CityGroup struct {
	City      string
	Country   string
	StationNo []int // indices into the StationIndex slice
}
