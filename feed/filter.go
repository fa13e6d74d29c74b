package feed

import "github.com/TrainNomad/raptor-backend/model"

// routeTypeBus is the GTFS route_type value for bus service.
const routeTypeBus = 3

var sncbKeptShortNames = map[string]bool{
	"IC":  true,
	"EC":  true,
	"NJ":  true,
	"OTC": true,
}

var sncfDroppedShortNames = map[string]bool{
	"CAR":       true,
	"NAVETTE":   true,
	"TRAMTRAIN": true,
}

// keepRoute applies the per-operator route filters, run before any
// cross-referencing between feeds.
func keepRoute(operator model.Operator, routeType int, shortName string) bool {
	switch operator {
	case model.OperatorSNCF:
		if routeType == routeTypeBus {
			return false
		}
		return !sncfDroppedShortNames[shortName]
	case model.OperatorSNCB:
		return sncbKeptShortNames[shortName]
	default:
		return routeType != routeTypeBus
	}
}
