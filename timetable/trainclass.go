package timetable

import (
	"strings"

	"github.com/TrainNomad/raptor-backend/model"
)

// ClassifyTrip assigns the product classification for a trip, keyed
// on the operator, a platform token embedded in the first stop's
// identifier, the trip identifier and the route short name. The type
// is computed once at ingestion and stored on the trip; the query
// engine never recomputes it.
func ClassifyTrip(operator model.Operator, firstStopID model.StopId, tripID model.TripId, routeShort string) model.TrainType {
	switch operator {
	case model.OperatorSNCF:
		return classifySNCF(tripID, routeShort)
	case model.OperatorTI:
		return classifyTI(firstStopID, routeShort)
	case model.OperatorES:
		return model.TrainTypeEurostar
	case model.OperatorSNCB:
		return classifySNCB(routeShort)
	case model.OperatorDB:
		return classifyDB(routeShort)
	case model.OperatorRENFE:
		return classifyRENFE(routeShort)
	case model.OperatorOuigoES:
		return model.TrainTypeOUIGO
	default:
		return model.TrainTypeUnknown
	}
}

func classifySNCF(tripID model.TripId, routeShort string) model.TrainType {
	short := strings.ToUpper(routeShort)
	id := string(tripID)

	switch {
	case strings.Contains(short, "LYRIA"):
		return model.TrainTypeLYRIA
	case strings.Contains(short, "TER"):
		return model.TrainTypeTER
	case strings.Contains(short, "OUIGO") || strings.Contains(id, "OUIGO"):
		return classifyOuigoSubtype(id)
	default:
		return model.TrainTypeINOUI
	}
}

// classifyOuigoSubtype distinguishes high-speed OUIGO (trip numbers in
// the 7xxx range) from OUIGO_CLASSIQUE (4xxx range) by the numeric
// portion of the trip identifier.
func classifyOuigoSubtype(tripID string) model.TrainType {
	num := extractDigitGroup(tripID)
	if num == "" {
		return model.TrainTypeOUIGO
	}

	switch num[0] {
	case '4':
		return model.TrainTypeOuigoClassique
	default:
		return model.TrainTypeOUIGO
	}
}

// extractDigitGroup returns the first run of 3 or more consecutive
// digits found anywhere in s, the usual place a trip number lives
// inside an operator-prefixed identifier like "SNCF:OUIGO-7123".
func extractDigitGroup(s string) string {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			if i-start >= 3 {
				return s[start:i]
			}
			start = -1
		}
	}
	if start != -1 && len(s)-start >= 3 {
		return s[start:]
	}
	return ""
}

// classifyTI uses the platform token embedded in the first stop's
// identifier ahead of the route short name: Frecciarossa boarding
// areas at mixed-traffic stations are tagged "FR" on the stop itself,
// which is more reliable than the route's displayed short name.
func classifyTI(firstStopID model.StopId, routeShort string) model.TrainType {
	if platformTokenFromStopID(firstStopID) == "FR" {
		return model.TrainTypeFrecciarossa
	}

	switch strings.ToUpper(routeShort) {
	case "EC":
		return model.TrainTypeEC
	case "NJ":
		return model.TrainTypeNightjet
	default:
		return model.TrainTypeFrecciarossa
	}
}

func classifySNCB(routeShort string) model.TrainType {
	switch strings.ToUpper(routeShort) {
	case "EC":
		return model.TrainTypeEC
	case "NJ":
		return model.TrainTypeNightjet
	case "OTC":
		return model.TrainTypeThalys
	default:
		return model.TrainTypeICSNCB
	}
}

func classifyDB(routeShort string) model.TrainType {
	short := strings.ToUpper(routeShort)
	switch {
	case strings.Contains(short, "ICE"):
		return model.TrainTypeICE
	case strings.Contains(short, "NJ"):
		return model.TrainTypeNightjet
	case strings.Contains(short, "EC"):
		return model.TrainTypeEC
	default:
		return model.TrainTypeICDB
	}
}

func classifyRENFE(routeShort string) model.TrainType {
	if strings.Contains(strings.ToUpper(routeShort), "ALVIA") {
		return model.TrainTypeALVIA
	}
	return model.TrainTypeAVE
}

// platformTokenFromStopID extracts the operator-local suffix of a
// prefixed stop identifier, the token some feeds embed a platform or
// service hint in (e.g. "TI:S01700-FR" carries "FR").
func platformTokenFromStopID(stopID model.StopId) string {
	raw := string(stopID)
	idx := strings.IndexByte(raw, ':')
	if idx < 0 {
		return ""
	}
	local := raw[idx+1:]
	parts := strings.Split(local, "-")
	return parts[len(parts)-1]
}
