package artifact

import (
	"encoding/json"
	"strings"

	"github.com/TrainNomad/raptor-backend/model"
)

// transfer_index.json mixes two JSON shapes per stop: a bare string
// (same-station link, category inferred from operator-prefix equality
// at load time) and a tagged object (inter-city link). This file lifts
// both into the uniform []model.TransferEdge the rest of the system
// uses, per the design note in spec.md section 9.
type wireTaggedTransfer struct {
	ID        string `json:"id"`
	InterCity bool   `json:"interCity"`
}

func operatorPrefix(id model.StopId) string {
	raw := string(id)
	if i := strings.IndexByte(raw, ':'); i >= 0 {
		return raw[:i]
	}
	return raw
}

// transfersToWire renders one stop's edges as a []json.RawMessage: a
// same-station edge is a bare string, an inter-city edge is a tagged
// object. Cross-operator same-station edges are also written as a
// bare string, since the category is recoverable from operator-prefix
// comparison between the origin stop (the map key) and the sibling.
func transfersToWire(edges []model.TransferEdge) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(edges))
	for _, e := range edges {
		var raw json.RawMessage
		var err error
		if e.Category == model.TransferInterCitySameMetro {
			raw, err = json.Marshal(wireTaggedTransfer{ID: string(e.SiblingStopID), InterCity: true})
		} else {
			raw, err = json.Marshal(string(e.SiblingStopID))
		}
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

// transfersFromWire normalizes a stop's heterogeneous entry list back
// into uniform edges. originID is the map key the entries were stored
// under, needed to classify bare-string entries by operator-prefix
// equality.
func transfersFromWire(originID model.StopId, entries []json.RawMessage) ([]model.TransferEdge, error) {
	out := make([]model.TransferEdge, 0, len(entries))
	originOp := operatorPrefix(originID)

	for _, raw := range entries {
		var asString string
		if err := json.Unmarshal(raw, &asString); err == nil {
			cat := model.TransferSameStationSameOperator
			if operatorPrefix(model.StopId(asString)) != originOp {
				cat = model.TransferSameStationCrossOperator
			}
			out = append(out, model.TransferEdge{SiblingStopID: model.StopId(asString), Category: cat})
			continue
		}

		var tagged wireTaggedTransfer
		if err := json.Unmarshal(raw, &tagged); err != nil {
			return nil, err
		}
		cat := model.TransferSameStationSameOperator
		if tagged.InterCity {
			cat = model.TransferInterCitySameMetro
		} else if operatorPrefix(model.StopId(tagged.ID)) != originOp {
			cat = model.TransferSameStationCrossOperator
		}
		out = append(out, model.TransferEdge{SiblingStopID: model.StopId(tagged.ID), Category: cat})
	}

	return out, nil
}
