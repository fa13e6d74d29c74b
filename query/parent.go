package query

import "github.com/TrainNomad/raptor-backend/model"

// Parent is the tagged predecessor of a stop in one round-based
// search: either a boarded ride or a walking transfer. Modeled as a
// sum type via an unexported marker method rather than a flag on one
// unified record, per spec.md section 9.
type Parent interface {
	isParent()
}

// RideParent records a boarded trip: the stop it was boarded at, the
// trip's departure there, the arrival at the stop this entry is keyed
// by, and enough trip metadata to emit a Leg without a second lookup.
type RideParent struct {
	BoardStop model.StopId
	BoardDep  model.Seconds
	Arrival   model.Seconds
	TripID    model.TripId
	RouteID   model.RouteId
	TrainType model.TrainType
	Operator  model.Operator
}

// TransferParent records a walking edge taken to relax arrival at a
// stop from one already reached this round.
type TransferParent struct {
	FromStop model.StopId
	Category model.TransferCategory
}

func (RideParent) isParent()     {}
func (TransferParent) isParent() {}
