package rental

import "fleetrent/models"

// Event is a lifecycle operation applied to a rental.
type Event string

const (
	EventReturn Event = "return"
	EventExtend Event = "extend"
	EventCancel Event = "cancel"
)

// transitions is the complete state machine: Active is the only state with
// outgoing edges, everything else is terminal. Return lands on Completed and
// may be overridden to Overdue afterwards (lateness supersedes completion).
var transitions = map[models.RentalStatus]map[Event]models.RentalStatus{
	models.RentalActive: {
		EventReturn: models.RentalCompleted,
		EventExtend: models.RentalActive,
		EventCancel: models.RentalCancelled,
	},
}

// transition resolves the next status for (current, event) or fails with
// InvalidState. There is no string comparison at call sites; every lifecycle
// operation funnels through this table.
func transition(current models.RentalStatus, event Event) (models.RentalStatus, error) {
	next, ok := transitions[current][event]
	if !ok {
		return "", invalidState("cannot %s a rental in status %q", event, current)
	}
	return next, nil
}
