package rental

import (
	"errors"
	"fmt"

	vehicleRepo "fleetrent/database/repository/vehicle"
)

// NotFoundError reports an entity absent from the dealer's tenant scope.
// Entities belonging to another dealer are indistinguishable from missing ones.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// InvalidStateError reports an operation attempted against a disallowed
// current state, such as returning a rental that is not Active.
type InvalidStateError struct {
	Message string
}

func (e InvalidStateError) Error() string {
	return e.Message
}

func invalidState(format string, args ...any) error {
	return InvalidStateError{Message: fmt.Sprintf(format, args...)}
}

// mapVehicleRaceError turns the guarded-write abort from MarkRented into the
// InvalidState surfaced to callers. Two racing creates against the same
// vehicle both pass the read-side Available check; exactly one commits.
func mapVehicleRaceError(err error) error {
	if errors.Is(err, vehicleRepo.ErrNotAvailable) {
		return InvalidStateError{Message: "vehicle is no longer available"}
	}
	return err
}
