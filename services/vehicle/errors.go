package vehicle

import "fmt"

// NotFoundError signals a vehicle lookup that matched nothing within the
// dealer's fleet.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("vehicle %s not found", e.ID)
}

// InvalidStateError signals a status change the fleet rules forbid, such as
// manually moving a vehicle in or out of Rented.
type InvalidStateError struct {
	Message string
}

func (e InvalidStateError) Error() string {
	return e.Message
}
