package payment

import "fmt"

// NotFoundError reports a payment absent from the dealer's tenant scope.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("payment %s not found", e.ID)
}

// InvalidStateError reports an operation against a payment in a disallowed
// state, such as refunding one that was never completed.
type InvalidStateError struct {
	Message string
}

func (e InvalidStateError) Error() string {
	return e.Message
}

func invalidState(format string, args ...any) error {
	return InvalidStateError{Message: fmt.Sprintf(format, args...)}
}
