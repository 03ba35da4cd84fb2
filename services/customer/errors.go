package customer

import "fmt"

// NotFoundError reports a customer absent from the dealer's tenant scope.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("customer %s not found", e.ID)
}
