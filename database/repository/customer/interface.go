package customerRepo

import (
	"context"
	"time"

	"fleetrent/models"
)

// Filter narrows a customer listing.
type Filter struct {
	Search          string
	IncludeInactive bool
	Page            int64
	Limit           int64
}

// CustomerRepository is the tenant-scoped data access surface for customers.
// Lookups return (nil, nil) when no document matches within the dealer's scope.
type CustomerRepository interface {
	GetByCustomerID(ctx context.Context, dealer models.DealerID, customerID string) (*models.Customer, error)
	List(ctx context.Context, dealer models.DealerID, f Filter) ([]models.Customer, int64, error)
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, dealer models.DealerID, customer *models.Customer) error
	// Deactivate soft-deletes a customer by clearing its isActive flag.
	Deactivate(ctx context.Context, dealer models.DealerID, customerID string) error
	// RegisterRental increments totalRentals and appends a rental history entry.
	RegisterRental(ctx context.Context, dealer models.DealerID, customerID string, rec models.CustomerRentalRecord) error
	// CloseRentalRecord patches the matching history entry in place. A missing
	// entry is tolerated, not an error.
	CloseRentalRecord(ctx context.Context, dealer models.DealerID, customerID, rentalID string, endDate time.Time, returnCondition string) error
	// ApplyPayment decrements currentBalance and appends a payment history entry.
	ApplyPayment(ctx context.Context, dealer models.DealerID, customerID string, amount float64, rec models.CustomerPaymentRecord) error
	Count(ctx context.Context, dealer models.DealerID) (int64, error)
}
