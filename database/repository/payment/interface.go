package paymentRepo

import (
	"context"

	"fleetrent/models"
)

// Filter narrows a payment listing.
type Filter struct {
	Status     models.PaymentStatus
	Type       models.PaymentType
	RentalID   string
	CustomerID string
	Page       int64
	Limit      int64
}

// PaymentRepository is the tenant-scoped data access surface for payments.
// Lookups return (nil, nil) when no document matches within the dealer's scope.
type PaymentRepository interface {
	GetByPaymentID(ctx context.Context, dealer models.DealerID, paymentID string) (*models.Payment, error)
	List(ctx context.Context, dealer models.DealerID, f Filter) ([]models.Payment, int64, error)
	ListByRental(ctx context.Context, dealer models.DealerID, rentalID string) ([]models.Payment, error)
	Create(ctx context.Context, payment *models.Payment) error
	Update(ctx context.Context, dealer models.DealerID, payment *models.Payment) error
	Totals(ctx context.Context, dealer models.DealerID) (models.PaymentTotals, error)
	RevenueByMonth(ctx context.Context, dealer models.DealerID, months int) ([]models.MonthlyRevenue, error)
	Recent(ctx context.Context, dealer models.DealerID, limit int64) ([]models.Payment, error)
}
