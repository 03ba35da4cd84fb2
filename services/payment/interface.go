package payment

import (
	"context"

	customerRepo "fleetrent/database/repository/customer"
	paymentRepo "fleetrent/database/repository/payment"
	"fleetrent/models"
)

// PaymentService processes bookkeeping payments: no gateway is involved,
// records stay Pending until money is recorded against them.
type PaymentService interface {
	GetByID(ctx context.Context, dealer models.DealerID, paymentID string) (*models.Payment, error)
	List(ctx context.Context, dealer models.DealerID, f paymentRepo.Filter) ([]models.Payment, int64, error)
	Process(ctx context.Context, dealer models.DealerID, paymentID string, input models.ProcessPaymentInput) (*models.Payment, error)
	Refund(ctx context.Context, dealer models.DealerID, paymentID string, input models.RefundPaymentInput) (*models.Payment, error)
	ApplyLateFee(ctx context.Context, dealer models.DealerID, paymentID string, input models.ApplyLateFeeInput) (*models.Payment, error)
}

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Payments  paymentRepo.PaymentRepository
	Customers customerRepo.CustomerRepository
}
