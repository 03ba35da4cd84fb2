package payment

import (
	"context"
	"fmt"
	"time"

	paymentRepo "fleetrent/database/repository/payment"
	"fleetrent/models"
)

// GetByID returns a payment with its computed late fee attached.
func (svc *DefaultPaymentService) GetByID(ctx context.Context, dealer models.DealerID, paymentID string) (*models.Payment, error) {
	p, err := svc.load(ctx, dealer, paymentID)
	if err != nil {
		return nil, err
	}
	return decorate(p, time.Now()), nil
}

// List returns a page of payments, each with its computed late fee attached.
func (svc *DefaultPaymentService) List(ctx context.Context, dealer models.DealerID, f paymentRepo.Filter) ([]models.Payment, int64, error) {
	payments, total, err := svc.Payments.List(ctx, dealer, f)
	if err != nil {
		return nil, 0, fmt.Errorf("list payments: %w", err)
	}
	now := time.Now()
	for i := range payments {
		decorate(&payments[i], now)
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return payments, total, nil
}
