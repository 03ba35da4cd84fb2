package payment

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fleetrent/models"
	"fleetrent/utils"
)

func (svc *DefaultPaymentService) load(ctx context.Context, dealer models.DealerID, paymentID string) (*models.Payment, error) {
	p, err := svc.Payments.GetByPaymentID(ctx, dealer, paymentID)
	if err != nil {
		return nil, fmt.Errorf("load payment %s: %w", paymentID, err)
	}
	if p == nil {
		return nil, NotFoundError{ID: paymentID}
	}
	return p, nil
}

// Process records money received against a payment. Paying the full
// outstanding amount (or more) completes it, anything less marks it Partially
// Paid. A Rental Fee payment always settles against the customer's balance,
// full or partial.
func (svc *DefaultPaymentService) Process(ctx context.Context, dealer models.DealerID, paymentID string, input models.ProcessPaymentInput) (*models.Payment, error) {
	p, err := svc.load(ctx, dealer, paymentID)
	if err != nil {
		return nil, err
	}
	if p.Status == models.PaymentCompleted || p.Status == models.PaymentRefunded {
		return nil, invalidState("payment %s is already %s", paymentID, p.Status)
	}
	if input.Amount <= 0 {
		return nil, invalidState("paid amount must be positive")
	}

	paidDate := time.Now()
	if input.PaidDate != nil {
		paidDate = *input.PaidDate
	}

	p.PaidAmount += input.Amount
	p.Method = input.Method
	p.TransactionID = input.TransactionID
	p.PaidDate = &paidDate
	if p.PaidAmount >= p.Amount {
		p.Status = models.PaymentCompleted
	} else {
		// The remainder intentionally produces no follow-up payment record;
		// remainder handling is an open product decision.
		p.Status = models.PaymentPartiallyPaid
	}

	if err := svc.Payments.Update(ctx, dealer, p); err != nil {
		return nil, fmt.Errorf("process payment %s: %w", paymentID, err)
	}

	if p.PaymentType == models.PaymentRentalFee {
		rec := models.CustomerPaymentRecord{
			PaymentID: p.PaymentID,
			Amount:    input.Amount,
			Method:    input.Method,
			Date:      paidDate,
		}
		if err := svc.Customers.ApplyPayment(ctx, dealer, p.CustomerID, input.Amount, rec); err != nil {
			return nil, fmt.Errorf("settle customer balance for payment %s: %w", paymentID, err)
		}
	}

	utils.GetLogger().Info("payment processed",
		zap.String("dealerId", string(dealer)),
		zap.String("paymentId", p.PaymentID),
		zap.Float64("amount", input.Amount),
		zap.String("status", string(p.Status)))

	return p, nil
}

// Refund is permitted only on a Completed payment and only once. A
// full-amount refund flips the status to Refunded; a partial refund records
// the refund but the payment stays Completed.
func (svc *DefaultPaymentService) Refund(ctx context.Context, dealer models.DealerID, paymentID string, input models.RefundPaymentInput) (*models.Payment, error) {
	p, err := svc.load(ctx, dealer, paymentID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.PaymentCompleted {
		return nil, invalidState("cannot refund payment %s in status %q", paymentID, p.Status)
	}
	if p.Refund != nil {
		return nil, invalidState("payment %s already has a refund", paymentID)
	}
	if input.Amount <= 0 {
		return nil, invalidState("refund amount must be positive")
	}
	if input.Amount > p.Amount {
		return nil, invalidState("refund amount %.2f exceeds payment amount %.2f", input.Amount, p.Amount)
	}

	p.Refund = &models.Refund{
		Amount: input.Amount,
		Reason: input.Reason,
		Date:   time.Now(),
	}
	if input.Amount == p.Amount {
		p.Status = models.PaymentRefunded
	}

	if err := svc.Payments.Update(ctx, dealer, p); err != nil {
		return nil, fmt.Errorf("refund payment %s: %w", paymentID, err)
	}

	utils.GetLogger().Info("payment refunded",
		zap.String("dealerId", string(dealer)),
		zap.String("paymentId", p.PaymentID),
		zap.Float64("amount", input.Amount))

	return p, nil
}

// ApplyLateFee persists a late fee exactly once. When no explicit amount is
// supplied the overdue formula decides it; a zero computed fee is rejected
// rather than recorded.
func (svc *DefaultPaymentService) ApplyLateFee(ctx context.Context, dealer models.DealerID, paymentID string, input models.ApplyLateFeeInput) (*models.Payment, error) {
	p, err := svc.load(ctx, dealer, paymentID)
	if err != nil {
		return nil, err
	}
	if p.LateFee != nil {
		return nil, invalidState("payment %s already has a late fee applied", paymentID)
	}
	if p.Status != models.PaymentPending && p.Status != models.PaymentPartiallyPaid {
		return nil, invalidState("cannot apply a late fee to payment %s in status %q", paymentID, p.Status)
	}

	now := time.Now()
	fee := input.Amount
	if fee <= 0 {
		fee = ComputeLateFee(p, now)
	}
	if fee <= 0 {
		return nil, invalidState("payment %s is not overdue", paymentID)
	}

	p.LateFee = &models.LateFee{Amount: fee, AppliedDate: now}
	p.Amount += fee

	if err := svc.Payments.Update(ctx, dealer, p); err != nil {
		return nil, fmt.Errorf("apply late fee to payment %s: %w", paymentID, err)
	}

	utils.GetLogger().Info("late fee applied",
		zap.String("dealerId", string(dealer)),
		zap.String("paymentId", p.PaymentID),
		zap.Float64("fee", fee))

	return p, nil
}
