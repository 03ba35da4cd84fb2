package payment

import (
	"math"
	"time"

	"fleetrent/models"
)

const (
	lateFeeRate   = 0.05
	lateFeePeriod = 30 // days
)

// ComputeLateFee suggests a late fee for an unpaid payment past its due date:
// floor(amount × 0.05 × daysOverdue/30). It is a read-path computation and is
// only persisted through an explicit ApplyLateFee call.
func ComputeLateFee(p *models.Payment, now time.Time) float64 {
	if p.Status != models.PaymentPending && p.Status != models.PaymentPartiallyPaid {
		return 0
	}
	if !now.After(p.DueDate) {
		return 0
	}
	daysOverdue := int(now.Sub(p.DueDate).Hours() / 24)
	if daysOverdue <= 0 {
		return 0
	}
	return math.Floor(p.Amount * lateFeeRate * float64(daysOverdue) / lateFeePeriod)
}

// decorate attaches the computed late fee to a payment for a read response.
func decorate(p *models.Payment, now time.Time) *models.Payment {
	p.ComputedLateFee = ComputeLateFee(p, now)
	return p
}
