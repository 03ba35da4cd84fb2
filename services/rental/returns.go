package rental

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fleetrent/models"
	"fleetrent/utils"
)

// Return closes out an Active rental: records the return condition, releases
// the vehicle with its one-way condition degradation, patches the customer's
// open rental record and, when a damage charge is supplied, raises a Damage
// Charge payment plus an alert.
func (svc *DefaultRentalService) Return(ctx context.Context, dealer models.DealerID, rentalID string, input models.ReturnRentalInput) (*models.RentalDetail, error) {
	r, vehicle, customer, err := svc.loadLifecycleEntities(ctx, dealer, rentalID)
	if err != nil {
		return nil, err
	}

	next, err := transition(r.Status, EventReturn)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	actualEnd := now
	if input.ActualEndDate != nil {
		actualEnd = *input.ActualEndDate
	}

	r.Status = next
	if actualEnd.After(r.ExpectedEndDate) {
		// Overdue supersedes Completed: a late return is both returned and late.
		r.Status = models.RentalOverdue
	}
	r.ActualEndDate = &actualEnd
	r.ReturnCondition = &models.ReturnCondition{
		Condition:     input.Condition,
		Notes:         input.Notes,
		Images:        input.Images,
		InspectedBy:   input.InspectedBy,
		DamageCharges: input.DamageCharges,
	}

	hoursUsed := int64(actualEnd.Sub(r.StartDate).Hours())

	vehicle.Status = models.VehicleAvailable
	vehicle.CurrentRental = nil
	vehicle.ExpectedReturnDate = nil
	vehicle.Condition = degradeCondition(vehicle.Condition, input.Condition)
	vehicle.TotalRentalHours += hoursUsed
	vehicle.RentalHistory = append(vehicle.RentalHistory, models.VehicleRentalRecord{
		RentalID:        r.RentalID,
		CustomerID:      r.CustomerID,
		StartDate:       r.StartDate,
		EndDate:         actualEnd,
		HoursUsed:       hoursUsed,
		ReturnCondition: string(input.Condition),
	})

	var damageFee *models.Payment
	if input.DamageCharges > 0 {
		damageFee = &models.Payment{
			DealerID:    dealer,
			PaymentID:   utils.NewEntityID("PAY"),
			RentalID:    r.RentalID,
			CustomerID:  r.CustomerID,
			Amount:      input.DamageCharges,
			PaymentType: models.PaymentDamageCharge,
			Status:      models.PaymentPending,
			DueDate:     now.AddDate(0, 0, feeDueDays),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	err = svc.Txn.WithTransaction(ctx, func(ctx context.Context) error {
		if err := svc.Rentals.Update(ctx, dealer, r); err != nil {
			return err
		}
		if err := svc.Vehicles.Update(ctx, dealer, vehicle); err != nil {
			return err
		}
		if err := svc.Customers.CloseRentalRecord(ctx, dealer, r.CustomerID, r.RentalID, actualEnd, string(input.Condition)); err != nil {
			return err
		}
		if damageFee != nil {
			return svc.Payments.Create(ctx, damageFee)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("return rental %s: %w", rentalID, err)
	}

	logger := utils.GetLogger()
	logger.Info("rental returned",
		zap.String("dealerId", string(dealer)),
		zap.String("rentalId", r.RentalID),
		zap.String("status", string(r.Status)),
		zap.Int64("hoursUsed", hoursUsed))

	if damageFee != nil && svc.Alerts != nil {
		if err := svc.Alerts.DamageReported(ctx, dealer, r.RentalID, input.Notes, input.DamageCharges); err != nil {
			logger.Warn("failed to dispatch damage alert", zap.String("rentalId", r.RentalID), zap.Error(err))
		}
	}

	return &models.RentalDetail{Rental: *r, Customer: customer.Summary(), Vehicle: vehicle.Summary()}, nil
}

// degradeCondition applies the one-way return policy: a damaged return forces
// an inspection, a fair return downgrades a good vehicle, nothing ever
// upgrades.
func degradeCondition(current models.VehicleCondition, returned models.VehicleCondition) models.VehicleCondition {
	switch {
	case returned == models.ConditionDamaged:
		return models.ConditionNeedsInspection
	case returned == models.ConditionFair && current == models.ConditionGood:
		return models.ConditionFair
	default:
		return current
	}
}
