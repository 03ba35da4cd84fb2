package rental

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fleetrent/models"
	"fleetrent/utils"
)

// Extend pushes out an Active rental's expected end date, accrues the
// additional amount and, for a positive amount, raises an Extension Fee
// payment.
func (svc *DefaultRentalService) Extend(ctx context.Context, dealer models.DealerID, rentalID string, input models.ExtendRentalInput) (*models.RentalDetail, error) {
	r, vehicle, customer, err := svc.loadLifecycleEntities(ctx, dealer, rentalID)
	if err != nil {
		return nil, err
	}

	if _, err := transition(r.Status, EventExtend); err != nil {
		return nil, err
	}

	now := time.Now()
	r.ExpectedEndDate = input.NewEndDate
	r.TotalAmount += input.AdditionalAmount

	vehicle.ExpectedReturnDate = &input.NewEndDate

	var fee *models.Payment
	if input.AdditionalAmount > 0 {
		fee = &models.Payment{
			DealerID:    dealer,
			PaymentID:   utils.NewEntityID("PAY"),
			RentalID:    r.RentalID,
			CustomerID:  r.CustomerID,
			Amount:      input.AdditionalAmount,
			PaymentType: models.PaymentExtensionFee,
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
		if fee != nil {
			return svc.Payments.Create(ctx, fee)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("extend rental %s: %w", rentalID, err)
	}

	utils.GetLogger().Info("rental extended",
		zap.String("dealerId", string(dealer)),
		zap.String("rentalId", r.RentalID),
		zap.Time("newEndDate", input.NewEndDate),
		zap.Float64("additionalAmount", input.AdditionalAmount))

	return &models.RentalDetail{Rental: *r, Customer: customer.Summary(), Vehicle: vehicle.Summary()}, nil
}
