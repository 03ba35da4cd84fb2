package rental

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fleetrent/models"
	"fleetrent/utils"
)

// Cancel terminates an Active rental without a return: the vehicle is
// released with no history or hours bookkeeping, and the customer's
// totalRentals counter is deliberately left alone (it counts rentals ever
// initiated).
func (svc *DefaultRentalService) Cancel(ctx context.Context, dealer models.DealerID, rentalID string, input models.CancelRentalInput) (*models.RentalDetail, error) {
	r, vehicle, customer, err := svc.loadLifecycleEntities(ctx, dealer, rentalID)
	if err != nil {
		return nil, err
	}

	next, err := transition(r.Status, EventCancel)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	r.Status = next
	if r.Notes != "" {
		r.Notes += "\n"
	}
	r.Notes += "Cancelled: " + input.Reason

	vehicle.Status = models.VehicleAvailable
	vehicle.CurrentRental = nil
	vehicle.ExpectedReturnDate = nil

	var fee *models.Payment
	if input.CancellationFee > 0 {
		fee = &models.Payment{
			DealerID:    dealer,
			PaymentID:   utils.NewEntityID("PAY"),
			RentalID:    r.RentalID,
			CustomerID:  r.CustomerID,
			Amount:      input.CancellationFee,
			PaymentType: models.PaymentOther,
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
		return nil, fmt.Errorf("cancel rental %s: %w", rentalID, err)
	}

	utils.GetLogger().Info("rental cancelled",
		zap.String("dealerId", string(dealer)),
		zap.String("rentalId", r.RentalID),
		zap.String("reason", input.Reason))

	return &models.RentalDetail{Rental: *r, Customer: customer.Summary(), Vehicle: vehicle.Summary()}, nil
}
