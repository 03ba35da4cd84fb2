package rental

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"fleetrent/models"
	"fleetrent/utils"
)

const feeDueDays = 7

// Create opens a new rental on an Available vehicle. The rental, the vehicle
// attachment, the customer bookkeeping and the initial Rental Fee payment are
// written inside one transaction.
func (svc *DefaultRentalService) Create(ctx context.Context, dealer models.DealerID, input models.CreateRentalInput) (*models.RentalDetail, error) {
	customer, err := svc.Customers.GetByCustomerID(ctx, dealer, input.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("create rental: %w", err)
	}
	if customer == nil {
		return nil, NotFoundError{Entity: "customer", ID: input.CustomerID}
	}

	vehicle, err := svc.Vehicles.GetByVehicleID(ctx, dealer, input.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("create rental: %w", err)
	}
	if vehicle == nil {
		return nil, NotFoundError{Entity: "vehicle", ID: input.VehicleID}
	}
	if vehicle.Status != models.VehicleAvailable {
		return nil, invalidState("vehicle %s is %s, not Available", vehicle.VehicleID, vehicle.Status)
	}

	now := time.Now()
	newRental := &models.Rental{
		DealerID:        dealer,
		RentalID:        utils.NewEntityID("RNT"),
		CustomerID:      customer.CustomerID,
		VehicleID:       vehicle.VehicleID,
		Status:          models.RentalActive,
		StartDate:       input.StartDate,
		ExpectedEndDate: input.ExpectedEndDate,
		TotalAmount:     input.TotalAmount,
		Notes:           input.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	fee := &models.Payment{
		DealerID:    dealer,
		PaymentID:   utils.NewEntityID("PAY"),
		RentalID:    newRental.RentalID,
		CustomerID:  customer.CustomerID,
		Amount:      input.TotalAmount,
		PaymentType: models.PaymentRentalFee,
		Status:      models.PaymentPending,
		DueDate:     input.StartDate.AddDate(0, 0, feeDueDays),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = svc.Txn.WithTransaction(ctx, func(ctx context.Context) error {
		if err := svc.Rentals.Create(ctx, newRental); err != nil {
			return err
		}
		if err := svc.Vehicles.MarkRented(ctx, dealer, vehicle.VehicleID, newRental.RentalID, input.ExpectedEndDate); err != nil {
			return err
		}
		rec := models.CustomerRentalRecord{
			RentalID:    newRental.RentalID,
			VehicleID:   vehicle.VehicleID,
			StartDate:   input.StartDate,
			TotalAmount: input.TotalAmount,
			PaidAmount:  0,
		}
		if err := svc.Customers.RegisterRental(ctx, dealer, customer.CustomerID, rec); err != nil {
			return err
		}
		return svc.Payments.Create(ctx, fee)
	})
	if err != nil {
		return nil, mapVehicleRaceError(err)
	}

	utils.GetLogger().Info("rental created",
		zap.String("dealerId", string(dealer)),
		zap.String("rentalId", newRental.RentalID),
		zap.String("vehicleId", vehicle.VehicleID),
		zap.String("customerId", customer.CustomerID))

	vehicle.Status = models.VehicleRented
	return &models.RentalDetail{
		Rental:   *newRental,
		Customer: customer.Summary(),
		Vehicle:  vehicle.Summary(),
	}, nil
}
