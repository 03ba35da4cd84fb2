package rental

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paymentRepo "fleetrent/database/repository/payment"
	"fleetrent/models"
)

const (
	testDealer  models.DealerID = "DLR-TEST0001"
	otherDealer models.DealerID = "DLR-OTHER001"
)

type fixture struct {
	svc       *DefaultRentalService
	rentals   *fakeRentalRepo
	vehicles  *fakeVehicleRepo
	customers *fakeCustomerRepo
	payments  *fakePaymentRepo
	alerts    *fakeDispatcher
}

func newFixture() *fixture {
	f := &fixture{
		rentals:   newFakeRentalRepo(),
		vehicles:  newFakeVehicleRepo(),
		customers: newFakeCustomerRepo(),
		payments:  newFakePaymentRepo(),
		alerts:    &fakeDispatcher{},
	}
	f.svc = &DefaultRentalService{
		Rentals:   f.rentals,
		Vehicles:  f.vehicles,
		Customers: f.customers,
		Payments:  f.payments,
		Alerts:    f.alerts,
		Txn:       passTxn{},
	}
	return f
}

func (f *fixture) seedCustomer(dealer models.DealerID, id string) {
	f.customers.docs[key(dealer, id)] = models.Customer{
		DealerID:   dealer,
		CustomerID: id,
		Name:       "Jordan Mwangi",
		Phone:      "+254700000001",
		IsActive:   true,
	}
}

func (f *fixture) seedVehicle(dealer models.DealerID, id string, status models.VehicleStatus, condition models.VehicleCondition) {
	f.vehicles.docs[key(dealer, id)] = models.Vehicle{
		DealerID:  dealer,
		VehicleID: id,
		Make:      "Toyota",
		Model:     "Hilux",
		DailyRate: 100,
		Status:    status,
		Condition: condition,
	}
}

// seedActiveRental wires up a rental the way Create would have: vehicle
// attached, customer history registered.
func (f *fixture) seedActiveRental(dealer models.DealerID, rentalID, customerID, vehicleID string, start, expectedEnd time.Time, amount float64) {
	f.rentals.docs[key(dealer, rentalID)] = models.Rental{
		DealerID:        dealer,
		RentalID:        rentalID,
		CustomerID:      customerID,
		VehicleID:       vehicleID,
		Status:          models.RentalActive,
		StartDate:       start,
		ExpectedEndDate: expectedEnd,
		TotalAmount:     amount,
	}

	v := f.vehicles.docs[key(dealer, vehicleID)]
	v.Status = models.VehicleRented
	v.CurrentRental = &rentalID
	v.ExpectedReturnDate = &expectedEnd
	f.vehicles.docs[key(dealer, vehicleID)] = v

	c := f.customers.docs[key(dealer, customerID)]
	c.TotalRentals++
	c.RentalHistory = append(c.RentalHistory, models.CustomerRentalRecord{
		RentalID:    rentalID,
		VehicleID:   vehicleID,
		StartDate:   start,
		TotalAmount: amount,
	})
	f.customers.docs[key(dealer, customerID)] = c
}

func TestCreateRental(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	t.Run("happy path", func(t *testing.T) {
		f := newFixture()
		f.seedCustomer(testDealer, "CUS-AAAA1111")
		f.seedVehicle(testDealer, "VEH-BBBB2222", models.VehicleAvailable, models.ConditionGood)

		detail, err := f.svc.Create(ctx, testDealer, models.CreateRentalInput{
			CustomerID:      "CUS-AAAA1111",
			VehicleID:       "VEH-BBBB2222",
			StartDate:       start,
			ExpectedEndDate: end,
			TotalAmount:     300,
		})
		require.NoError(t, err)
		require.NotNil(t, detail)
		assert.True(t, strings.HasPrefix(detail.RentalID, "RNT-"))
		assert.Equal(t, models.RentalActive, detail.Status)
		assert.Equal(t, 300.0, detail.TotalAmount)
		require.NotNil(t, detail.Customer)
		require.NotNil(t, detail.Vehicle)
		assert.Equal(t, models.VehicleRented, detail.Vehicle.Status)

		v := f.vehicles.docs[key(testDealer, "VEH-BBBB2222")]
		assert.Equal(t, models.VehicleRented, v.Status)
		require.NotNil(t, v.CurrentRental)
		assert.Equal(t, detail.RentalID, *v.CurrentRental)
		require.NotNil(t, v.ExpectedReturnDate)
		assert.True(t, v.ExpectedReturnDate.Equal(end))

		c := f.customers.docs[key(testDealer, "CUS-AAAA1111")]
		assert.Equal(t, int64(1), c.TotalRentals)
		require.Len(t, c.RentalHistory, 1)
		assert.Equal(t, detail.RentalID, c.RentalHistory[0].RentalID)
		assert.Equal(t, 0.0, c.RentalHistory[0].PaidAmount)

		payments, _, err := f.payments.List(ctx, testDealer, paymentRepo.Filter{RentalID: detail.RentalID})
		require.NoError(t, err)
		require.Len(t, payments, 1)
		assert.Equal(t, models.PaymentRentalFee, payments[0].PaymentType)
		assert.Equal(t, models.PaymentPending, payments[0].Status)
		assert.Equal(t, 300.0, payments[0].Amount)
		assert.True(t, payments[0].DueDate.Equal(start.AddDate(0, 0, 7)))
	})

	t.Run("vehicle not available", func(t *testing.T) {
		f := newFixture()
		f.seedCustomer(testDealer, "CUS-AAAA1111")
		f.seedVehicle(testDealer, "VEH-BBBB2222", models.VehicleUnderMaintenance, models.ConditionFair)

		_, err := f.svc.Create(ctx, testDealer, models.CreateRentalInput{
			CustomerID:      "CUS-AAAA1111",
			VehicleID:       "VEH-BBBB2222",
			StartDate:       start,
			ExpectedEndDate: end,
			TotalAmount:     300,
		})
		var invalid InvalidStateError
		require.ErrorAs(t, err, &invalid)

		// Nothing was written.
		v := f.vehicles.docs[key(testDealer, "VEH-BBBB2222")]
		assert.Equal(t, models.VehicleUnderMaintenance, v.Status)
		assert.Nil(t, v.CurrentRental)
		assert.Empty(t, f.rentals.docs)
		assert.Empty(t, f.payments.docs)
		c := f.customers.docs[key(testDealer, "CUS-AAAA1111")]
		assert.Equal(t, int64(0), c.TotalRentals)
	})

	t.Run("missing customer", func(t *testing.T) {
		f := newFixture()
		f.seedVehicle(testDealer, "VEH-BBBB2222", models.VehicleAvailable, models.ConditionGood)

		_, err := f.svc.Create(ctx, testDealer, models.CreateRentalInput{
			CustomerID:      "CUS-MISSING1",
			VehicleID:       "VEH-BBBB2222",
			StartDate:       start,
			ExpectedEndDate: end,
			TotalAmount:     300,
		})
		var notFound NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "customer", notFound.Entity)
	})

	t.Run("another dealer's vehicle is invisible", func(t *testing.T) {
		f := newFixture()
		f.seedCustomer(testDealer, "CUS-AAAA1111")
		f.seedVehicle(otherDealer, "VEH-BBBB2222", models.VehicleAvailable, models.ConditionGood)

		_, err := f.svc.Create(ctx, testDealer, models.CreateRentalInput{
			CustomerID:      "CUS-AAAA1111",
			VehicleID:       "VEH-BBBB2222",
			StartDate:       start,
			ExpectedEndDate: end,
			TotalAmount:     300,
		})
		var notFound NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "vehicle", notFound.Entity)
	})

	t.Run("lost guarded write surfaces as invalid state", func(t *testing.T) {
		f := newFixture()
		f.seedCustomer(testDealer, "CUS-AAAA1111")
		f.seedVehicle(testDealer, "VEH-BBBB2222", models.VehicleAvailable, models.ConditionGood)
		f.vehicles.forceRaceOnMark = true

		_, err := f.svc.Create(ctx, testDealer, models.CreateRentalInput{
			CustomerID:      "CUS-AAAA1111",
			VehicleID:       "VEH-BBBB2222",
			StartDate:       start,
			ExpectedEndDate: end,
			TotalAmount:     300,
		})
		var invalid InvalidStateError
		require.ErrorAs(t, err, &invalid)
	})
}

func TestReturnRental(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	t.Run("five days late and damaged", func(t *testing.T) {
		f := newFixture()
		f.seedCustomer(testDealer, "CUS-AAAA1111")
		f.seedVehicle(testDealer, "VEH-BBBB2222", models.VehicleAvailable, models.ConditionGood)
		f.seedActiveRental(testDealer, "RNT-CCCC3333", "CUS-AAAA1111", "VEH-BBBB2222", start, end, 300)

		actualEnd := start.Add(120 * time.Hour) // five days
		detail, err := f.svc.Return(ctx, testDealer, "RNT-CCCC3333", models.ReturnRentalInput{
			ActualEndDate: &actualEnd,
			Condition:     models.ConditionDamaged,
			Notes:         "rear bumper cracked",
			DamageCharges: 50,
		})
		require.NoError(t, err)
		assert.Equal(t, models.RentalOverdue, detail.Status)
		require.NotNil(t, detail.ActualEndDate)
		require.NotNil(t, detail.Rental.ReturnCondition)
		assert.Equal(t, 50.0, detail.Rental.ReturnCondition.DamageCharges)

		v := f.vehicles.docs[key(testDealer, "VEH-BBBB2222")]
		assert.Equal(t, models.VehicleAvailable, v.Status)
		assert.Equal(t, models.ConditionNeedsInspection, v.Condition)
		assert.Nil(t, v.CurrentRental)
		assert.Nil(t, v.ExpectedReturnDate)
		assert.Equal(t, int64(120), v.TotalRentalHours)
		require.Len(t, v.RentalHistory, 1)
		assert.Equal(t, int64(120), v.RentalHistory[0].HoursUsed)

		c := f.customers.docs[key(testDealer, "CUS-AAAA1111")]
		require.Len(t, c.RentalHistory, 1)
		require.NotNil(t, c.RentalHistory[0].EndDate)
		assert.Equal(t, string(models.ConditionDamaged), c.RentalHistory[0].ReturnCondition)

		payments, _, err := f.payments.List(ctx, testDealer, paymentRepo.Filter{RentalID: "RNT-CCCC3333"})
		require.NoError(t, err)
		require.Len(t, payments, 1)
		assert.Equal(t, models.PaymentDamageCharge, payments[0].PaymentType)
		assert.Equal(t, models.PaymentPending, payments[0].Status)
		assert.Equal(t, 50.0, payments[0].Amount)

		require.Len(t, f.alerts.damage, 1)
		assert.Equal(t, "RNT-CCCC3333", f.alerts.damage[0].RentalID)
		assert.Equal(t, 50.0, f.alerts.damage[0].Amount)
	})

	t.Run("on time in fair condition", func(t *testing.T) {
		f := newFixture()
		f.seedCustomer(testDealer, "CUS-AAAA1111")
		f.seedVehicle(testDealer, "VEH-BBBB2222", models.VehicleAvailable, models.ConditionGood)
		f.seedActiveRental(testDealer, "RNT-CCCC3333", "CUS-AAAA1111", "VEH-BBBB2222", start, end, 300)

		actualEnd := end.Add(-2 * time.Hour)
		detail, err := f.svc.Return(ctx, testDealer, "RNT-CCCC3333", models.ReturnRentalInput{
			ActualEndDate: &actualEnd,
			Condition:     models.ConditionFair,
		})
		require.NoError(t, err)
		assert.Equal(t, models.RentalCompleted, detail.Status)

		v := f.vehicles.docs[key(testDealer, "VEH-BBBB2222")]
		assert.Equal(t, models.ConditionFair, v.Condition)
		assert.Empty(t, f.payments.docs)
		assert.Empty(t, f.alerts.damage)
	})

	t.Run("good return never upgrades condition", func(t *testing.T) {
		f := newFixture()
		f.seedCustomer(testDealer, "CUS-AAAA1111")
		f.seedVehicle(testDealer, "VEH-BBBB2222", models.VehicleAvailable, models.ConditionFair)
		f.seedActiveRental(testDealer, "RNT-CCCC3333", "CUS-AAAA1111", "VEH-BBBB2222", start, end, 300)

		actualEnd := end.Add(-time.Hour)
		_, err := f.svc.Return(ctx, testDealer, "RNT-CCCC3333", models.ReturnRentalInput{
			ActualEndDate: &actualEnd,
			Condition:     models.ConditionGood,
		})
		require.NoError(t, err)
		v := f.vehicles.docs[key(testDealer, "VEH-BBBB2222")]
		assert.Equal(t, models.ConditionFair, v.Condition)
	})

	t.Run("returning a cancelled rental fails", func(t *testing.T) {
		f := newFixture()
		f.seedCustomer(testDealer, "CUS-AAAA1111")
		f.seedVehicle(testDealer, "VEH-BBBB2222", models.VehicleAvailable, models.ConditionGood)
		f.seedActiveRental(testDealer, "RNT-CCCC3333", "CUS-AAAA1111", "VEH-BBBB2222", start, end, 300)
		r := f.rentals.docs[key(testDealer, "RNT-CCCC3333")]
		r.Status = models.RentalCancelled
		f.rentals.docs[key(testDealer, "RNT-CCCC3333")] = r

		_, err := f.svc.Return(ctx, testDealer, "RNT-CCCC3333", models.ReturnRentalInput{
			Condition: models.ConditionGood,
		})
		var invalid InvalidStateError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("alert dispatch failure does not fail the return", func(t *testing.T) {
		f := newFixture()
		f.alerts.err = errors.New("queue down")
		f.seedCustomer(testDealer, "CUS-AAAA1111")
		f.seedVehicle(testDealer, "VEH-BBBB2222", models.VehicleAvailable, models.ConditionGood)
		f.seedActiveRental(testDealer, "RNT-CCCC3333", "CUS-AAAA1111", "VEH-BBBB2222", start, end, 300)

		actualEnd := end.Add(time.Hour)
		detail, err := f.svc.Return(ctx, testDealer, "RNT-CCCC3333", models.ReturnRentalInput{
			ActualEndDate: &actualEnd,
			Condition:     models.ConditionDamaged,
			DamageCharges: 25,
		})
		require.NoError(t, err)
		assert.Equal(t, models.RentalOverdue, detail.Status)
	})
}

func TestExtendRental(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	t.Run("with additional amount", func(t *testing.T) {
		f := newFixture()
		f.seedCustomer(testDealer, "CUS-AAAA1111")
		f.seedVehicle(testDealer, "VEH-BBBB2222", models.VehicleAvailable, models.ConditionGood)
		f.seedActiveRental(testDealer, "RNT-CCCC3333", "CUS-AAAA1111", "VEH-BBBB2222", start, end, 300)

		newEnd := end.AddDate(0, 0, 2)
		detail, err := f.svc.Extend(ctx, testDealer, "RNT-CCCC3333", models.ExtendRentalInput{
			NewEndDate:       newEnd,
			AdditionalAmount: 200,
		})
		require.NoError(t, err)
		assert.Equal(t, models.RentalActive, detail.Status)
		assert.Equal(t, 500.0, detail.TotalAmount)
		assert.True(t, detail.ExpectedEndDate.Equal(newEnd))

		v := f.vehicles.docs[key(testDealer, "VEH-BBBB2222")]
		require.NotNil(t, v.ExpectedReturnDate)
		assert.True(t, v.ExpectedReturnDate.Equal(newEnd))

		payments, _, err := f.payments.List(ctx, testDealer, paymentRepo.Filter{RentalID: "RNT-CCCC3333"})
		require.NoError(t, err)
		require.Len(t, payments, 1)
		assert.Equal(t, models.PaymentExtensionFee, payments[0].PaymentType)
		assert.Equal(t, 200.0, payments[0].Amount)
	})

	t.Run("zero amount creates no payment", func(t *testing.T) {
		f := newFixture()
		f.seedCustomer(testDealer, "CUS-AAAA1111")
		f.seedVehicle(testDealer, "VEH-BBBB2222", models.VehicleAvailable, models.ConditionGood)
		f.seedActiveRental(testDealer, "RNT-CCCC3333", "CUS-AAAA1111", "VEH-BBBB2222", start, end, 300)

		newEnd := end.AddDate(0, 0, 1)
		detail, err := f.svc.Extend(ctx, testDealer, "RNT-CCCC3333", models.ExtendRentalInput{
			NewEndDate: newEnd,
		})
		require.NoError(t, err)
		assert.Equal(t, 300.0, detail.TotalAmount)
		assert.Empty(t, f.payments.docs)
	})

	t.Run("terminal rental refuses extension", func(t *testing.T) {
		f := newFixture()
		f.seedCustomer(testDealer, "CUS-AAAA1111")
		f.seedVehicle(testDealer, "VEH-BBBB2222", models.VehicleAvailable, models.ConditionGood)
		f.seedActiveRental(testDealer, "RNT-CCCC3333", "CUS-AAAA1111", "VEH-BBBB2222", start, end, 300)
		r := f.rentals.docs[key(testDealer, "RNT-CCCC3333")]
		r.Status = models.RentalCompleted
		f.rentals.docs[key(testDealer, "RNT-CCCC3333")] = r

		_, err := f.svc.Extend(ctx, testDealer, "RNT-CCCC3333", models.ExtendRentalInput{
			NewEndDate: end.AddDate(0, 0, 1),
		})
		var invalid InvalidStateError
		require.ErrorAs(t, err, &invalid)
	})
}

func TestCancelRental(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 3)

	t.Run("zero fee releases vehicle with no payment", func(t *testing.T) {
		f := newFixture()
		f.seedCustomer(testDealer, "CUS-AAAA1111")
		f.seedVehicle(testDealer, "VEH-BBBB2222", models.VehicleAvailable, models.ConditionGood)
		f.seedActiveRental(testDealer, "RNT-CCCC3333", "CUS-AAAA1111", "VEH-BBBB2222", start, end, 300)

		detail, err := f.svc.Cancel(ctx, testDealer, "RNT-CCCC3333", models.CancelRentalInput{
			Reason: "customer changed plans",
		})
		require.NoError(t, err)
		assert.Equal(t, models.RentalCancelled, detail.Status)
		assert.Contains(t, detail.Notes, "Cancelled: customer changed plans")

		v := f.vehicles.docs[key(testDealer, "VEH-BBBB2222")]
		assert.Equal(t, models.VehicleAvailable, v.Status)
		assert.Nil(t, v.CurrentRental)
		assert.Empty(t, v.RentalHistory)
		assert.Equal(t, int64(0), v.TotalRentalHours)
		assert.Empty(t, f.payments.docs)

		// TotalRentals counts rentals ever initiated and survives cancellation.
		c := f.customers.docs[key(testDealer, "CUS-AAAA1111")]
		assert.Equal(t, int64(1), c.TotalRentals)
	})

	t.Run("cancellation fee raises a payment", func(t *testing.T) {
		f := newFixture()
		f.seedCustomer(testDealer, "CUS-AAAA1111")
		f.seedVehicle(testDealer, "VEH-BBBB2222", models.VehicleAvailable, models.ConditionGood)
		f.seedActiveRental(testDealer, "RNT-CCCC3333", "CUS-AAAA1111", "VEH-BBBB2222", start, end, 300)

		_, err := f.svc.Cancel(ctx, testDealer, "RNT-CCCC3333", models.CancelRentalInput{
			Reason:          "no-show",
			CancellationFee: 40,
		})
		require.NoError(t, err)

		payments, _, err := f.payments.List(ctx, testDealer, paymentRepo.Filter{RentalID: "RNT-CCCC3333"})
		require.NoError(t, err)
		require.Len(t, payments, 1)
		assert.Equal(t, models.PaymentOther, payments[0].PaymentType)
		assert.Equal(t, 40.0, payments[0].Amount)
	})

	t.Run("cancelling twice fails", func(t *testing.T) {
		f := newFixture()
		f.seedCustomer(testDealer, "CUS-AAAA1111")
		f.seedVehicle(testDealer, "VEH-BBBB2222", models.VehicleAvailable, models.ConditionGood)
		f.seedActiveRental(testDealer, "RNT-CCCC3333", "CUS-AAAA1111", "VEH-BBBB2222", start, end, 300)

		_, err := f.svc.Cancel(ctx, testDealer, "RNT-CCCC3333", models.CancelRentalInput{Reason: "first"})
		require.NoError(t, err)
		_, err = f.svc.Cancel(ctx, testDealer, "RNT-CCCC3333", models.CancelRentalInput{Reason: "second"})
		var invalid InvalidStateError
		require.ErrorAs(t, err, &invalid)
	})
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("populates summaries", func(t *testing.T) {
		f := newFixture()
		f.seedCustomer(testDealer, "CUS-AAAA1111")
		f.seedVehicle(testDealer, "VEH-BBBB2222", models.VehicleAvailable, models.ConditionGood)
		f.seedActiveRental(testDealer, "RNT-CCCC3333", "CUS-AAAA1111", "VEH-BBBB2222", start, start.AddDate(0, 0, 3), 300)

		detail, err := f.svc.GetByID(ctx, testDealer, "RNT-CCCC3333")
		require.NoError(t, err)
		require.NotNil(t, detail.Customer)
		assert.Equal(t, "CUS-AAAA1111", detail.Customer.CustomerID)
		require.NotNil(t, detail.Vehicle)
		assert.Equal(t, "VEH-BBBB2222", detail.Vehicle.VehicleID)
	})

	t.Run("tenant scoped", func(t *testing.T) {
		f := newFixture()
		f.seedCustomer(otherDealer, "CUS-AAAA1111")
		f.seedVehicle(otherDealer, "VEH-BBBB2222", models.VehicleAvailable, models.ConditionGood)
		f.seedActiveRental(otherDealer, "RNT-CCCC3333", "CUS-AAAA1111", "VEH-BBBB2222", start, start.AddDate(0, 0, 3), 300)

		_, err := f.svc.GetByID(ctx, testDealer, "RNT-CCCC3333")
		var notFound NotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}
