package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customerRepo "fleetrent/database/repository/customer"
	paymentRepo "fleetrent/database/repository/payment"
	"fleetrent/models"
)

const testDealer models.DealerID = "DLR-TEST0001"

type stubPaymentRepo struct {
	docs map[string]models.Payment
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{docs: make(map[string]models.Payment)}
}

func (r *stubPaymentRepo) GetByPaymentID(_ context.Context, _ models.DealerID, paymentID string) (*models.Payment, error) {
	doc, ok := r.docs[paymentID]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (r *stubPaymentRepo) List(_ context.Context, _ models.DealerID, _ paymentRepo.Filter) ([]models.Payment, int64, error) {
	var out []models.Payment
	for _, doc := range r.docs {
		out = append(out, doc)
	}
	return out, int64(len(out)), nil
}

func (r *stubPaymentRepo) ListByRental(_ context.Context, _ models.DealerID, _ string) ([]models.Payment, error) {
	return nil, nil
}

func (r *stubPaymentRepo) Create(_ context.Context, p *models.Payment) error {
	r.docs[p.PaymentID] = *p
	return nil
}

func (r *stubPaymentRepo) Update(_ context.Context, _ models.DealerID, p *models.Payment) error {
	r.docs[p.PaymentID] = *p
	return nil
}

func (r *stubPaymentRepo) Totals(_ context.Context, _ models.DealerID) (models.PaymentTotals, error) {
	return models.PaymentTotals{}, nil
}

func (r *stubPaymentRepo) RevenueByMonth(_ context.Context, _ models.DealerID, _ int) ([]models.MonthlyRevenue, error) {
	return nil, nil
}

func (r *stubPaymentRepo) Recent(_ context.Context, _ models.DealerID, _ int64) ([]models.Payment, error) {
	return nil, nil
}

type settlement struct {
	CustomerID string
	Amount     float64
}

type stubCustomerRepo struct {
	customerRepo.CustomerRepository
	settled []settlement
}

func (r *stubCustomerRepo) ApplyPayment(_ context.Context, _ models.DealerID, customerID string, amount float64, _ models.CustomerPaymentRecord) error {
	r.settled = append(r.settled, settlement{CustomerID: customerID, Amount: amount})
	return nil
}

func newService() (*DefaultPaymentService, *stubPaymentRepo, *stubCustomerRepo) {
	payments := newStubPaymentRepo()
	customers := &stubCustomerRepo{}
	return &DefaultPaymentService{Payments: payments, Customers: customers}, payments, customers
}

func seedPayment(r *stubPaymentRepo, id string, pType models.PaymentType, status models.PaymentStatus, amount, paid float64, due time.Time) {
	r.docs[id] = models.Payment{
		DealerID:    testDealer,
		PaymentID:   id,
		RentalID:    "RNT-CCCC3333",
		CustomerID:  "CUS-AAAA1111",
		Amount:      amount,
		PaidAmount:  paid,
		PaymentType: pType,
		Status:      status,
		DueDate:     due,
	}
}

func TestProcessPayment(t *testing.T) {
	ctx := context.Background()
	due := time.Now().AddDate(0, 0, 7)

	t.Run("full payment completes and settles customer balance", func(t *testing.T) {
		svc, payments, customers := newService()
		seedPayment(payments, "PAY-11112222", models.PaymentRentalFee, models.PaymentPending, 300, 0, due)

		p, err := svc.Process(ctx, testDealer, "PAY-11112222", models.ProcessPaymentInput{
			Amount: 300,
			Method: "card",
		})
		require.NoError(t, err)
		assert.Equal(t, models.PaymentCompleted, p.Status)
		assert.Equal(t, 300.0, p.PaidAmount)
		require.NotNil(t, p.PaidDate)

		require.Len(t, customers.settled, 1)
		assert.Equal(t, "CUS-AAAA1111", customers.settled[0].CustomerID)
		assert.Equal(t, 300.0, customers.settled[0].Amount)
	})

	t.Run("partial payment stays open", func(t *testing.T) {
		svc, payments, customers := newService()
		seedPayment(payments, "PAY-11112222", models.PaymentRentalFee, models.PaymentPending, 300, 0, due)

		p, err := svc.Process(ctx, testDealer, "PAY-11112222", models.ProcessPaymentInput{
			Amount: 100,
			Method: "cash",
		})
		require.NoError(t, err)
		assert.Equal(t, models.PaymentPartiallyPaid, p.Status)
		assert.Equal(t, 100.0, p.PaidAmount)
		require.Len(t, customers.settled, 1)

		// A second instalment that clears the balance completes it.
		p, err = svc.Process(ctx, testDealer, "PAY-11112222", models.ProcessPaymentInput{
			Amount: 200,
			Method: "cash",
		})
		require.NoError(t, err)
		assert.Equal(t, models.PaymentCompleted, p.Status)
		assert.Equal(t, 300.0, p.PaidAmount)
	})

	t.Run("damage charge does not touch customer balance", func(t *testing.T) {
		svc, payments, customers := newService()
		seedPayment(payments, "PAY-11112222", models.PaymentDamageCharge, models.PaymentPending, 50, 0, due)

		_, err := svc.Process(ctx, testDealer, "PAY-11112222", models.ProcessPaymentInput{
			Amount: 50,
			Method: "card",
		})
		require.NoError(t, err)
		assert.Empty(t, customers.settled)
	})

	t.Run("completed payment rejects further processing", func(t *testing.T) {
		svc, payments, _ := newService()
		seedPayment(payments, "PAY-11112222", models.PaymentRentalFee, models.PaymentCompleted, 300, 300, due)

		_, err := svc.Process(ctx, testDealer, "PAY-11112222", models.ProcessPaymentInput{
			Amount: 10,
			Method: "card",
		})
		var invalid InvalidStateError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("missing payment", func(t *testing.T) {
		svc, _, _ := newService()
		_, err := svc.Process(ctx, testDealer, "PAY-MISSING1", models.ProcessPaymentInput{
			Amount: 10,
			Method: "card",
		})
		var notFound NotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}

func TestRefundPayment(t *testing.T) {
	ctx := context.Background()
	due := time.Now().AddDate(0, 0, 7)

	t.Run("full refund flips status", func(t *testing.T) {
		svc, payments, _ := newService()
		seedPayment(payments, "PAY-11112222", models.PaymentRentalFee, models.PaymentCompleted, 300, 300, due)

		p, err := svc.Refund(ctx, testDealer, "PAY-11112222", models.RefundPaymentInput{
			Amount: 300,
			Reason: "booking error",
		})
		require.NoError(t, err)
		assert.Equal(t, models.PaymentRefunded, p.Status)
		require.NotNil(t, p.Refund)
		assert.Equal(t, 300.0, p.Refund.Amount)
	})

	t.Run("partial refund keeps payment completed", func(t *testing.T) {
		svc, payments, _ := newService()
		seedPayment(payments, "PAY-11112222", models.PaymentRentalFee, models.PaymentCompleted, 300, 300, due)

		p, err := svc.Refund(ctx, testDealer, "PAY-11112222", models.RefundPaymentInput{Amount: 100})
		require.NoError(t, err)
		assert.Equal(t, models.PaymentCompleted, p.Status)
		require.NotNil(t, p.Refund)
	})

	t.Run("refund exceeding amount fails", func(t *testing.T) {
		svc, payments, _ := newService()
		seedPayment(payments, "PAY-11112222", models.PaymentRentalFee, models.PaymentCompleted, 300, 300, due)

		_, err := svc.Refund(ctx, testDealer, "PAY-11112222", models.RefundPaymentInput{Amount: 301})
		var invalid InvalidStateError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("only completed payments are refundable", func(t *testing.T) {
		svc, payments, _ := newService()
		seedPayment(payments, "PAY-11112222", models.PaymentRentalFee, models.PaymentPending, 300, 0, due)

		_, err := svc.Refund(ctx, testDealer, "PAY-11112222", models.RefundPaymentInput{Amount: 300})
		var invalid InvalidStateError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("second refund fails", func(t *testing.T) {
		svc, payments, _ := newService()
		seedPayment(payments, "PAY-11112222", models.PaymentRentalFee, models.PaymentCompleted, 300, 300, due)

		_, err := svc.Refund(ctx, testDealer, "PAY-11112222", models.RefundPaymentInput{Amount: 100})
		require.NoError(t, err)
		_, err = svc.Refund(ctx, testDealer, "PAY-11112222", models.RefundPaymentInput{Amount: 100})
		var invalid InvalidStateError
		require.ErrorAs(t, err, &invalid)
	})
}

func TestApplyLateFee(t *testing.T) {
	ctx := context.Background()

	t.Run("computed fee applied once", func(t *testing.T) {
		svc, payments, _ := newService()
		due := time.Now().AddDate(0, 0, -35)
		seedPayment(payments, "PAY-11112222", models.PaymentRentalFee, models.PaymentPending, 300, 0, due)

		p, err := svc.ApplyLateFee(ctx, testDealer, "PAY-11112222", models.ApplyLateFeeInput{})
		require.NoError(t, err)
		require.NotNil(t, p.LateFee)
		// floor(300 * 0.05 * 35/30) = 17
		assert.Equal(t, 17.0, p.LateFee.Amount)
		assert.Equal(t, 317.0, p.Amount)

		_, err = svc.ApplyLateFee(ctx, testDealer, "PAY-11112222", models.ApplyLateFeeInput{})
		var invalid InvalidStateError
		require.ErrorAs(t, err, &invalid)

		// Amount grew exactly once.
		stored := payments.docs["PAY-11112222"]
		assert.Equal(t, 317.0, stored.Amount)
	})

	t.Run("explicit fee overrides the formula", func(t *testing.T) {
		svc, payments, _ := newService()
		due := time.Now().AddDate(0, 0, -10)
		seedPayment(payments, "PAY-11112222", models.PaymentRentalFee, models.PaymentPartiallyPaid, 300, 100, due)

		p, err := svc.ApplyLateFee(ctx, testDealer, "PAY-11112222", models.ApplyLateFeeInput{Amount: 25})
		require.NoError(t, err)
		assert.Equal(t, 25.0, p.LateFee.Amount)
		assert.Equal(t, 325.0, p.Amount)
	})

	t.Run("not overdue", func(t *testing.T) {
		svc, payments, _ := newService()
		due := time.Now().AddDate(0, 0, 7)
		seedPayment(payments, "PAY-11112222", models.PaymentRentalFee, models.PaymentPending, 300, 0, due)

		_, err := svc.ApplyLateFee(ctx, testDealer, "PAY-11112222", models.ApplyLateFeeInput{})
		var invalid InvalidStateError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("completed payment rejects late fee", func(t *testing.T) {
		svc, payments, _ := newService()
		due := time.Now().AddDate(0, 0, -35)
		seedPayment(payments, "PAY-11112222", models.PaymentRentalFee, models.PaymentCompleted, 300, 300, due)

		_, err := svc.ApplyLateFee(ctx, testDealer, "PAY-11112222", models.ApplyLateFeeInput{})
		var invalid InvalidStateError
		require.ErrorAs(t, err, &invalid)
	})
}

func TestComputeLateFee(t *testing.T) {
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	base := models.Payment{
		Amount:  300,
		Status:  models.PaymentPending,
		DueDate: due,
	}

	t.Run("thirty five days overdue", func(t *testing.T) {
		p := base
		fee := ComputeLateFee(&p, due.AddDate(0, 0, 35))
		assert.Equal(t, 17.0, fee)
	})

	t.Run("not yet due", func(t *testing.T) {
		p := base
		assert.Zero(t, ComputeLateFee(&p, due.Add(-time.Hour)))
	})

	t.Run("less than a full day late", func(t *testing.T) {
		p := base
		assert.Zero(t, ComputeLateFee(&p, due.Add(6*time.Hour)))
	})

	t.Run("completed payments accrue nothing", func(t *testing.T) {
		p := base
		p.Status = models.PaymentCompleted
		assert.Zero(t, ComputeLateFee(&p, due.AddDate(0, 0, 35)))
	})
}
