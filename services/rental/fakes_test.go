package rental

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	customerRepo "fleetrent/database/repository/customer"
	paymentRepo "fleetrent/database/repository/payment"
	rentalRepo "fleetrent/database/repository/rental"
	vehicleRepo "fleetrent/database/repository/vehicle"
	"fleetrent/models"
)

// The fakes store documents by value and hand out copies, so a mutation on a
// returned pointer is only visible after an explicit Update, matching how the
// Mongo repositories behave.

func key(dealer models.DealerID, id string) string {
	return string(dealer) + "/" + id
}

type passTxn struct{}

func (passTxn) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type failTxn struct{ err error }

func (t failTxn) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.err
}

type recordedAlert struct {
	Dealer   models.DealerID
	RentalID string
	Notes    string
	Amount   float64
}

type fakeDispatcher struct {
	damage []recordedAlert
	err    error
}

func (d *fakeDispatcher) DamageReported(_ context.Context, dealer models.DealerID, rentalID, notes string, amount float64) error {
	if d.err != nil {
		return d.err
	}
	d.damage = append(d.damage, recordedAlert{Dealer: dealer, RentalID: rentalID, Notes: notes, Amount: amount})
	return nil
}

type fakeRentalRepo struct {
	docs map[string]models.Rental
}

func newFakeRentalRepo() *fakeRentalRepo {
	return &fakeRentalRepo{docs: make(map[string]models.Rental)}
}

func (r *fakeRentalRepo) GetByRentalID(_ context.Context, dealer models.DealerID, rentalID string) (*models.Rental, error) {
	doc, ok := r.docs[key(dealer, rentalID)]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (r *fakeRentalRepo) List(_ context.Context, dealer models.DealerID, f rentalRepo.Filter) ([]models.Rental, int64, error) {
	var out []models.Rental
	for k, doc := range r.docs {
		if !strings.HasPrefix(k, string(dealer)+"/") {
			continue
		}
		if f.Status != "" && doc.Status != f.Status {
			continue
		}
		if f.CustomerID != "" && doc.CustomerID != f.CustomerID {
			continue
		}
		if f.VehicleID != "" && doc.VehicleID != f.VehicleID {
			continue
		}
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RentalID < out[j].RentalID })
	return out, int64(len(out)), nil
}

func (r *fakeRentalRepo) Create(_ context.Context, rental *models.Rental) error {
	r.docs[key(rental.DealerID, rental.RentalID)] = *rental
	return nil
}

func (r *fakeRentalRepo) Update(_ context.Context, dealer models.DealerID, rental *models.Rental) error {
	k := key(dealer, rental.RentalID)
	if _, ok := r.docs[k]; !ok {
		return errors.New("rental not found")
	}
	r.docs[k] = *rental
	return nil
}

func (r *fakeRentalRepo) CountByStatus(_ context.Context, dealer models.DealerID) (map[models.RentalStatus]int64, error) {
	out := make(map[models.RentalStatus]int64)
	for k, doc := range r.docs {
		if strings.HasPrefix(k, string(dealer)+"/") {
			out[doc.Status]++
		}
	}
	return out, nil
}

func (r *fakeRentalRepo) Recent(ctx context.Context, dealer models.DealerID, limit int64) ([]models.Rental, error) {
	all, _, err := r.List(ctx, dealer, rentalRepo.Filter{})
	if err != nil {
		return nil, err
	}
	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeRentalRepo) ListOverdueActive(_ context.Context, asOf time.Time) ([]models.Rental, error) {
	var out []models.Rental
	for _, doc := range r.docs {
		if doc.Status == models.RentalActive && doc.ExpectedEndDate.Before(asOf) {
			out = append(out, doc)
		}
	}
	return out, nil
}

type fakeVehicleRepo struct {
	docs map[string]models.Vehicle
	// forceRaceOnMark makes MarkRented lose the guarded write even when the
	// read-side check saw the vehicle as Available.
	forceRaceOnMark bool
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{docs: make(map[string]models.Vehicle)}
}

func (r *fakeVehicleRepo) GetByVehicleID(_ context.Context, dealer models.DealerID, vehicleID string) (*models.Vehicle, error) {
	doc, ok := r.docs[key(dealer, vehicleID)]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (r *fakeVehicleRepo) List(_ context.Context, dealer models.DealerID, f vehicleRepo.Filter) ([]models.Vehicle, int64, error) {
	var out []models.Vehicle
	for k, doc := range r.docs {
		if !strings.HasPrefix(k, string(dealer)+"/") {
			continue
		}
		if f.Status != "" && doc.Status != f.Status {
			continue
		}
		out = append(out, doc)
	}
	return out, int64(len(out)), nil
}

func (r *fakeVehicleRepo) Create(_ context.Context, vehicle *models.Vehicle) error {
	r.docs[key(vehicle.DealerID, vehicle.VehicleID)] = *vehicle
	return nil
}

func (r *fakeVehicleRepo) Update(_ context.Context, dealer models.DealerID, vehicle *models.Vehicle) error {
	k := key(dealer, vehicle.VehicleID)
	if _, ok := r.docs[k]; !ok {
		return errors.New("vehicle not found")
	}
	r.docs[k] = *vehicle
	return nil
}

func (r *fakeVehicleRepo) MarkRented(_ context.Context, dealer models.DealerID, vehicleID, rentalID string, expectedReturn time.Time) error {
	k := key(dealer, vehicleID)
	doc, ok := r.docs[k]
	if !ok || doc.Status != models.VehicleAvailable || r.forceRaceOnMark {
		return vehicleRepo.ErrNotAvailable
	}
	doc.Status = models.VehicleRented
	doc.CurrentRental = &rentalID
	doc.ExpectedReturnDate = &expectedReturn
	r.docs[k] = doc
	return nil
}

func (r *fakeVehicleRepo) CountByStatus(_ context.Context, dealer models.DealerID) (map[models.VehicleStatus]int64, error) {
	out := make(map[models.VehicleStatus]int64)
	for k, doc := range r.docs {
		if strings.HasPrefix(k, string(dealer)+"/") {
			out[doc.Status]++
		}
	}
	return out, nil
}

type fakeCustomerRepo struct {
	docs map[string]models.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{docs: make(map[string]models.Customer)}
}

func (r *fakeCustomerRepo) GetByCustomerID(_ context.Context, dealer models.DealerID, customerID string) (*models.Customer, error) {
	doc, ok := r.docs[key(dealer, customerID)]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (r *fakeCustomerRepo) List(_ context.Context, dealer models.DealerID, f customerRepo.Filter) ([]models.Customer, int64, error) {
	var out []models.Customer
	for k, doc := range r.docs {
		if !strings.HasPrefix(k, string(dealer)+"/") {
			continue
		}
		if !f.IncludeInactive && !doc.IsActive {
			continue
		}
		out = append(out, doc)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *models.Customer) error {
	r.docs[key(customer.DealerID, customer.CustomerID)] = *customer
	return nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, dealer models.DealerID, customer *models.Customer) error {
	k := key(dealer, customer.CustomerID)
	if _, ok := r.docs[k]; !ok {
		return errors.New("customer not found")
	}
	r.docs[k] = *customer
	return nil
}

func (r *fakeCustomerRepo) Deactivate(_ context.Context, dealer models.DealerID, customerID string) error {
	k := key(dealer, customerID)
	doc, ok := r.docs[k]
	if !ok {
		return errors.New("customer not found")
	}
	doc.IsActive = false
	r.docs[k] = doc
	return nil
}

func (r *fakeCustomerRepo) RegisterRental(_ context.Context, dealer models.DealerID, customerID string, rec models.CustomerRentalRecord) error {
	k := key(dealer, customerID)
	doc, ok := r.docs[k]
	if !ok {
		return errors.New("customer not found")
	}
	doc.TotalRentals++
	doc.RentalHistory = append(doc.RentalHistory, rec)
	r.docs[k] = doc
	return nil
}

func (r *fakeCustomerRepo) CloseRentalRecord(_ context.Context, dealer models.DealerID, customerID, rentalID string, endDate time.Time, returnCondition string) error {
	k := key(dealer, customerID)
	doc, ok := r.docs[k]
	if !ok {
		return nil
	}
	for i := range doc.RentalHistory {
		if doc.RentalHistory[i].RentalID == rentalID {
			doc.RentalHistory[i].EndDate = &endDate
			doc.RentalHistory[i].ReturnCondition = returnCondition
			break
		}
	}
	r.docs[k] = doc
	return nil
}

func (r *fakeCustomerRepo) ApplyPayment(_ context.Context, dealer models.DealerID, customerID string, amount float64, rec models.CustomerPaymentRecord) error {
	k := key(dealer, customerID)
	doc, ok := r.docs[k]
	if !ok {
		return errors.New("customer not found")
	}
	doc.CurrentBalance -= amount
	doc.PaymentHistory = append(doc.PaymentHistory, rec)
	r.docs[k] = doc
	return nil
}

func (r *fakeCustomerRepo) Count(_ context.Context, dealer models.DealerID) (int64, error) {
	var n int64
	for k := range r.docs {
		if strings.HasPrefix(k, string(dealer)+"/") {
			n++
		}
	}
	return n, nil
}

type fakePaymentRepo struct {
	docs map[string]models.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{docs: make(map[string]models.Payment)}
}

func (r *fakePaymentRepo) GetByPaymentID(_ context.Context, dealer models.DealerID, paymentID string) (*models.Payment, error) {
	doc, ok := r.docs[key(dealer, paymentID)]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (r *fakePaymentRepo) List(_ context.Context, dealer models.DealerID, f paymentRepo.Filter) ([]models.Payment, int64, error) {
	var out []models.Payment
	for k, doc := range r.docs {
		if !strings.HasPrefix(k, string(dealer)+"/") {
			continue
		}
		if f.Status != "" && doc.Status != f.Status {
			continue
		}
		if f.Type != "" && doc.PaymentType != f.Type {
			continue
		}
		if f.RentalID != "" && doc.RentalID != f.RentalID {
			continue
		}
		if f.CustomerID != "" && doc.CustomerID != f.CustomerID {
			continue
		}
		out = append(out, doc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentID < out[j].PaymentID })
	return out, int64(len(out)), nil
}

func (r *fakePaymentRepo) ListByRental(ctx context.Context, dealer models.DealerID, rentalID string) ([]models.Payment, error) {
	out, _, err := r.List(ctx, dealer, paymentRepo.Filter{RentalID: rentalID})
	return out, err
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *models.Payment) error {
	r.docs[key(payment.DealerID, payment.PaymentID)] = *payment
	return nil
}

func (r *fakePaymentRepo) Update(_ context.Context, dealer models.DealerID, payment *models.Payment) error {
	k := key(dealer, payment.PaymentID)
	if _, ok := r.docs[k]; !ok {
		return errors.New("payment not found")
	}
	r.docs[k] = *payment
	return nil
}

func (r *fakePaymentRepo) Totals(_ context.Context, dealer models.DealerID) (models.PaymentTotals, error) {
	var t models.PaymentTotals
	for k, doc := range r.docs {
		if !strings.HasPrefix(k, string(dealer)+"/") {
			continue
		}
		t.Collected += doc.PaidAmount
		if doc.Status == models.PaymentPending || doc.Status == models.PaymentPartiallyPaid {
			t.Outstanding += doc.Amount - doc.PaidAmount
		}
	}
	return t, nil
}

func (r *fakePaymentRepo) RevenueByMonth(_ context.Context, _ models.DealerID, _ int) ([]models.MonthlyRevenue, error) {
	return nil, nil
}

func (r *fakePaymentRepo) Recent(ctx context.Context, dealer models.DealerID, limit int64) ([]models.Payment, error) {
	out, _, err := r.List(ctx, dealer, paymentRepo.Filter{})
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}
