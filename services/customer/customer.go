package customer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	customerRepo "fleetrent/database/repository/customer"
	paymentRepo "fleetrent/database/repository/payment"
	rentalRepo "fleetrent/database/repository/rental"
	"fleetrent/models"
	"fleetrent/utils"
)

// CustomerService manages the renting parties of a dealer.
type CustomerService interface {
	Create(ctx context.Context, dealer models.DealerID, input models.CreateCustomerInput) (*models.Customer, error)
	GetByID(ctx context.Context, dealer models.DealerID, customerID string) (*models.CustomerDetail, error)
	List(ctx context.Context, dealer models.DealerID, f customerRepo.Filter) ([]models.Customer, int64, error)
	Update(ctx context.Context, dealer models.DealerID, customerID string, input models.UpdateCustomerInput) (*models.Customer, error)
	Deactivate(ctx context.Context, dealer models.DealerID, customerID string) error
}

// DefaultCustomerService implements CustomerService.
type DefaultCustomerService struct {
	Customers customerRepo.CustomerRepository
	Rentals   rentalRepo.RentalRepository
	Payments  paymentRepo.PaymentRepository
}

func (svc *DefaultCustomerService) Create(ctx context.Context, dealer models.DealerID, input models.CreateCustomerInput) (*models.Customer, error) {
	now := time.Now()
	c := &models.Customer{
		DealerID:    dealer,
		CustomerID:  utils.NewEntityID("CUS"),
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		CreditLimit: input.CreditLimit,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := svc.Customers.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	utils.GetLogger().Info("customer created",
		zap.String("dealerId", string(dealer)),
		zap.String("customerId", c.CustomerID))
	return c, nil
}

// GetByID returns a customer populated with its rentals and payments.
func (svc *DefaultCustomerService) GetByID(ctx context.Context, dealer models.DealerID, customerID string) (*models.CustomerDetail, error) {
	c, err := svc.Customers.GetByCustomerID(ctx, dealer, customerID)
	if err != nil {
		return nil, fmt.Errorf("get customer %s: %w", customerID, err)
	}
	if c == nil {
		return nil, NotFoundError{ID: customerID}
	}

	detail := &models.CustomerDetail{Customer: *c}
	if rentals, _, err := svc.Rentals.List(ctx, dealer, rentalRepo.Filter{CustomerID: customerID}); err == nil {
		detail.Rentals = rentals
	}
	if payments, _, err := svc.Payments.List(ctx, dealer, paymentRepo.Filter{CustomerID: customerID}); err == nil {
		detail.Payments = payments
	}
	return detail, nil
}

func (svc *DefaultCustomerService) List(ctx context.Context, dealer models.DealerID, f customerRepo.Filter) ([]models.Customer, int64, error) {
	customers, total, err := svc.Customers.List(ctx, dealer, f)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	return customers, total, nil
}

func (svc *DefaultCustomerService) Update(ctx context.Context, dealer models.DealerID, customerID string, input models.UpdateCustomerInput) (*models.Customer, error) {
	c, err := svc.Customers.GetByCustomerID(ctx, dealer, customerID)
	if err != nil {
		return nil, fmt.Errorf("get customer %s: %w", customerID, err)
	}
	if c == nil {
		return nil, NotFoundError{ID: customerID}
	}

	if input.Name != "" {
		c.Name = input.Name
	}
	if input.Email != "" {
		c.Email = input.Email
	}
	if input.Phone != "" {
		c.Phone = input.Phone
	}
	if input.CreditLimit != nil {
		c.CreditLimit = *input.CreditLimit
	}

	if err := svc.Customers.Update(ctx, dealer, c); err != nil {
		return nil, fmt.Errorf("update customer %s: %w", customerID, err)
	}
	return c, nil
}

// Deactivate soft-deletes: the record stays for history, the customer stops
// showing up in default listings.
func (svc *DefaultCustomerService) Deactivate(ctx context.Context, dealer models.DealerID, customerID string) error {
	c, err := svc.Customers.GetByCustomerID(ctx, dealer, customerID)
	if err != nil {
		return fmt.Errorf("get customer %s: %w", customerID, err)
	}
	if c == nil {
		return NotFoundError{ID: customerID}
	}
	if err := svc.Customers.Deactivate(ctx, dealer, customerID); err != nil {
		return fmt.Errorf("deactivate customer %s: %w", customerID, err)
	}

	utils.GetLogger().Info("customer deactivated",
		zap.String("dealerId", string(dealer)),
		zap.String("customerId", customerID))
	return nil
}
