package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomerRentalRecord is embedded on the customer document when a rental is
// created and patched in place with the return outcome.
type CustomerRentalRecord struct {
	RentalID        string     `bson:"rentalId" json:"rentalId"`
	VehicleID       string     `bson:"vehicleId" json:"vehicleId"`
	StartDate       time.Time  `bson:"startDate" json:"startDate"`
	EndDate         *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"`
	TotalAmount     float64    `bson:"totalAmount" json:"totalAmount"`
	PaidAmount      float64    `bson:"paidAmount" json:"paidAmount"`
	ReturnCondition string     `bson:"returnCondition,omitempty" json:"returnCondition,omitempty"`
}

// CustomerPaymentRecord is an append-only log entry of a processed payment.
type CustomerPaymentRecord struct {
	PaymentID string    `bson:"paymentId" json:"paymentId"`
	Amount    float64   `bson:"amount" json:"amount"`
	Method    string    `bson:"method,omitempty" json:"method,omitempty"`
	Date      time.Time `bson:"date" json:"date"`
}

// Customer is a renting party within a dealer's tenant.
// TotalRentals counts rentals ever initiated; it is never decremented,
// including on cancellation.
type Customer struct {
	ID             primitive.ObjectID      `bson:"_id,omitempty" json:"-"`
	DealerID       DealerID                `bson:"dealerId" json:"-"`
	CustomerID     string                  `bson:"customerId" json:"customerId"`
	Name           string                  `bson:"name" json:"name"`
	Email          string                  `bson:"email,omitempty" json:"email,omitempty"`
	Phone          string                  `bson:"phone,omitempty" json:"phone,omitempty"`
	CreditLimit    float64                 `bson:"creditLimit" json:"creditLimit"`
	CurrentBalance float64                 `bson:"currentBalance" json:"currentBalance"`
	TotalRentals   int64                   `bson:"totalRentals" json:"totalRentals"`
	RentalHistory  []CustomerRentalRecord  `bson:"rentalHistory,omitempty" json:"rentalHistory,omitempty"`
	PaymentHistory []CustomerPaymentRecord `bson:"paymentHistory,omitempty" json:"paymentHistory,omitempty"`
	IsActive       bool                    `bson:"isActive" json:"isActive"`
	CreatedAt      time.Time               `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time               `bson:"updatedAt" json:"updatedAt"`
}

// CustomerSummary is the slice of customer fields embedded in populated rental responses.
type CustomerSummary struct {
	CustomerID string `bson:"customerId" json:"customerId"`
	Name       string `bson:"name" json:"name"`
	Phone      string `bson:"phone,omitempty" json:"phone,omitempty"`
}

func (c *Customer) Summary() *CustomerSummary {
	return &CustomerSummary{CustomerID: c.CustomerID, Name: c.Name, Phone: c.Phone}
}

// CustomerDetail is a customer populated with its rentals and payments.
type CustomerDetail struct {
	Customer
	Rentals  []Rental  `json:"rentals,omitempty"`
	Payments []Payment `json:"payments,omitempty"`
}

// CreateCustomerInput is the caller-supplied portion of a new customer.
type CreateCustomerInput struct {
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	CreditLimit float64 `json:"creditLimit"`
}

// UpdateCustomerInput carries the mutable customer fields.
type UpdateCustomerInput struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	CreditLimit *float64 `json:"creditLimit"`
}
