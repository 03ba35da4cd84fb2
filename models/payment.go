package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentType string

const (
	PaymentRentalFee    PaymentType = "Rental Fee"
	PaymentDamageCharge PaymentType = "Damage Charge"
	PaymentExtensionFee PaymentType = "Extension Fee"
	PaymentOther        PaymentType = "Other"
)

type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "Pending"
	PaymentPartiallyPaid PaymentStatus = "Partially Paid"
	PaymentCompleted     PaymentStatus = "Completed"
	PaymentRefunded      PaymentStatus = "Refunded"
)

// LateFee is settable exactly once per payment.
type LateFee struct {
	Amount      float64   `bson:"amount" json:"amount"`
	AppliedDate time.Time `bson:"appliedDate" json:"appliedDate"`
}

// Refund is settable exactly once, and only on a Completed payment.
type Refund struct {
	Amount float64   `bson:"amount" json:"amount"`
	Reason string    `bson:"reason,omitempty" json:"reason,omitempty"`
	Date   time.Time `bson:"date" json:"date"`
}

// Payment is a bookkeeping entry attached to a rental. Amount is the
// outstanding balance; it grows when a late fee is applied.
// ComputedLateFee is a read-path suggestion for overdue unpaid payments and is
// never persisted.
type Payment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	DealerID        DealerID           `bson:"dealerId" json:"-"`
	PaymentID       string             `bson:"paymentId" json:"paymentId"`
	RentalID        string             `bson:"rentalId" json:"rentalId"`
	CustomerID      string             `bson:"customerId" json:"customerId"`
	Amount          float64            `bson:"amount" json:"amount"`
	PaymentType     PaymentType        `bson:"paymentType" json:"paymentType"`
	Status          PaymentStatus      `bson:"status" json:"status"`
	DueDate         time.Time          `bson:"dueDate" json:"dueDate"`
	PaidAmount      float64            `bson:"paidAmount" json:"paidAmount"`
	PaidDate        *time.Time         `bson:"paidDate,omitempty" json:"paidDate,omitempty"`
	Method          string             `bson:"method,omitempty" json:"method,omitempty"`
	TransactionID   string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	LateFee         *LateFee           `bson:"lateFee,omitempty" json:"lateFee,omitempty"`
	Refund          *Refund            `bson:"refund,omitempty" json:"refund,omitempty"`
	ComputedLateFee float64            `bson:"-" json:"computedLateFee,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProcessPaymentInput records money received against a payment.
type ProcessPaymentInput struct {
	Amount        float64    `json:"amount" binding:"required"`
	Method        string     `json:"method" binding:"required"`
	TransactionID string     `json:"transactionId"`
	PaidDate      *time.Time `json:"paidDate"`
}

type RefundPaymentInput struct {
	Amount float64 `json:"amount" binding:"required"`
	Reason string  `json:"reason"`
}

// ApplyLateFeeInput carries an optional explicit fee; when zero the fee is
// computed from the overdue formula.
type ApplyLateFeeInput struct {
	Amount float64 `json:"amount"`
}

// MonthlyRevenue is one bucket of the revenue chart aggregation.
type MonthlyRevenue struct {
	Year  int     `bson:"year" json:"year"`
	Month int     `bson:"month" json:"month"`
	Total float64 `bson:"total" json:"total"`
}

// PaymentTotals summarizes collected and outstanding money for a dealer.
type PaymentTotals struct {
	Collected   float64 `bson:"collected" json:"collected"`
	Outstanding float64 `bson:"outstanding" json:"outstanding"`
}
