package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RentalStatus string

const (
	RentalActive    RentalStatus = "Active"
	RentalCompleted RentalStatus = "Completed"
	RentalOverdue   RentalStatus = "Overdue"
	RentalCancelled RentalStatus = "Cancelled"
)

// Terminal reports whether no further lifecycle transition is permitted.
func (s RentalStatus) Terminal() bool {
	return s == RentalCompleted || s == RentalOverdue || s == RentalCancelled
}

// ReturnCondition is recorded once, when the vehicle comes back.
type ReturnCondition struct {
	Condition     VehicleCondition `bson:"condition" json:"condition"`
	Notes         string           `bson:"notes,omitempty" json:"notes,omitempty"`
	Images        []string         `bson:"images,omitempty" json:"images,omitempty"`
	InspectedBy   string           `bson:"inspectedBy,omitempty" json:"inspectedBy,omitempty"`
	DamageCharges float64          `bson:"damageCharges" json:"damageCharges"`
}

// Rental is the lifecycle root: Active until returned (Completed/Overdue) or
// Cancelled. ActualEndDate is set iff the rental was returned.
type Rental struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	DealerID        DealerID           `bson:"dealerId" json:"-"`
	RentalID        string             `bson:"rentalId" json:"rentalId"`
	CustomerID      string             `bson:"customerId" json:"customerId"`
	VehicleID       string             `bson:"vehicleId" json:"vehicleId"`
	Status          RentalStatus       `bson:"status" json:"status"`
	StartDate       time.Time          `bson:"startDate" json:"startDate"`
	ExpectedEndDate time.Time          `bson:"expectedEndDate" json:"expectedEndDate"`
	ActualEndDate   *time.Time         `bson:"actualEndDate,omitempty" json:"actualEndDate,omitempty"`
	TotalAmount     float64            `bson:"totalAmount" json:"totalAmount"`
	ReturnCondition *ReturnCondition   `bson:"returnCondition,omitempty" json:"returnCondition,omitempty"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RentalDetail is a rental populated with its customer and vehicle summaries.
type RentalDetail struct {
	Rental
	Customer *CustomerSummary `json:"customer,omitempty"`
	Vehicle  *VehicleSummary  `json:"vehicle,omitempty"`
}

// CreateRentalInput is the caller-supplied portion of a new rental.
type CreateRentalInput struct {
	CustomerID      string    `json:"customerId" binding:"required"`
	VehicleID       string    `json:"vehicleId" binding:"required"`
	StartDate       time.Time `json:"startDate" binding:"required"`
	ExpectedEndDate time.Time `json:"expectedEndDate" binding:"required"`
	TotalAmount     float64   `json:"totalAmount" binding:"required"`
	Notes           string    `json:"notes"`
}

// ReturnRentalInput closes out an Active rental. ActualEndDate defaults to now.
type ReturnRentalInput struct {
	ActualEndDate *time.Time       `json:"actualEndDate"`
	Condition     VehicleCondition `json:"condition" binding:"required"`
	Notes         string           `json:"notes"`
	Images        []string         `json:"images"`
	InspectedBy   string           `json:"inspectedBy"`
	DamageCharges float64          `json:"damageCharges"`
}

type ExtendRentalInput struct {
	NewEndDate       time.Time `json:"newEndDate" binding:"required"`
	AdditionalAmount float64   `json:"additionalAmount"`
}

type CancelRentalInput struct {
	Reason          string  `json:"reason" binding:"required"`
	CancellationFee float64 `json:"cancellationFee"`
}
