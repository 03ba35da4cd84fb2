package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleStatus string

const (
	VehicleAvailable        VehicleStatus = "Available"
	VehicleRented           VehicleStatus = "Rented"
	VehicleReserved         VehicleStatus = "Reserved"
	VehicleUnderMaintenance VehicleStatus = "Under Maintenance"
	VehicleOutOfService     VehicleStatus = "Out of Service"
)

type VehicleCondition string

const (
	ConditionGood            VehicleCondition = "Good"
	ConditionFair            VehicleCondition = "Fair"
	ConditionNeedsInspection VehicleCondition = "Needs Inspection"
	ConditionDamaged         VehicleCondition = "Damaged"
)

// VehicleRentalRecord is an append-only summary of a finished rental,
// embedded on the vehicle document.
type VehicleRentalRecord struct {
	RentalID        string    `bson:"rentalId" json:"rentalId"`
	CustomerID      string    `bson:"customerId" json:"customerId"`
	StartDate       time.Time `bson:"startDate" json:"startDate"`
	EndDate         time.Time `bson:"endDate" json:"endDate"`
	HoursUsed       int64     `bson:"hoursUsed" json:"hoursUsed"`
	ReturnCondition string    `bson:"returnCondition,omitempty" json:"returnCondition,omitempty"`
}

// Vehicle is a rentable unit in a dealer's fleet.
// Invariant: Status == Rented iff CurrentRental points at an Active rental.
type Vehicle struct {
	ID                 primitive.ObjectID    `bson:"_id,omitempty" json:"-"`
	DealerID           DealerID              `bson:"dealerId" json:"-"`
	VehicleID          string                `bson:"vehicleId" json:"vehicleId"`
	Make               string                `bson:"make" json:"make"`
	Model              string                `bson:"model" json:"model"`
	Year               int                   `bson:"year,omitempty" json:"year,omitempty"`
	DailyRate          float64               `bson:"dailyRate" json:"dailyRate"`
	Status             VehicleStatus         `bson:"status" json:"status"`
	Condition          VehicleCondition      `bson:"condition" json:"condition"`
	CurrentRental      *string               `bson:"currentRental,omitempty" json:"currentRental,omitempty"`
	ExpectedReturnDate *time.Time            `bson:"expectedReturnDate,omitempty" json:"expectedReturnDate,omitempty"`
	TotalRentalHours   int64                 `bson:"totalRentalHours" json:"totalRentalHours"`
	RentalHistory      []VehicleRentalRecord `bson:"rentalHistory,omitempty" json:"rentalHistory,omitempty"`
	CreatedAt          time.Time             `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time             `bson:"updatedAt" json:"updatedAt"`
}

// VehicleSummary is the slice of vehicle fields embedded in populated rental responses.
type VehicleSummary struct {
	VehicleID string        `bson:"vehicleId" json:"vehicleId"`
	Make      string        `bson:"make" json:"make"`
	Model     string        `bson:"model" json:"model"`
	Status    VehicleStatus `bson:"status" json:"status"`
}

func (v *Vehicle) Summary() *VehicleSummary {
	return &VehicleSummary{VehicleID: v.VehicleID, Make: v.Make, Model: v.Model, Status: v.Status}
}

// CreateVehicleInput is the caller-supplied portion of a new vehicle.
type CreateVehicleInput struct {
	Make      string           `json:"make" binding:"required"`
	Model     string           `json:"model" binding:"required"`
	Year      int              `json:"year"`
	DailyRate float64          `json:"dailyRate" binding:"required"`
	Condition VehicleCondition `json:"condition"`
}

// UpdateVehicleInput carries the mutable vehicle fields. Status changes to or
// from Rented are reserved for the rental lifecycle.
type UpdateVehicleInput struct {
	Make      string           `json:"make"`
	Model     string           `json:"model"`
	Year      int              `json:"year"`
	DailyRate *float64         `json:"dailyRate"`
	Status    VehicleStatus    `json:"status"`
	Condition VehicleCondition `json:"condition"`
}
