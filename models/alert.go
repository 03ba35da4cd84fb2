package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AlertType string

const (
	AlertDamageReported AlertType = "Damage Reported"
	AlertRentalOverdue  AlertType = "Rental Overdue"
)

// Alert is an operator-facing notification raised by the rental lifecycle.
type Alert struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	DealerID     DealerID           `bson:"dealerId" json:"-"`
	AlertID      string             `bson:"alertId" json:"alertId"`
	Type         AlertType          `bson:"type" json:"type"`
	Severity     string             `bson:"severity" json:"severity"`
	Message      string             `bson:"message" json:"message"`
	RentalID     string             `bson:"rentalId,omitempty" json:"rentalId,omitempty"`
	Acknowledged bool               `bson:"acknowledged" json:"acknowledged"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// AlertPayload is the queued task body for asynchronously persisted alerts.
type AlertPayload struct {
	DealerID DealerID  `json:"dealerId"`
	Type     AlertType `json:"type"`
	Severity string    `json:"severity"`
	Message  string    `json:"message"`
	RentalID string    `json:"rentalId,omitempty"`
}
