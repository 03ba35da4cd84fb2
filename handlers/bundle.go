package handlers

import (
	dealerRepoPkg "fleetrent/database/repository/dealer"
	"fleetrent/services/alert"
	"fleetrent/services/customer"
	"fleetrent/services/dealer"
	"fleetrent/services/payment"
	"fleetrent/services/rental"
	"fleetrent/services/report"
	"fleetrent/services/vehicle"
)

// HandlerBundle groups all endpoint handlers for route registration.
type HandlerBundle struct {
	DealerRepo dealerRepoPkg.DealerRepository

	Dealer    *DealerHandler
	Vehicle   *VehicleHandler
	Customer  *CustomerHandler
	Rental    *RentalHandler
	Payment   *PaymentHandler
	Dashboard *DashboardHandler
	Alert     *AlertHandler
}

// NewHandlerBundle wires every service into its handler.
func NewHandlerBundle(
	dealerRepo dealerRepoPkg.DealerRepository,
	dealerSvc dealer.DealerService,
	vehicleSvc vehicle.VehicleService,
	customerSvc customer.CustomerService,
	rentalSvc rental.RentalService,
	paymentSvc payment.PaymentService,
	reportSvc report.ReportService,
	alertSvc alert.AlertService,
) *HandlerBundle {
	return &HandlerBundle{
		DealerRepo: dealerRepo,
		Dealer:     &DealerHandler{Service: dealerSvc},
		Vehicle:    &VehicleHandler{Service: vehicleSvc},
		Customer:   &CustomerHandler{Service: customerSvc},
		Rental:     &RentalHandler{Service: rentalSvc},
		Payment:    &PaymentHandler{Service: paymentSvc},
		Dashboard:  &DashboardHandler{Service: reportSvc},
		Alert:      &AlertHandler{Service: alertSvc},
	}
}
