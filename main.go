package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"fleetrent/config"
	"fleetrent/cron"
	"fleetrent/database"
	alertRepoPkg "fleetrent/database/repository/alert"
	customerRepoPkg "fleetrent/database/repository/customer"
	dealerRepoPkg "fleetrent/database/repository/dealer"
	paymentRepoPkg "fleetrent/database/repository/payment"
	rentalRepoPkg "fleetrent/database/repository/rental"
	vehicleRepoPkg "fleetrent/database/repository/vehicle"
	"fleetrent/handlers"
	"fleetrent/routes"
	"fleetrent/services/alert"
	"fleetrent/services/customer"
	"fleetrent/services/dealer"
	"fleetrent/services/payment"
	"fleetrent/services/rental"
	"fleetrent/services/report"
	"fleetrent/services/vehicle"
	"fleetrent/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	dealerRepo := dealerRepoPkg.NewMongoDealerRepo()
	vehicleRepo := vehicleRepoPkg.NewMongoVehicleRepo()
	customerRepo := customerRepoPkg.NewMongoCustomerRepo()
	rentalRepo := rentalRepoPkg.NewMongoRentalRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()
	alertRepo := alertRepoPkg.NewMongoAlertRepo()

	// services.
	dispatcher := alert.NewAsynqDispatcher()
	defer dispatcher.Close()

	dealerService := &dealer.DefaultDealerService{Dealers: dealerRepo}
	vehicleService := &vehicle.DefaultVehicleService{Vehicles: vehicleRepo}
	customerService := &customer.DefaultCustomerService{
		Customers: customerRepo,
		Rentals:   rentalRepo,
		Payments:  paymentRepo,
	}
	rentalService := &rental.DefaultRentalService{
		Rentals:   rentalRepo,
		Vehicles:  vehicleRepo,
		Customers: customerRepo,
		Payments:  paymentRepo,
		Alerts:    dispatcher,
		Txn:       database.MongoTxnRunner{},
	}
	paymentService := &payment.DefaultPaymentService{
		Payments:  paymentRepo,
		Customers: customerRepo,
	}
	reportService := &report.DefaultReportService{
		Vehicles:  vehicleRepo,
		Rentals:   rentalRepo,
		Customers: customerRepo,
		Payments:  paymentRepo,
	}
	alertService := &alert.DefaultAlertService{Alerts: alertRepo}

	// background work.
	cron.InitAlertWorker(alertRepo)
	scanner := cron.NewOverdueScanner(rentalRepo, alertRepo, dispatcher)
	scanner.Start()
	defer scanner.Stop()

	handlerBundle := handlers.NewHandlerBundle(
		dealerRepo,
		dealerService,
		vehicleService,
		customerService,
		rentalService,
		paymentService,
		reportService,
		alertService,
	)
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
