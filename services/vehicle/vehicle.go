package vehicle

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	vehicleRepo "fleetrent/database/repository/vehicle"
	"fleetrent/models"
	"fleetrent/utils"
)

// VehicleService manages a dealer's fleet outside the rental lifecycle.
type VehicleService interface {
	Create(ctx context.Context, dealer models.DealerID, input models.CreateVehicleInput) (*models.Vehicle, error)
	GetByID(ctx context.Context, dealer models.DealerID, vehicleID string) (*models.Vehicle, error)
	List(ctx context.Context, dealer models.DealerID, f vehicleRepo.Filter) ([]models.Vehicle, int64, error)
	Update(ctx context.Context, dealer models.DealerID, vehicleID string, input models.UpdateVehicleInput) (*models.Vehicle, error)
	Retire(ctx context.Context, dealer models.DealerID, vehicleID string) (*models.Vehicle, error)
}

// DefaultVehicleService implements VehicleService.
type DefaultVehicleService struct {
	Vehicles vehicleRepo.VehicleRepository
}

func (svc *DefaultVehicleService) Create(ctx context.Context, dealer models.DealerID, input models.CreateVehicleInput) (*models.Vehicle, error) {
	condition := input.Condition
	if condition == "" {
		condition = models.ConditionGood
	}

	now := time.Now()
	v := &models.Vehicle{
		DealerID:  dealer,
		VehicleID: utils.NewEntityID("VEH"),
		Make:      input.Make,
		Model:     input.Model,
		Year:      input.Year,
		DailyRate: input.DailyRate,
		Status:    models.VehicleAvailable,
		Condition: condition,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := svc.Vehicles.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}

	utils.GetLogger().Info("vehicle created",
		zap.String("dealerId", string(dealer)),
		zap.String("vehicleId", v.VehicleID))
	return v, nil
}

func (svc *DefaultVehicleService) GetByID(ctx context.Context, dealer models.DealerID, vehicleID string) (*models.Vehicle, error) {
	v, err := svc.Vehicles.GetByVehicleID(ctx, dealer, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("get vehicle %s: %w", vehicleID, err)
	}
	if v == nil {
		return nil, NotFoundError{ID: vehicleID}
	}
	return v, nil
}

func (svc *DefaultVehicleService) List(ctx context.Context, dealer models.DealerID, f vehicleRepo.Filter) ([]models.Vehicle, int64, error) {
	vehicles, total, err := svc.Vehicles.List(ctx, dealer, f)
	if err != nil {
		return nil, 0, fmt.Errorf("list vehicles: %w", err)
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	return vehicles, total, nil
}

// Update applies fleet edits. The Rented status belongs to the rental
// lifecycle: it can neither be assigned nor cleared here, and a vehicle with
// an attached rental refuses any status change at all.
func (svc *DefaultVehicleService) Update(ctx context.Context, dealer models.DealerID, vehicleID string, input models.UpdateVehicleInput) (*models.Vehicle, error) {
	v, err := svc.Vehicles.GetByVehicleID(ctx, dealer, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("get vehicle %s: %w", vehicleID, err)
	}
	if v == nil {
		return nil, NotFoundError{ID: vehicleID}
	}

	if input.Status != "" && input.Status != v.Status {
		if err := svc.checkStatusChange(v, input.Status); err != nil {
			return nil, err
		}
		v.Status = input.Status
	}
	if input.Make != "" {
		v.Make = input.Make
	}
	if input.Model != "" {
		v.Model = input.Model
	}
	if input.Year != 0 {
		v.Year = input.Year
	}
	if input.DailyRate != nil {
		v.DailyRate = *input.DailyRate
	}
	if input.Condition != "" {
		v.Condition = input.Condition
	}

	if err := svc.Vehicles.Update(ctx, dealer, v); err != nil {
		return nil, fmt.Errorf("update vehicle %s: %w", vehicleID, err)
	}
	return v, nil
}

// Retire pulls a vehicle out of service. Vehicles on an active rental cannot
// be retired until the rental closes.
func (svc *DefaultVehicleService) Retire(ctx context.Context, dealer models.DealerID, vehicleID string) (*models.Vehicle, error) {
	v, err := svc.Vehicles.GetByVehicleID(ctx, dealer, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("get vehicle %s: %w", vehicleID, err)
	}
	if v == nil {
		return nil, NotFoundError{ID: vehicleID}
	}
	if err := svc.checkStatusChange(v, models.VehicleOutOfService); err != nil {
		return nil, err
	}

	v.Status = models.VehicleOutOfService
	if err := svc.Vehicles.Update(ctx, dealer, v); err != nil {
		return nil, fmt.Errorf("retire vehicle %s: %w", vehicleID, err)
	}

	utils.GetLogger().Info("vehicle retired",
		zap.String("dealerId", string(dealer)),
		zap.String("vehicleId", vehicleID))
	return v, nil
}

func (svc *DefaultVehicleService) checkStatusChange(v *models.Vehicle, target models.VehicleStatus) error {
	if v.CurrentRental != nil {
		return InvalidStateError{Message: fmt.Sprintf(
			"vehicle %s is attached to rental %s; close the rental first", v.VehicleID, *v.CurrentRental)}
	}
	if v.Status == models.VehicleRented || target == models.VehicleRented {
		return InvalidStateError{Message: "the Rented status is managed by the rental lifecycle"}
	}
	return nil
}
