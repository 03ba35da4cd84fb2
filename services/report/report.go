package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	customerRepo "fleetrent/database/repository/customer"
	paymentRepo "fleetrent/database/repository/payment"
	rentalRepo "fleetrent/database/repository/rental"
	vehicleRepo "fleetrent/database/repository/vehicle"
	"fleetrent/models"
	"fleetrent/utils"
)

const (
	statsCachePrefix = "dashboard:stats:"
	statsCacheTTL    = 60 * time.Second
)

// DashboardStats is the aggregate snapshot behind the dealer dashboard.
type DashboardStats struct {
	Vehicles       map[models.VehicleStatus]int64 `json:"vehicles"`
	Rentals        map[models.RentalStatus]int64  `json:"rentals"`
	TotalCustomers int64                          `json:"totalCustomers"`
	Revenue        models.PaymentTotals           `json:"revenue"`
	GeneratedAt    time.Time                      `json:"generatedAt"`
}

// RecentActivity pairs the latest rentals and payments for the activity feed.
type RecentActivity struct {
	Rentals  []models.Rental  `json:"rentals"`
	Payments []models.Payment `json:"payments"`
}

// ReportService serves the read-only dashboard aggregations. It consumes the
// state the rental lifecycle maintains and never mutates it.
type ReportService interface {
	Stats(ctx context.Context, dealer models.DealerID) (*DashboardStats, error)
	Recent(ctx context.Context, dealer models.DealerID, limit int64) (*RecentActivity, error)
	RevenueChart(ctx context.Context, dealer models.DealerID, months int) ([]models.MonthlyRevenue, error)
}

// DefaultReportService implements ReportService.
type DefaultReportService struct {
	Vehicles  vehicleRepo.VehicleRepository
	Rentals   rentalRepo.RentalRepository
	Customers customerRepo.CustomerRepository
	Payments  paymentRepo.PaymentRepository
}

// Stats assembles the dashboard counters, caching the result for a minute
// so a busy dashboard does not hammer the aggregation pipeline.
func (svc *DefaultReportService) Stats(ctx context.Context, dealer models.DealerID) (*DashboardStats, error) {
	cacheKey := statsCachePrefix + string(dealer)
	if cached := svc.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	vehicles, err := svc.Vehicles.CountByStatus(ctx, dealer)
	if err != nil {
		return nil, fmt.Errorf("count vehicles: %w", err)
	}
	rentals, err := svc.Rentals.CountByStatus(ctx, dealer)
	if err != nil {
		return nil, fmt.Errorf("count rentals: %w", err)
	}
	customers, err := svc.Customers.Count(ctx, dealer)
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}
	revenue, err := svc.Payments.Totals(ctx, dealer)
	if err != nil {
		return nil, fmt.Errorf("sum payments: %w", err)
	}

	stats := &DashboardStats{
		Vehicles:       vehicles,
		Rentals:        rentals,
		TotalCustomers: customers,
		Revenue:        revenue,
		GeneratedAt:    time.Now(),
	}
	svc.toCache(ctx, cacheKey, stats)
	return stats, nil
}

func (svc *DefaultReportService) Recent(ctx context.Context, dealer models.DealerID, limit int64) (*RecentActivity, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	rentals, err := svc.Rentals.Recent(ctx, dealer, limit)
	if err != nil {
		return nil, fmt.Errorf("recent rentals: %w", err)
	}
	payments, err := svc.Payments.Recent(ctx, dealer, limit)
	if err != nil {
		return nil, fmt.Errorf("recent payments: %w", err)
	}
	if rentals == nil {
		rentals = []models.Rental{}
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return &RecentActivity{Rentals: rentals, Payments: payments}, nil
}

func (svc *DefaultReportService) RevenueChart(ctx context.Context, dealer models.DealerID, months int) ([]models.MonthlyRevenue, error) {
	if months <= 0 || months > 24 {
		months = 6
	}
	buckets, err := svc.Payments.RevenueByMonth(ctx, dealer, months)
	if err != nil {
		return nil, fmt.Errorf("revenue by month: %w", err)
	}
	if buckets == nil {
		buckets = []models.MonthlyRevenue{}
	}
	return buckets, nil
}

// fromCache returns the cached stats snapshot or nil. Cache faults are
// logged and treated as misses.
func (svc *DefaultReportService) fromCache(ctx context.Context, key string) *DashboardStats {
	cache := utils.GetCacheClient()
	if cache == nil {
		return nil
	}
	raw, err := cache.Get(ctx, key).Result()
	if err != nil {
		return nil
	}
	var stats DashboardStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		utils.GetLogger().Warn("Discarding malformed dashboard cache entry", zap.Error(err))
		return nil
	}
	return &stats
}

func (svc *DefaultReportService) toCache(ctx context.Context, key string, stats *DashboardStats) {
	cache := utils.GetCacheClient()
	if cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := cache.Set(ctx, key, raw, statsCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("Failed to cache dashboard stats", zap.Error(err))
	}
}
