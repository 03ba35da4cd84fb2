package vehicleRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fleetrent/database"
	"fleetrent/models"
)

// MongoVehicleRepo implements VehicleRepository using MongoDB.
type MongoVehicleRepo struct {
	coll *mongo.Collection
}

// NewMongoVehicleRepo creates a new instance of VehicleRepository using MongoDB.
func NewMongoVehicleRepo() VehicleRepository {
	coll := database.DB().Collection("vehicles")
	repo := &MongoVehicleRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// scope merges the tenant key into a filter. Every query goes through here.
func scope(dealer models.DealerID, filter bson.M) bson.M {
	if filter == nil {
		filter = bson.M{}
	}
	filter["dealerId"] = dealer
	return filter
}

func (r *MongoVehicleRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "dealerId", Value: 1}, {Key: "vehicleId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "dealerId", Value: 1}, {Key: "status", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoVehicleRepo) GetByVehicleID(ctx context.Context, dealer models.DealerID, vehicleID string) (*models.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var vehicle models.Vehicle
	err := r.coll.FindOne(ctx, scope(dealer, bson.M{"vehicleId": vehicleID})).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch vehicle %s: %w", vehicleID, err)
	}
	return &vehicle, nil
}

func (r *MongoVehicleRepo) List(ctx context.Context, dealer models.DealerID, f Filter) ([]models.Vehicle, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := scope(dealer, bson.M{})
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Condition != "" {
		filter["condition"] = f.Condition
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if f.Limit > 0 {
		opts.SetSkip((f.Page - 1) * f.Limit).SetLimit(f.Limit)
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var vehicles []models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, 0, fmt.Errorf("failed to decode vehicles: %w", err)
	}
	return vehicles, total, nil
}

func (r *MongoVehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, vehicle); err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

func (r *MongoVehicleRepo) Update(ctx context.Context, dealer models.DealerID, vehicle *models.Vehicle) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	vehicle.UpdatedAt = time.Now()
	filter := scope(dealer, bson.M{"vehicleId": vehicle.VehicleID})
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": vehicle})
	if err != nil {
		return fmt.Errorf("failed to update vehicle %s: %w", vehicle.VehicleID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("vehicle %s not found", vehicle.VehicleID)
	}
	return nil
}

func (r *MongoVehicleRepo) MarkRented(ctx context.Context, dealer models.DealerID, vehicleID, rentalID string, expectedReturn time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := scope(dealer, bson.M{
		"vehicleId": vehicleID,
		"status":    models.VehicleAvailable,
	})
	update := bson.M{"$set": bson.M{
		"status":             models.VehicleRented,
		"currentRental":      rentalID,
		"expectedReturnDate": expectedReturn,
		"updatedAt":          time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark vehicle %s rented: %w", vehicleID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotAvailable
	}
	return nil
}

func (r *MongoVehicleRepo) CountByStatus(ctx context.Context, dealer models.DealerID) (map[models.VehicleStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: scope(dealer, bson.M{})}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate vehicle counts: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[models.VehicleStatus]int64)
	for cursor.Next(ctx) {
		var row struct {
			Status models.VehicleStatus `bson:"_id"`
			Count  int64                `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode vehicle count: %w", err)
		}
		counts[row.Status] = row.Count
	}
	return counts, nil
}
