package rentalRepo

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

// MongoRentalRepo implements RentalRepository using MongoDB.
type MongoRentalRepo struct {
	coll *mongo.Collection
}

// NewMongoRentalRepo creates a new instance of RentalRepository using MongoDB.
func NewMongoRentalRepo() RentalRepository {
	coll := database.DB().Collection("rentals")
	repo := &MongoRentalRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func scope(dealer models.DealerID, filter bson.M) bson.M {
	if filter == nil {
		filter = bson.M{}
	}
	filter["dealerId"] = dealer
	return filter
}

func (r *MongoRentalRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "dealerId", Value: 1}, {Key: "rentalId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "dealerId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "expectedEndDate", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoRentalRepo) GetByRentalID(ctx context.Context, dealer models.DealerID, rentalID string) (*models.Rental, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rental models.Rental
	err := r.coll.FindOne(ctx, scope(dealer, bson.M{"rentalId": rentalID})).Decode(&rental)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch rental %s: %w", rentalID, err)
	}
	return &rental, nil
}

func (r *MongoRentalRepo) List(ctx context.Context, dealer models.DealerID, f Filter) ([]models.Rental, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := scope(dealer, bson.M{})
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.CustomerID != "" {
		filter["customerId"] = f.CustomerID
	}
	if f.VehicleID != "" {
		filter["vehicleId"] = f.VehicleID
	}
	if f.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"rentalId": bson.M{"$regex": f.Search, "$options": "i"}},
			bson.M{"customerId": bson.M{"$regex": f.Search, "$options": "i"}},
			bson.M{"vehicleId": bson.M{"$regex": f.Search, "$options": "i"}},
		}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count rentals: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if f.Limit > 0 {
		opts.SetSkip((f.Page - 1) * f.Limit).SetLimit(f.Limit)
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query rentals: %w", err)
	}
	defer cursor.Close(ctx)

	var rentals []models.Rental
	if err := cursor.All(ctx, &rentals); err != nil {
		return nil, 0, fmt.Errorf("failed to decode rentals: %w", err)
	}
	return rentals, total, nil
}

func (r *MongoRentalRepo) Create(ctx context.Context, rental *models.Rental) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, rental); err != nil {
		return fmt.Errorf("failed to create rental: %w", err)
	}
	return nil
}

func (r *MongoRentalRepo) Update(ctx context.Context, dealer models.DealerID, rental *models.Rental) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rental.UpdatedAt = time.Now()
	filter := scope(dealer, bson.M{"rentalId": rental.RentalID})
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": rental})
	if err != nil {
		return fmt.Errorf("failed to update rental %s: %w", rental.RentalID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("rental %s not found", rental.RentalID)
	}
	return nil
}

func (r *MongoRentalRepo) CountByStatus(ctx context.Context, dealer models.DealerID) (map[models.RentalStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: scope(dealer, bson.M{})}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate rental counts: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[models.RentalStatus]int64)
	for cursor.Next(ctx) {
		var row struct {
			Status models.RentalStatus `bson:"_id"`
			Count  int64               `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode rental count: %w", err)
		}
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *MongoRentalRepo) Recent(ctx context.Context, dealer models.DealerID, limit int64) ([]models.Rental, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, scope(dealer, bson.M{}), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent rentals: %w", err)
	}
	defer cursor.Close(ctx)

	var rentals []models.Rental
	if err := cursor.All(ctx, &rentals); err != nil {
		return nil, fmt.Errorf("failed to decode recent rentals: %w", err)
	}
	return rentals, nil
}

func (r *MongoRentalRepo) ListOverdueActive(ctx context.Context, asOf time.Time) ([]models.Rental, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	filter := bson.M{
		"status":          models.RentalActive,
		"expectedEndDate": bson.M{"$lt": asOf},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query overdue rentals: %w", err)
	}
	defer cursor.Close(ctx)

	var rentals []models.Rental
	if err := cursor.All(ctx, &rentals); err != nil {
		return nil, fmt.Errorf("failed to decode overdue rentals: %w", err)
	}
	return rentals, nil
}
