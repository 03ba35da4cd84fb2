package alertRepo

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

// MongoAlertRepo implements AlertRepository using MongoDB.
type MongoAlertRepo struct {
	coll *mongo.Collection
}

// NewMongoAlertRepo creates a new instance of AlertRepository using MongoDB.
func NewMongoAlertRepo() AlertRepository {
	coll := database.DB().Collection("alerts")
	repo := &MongoAlertRepo{coll: coll}
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

func (r *MongoAlertRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "dealerId", Value: 1}, {Key: "alertId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "dealerId", Value: 1}, {Key: "acknowledged", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoAlertRepo) Create(ctx context.Context, alert *models.Alert) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, alert); err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

func (r *MongoAlertRepo) List(ctx context.Context, dealer models.DealerID, unacknowledgedOnly bool) ([]models.Alert, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := scope(dealer, bson.M{})
	if unacknowledgedOnly {
		filter["acknowledged"] = false
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer cursor.Close(ctx)

	var alerts []models.Alert
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, fmt.Errorf("failed to decode alerts: %w", err)
	}
	return alerts, nil
}

func (r *MongoAlertRepo) Acknowledge(ctx context.Context, dealer models.DealerID, alertID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := scope(dealer, bson.M{"alertId": alertID})
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"acknowledged": true}})
	if err != nil {
		return fmt.Errorf("failed to acknowledge alert %s: %w", alertID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoAlertRepo) HasOpenAlert(ctx context.Context, dealer models.DealerID, alertType models.AlertType, rentalID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := scope(dealer, bson.M{
		"type":         alertType,
		"rentalId":     rentalID,
		"acknowledged": false,
	})
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check open alerts for rental %s: %w", rentalID, err)
	}
	return count > 0, nil
}
