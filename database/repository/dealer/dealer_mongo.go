package dealerRepo

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

// MongoDealerRepo implements DealerRepository using MongoDB.
type MongoDealerRepo struct {
	coll *mongo.Collection
}

// NewMongoDealerRepo creates a new instance of DealerRepository using MongoDB.
func NewMongoDealerRepo() DealerRepository {
	coll := database.DB().Collection("dealers")
	repo := &MongoDealerRepo{coll: coll}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoDealerRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "dealerId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoDealerRepo) Create(ctx context.Context, dealer *models.Dealer) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, dealer); err != nil {
		return fmt.Errorf("failed to create dealer: %w", err)
	}
	return nil
}

func (r *MongoDealerRepo) GetByEmail(ctx context.Context, email string) (*models.Dealer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var dealer models.Dealer
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&dealer); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch dealer by email: %w", err)
	}
	return &dealer, nil
}

func (r *MongoDealerRepo) GetByDealerID(ctx context.Context, dealerID models.DealerID) (*models.Dealer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var dealer models.Dealer
	if err := r.coll.FindOne(ctx, bson.M{"dealerId": dealerID}).Decode(&dealer); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch dealer %s: %w", dealerID, err)
	}
	return &dealer, nil
}

func (r *MongoDealerRepo) UpdateTokenHash(ctx context.Context, dealerID models.DealerID, tokenHash string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"tokenHash": tokenHash, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"dealerId": dealerID}, update)
	if err != nil {
		return fmt.Errorf("failed to update token hash for dealer %s: %w", dealerID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("dealer %s not found", dealerID)
	}
	return nil
}
