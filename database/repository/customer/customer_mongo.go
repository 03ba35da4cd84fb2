package customerRepo

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

// MongoCustomerRepo implements CustomerRepository using MongoDB.
type MongoCustomerRepo struct {
	coll *mongo.Collection
}

// NewMongoCustomerRepo creates a new instance of CustomerRepository using MongoDB.
func NewMongoCustomerRepo() CustomerRepository {
	coll := database.DB().Collection("customers")
	repo := &MongoCustomerRepo{coll: coll}
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

func (r *MongoCustomerRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "dealerId", Value: 1}, {Key: "customerId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "dealerId", Value: 1}, {Key: "name", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoCustomerRepo) GetByCustomerID(ctx context.Context, dealer models.DealerID, customerID string) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var customer models.Customer
	err := r.coll.FindOne(ctx, scope(dealer, bson.M{"customerId": customerID})).Decode(&customer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch customer %s: %w", customerID, err)
	}
	return &customer, nil
}

func (r *MongoCustomerRepo) List(ctx context.Context, dealer models.DealerID, f Filter) ([]models.Customer, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := scope(dealer, bson.M{})
	if !f.IncludeInactive {
		filter["isActive"] = true
	}
	if f.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": f.Search, "$options": "i"}},
			bson.M{"email": bson.M{"$regex": f.Search, "$options": "i"}},
			bson.M{"customerId": bson.M{"$regex": f.Search, "$options": "i"}},
		}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if f.Limit > 0 {
		opts.SetSkip((f.Page - 1) * f.Limit).SetLimit(f.Limit)
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query customers: %w", err)
	}
	defer cursor.Close(ctx)

	var customers []models.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, 0, fmt.Errorf("failed to decode customers: %w", err)
	}
	return customers, total, nil
}

func (r *MongoCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, customer); err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *MongoCustomerRepo) Update(ctx context.Context, dealer models.DealerID, customer *models.Customer) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	customer.UpdatedAt = time.Now()
	filter := scope(dealer, bson.M{"customerId": customer.CustomerID})
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": customer})
	if err != nil {
		return fmt.Errorf("failed to update customer %s: %w", customer.CustomerID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("customer %s not found", customer.CustomerID)
	}
	return nil
}

func (r *MongoCustomerRepo) Deactivate(ctx context.Context, dealer models.DealerID, customerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := scope(dealer, bson.M{"customerId": customerID})
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to deactivate customer %s: %w", customerID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("customer %s not found", customerID)
	}
	return nil
}

func (r *MongoCustomerRepo) RegisterRental(ctx context.Context, dealer models.DealerID, customerID string, rec models.CustomerRentalRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := scope(dealer, bson.M{"customerId": customerID})
	update := bson.M{
		"$inc":  bson.M{"totalRentals": 1},
		"$push": bson.M{"rentalHistory": rec},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to register rental for customer %s: %w", customerID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("customer %s not found", customerID)
	}
	return nil
}

func (r *MongoCustomerRepo) CloseRentalRecord(ctx context.Context, dealer models.DealerID, customerID, rentalID string, endDate time.Time, returnCondition string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := scope(dealer, bson.M{
		"customerId":             customerID,
		"rentalHistory.rentalId": rentalID,
	})
	update := bson.M{"$set": bson.M{
		"rentalHistory.$.endDate":         endDate,
		"rentalHistory.$.returnCondition": returnCondition,
		"updatedAt":                       time.Now(),
	}}
	// MatchedCount == 0 means the history entry was never written; tolerated.
	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to close rental record for customer %s: %w", customerID, err)
	}
	return nil
}

func (r *MongoCustomerRepo) ApplyPayment(ctx context.Context, dealer models.DealerID, customerID string, amount float64, rec models.CustomerPaymentRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := scope(dealer, bson.M{"customerId": customerID})
	update := bson.M{
		"$inc":  bson.M{"currentBalance": -amount},
		"$push": bson.M{"paymentHistory": rec},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to apply payment for customer %s: %w", customerID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("customer %s not found", customerID)
	}
	return nil
}

func (r *MongoCustomerRepo) Count(ctx context.Context, dealer models.DealerID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, scope(dealer, bson.M{"isActive": true}))
	if err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return total, nil
}
