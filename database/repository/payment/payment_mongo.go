package paymentRepo

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

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo creates a new instance of PaymentRepository using MongoDB.
func NewMongoPaymentRepo() PaymentRepository {
	coll := database.DB().Collection("payments")
	repo := &MongoPaymentRepo{coll: coll}
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

func (r *MongoPaymentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "dealerId", Value: 1}, {Key: "paymentId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "dealerId", Value: 1}, {Key: "rentalId", Value: 1}}},
		{Keys: bson.D{{Key: "dealerId", Value: 1}, {Key: "status", Value: 1}, {Key: "dueDate", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoPaymentRepo) GetByPaymentID(ctx context.Context, dealer models.DealerID, paymentID string) (*models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var payment models.Payment
	err := r.coll.FindOne(ctx, scope(dealer, bson.M{"paymentId": paymentID})).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch payment %s: %w", paymentID, err)
	}
	return &payment, nil
}

func (r *MongoPaymentRepo) List(ctx context.Context, dealer models.DealerID, f Filter) ([]models.Payment, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := scope(dealer, bson.M{})
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Type != "" {
		filter["paymentType"] = f.Type
	}
	if f.RentalID != "" {
		filter["rentalId"] = f.RentalID
	}
	if f.CustomerID != "" {
		filter["customerId"] = f.CustomerID
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if f.Limit > 0 {
		opts.SetSkip((f.Page - 1) * f.Limit).SetLimit(f.Limit)
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query payments: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, 0, fmt.Errorf("failed to decode payments: %w", err)
	}
	return payments, total, nil
}

func (r *MongoPaymentRepo) ListByRental(ctx context.Context, dealer models.DealerID, rentalID string) ([]models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, scope(dealer, bson.M{"rentalId": rentalID}))
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for rental %s: %w", rentalID, err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}
	return payments, nil
}

func (r *MongoPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *MongoPaymentRepo) Update(ctx context.Context, dealer models.DealerID, payment *models.Payment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	payment.UpdatedAt = time.Now()
	filter := scope(dealer, bson.M{"paymentId": payment.PaymentID})
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": payment})
	if err != nil {
		return fmt.Errorf("failed to update payment %s: %w", payment.PaymentID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("payment %s not found", payment.PaymentID)
	}
	return nil
}

func (r *MongoPaymentRepo) Totals(ctx context.Context, dealer models.DealerID) (models.PaymentTotals, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: scope(dealer, bson.M{})}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"collected": bson.M{"$sum": "$paidAmount"},
			"outstanding": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$in": bson.A{"$status", bson.A{models.PaymentPending, models.PaymentPartiallyPaid}}},
				bson.M{"$subtract": bson.A{"$amount", "$paidAmount"}},
				0,
			}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.PaymentTotals{}, fmt.Errorf("failed to aggregate payment totals: %w", err)
	}
	defer cursor.Close(ctx)

	var totals models.PaymentTotals
	if cursor.Next(ctx) {
		if err := cursor.Decode(&totals); err != nil {
			return models.PaymentTotals{}, fmt.Errorf("failed to decode payment totals: %w", err)
		}
	}
	return totals, nil
}

func (r *MongoPaymentRepo) RevenueByMonth(ctx context.Context, dealer models.DealerID, months int) ([]models.MonthlyRevenue, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	since := time.Now().AddDate(0, -months, 0)
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: scope(dealer, bson.M{
			"status":   models.PaymentCompleted,
			"paidDate": bson.M{"$gte": since},
		})}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$paidDate"},
				"month": bson.M{"$month": "$paidDate"},
			},
			"total": bson.M{"$sum": "$paidAmount"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id.year", Value: 1}, {Key: "_id.month", Value: 1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.MonthlyRevenue
	for cursor.Next(ctx) {
		var row struct {
			ID struct {
				Year  int `bson:"year"`
				Month int `bson:"month"`
			} `bson:"_id"`
			Total float64 `bson:"total"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode monthly revenue: %w", err)
		}
		out = append(out, models.MonthlyRevenue{Year: row.ID.Year, Month: row.ID.Month, Total: row.Total})
	}
	return out, nil
}

func (r *MongoPaymentRepo) Recent(ctx context.Context, dealer models.DealerID, limit int64) ([]models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, scope(dealer, bson.M{}), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent payments: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode recent payments: %w", err)
	}
	return payments, nil
}
