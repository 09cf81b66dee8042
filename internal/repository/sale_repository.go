package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thecae/wilpower/internal/models"
)

type SaleRepository struct {
	collection *mongo.Collection
}

func NewSaleRepository(collection *mongo.Collection) *SaleRepository {
	return &SaleRepository{
		collection: collection,
	}
}

// Create records a completed transaction.
func (r *SaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	sale.ID = primitive.NewObjectID()
	sale.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, sale)
	return err
}

// FindAll lists sales, newest first. archived filters on the
// soft-delete flag when non-nil.
func (r *SaleRepository) FindAll(ctx context.Context, archived *bool) ([]models.Sale, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	filter := bson.M{}
	if archived != nil {
		filter["archived"] = *archived
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sales := []models.Sale{}
	if err = cursor.All(ctx, &sales); err != nil {
		return nil, err
	}

	return sales, nil
}

// SetArchived flips the soft-delete flag. Sales are never hard-deleted
// and no other field is mutable after creation.
func (r *SaleRepository) SetArchived(ctx context.Context, id string, archived bool) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"archived": archived}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}
