package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thecae/wilpower/internal/models"
)

// ErrNotFound is returned when a lookup or update matches no document.
// Handlers map it to a 404 so "no such item" is never conflated with
// success.
var ErrNotFound = errors.New("document not found")

const (
	writeTimeout = 5 * time.Second
	readTimeout  = 3 * time.Second
	listTimeout  = 10 * time.Second
)

type ItemRepository struct {
	collection *mongo.Collection
}

func NewItemRepository(collection *mongo.Collection) *ItemRepository {
	return &ItemRepository{
		collection: collection,
	}
}

// Create inserts a new item and assigns its document id.
func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	item.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, item)
	return err
}

// FindByID returns the item with the given document id.
func (r *ItemRepository) FindByID(ctx context.Context, id string) (*models.Item, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var item models.Item
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &item, nil
}

// FindByInv returns the one item whose inventory code matches.
func (r *ItemRepository) FindByInv(ctx context.Context, inv string) (*models.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var item models.Item
	err := r.collection.FindOne(ctx, bson.M{"inv": inv}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &item, nil
}

// FindAll lists the whole catalog in name order.
func (r *ItemRepository) FindAll(ctx context.Context) ([]models.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []models.Item{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}

	return items, nil
}

// UpdateByID replaces the editable fields of the item with the given
// document id.
func (r *ItemRepository) UpdateByID(ctx context.Context, id string, input *models.ItemInput) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	return r.update(ctx, bson.M{"_id": objID}, input)
}

// UpdateByInv replaces the editable fields of the item with the given
// inventory code.
func (r *ItemRepository) UpdateByInv(ctx context.Context, inv string, input *models.ItemInput) error {
	return r.update(ctx, bson.M{"inv": inv}, input)
}

func (r *ItemRepository) update(ctx context.Context, filter bson.M, input *models.ItemInput) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":     input.Name,
		"inv":      input.Inv,
		"price":    input.Price,
		"desc":     input.Desc,
		"quantity": input.Quantity,
		"images":   input.Images,
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteByName removes the one document whose name matches and reports
// how many were deleted. A miss is a zero count, not an error.
func (r *ItemRepository) DeleteByName(ctx context.Context, name string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}

// DeleteByID removes the item with the given document id. A malformed
// id matches no document and is reported as a zero count, keeping
// delete misses count-0 successes across both delete routes.
func (r *ItemRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
