package mongo

import (
	"alcyxob/gym-system/internal/domain"
	"alcyxob/gym-system/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const offerCollectionName = "gympass_offers"

// mongoOfferRepository implements repository.OfferRepository
type mongoOfferRepository struct {
	collection *mongo.Collection
}

// NewMongoOfferRepository creates a new gym pass offer repository backed by MongoDB.
func NewMongoOfferRepository(db *mongo.Database) repository.OfferRepository {
	return &mongoOfferRepository{
		collection: db.Collection(offerCollectionName),
	}
}

func (r *mongoOfferRepository) Create(ctx context.Context, offer *domain.GymPassOffer) (primitive.ObjectID, error) {
	if offer.Title == "" {
		return primitive.NilObjectID, errors.New("offer requires a title")
	}
	offer.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	offer.CreatedAt = now
	offer.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, offer)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted offer ID")
	}
	return insertedID, nil
}

func (r *mongoOfferRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.GymPassOffer, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoOfferRepository) GetByTitle(ctx context.Context, title string) (*domain.GymPassOffer, error) {
	return r.findOne(ctx, bson.M{"title": title})
}

func (r *mongoOfferRepository) findOne(ctx context.Context, filter bson.M) (*domain.GymPassOffer, error) {
	var offer domain.GymPassOffer
	if err := r.collection.FindOne(ctx, filter).Decode(&offer); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &offer, nil
}

// List returns all offers, cheapest first.
func (r *mongoOfferRepository) List(ctx context.Context) ([]domain.GymPassOffer, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "price.amount", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	offers := []domain.GymPassOffer{}
	if err = cursor.All(ctx, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *mongoOfferRepository) Update(ctx context.Context, offer *domain.GymPassOffer) error {
	if offer.ID == primitive.NilObjectID {
		return errors.New("offer ID is required for update")
	}
	offer.UpdatedAt = time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"title":        offer.Title,
			"subheader":    offer.Subheader,
			"price":        offer.Price,
			"description":  offer.Description,
			"premium":      offer.Premium,
			"validityDays": offer.ValidityDays,
			"entries":      offer.Entries,
			"updatedAt":    offer.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": offer.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoOfferRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureOfferIndexes creates necessary indexes for the offers collection.
func EnsureOfferIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "title", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}
