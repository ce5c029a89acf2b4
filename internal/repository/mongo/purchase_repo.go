package mongo

import (
	"alcyxob/gym-system/internal/domain"
	"alcyxob/gym-system/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const purchaseCollectionName = "purchased_gympasses"

// mongoPurchaseRepository implements repository.PurchaseRepository
type mongoPurchaseRepository struct {
	collection *mongo.Collection
}

// NewMongoPurchaseRepository creates a new purchased gym pass repository.
func NewMongoPurchaseRepository(db *mongo.Database) repository.PurchaseRepository {
	return &mongoPurchaseRepository{
		collection: db.Collection(purchaseCollectionName),
	}
}

// Create inserts a new purchase. PurchaseDateTime is set by the caller.
func (r *mongoPurchaseRepository) Create(ctx context.Context, pass *domain.PurchasedGymPass) (primitive.ObjectID, error) {
	if pass.UserID == primitive.NilObjectID || pass.Offer.ID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("purchase requires userId and offer")
	}
	pass.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, pass)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted purchase ID")
	}
	return insertedID, nil
}

func (r *mongoPurchaseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PurchasedGymPass, error) {
	var pass domain.PurchasedGymPass
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&pass)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &pass, nil
}

// GetByUserID returns a user's passes, most recently purchased first.
func (r *mongoPurchaseRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.PurchasedGymPass, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "purchaseDateTime", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	passes := []domain.PurchasedGymPass{}
	if err = cursor.All(ctx, &passes); err != nil {
		return nil, err
	}
	return passes, nil
}

// Update persists the mutable state of a pass: validity, entries, suspension.
func (r *mongoPurchaseRepository) Update(ctx context.Context, pass *domain.PurchasedGymPass) error {
	if pass.ID == primitive.NilObjectID {
		return errors.New("purchase ID is required for update")
	}

	set := bson.M{
		"endDate": pass.EndDate,
		"entries": pass.Entries,
	}
	update := bson.M{"$set": set}
	if pass.SuspensionDate != nil {
		set["suspensionDate"] = *pass.SuspensionDate
	} else {
		update["$unset"] = bson.M{"suspensionDate": ""}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": pass.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoPurchaseRepository) UseEntry(ctx context.Context, id primitive.ObjectID) (*domain.PurchasedGymPass, error) {
	filter := bson.M{
		"_id":       id,
		"unlimited": false,
		"entries":   bson.M{"$gt": 0},
	}
	update := bson.M{"$inc": bson.M{"entries": -1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var pass domain.PurchasedGymPass
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&pass); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &pass, nil
}

// EnsurePurchaseIndexes creates necessary indexes for the purchases collection.
func EnsurePurchaseIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "purchaseDateTime", Value: -1}},
			Options: options.Index(),
		},
	})
}
