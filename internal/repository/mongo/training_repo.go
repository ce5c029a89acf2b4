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

const trainingCollectionName = "individual_trainings"

// mongoTrainingRepository implements repository.TrainingRepository
type mongoTrainingRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainingRepository creates a new individual training repository.
func NewMongoTrainingRepository(db *mongo.Database) repository.TrainingRepository {
	return &mongoTrainingRepository{
		collection: db.Collection(trainingCollectionName),
	}
}

// Create inserts a new training request.
func (r *mongoTrainingRepository) Create(ctx context.Context, training *domain.IndividualTraining) (primitive.ObjectID, error) {
	if training.TrainerID == primitive.NilObjectID || training.ParticipantID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("training requires trainerId and participantId")
	}
	training.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	training.CreatedAt = now
	training.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, training)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted training ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single training by its ID.
func (r *mongoTrainingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.IndividualTraining, error) {
	var training domain.IndividualTraining
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&training)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &training, nil
}

// Find lists trainings matching the filter ordered by start time.
// From/To select trainings that overlap the window.
func (r *mongoTrainingRepository) Find(ctx context.Context, f repository.TrainingFilter) ([]domain.IndividualTraining, error) {
	filter := bson.M{}
	if f.TrainerID != primitive.NilObjectID {
		filter["trainerId"] = f.TrainerID
	}
	if f.ParticipantID != primitive.NilObjectID {
		filter["participantId"] = f.ParticipantID
	}
	if f.To != nil {
		filter["startTime"] = bson.M{"$lt": *f.To}
	}
	if f.From != nil {
		filter["endTime"] = bson.M{"$gt": *f.From}
	}
	if f.ActiveOnly {
		filter["cancelled"] = false
		filter["rejected"] = false
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	trainings := []domain.IndividualTraining{}
	if err = cursor.All(ctx, &trainings); err != nil {
		return nil, err
	}
	return trainings, nil
}

// Update persists the booking state flags and schedule of a training.
func (r *mongoTrainingRepository) Update(ctx context.Context, training *domain.IndividualTraining) error {
	if training.ID == primitive.NilObjectID {
		return errors.New("training ID is required for update")
	}
	training.UpdatedAt = time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"title":     training.Title,
			"startTime": training.StartTime,
			"endTime":   training.EndTime,
			"location":  training.Location,
			"remarks":   training.Remarks,
			"accepted":  training.Accepted,
			"cancelled": training.Cancelled,
			"rejected":  training.Rejected,
			"updatedAt": training.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": training.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTrainingIndexes creates necessary indexes. Call during startup.
func EnsureTrainingIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			// Overlap checks scan one trainer's calendar.
			Keys:    bson.D{{Key: "trainerId", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "participantId", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index(),
		},
	})
}
