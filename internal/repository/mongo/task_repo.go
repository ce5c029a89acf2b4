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

const taskCollectionName = "tasks"

// mongoTaskRepository implements repository.TaskRepository
type mongoTaskRepository struct {
	collection *mongo.Collection
}

// NewMongoTaskRepository creates a new Task repository backed by MongoDB.
func NewMongoTaskRepository(db *mongo.Database) repository.TaskRepository {
	return &mongoTaskRepository{
		collection: db.Collection(taskCollectionName),
	}
}

// Create inserts a new task into the database.
func (r *mongoTaskRepository) Create(ctx context.Context, task *domain.Task) (primitive.ObjectID, error) {
	if task.Manager.ID == primitive.NilObjectID || task.Employee.ID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("task requires manager and employee")
	}

	task.ID = primitive.NewObjectID()
	task.LastUpdated = time.Now().UTC()
	if task.EmployeeAccept == "" {
		task.EmployeeAccept = domain.AcceptNoAction
	}

	result, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted task ID")
	}
	return insertedID, nil
}

// GetByID retrieves a task by its ID.
func (r *mongoTaskRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Task, error) {
	var task domain.Task
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// GetByManagerID retrieves all tasks created by a manager, nearest due date first.
func (r *mongoTaskRepository) GetByManagerID(ctx context.Context, managerID primitive.ObjectID) ([]domain.Task, error) {
	return r.find(ctx, bson.M{"manager.id": managerID})
}

// GetByEmployeeID retrieves all tasks assigned to an employee, nearest due date first.
func (r *mongoTaskRepository) GetByEmployeeID(ctx context.Context, employeeID primitive.ObjectID) ([]domain.Task, error) {
	return r.find(ctx, bson.M{"employee.id": employeeID})
}

func (r *mongoTaskRepository) find(ctx context.Context, filter bson.M) ([]domain.Task, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "dueDate", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tasks := []domain.Task{}
	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update replaces the task document. Manager and creation date never change.
func (r *mongoTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task.ID == primitive.NilObjectID {
		return errors.New("task ID is required for update")
	}
	task.LastUpdated = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": task.ID, "manager.id": task.Manager.ID}, task)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoTaskRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTaskIndexes creates necessary indexes for the tasks collection.
func EnsureTaskIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "manager.id", Value: 1}, {Key: "dueDate", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "employee.id", Value: 1}, {Key: "dueDate", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "employeeAccept", Value: 1}},
			Options: options.Index(),
		},
	})
}
