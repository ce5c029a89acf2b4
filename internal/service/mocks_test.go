package service

import (
	"alcyxob/gym-system/internal/domain"
	"alcyxob/gym-system/internal/repository"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fixedClock pins "now" to 2026-03-10 12:00 UTC.
func fixedClock() time.Time {
	return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
}

func mustDate(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) Create(ctx context.Context, offer *domain.GymPassOffer) (primitive.ObjectID, error) {
	args := m.Called(ctx, offer)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockOfferRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.GymPassOffer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GymPassOffer), args.Error(1)
}

func (m *MockOfferRepository) GetByTitle(ctx context.Context, title string) (*domain.GymPassOffer, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GymPassOffer), args.Error(1)
}

func (m *MockOfferRepository) List(ctx context.Context) ([]domain.GymPassOffer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.GymPassOffer), args.Error(1)
}

func (m *MockOfferRepository) Update(ctx context.Context, offer *domain.GymPassOffer) error {
	return m.Called(ctx, offer).Error(0)
}

func (m *MockOfferRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) Create(ctx context.Context, pass *domain.PurchasedGymPass) (primitive.ObjectID, error) {
	args := m.Called(ctx, pass)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockPurchaseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PurchasedGymPass, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchasedGymPass), args.Error(1)
}

func (m *MockPurchaseRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.PurchasedGymPass, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.PurchasedGymPass), args.Error(1)
}

func (m *MockPurchaseRepository) Update(ctx context.Context, pass *domain.PurchasedGymPass) error {
	return m.Called(ctx, pass).Error(0)
}

func (m *MockPurchaseRepository) UseEntry(ctx context.Context, id primitive.ObjectID) (*domain.PurchasedGymPass, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchasedGymPass), args.Error(1)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) (primitive.ObjectID, error) {
	args := m.Called(ctx, task)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) GetByManagerID(ctx context.Context, managerID primitive.ObjectID) ([]domain.Task, error) {
	args := m.Called(ctx, managerID)
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskRepository) GetByEmployeeID(ctx context.Context, employeeID primitive.ObjectID) ([]domain.Task, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

type MockTrainingRepository struct {
	mock.Mock
}

func (m *MockTrainingRepository) Create(ctx context.Context, training *domain.IndividualTraining) (primitive.ObjectID, error) {
	args := m.Called(ctx, training)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockTrainingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.IndividualTraining, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IndividualTraining), args.Error(1)
}

func (m *MockTrainingRepository) Find(ctx context.Context, filter repository.TrainingFilter) ([]domain.IndividualTraining, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.IndividualTraining), args.Error(1)
}

func (m *MockTrainingRepository) Update(ctx context.Context, training *domain.IndividualTraining) error {
	return m.Called(ctx, training).Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value any) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *MockCache) Invalidate(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, contentType, expires)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, expires)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) DeleteObject(ctx context.Context, objectKey string) error {
	return m.Called(ctx, objectKey).Error(0)
}
