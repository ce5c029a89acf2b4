package api

import (
	"alcyxob/gym-system/internal/domain"
	"alcyxob/gym-system/internal/service"
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}

func (m *MockAuthService) ParseToken(token string) (service.Principal, error) {
	args := m.Called(token)
	return args.Get(0).(service.Principal), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByID(ctx context.Context, caller service.Principal, id primitive.ObjectID) (*domain.User, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, caller service.Principal, id primitive.ObjectID, in service.UpdateUserInput) (*domain.User, error) {
	args := m.Called(ctx, caller, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

type MockGymPassService struct {
	mock.Mock
}

func (m *MockGymPassService) ListOffers(ctx context.Context) ([]domain.GymPassOffer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GymPassOffer), args.Error(1)
}

func (m *MockGymPassService) GetOffer(ctx context.Context, id primitive.ObjectID) (*domain.GymPassOffer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GymPassOffer), args.Error(1)
}

func (m *MockGymPassService) CreateOffer(ctx context.Context, in service.OfferInput) (*domain.GymPassOffer, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GymPassOffer), args.Error(1)
}

func (m *MockGymPassService) UpdateOffer(ctx context.Context, id primitive.ObjectID, in service.OfferInput) (*domain.GymPassOffer, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GymPassOffer), args.Error(1)
}

func (m *MockGymPassService) DeleteOffer(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGymPassService) Purchase(ctx context.Context, caller service.Principal, offerID primitive.ObjectID, startDate string) (*domain.PurchasedGymPass, error) {
	args := m.Called(ctx, caller, offerID, startDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchasedGymPass), args.Error(1)
}

func (m *MockGymPassService) Status(ctx context.Context, caller service.Principal, id primitive.ObjectID) (*service.GymPassStatus, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GymPassStatus), args.Error(1)
}

func (m *MockGymPassService) Suspend(ctx context.Context, caller service.Principal, id primitive.ObjectID, date string) (*domain.PurchasedGymPass, error) {
	args := m.Called(ctx, caller, id, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchasedGymPass), args.Error(1)
}

func (m *MockGymPassService) ListUserPasses(ctx context.Context, caller service.Principal, userID primitive.ObjectID) ([]domain.PurchasedGymPass, error) {
	args := m.Called(ctx, caller, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchasedGymPass), args.Error(1)
}

func (m *MockGymPassService) RegisterEntry(ctx context.Context, id primitive.ObjectID) (*domain.PurchasedGymPass, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchasedGymPass), args.Error(1)
}

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) task(args mock.Arguments) (*domain.Task, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskService) tasks(args mock.Arguments) ([]domain.Task, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskService) attachment(args mock.Arguments) (*service.AttachmentURL, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AttachmentURL), args.Error(1)
}

func (m *MockTaskService) Create(ctx context.Context, caller service.Principal, in service.TaskInput) (*domain.Task, error) {
	return m.task(m.Called(ctx, caller, in))
}

func (m *MockTaskService) Get(ctx context.Context, caller service.Principal, id primitive.ObjectID) (*domain.Task, error) {
	return m.task(m.Called(ctx, caller, id))
}

func (m *MockTaskService) ListForManager(ctx context.Context, caller service.Principal) ([]domain.Task, error) {
	return m.tasks(m.Called(ctx, caller))
}

func (m *MockTaskService) ListForEmployee(ctx context.Context, caller service.Principal) ([]domain.Task, error) {
	return m.tasks(m.Called(ctx, caller))
}

func (m *MockTaskService) Update(ctx context.Context, caller service.Principal, id primitive.ObjectID, in service.TaskInput) (*domain.Task, error) {
	return m.task(m.Called(ctx, caller, id, in))
}

func (m *MockTaskService) Delete(ctx context.Context, caller service.Principal, id primitive.ObjectID) error {
	return m.Called(ctx, caller, id).Error(0)
}

func (m *MockTaskService) ChangeApproval(ctx context.Context, caller service.Principal, id primitive.ObjectID, status string, comment string) (*domain.Task, error) {
	return m.task(m.Called(ctx, caller, id, status, comment))
}

func (m *MockTaskService) SubmitReport(ctx context.Context, caller service.Principal, id primitive.ObjectID, in service.ReportInput) (*domain.Task, error) {
	return m.task(m.Called(ctx, caller, id, in))
}

func (m *MockTaskService) RequestAttachmentUpload(ctx context.Context, caller service.Principal, id primitive.ObjectID, fileName, contentType string) (*service.AttachmentURL, error) {
	return m.attachment(m.Called(ctx, caller, id, fileName, contentType))
}

func (m *MockTaskService) AttachmentDownloadURL(ctx context.Context, caller service.Principal, id primitive.ObjectID) (*service.AttachmentURL, error) {
	return m.attachment(m.Called(ctx, caller, id))
}

func (m *MockTaskService) Evaluate(ctx context.Context, caller service.Principal, id primitive.ObjectID, mark int, comment string) (*domain.Task, error) {
	return m.task(m.Called(ctx, caller, id, mark, comment))
}

type MockTrainingService struct {
	mock.Mock
}

func (m *MockTrainingService) training(args mock.Arguments) (*domain.IndividualTraining, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IndividualTraining), args.Error(1)
}

func (m *MockTrainingService) trainings(args mock.Arguments) ([]domain.IndividualTraining, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.IndividualTraining), args.Error(1)
}

func (m *MockTrainingService) Create(ctx context.Context, caller service.Principal, in service.TrainingInput) (*domain.IndividualTraining, error) {
	return m.training(m.Called(ctx, caller, in))
}

func (m *MockTrainingService) Get(ctx context.Context, caller service.Principal, id primitive.ObjectID) (*domain.IndividualTraining, error) {
	return m.training(m.Called(ctx, caller, id))
}

func (m *MockTrainingService) ListForUser(ctx context.Context, caller service.Principal, window service.DateWindow) ([]domain.IndividualTraining, error) {
	return m.trainings(m.Called(ctx, caller, window))
}

func (m *MockTrainingService) ListForTrainer(ctx context.Context, caller service.Principal, window service.DateWindow) ([]domain.IndividualTraining, error) {
	return m.trainings(m.Called(ctx, caller, window))
}

func (m *MockTrainingService) Accept(ctx context.Context, caller service.Principal, id primitive.ObjectID) (*domain.IndividualTraining, error) {
	return m.training(m.Called(ctx, caller, id))
}

func (m *MockTrainingService) Reject(ctx context.Context, caller service.Principal, id primitive.ObjectID) (*domain.IndividualTraining, error) {
	return m.training(m.Called(ctx, caller, id))
}

func (m *MockTrainingService) Cancel(ctx context.Context, caller service.Principal, id primitive.ObjectID) (*domain.IndividualTraining, error) {
	return m.training(m.Called(ctx, caller, id))
}
