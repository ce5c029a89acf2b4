package service

import (
	"alcyxob/gym-system/internal/apperr"
	"alcyxob/gym-system/internal/domain"
	"alcyxob/gym-system/internal/events"
	"alcyxob/gym-system/internal/repository"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trainings report a missing training as a bad request, unlike the other services.
var (
	ErrTrainingNotFound     = apperr.New(apperr.KindBadRequest, "training.notFound")
	ErrTrainingPastDate     = apperr.New(apperr.KindBadRequest, "training.pastDate")
	ErrTrainingInvalidHours = apperr.New(apperr.KindBadRequest, "training.invalidHours")
	ErrTrainerNotFound      = apperr.New(apperr.KindBadRequest, "training.trainerNotFound")
	ErrTrainerOccupied      = apperr.New(apperr.KindBadRequest, "training.trainerOccupied")
	ErrUserOccupied         = apperr.New(apperr.KindBadRequest, "training.userOccupied")
	ErrTrainingAccepted     = apperr.New(apperr.KindBadRequest, "training.alreadyAccepted")
	ErrTrainingCancelled    = apperr.New(apperr.KindBadRequest, "training.alreadyCancelled")
	ErrTrainingRejected     = apperr.New(apperr.KindBadRequest, "training.alreadyRejected")
)

// TrainingInput is a user's request for an individual training.
type TrainingInput struct {
	TrainerID primitive.ObjectID
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Location  string
	Remarks   string
}

// DateWindow narrows listings to trainings that overlap [startDate, endDate].
// Both bounds are optional YYYY-MM-DD dates, the end date is inclusive.
type DateWindow struct {
	StartDate string
	EndDate   string
}

type TrainingService interface {
	Create(ctx context.Context, caller Principal, in TrainingInput) (*domain.IndividualTraining, error)
	Get(ctx context.Context, caller Principal, id primitive.ObjectID) (*domain.IndividualTraining, error)
	ListForUser(ctx context.Context, caller Principal, window DateWindow) ([]domain.IndividualTraining, error)
	ListForTrainer(ctx context.Context, caller Principal, window DateWindow) ([]domain.IndividualTraining, error)
	Accept(ctx context.Context, caller Principal, id primitive.ObjectID) (*domain.IndividualTraining, error)
	Reject(ctx context.Context, caller Principal, id primitive.ObjectID) (*domain.IndividualTraining, error)
	Cancel(ctx context.Context, caller Principal, id primitive.ObjectID) (*domain.IndividualTraining, error)
}

type trainingService struct {
	trainingRepo repository.TrainingRepository
	userRepo     repository.UserRepository
	events       events.Publisher
	now          Clock
}

func NewTrainingService(trainingRepo repository.TrainingRepository, userRepo repository.UserRepository, p events.Publisher) TrainingService {
	return &trainingService{
		trainingRepo: trainingRepo,
		userRepo:     userRepo,
		events:       p,
		now:          systemClock,
	}
}

func (s *trainingService) Create(ctx context.Context, caller Principal, in TrainingInput) (*domain.IndividualTraining, error) {
	const op = "trainingService.Create"
	start, end := in.StartTime.UTC(), in.EndTime.UTC()
	if !start.After(s.now()) {
		return nil, ErrTrainingPastDate
	}
	if !end.After(start) {
		return nil, ErrTrainingInvalidHours
	}

	trainer, err := s.userRepo.GetByID(ctx, in.TrainerID)
	if err != nil {
		return nil, notFoundOr(op, err, ErrTrainerNotFound)
	}
	if !trainer.HasRole(domain.RoleTrainer) {
		return nil, ErrTrainerNotFound
	}

	busy, err := s.overlapping(ctx, repository.TrainingFilter{TrainerID: in.TrainerID}, start, end)
	if err != nil {
		return nil, internal(op, err)
	}
	if busy {
		return nil, ErrTrainerOccupied
	}
	busy, err = s.overlapping(ctx, repository.TrainingFilter{ParticipantID: caller.UserID}, start, end)
	if err != nil {
		return nil, internal(op, err)
	}
	if busy {
		return nil, ErrUserOccupied
	}

	training := &domain.IndividualTraining{
		TrainerID:     in.TrainerID,
		ParticipantID: caller.UserID,
		Title:         in.Title,
		StartTime:     start,
		EndTime:       end,
		Location:      in.Location,
		Remarks:       in.Remarks,
	}
	id, err := s.trainingRepo.Create(ctx, training)
	if err != nil {
		return nil, internal(op, err)
	}
	training.ID = id

	events.PublishAsync(s.events, events.TrainingRequested, training)
	return training, nil
}

func (s *trainingService) overlapping(ctx context.Context, filter repository.TrainingFilter, start, end time.Time) (bool, error) {
	filter.From = &start
	filter.To = &end
	filter.ActiveOnly = true
	trainings, err := s.trainingRepo.Find(ctx, filter)
	if err != nil {
		return false, err
	}
	for i := range trainings {
		if trainings[i].IsActive() && trainings[i].Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (s *trainingService) load(ctx context.Context, op string, id primitive.ObjectID) (*domain.IndividualTraining, error) {
	training, err := s.trainingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(op, err, ErrTrainingNotFound)
	}
	return training, nil
}

func (s *trainingService) Get(ctx context.Context, caller Principal, id primitive.ObjectID) (*domain.IndividualTraining, error) {
	training, err := s.load(ctx, "trainingService.Get", id)
	if err != nil {
		return nil, err
	}
	if training.ParticipantID != caller.UserID && training.TrainerID != caller.UserID && !caller.Is(domain.RoleAdmin) {
		return nil, apperr.ErrAccessDenied
	}
	return training, nil
}

func (s *trainingService) ListForUser(ctx context.Context, caller Principal, window DateWindow) ([]domain.IndividualTraining, error) {
	return s.list(ctx, "trainingService.ListForUser", repository.TrainingFilter{ParticipantID: caller.UserID}, window)
}

func (s *trainingService) ListForTrainer(ctx context.Context, caller Principal, window DateWindow) ([]domain.IndividualTraining, error) {
	return s.list(ctx, "trainingService.ListForTrainer", repository.TrainingFilter{TrainerID: caller.UserID}, window)
}

func (s *trainingService) list(ctx context.Context, op string, filter repository.TrainingFilter, window DateWindow) ([]domain.IndividualTraining, error) {
	if window.StartDate != "" {
		from, err := domain.ParseDate(window.StartDate)
		if err != nil {
			return nil, apperr.ErrInvalidDate
		}
		filter.From = &from
	}
	if window.EndDate != "" {
		to, err := domain.ParseDate(window.EndDate)
		if err != nil {
			return nil, apperr.ErrInvalidDate
		}
		to = to.AddDate(0, 0, 1)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && !filter.To.After(*filter.From) {
		return nil, ErrTrainingInvalidHours
	}

	trainings, err := s.trainingRepo.Find(ctx, filter)
	if err != nil {
		return nil, internal(op, err)
	}
	return trainings, nil
}

// checkOpen rejects transitions on trainings that are already settled or started.
func (s *trainingService) checkOpen(t *domain.IndividualTraining, acceptedBlocks bool) error {
	switch {
	case t.Cancelled:
		return ErrTrainingCancelled
	case t.Rejected:
		return ErrTrainingRejected
	case acceptedBlocks && t.Accepted:
		return ErrTrainingAccepted
	case !t.StartTime.After(s.now()):
		return ErrTrainingPastDate
	}
	return nil
}

func (s *trainingService) transition(ctx context.Context, op string, caller Principal, id primitive.ObjectID, asTrainer bool, apply func(*domain.IndividualTraining), event string) (*domain.IndividualTraining, error) {
	training, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}
	owner := training.ParticipantID
	if asTrainer {
		owner = training.TrainerID
	}
	if owner != caller.UserID {
		return nil, apperr.ErrAccessDenied
	}
	if err = s.checkOpen(training, asTrainer); err != nil {
		return nil, err
	}

	apply(training)
	if err = s.trainingRepo.Update(ctx, training); err != nil {
		return nil, notFoundOr(op, err, ErrTrainingNotFound)
	}

	events.PublishAsync(s.events, event, training)
	return training, nil
}

func (s *trainingService) Accept(ctx context.Context, caller Principal, id primitive.ObjectID) (*domain.IndividualTraining, error) {
	return s.transition(ctx, "trainingService.Accept", caller, id, true,
		func(t *domain.IndividualTraining) { t.Accepted = true }, events.TrainingAccepted)
}

func (s *trainingService) Reject(ctx context.Context, caller Principal, id primitive.ObjectID) (*domain.IndividualTraining, error) {
	return s.transition(ctx, "trainingService.Reject", caller, id, true,
		func(t *domain.IndividualTraining) { t.Rejected = true }, events.TrainingRejected)
}

// Cancel withdraws the participant's request, accepted or not. Only one of
// accepted, cancelled and rejected is ever set.
func (s *trainingService) Cancel(ctx context.Context, caller Principal, id primitive.ObjectID) (*domain.IndividualTraining, error) {
	return s.transition(ctx, "trainingService.Cancel", caller, id, false,
		func(t *domain.IndividualTraining) {
			t.Cancelled = true
			t.Accepted = false
		}, events.TrainingCancelled)
}
