package service

import (
	"alcyxob/gym-system/internal/apperr"
	"alcyxob/gym-system/internal/domain"
	"alcyxob/gym-system/internal/events"
	"alcyxob/gym-system/internal/repository"
	"alcyxob/gym-system/internal/storage"
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrTaskNotFound         = apperr.New(apperr.KindNotFound, "task.notFound")
	ErrRetroDueDate         = apperr.New(apperr.KindBadRequest, "task.retroDueDate")
	ErrInvalidReminder      = apperr.New(apperr.KindBadRequest, "task.invalidReminder")
	ErrEmployeeNotFound     = apperr.New(apperr.KindNotFound, "task.employeeNotFound")
	ErrNotEmployee          = apperr.New(apperr.KindBadRequest, "task.notEmployee")
	ErrInvalidTaskStatus    = apperr.New(apperr.KindBadRequest, "task.invalidStatus")
	ErrStatusAlreadyChanged = apperr.New(apperr.KindBadRequest, "task.statusAlreadyChanged")
	ErrTaskNotAccepted      = apperr.New(apperr.KindBadRequest, "task.notAccepted")
	ErrReportNotSent        = apperr.New(apperr.KindBadRequest, "task.reportNotSent")
	ErrInvalidMark          = apperr.New(apperr.KindBadRequest, "task.invalidMark")
	ErrAlreadyEvaluated     = apperr.New(apperr.KindBadRequest, "task.alreadyEvaluated")
	ErrInvalidAttachment    = apperr.New(apperr.KindBadRequest, "task.invalidAttachment")
	ErrAttachmentNotFound   = apperr.New(apperr.KindNotFound, "task.attachmentNotFound")
	ErrUploadFailed         = apperr.New(apperr.KindInternal, "task.uploadFailed")
)

// TaskInput is what a manager sends when creating or editing a task.
type TaskInput struct {
	EmployeeID  primitive.ObjectID
	Title       string
	Description string
	DueDate     string
	Reminder    string
}

// ReportInput is the employee's report on an accepted task.
type ReportInput struct {
	Summary       string
	AttachmentKey string
}

// AttachmentURL is a presigned URL for a report attachment.
type AttachmentURL struct {
	URL       string    `json:"url"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type TaskService interface {
	Create(ctx context.Context, caller Principal, in TaskInput) (*domain.Task, error)
	Get(ctx context.Context, caller Principal, id primitive.ObjectID) (*domain.Task, error)
	ListForManager(ctx context.Context, caller Principal) ([]domain.Task, error)
	ListForEmployee(ctx context.Context, caller Principal) ([]domain.Task, error)
	Update(ctx context.Context, caller Principal, id primitive.ObjectID, in TaskInput) (*domain.Task, error)
	Delete(ctx context.Context, caller Principal, id primitive.ObjectID) error
	ChangeApproval(ctx context.Context, caller Principal, id primitive.ObjectID, status string, comment string) (*domain.Task, error)
	SubmitReport(ctx context.Context, caller Principal, id primitive.ObjectID, in ReportInput) (*domain.Task, error)
	RequestAttachmentUpload(ctx context.Context, caller Principal, id primitive.ObjectID, fileName, contentType string) (*AttachmentURL, error)
	AttachmentDownloadURL(ctx context.Context, caller Principal, id primitive.ObjectID) (*AttachmentURL, error)
	Evaluate(ctx context.Context, caller Principal, id primitive.ObjectID, mark int, comment string) (*domain.Task, error)
}

type taskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	storage  storage.FileStorage
	events   events.Publisher
	now      Clock
}

func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, fs storage.FileStorage, p events.Publisher) TaskService {
	return &taskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		storage:  fs,
		events:   p,
		now:      systemClock,
	}
}

type taskDates struct {
	due      time.Time
	reminder *time.Time
}

func (s *taskService) validateDates(in TaskInput) (taskDates, error) {
	today := domain.Day(s.now())
	due, err := domain.ParseDate(in.DueDate)
	if err != nil {
		return taskDates{}, apperr.ErrInvalidDate
	}
	if due.Before(today) {
		return taskDates{}, ErrRetroDueDate
	}

	dates := taskDates{due: due}
	if in.Reminder != "" {
		reminder, err := domain.ParseDate(in.Reminder)
		if err != nil {
			return taskDates{}, apperr.ErrInvalidDate
		}
		if reminder.Before(today) || reminder.After(due) {
			return taskDates{}, ErrInvalidReminder
		}
		dates.reminder = &reminder
	}
	return dates, nil
}

func (s *taskService) loadEmployee(ctx context.Context, op string, id primitive.ObjectID) (*domain.User, error) {
	employee, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(op, err, ErrEmployeeNotFound)
	}
	if !employee.HasRole(domain.RoleEmployee) {
		return nil, ErrNotEmployee
	}
	return employee, nil
}

func (s *taskService) Create(ctx context.Context, caller Principal, in TaskInput) (*domain.Task, error) {
	const op = "taskService.Create"
	dates, err := s.validateDates(in)
	if err != nil {
		return nil, err
	}

	manager, err := s.userRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, notFoundOr(op, err, ErrUserNotFound)
	}
	employee, err := s.loadEmployee(ctx, op, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		Manager:          manager.Ref(),
		Employee:         employee.Ref(),
		Title:            strings.TrimSpace(in.Title),
		Description:      in.Description,
		TaskCreationDate: s.now(),
		DueDate:          dates.due,
		Reminder:         dates.reminder,
		EmployeeAccept:   domain.AcceptNoAction,
	}
	id, err := s.taskRepo.Create(ctx, task)
	if err != nil {
		return nil, internal(op, err)
	}
	task.ID = id

	events.PublishAsync(s.events, events.TaskCreated, task)
	return task, nil
}

func (s *taskService) load(ctx context.Context, op string, id primitive.ObjectID) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(op, err, ErrTaskNotFound)
	}
	return task, nil
}

// loadAs loads a task and checks the caller against allowed.
func (s *taskService) loadAs(ctx context.Context, op string, id primitive.ObjectID, allowed func(*domain.Task) bool) (*domain.Task, error) {
	task, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}
	if !allowed(task) {
		return nil, apperr.ErrAccessDenied
	}
	return task, nil
}

func (s *taskService) Get(ctx context.Context, caller Principal, id primitive.ObjectID) (*domain.Task, error) {
	return s.loadAs(ctx, "taskService.Get", id, func(t *domain.Task) bool {
		return t.IsManagedBy(caller.UserID) || t.IsAssignedTo(caller.UserID) || caller.Is(domain.RoleAdmin)
	})
}

func (s *taskService) ListForManager(ctx context.Context, caller Principal) ([]domain.Task, error) {
	tasks, err := s.taskRepo.GetByManagerID(ctx, caller.UserID)
	if err != nil {
		return nil, internal("taskService.ListForManager", err)
	}
	return tasks, nil
}

func (s *taskService) ListForEmployee(ctx context.Context, caller Principal) ([]domain.Task, error) {
	tasks, err := s.taskRepo.GetByEmployeeID(ctx, caller.UserID)
	if err != nil {
		return nil, internal("taskService.ListForEmployee", err)
	}
	return tasks, nil
}

// Update edits a task. Reassigning it to another employee starts the
// acceptance workflow over.
func (s *taskService) Update(ctx context.Context, caller Principal, id primitive.ObjectID, in TaskInput) (*domain.Task, error) {
	const op = "taskService.Update"
	task, err := s.loadAs(ctx, op, id, managedBy(caller))
	if err != nil {
		return nil, err
	}
	dates, err := s.validateDates(in)
	if err != nil {
		return nil, err
	}

	var staleReport *domain.Report
	if in.EmployeeID != task.Employee.ID {
		employee, err := s.loadEmployee(ctx, op, in.EmployeeID)
		if err != nil {
			return nil, err
		}
		staleReport = task.Report
		task.Employee = employee.Ref()
		task.EmployeeAccept = domain.AcceptNoAction
		task.EmployeeComment = ""
		task.Report = nil
		task.ManagerEvaluation = nil
	}
	task.Title = strings.TrimSpace(in.Title)
	task.Description = in.Description
	task.DueDate = dates.due
	task.Reminder = dates.reminder

	if err = s.taskRepo.Update(ctx, task); err != nil {
		return nil, notFoundOr(op, err, ErrTaskNotFound)
	}
	s.dropAttachment(ctx, task.ID, staleReport)
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, caller Principal, id primitive.ObjectID) error {
	const op = "taskService.Delete"
	task, err := s.loadAs(ctx, op, id, managedBy(caller))
	if err != nil {
		return err
	}
	if err = s.taskRepo.Delete(ctx, id); err != nil {
		return notFoundOr(op, err, ErrTaskNotFound)
	}
	s.dropAttachment(ctx, id, task.Report)
	return nil
}

// dropAttachment removes the report's file from storage. Failures are only logged.
func (s *taskService) dropAttachment(ctx context.Context, taskID primitive.ObjectID, report *domain.Report) {
	if report == nil || report.AttachmentKey == "" {
		return
	}
	if err := s.storage.DeleteObject(ctx, report.AttachmentKey); err != nil {
		log.Warn().Err(err).Str("task", taskID.Hex()).Msg("attachment left behind")
	}
}

// ChangeApproval records the employee's answer. The answer is final.
func (s *taskService) ChangeApproval(ctx context.Context, caller Principal, id primitive.ObjectID, status string, comment string) (*domain.Task, error) {
	const op = "taskService.ChangeApproval"
	newStatus := domain.AcceptStatus(strings.ToUpper(status))
	if newStatus != domain.AcceptAccepted && newStatus != domain.AcceptNotAccepted {
		return nil, ErrInvalidTaskStatus.With(status)
	}

	task, err := s.loadAs(ctx, op, id, assignedTo(caller))
	if err != nil {
		return nil, err
	}
	if task.EmployeeAccept != domain.AcceptNoAction {
		return nil, ErrStatusAlreadyChanged
	}

	task.EmployeeAccept = newStatus
	task.EmployeeComment = comment
	if err = s.taskRepo.Update(ctx, task); err != nil {
		return nil, notFoundOr(op, err, ErrTaskNotFound)
	}

	events.PublishAsync(s.events, events.TaskApproval, task)
	return task, nil
}

func (s *taskService) SubmitReport(ctx context.Context, caller Principal, id primitive.ObjectID, in ReportInput) (*domain.Task, error) {
	const op = "taskService.SubmitReport"
	task, err := s.loadAs(ctx, op, id, assignedTo(caller))
	if err != nil {
		return nil, err
	}
	if task.EmployeeAccept != domain.AcceptAccepted {
		return nil, ErrTaskNotAccepted
	}
	if task.ManagerEvaluation != nil {
		return nil, ErrAlreadyEvaluated
	}
	if in.AttachmentKey != "" && !storage.IsTaskAttachmentKey(task.ID.Hex(), in.AttachmentKey) {
		return nil, ErrInvalidAttachment
	}

	task.Report = &domain.Report{
		Summary:       in.Summary,
		Date:          s.now(),
		AttachmentKey: in.AttachmentKey,
	}
	if err = s.taskRepo.Update(ctx, task); err != nil {
		return nil, notFoundOr(op, err, ErrTaskNotFound)
	}

	events.PublishAsync(s.events, events.TaskReported, task)
	return task, nil
}

func (s *taskService) RequestAttachmentUpload(ctx context.Context, caller Principal, id primitive.ObjectID, fileName, contentType string) (*AttachmentURL, error) {
	const op = "taskService.RequestAttachmentUpload"
	task, err := s.loadAs(ctx, op, id, assignedTo(caller))
	if err != nil {
		return nil, err
	}
	if task.EmployeeAccept != domain.AcceptAccepted {
		return nil, ErrTaskNotAccepted
	}
	if task.ManagerEvaluation != nil {
		return nil, ErrAlreadyEvaluated
	}

	key := storage.TaskAttachmentKey(task.ID.Hex(), fileName)
	url, err := s.storage.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadFailed.Wrap(err)
	}
	return &AttachmentURL{URL: url, ObjectKey: key, ExpiresAt: s.now().Add(storage.DefaultPresignedURLExpiry)}, nil
}

func (s *taskService) AttachmentDownloadURL(ctx context.Context, caller Principal, id primitive.ObjectID) (*AttachmentURL, error) {
	task, err := s.Get(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if task.Report == nil || task.Report.AttachmentKey == "" {
		return nil, ErrAttachmentNotFound
	}

	key := task.Report.AttachmentKey
	url, err := s.storage.GeneratePresignedDownloadURL(ctx, key, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadFailed.Wrap(err)
	}
	return &AttachmentURL{URL: url, ObjectKey: key, ExpiresAt: s.now().Add(storage.DefaultPresignedURLExpiry)}, nil
}

// Evaluate grades a reported task. Each task is graded once.
func (s *taskService) Evaluate(ctx context.Context, caller Principal, id primitive.ObjectID, mark int, comment string) (*domain.Task, error) {
	const op = "taskService.Evaluate"
	task, err := s.loadAs(ctx, op, id, managedBy(caller))
	if err != nil {
		return nil, err
	}
	switch {
	case mark < domain.MinMark || mark > domain.MaxMark:
		return nil, ErrInvalidMark
	case task.Report == nil:
		return nil, ErrReportNotSent
	case task.ManagerEvaluation != nil:
		return nil, ErrAlreadyEvaluated
	}

	task.ManagerEvaluation = &domain.Evaluation{Mark: mark, Comment: comment, Date: s.now()}
	if err = s.taskRepo.Update(ctx, task); err != nil {
		return nil, notFoundOr(op, err, ErrTaskNotFound)
	}

	events.PublishAsync(s.events, events.TaskEvaluated, task)
	return task, nil
}

func managedBy(caller Principal) func(*domain.Task) bool {
	return func(t *domain.Task) bool { return t.IsManagedBy(caller.UserID) }
}

func assignedTo(caller Principal) func(*domain.Task) bool {
	return func(t *domain.Task) bool { return t.IsAssignedTo(caller.UserID) }
}
