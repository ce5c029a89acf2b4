package service

import (
	"alcyxob/gym-system/internal/apperr"
	"alcyxob/gym-system/internal/domain"
	"alcyxob/gym-system/internal/events"
	"alcyxob/gym-system/internal/repository"
	"alcyxob/gym-system/internal/storage"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type taskFixture struct {
	tasks   *MockTaskRepository
	users   *MockUserRepository
	storage *MockStorage
	svc     *taskService
}

func newTaskFixture() *taskFixture {
	f := &taskFixture{
		tasks:   new(MockTaskRepository),
		users:   new(MockUserRepository),
		storage: new(MockStorage),
	}
	f.svc = &taskService{
		taskRepo: f.tasks,
		userRepo: f.users,
		storage:  f.storage,
		events:   events.Noop{},
		now:      fixedClock,
	}
	return f
}

var (
	testManager  = &domain.User{ID: primitive.NewObjectID(), Name: "Maria", Surname: "Kowalska", Role: domain.RoleManager}
	testEmployee = &domain.User{ID: primitive.NewObjectID(), Name: "Piotr", Surname: "Zieliński", Role: domain.RoleEmployee}
	asManager    = Principal{UserID: testManager.ID, Role: domain.RoleManager}
	asEmployee   = Principal{UserID: testEmployee.ID, Role: domain.RoleEmployee}
)

func newTask(status domain.AcceptStatus) *domain.Task {
	return &domain.Task{
		ID:             primitive.NewObjectID(),
		Manager:        testManager.Ref(),
		Employee:       testEmployee.Ref(),
		Title:          "Clean the sauna",
		DueDate:        mustDate("2026-03-20"),
		EmployeeAccept: status,
	}
}

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()
	in := TaskInput{EmployeeID: testEmployee.ID, Title: "Clean the sauna", DueDate: "2026-03-20", Reminder: "2026-03-18"}

	t.Run("assigns to employee", func(t *testing.T) {
		f := newTaskFixture()
		taskID := primitive.NewObjectID()
		f.users.On("GetByID", ctx, testManager.ID).Return(testManager, nil)
		f.users.On("GetByID", ctx, testEmployee.ID).Return(testEmployee, nil)
		f.tasks.On("Create", ctx, mock.MatchedBy(func(task *domain.Task) bool {
			return task.Manager.Surname == "Kowalska" && task.Employee.ID == testEmployee.ID &&
				task.EmployeeAccept == domain.AcceptNoAction && task.Reminder != nil
		})).Return(taskID, nil)

		task, err := f.svc.Create(ctx, asManager, in)
		require.NoError(t, err)
		assert.Equal(t, taskID, task.ID)
		assert.Equal(t, mustDate("2026-03-20"), task.DueDate)
		f.tasks.AssertExpectations(t)
	})

	dateCases := []struct {
		name     string
		due      string
		reminder string
		want     error
	}{
		{"retro due date", "2026-03-09", "", ErrRetroDueDate},
		{"reminder after due date", "2026-03-20", "2026-03-21", ErrInvalidReminder},
		{"reminder in the past", "2026-03-20", "2026-03-09", ErrInvalidReminder},
		{"bad format", "20/03/2026", "", apperr.ErrInvalidDate},
	}
	for _, tc := range dateCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newTaskFixture()
			_, err := f.svc.Create(ctx, asManager, TaskInput{EmployeeID: testEmployee.ID, DueDate: tc.due, Reminder: tc.reminder})
			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("due date today is fine", func(t *testing.T) {
		f := newTaskFixture()
		f.users.On("GetByID", ctx, testManager.ID).Return(testManager, nil)
		f.users.On("GetByID", ctx, testEmployee.ID).Return(testEmployee, nil)
		f.tasks.On("Create", ctx, mock.Anything).Return(primitive.NewObjectID(), nil)

		_, err := f.svc.Create(ctx, asManager, TaskInput{EmployeeID: testEmployee.ID, DueDate: "2026-03-10", Reminder: "2026-03-10"})
		require.NoError(t, err)
	})

	t.Run("employee not found", func(t *testing.T) {
		f := newTaskFixture()
		f.users.On("GetByID", ctx, testManager.ID).Return(testManager, nil)
		f.users.On("GetByID", ctx, testEmployee.ID).Return(nil, repository.ErrNotFound)
		_, err := f.svc.Create(ctx, asManager, in)
		assert.ErrorIs(t, err, ErrEmployeeNotFound)
	})

	t.Run("assignee is not an employee", func(t *testing.T) {
		f := newTaskFixture()
		f.users.On("GetByID", ctx, testManager.ID).Return(testManager, nil)
		f.users.On("GetByID", ctx, testEmployee.ID).Return(&domain.User{ID: testEmployee.ID, Role: domain.RoleTrainer}, nil)
		_, err := f.svc.Create(ctx, asManager, in)
		assert.ErrorIs(t, err, ErrNotEmployee)
	})
}

func TestTaskService_Access(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture()
	task := newTask(domain.AcceptNoAction)
	f.tasks.On("GetByID", ctx, task.ID).Return(task, nil)

	_, err := f.svc.Get(ctx, asEmployee, task.ID)
	require.NoError(t, err)
	_, err = f.svc.Get(ctx, Principal{UserID: primitive.NewObjectID(), Role: domain.RoleAdmin}, task.ID)
	require.NoError(t, err)
	_, err = f.svc.Get(ctx, Principal{UserID: primitive.NewObjectID(), Role: domain.RoleManager}, task.ID)
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)

	_, err = f.svc.Update(ctx, asEmployee, task.ID, TaskInput{DueDate: "2026-03-20"})
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)
	assert.ErrorIs(t, f.svc.Delete(ctx, asEmployee, task.ID), apperr.ErrAccessDenied)

	missing := primitive.NewObjectID()
	f.tasks.On("GetByID", ctx, missing).Return(nil, repository.ErrNotFound)
	_, err = f.svc.Get(ctx, asManager, missing)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskService_UpdateReassignResetsWorkflow(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture()
	task := newTask(domain.AcceptAccepted)
	key := "tasks/" + task.ID.Hex() + "/half.pdf"
	task.Report = &domain.Report{Summary: "half done", AttachmentKey: key}
	other := &domain.User{ID: primitive.NewObjectID(), Name: "Ola", Role: domain.RoleEmployee}

	f.tasks.On("GetByID", ctx, task.ID).Return(task, nil)
	f.users.On("GetByID", ctx, other.ID).Return(other, nil)
	f.tasks.On("Update", ctx, task).Return(nil)
	f.storage.On("DeleteObject", ctx, key).Return(errors.New("bucket gone")).Once()

	got, err := f.svc.Update(ctx, asManager, task.ID, TaskInput{EmployeeID: other.ID, Title: "New", DueDate: "2026-03-25"})
	require.NoError(t, err)
	assert.Equal(t, other.ID, got.Employee.ID)
	assert.Equal(t, domain.AcceptNoAction, got.EmployeeAccept)
	assert.Nil(t, got.Report)
	assert.Equal(t, mustDate("2026-03-25"), got.DueDate)
	f.storage.AssertExpectations(t)
}

func TestTaskService_UpdateSameEmployeeKeepsAttachment(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture()
	task := newTask(domain.AcceptAccepted)
	task.Report = &domain.Report{Summary: "half done", AttachmentKey: "tasks/" + task.ID.Hex() + "/half.pdf"}

	f.tasks.On("GetByID", ctx, task.ID).Return(task, nil)
	f.tasks.On("Update", ctx, task).Return(nil)

	got, err := f.svc.Update(ctx, asManager, task.ID, TaskInput{EmployeeID: testEmployee.ID, Title: "Renamed", DueDate: "2026-03-25"})
	require.NoError(t, err)
	require.NotNil(t, got.Report)
	f.storage.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything)
}

func TestTaskService_UpdateFailureKeepsAttachment(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture()
	task := newTask(domain.AcceptAccepted)
	task.Report = &domain.Report{AttachmentKey: "tasks/" + task.ID.Hex() + "/half.pdf"}
	other := &domain.User{ID: primitive.NewObjectID(), Name: "Ola", Role: domain.RoleEmployee}

	f.tasks.On("GetByID", ctx, task.ID).Return(task, nil)
	f.users.On("GetByID", ctx, other.ID).Return(other, nil)
	f.tasks.On("Update", ctx, task).Return(repository.ErrNotFound)

	_, err := f.svc.Update(ctx, asManager, task.ID, TaskInput{EmployeeID: other.ID, Title: "New", DueDate: "2026-03-25"})
	require.ErrorIs(t, err, ErrTaskNotFound)
	f.storage.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything)
}

func TestTaskService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture()
	task := newTask(domain.AcceptAccepted)
	task.Report = &domain.Report{AttachmentKey: "tasks/" + task.ID.Hex() + "/a.pdf"}
	f.tasks.On("GetByID", ctx, task.ID).Return(task, nil)
	f.tasks.On("Delete", ctx, task.ID).Return(nil)
	f.storage.On("DeleteObject", ctx, task.Report.AttachmentKey).Return(errors.New("bucket gone"))

	require.NoError(t, f.svc.Delete(ctx, asManager, task.ID), "storage cleanup failures are not fatal")
	f.storage.AssertExpectations(t)
}

func TestTaskService_ChangeApproval(t *testing.T) {
	ctx := context.Background()

	t.Run("accept once", func(t *testing.T) {
		f := newTaskFixture()
		task := newTask(domain.AcceptNoAction)
		f.tasks.On("GetByID", ctx, task.ID).Return(task, nil)
		f.tasks.On("Update", ctx, task).Return(nil).Once()

		got, err := f.svc.ChangeApproval(ctx, asEmployee, task.ID, "accepted", "on it")
		require.NoError(t, err)
		assert.Equal(t, domain.AcceptAccepted, got.EmployeeAccept)
		assert.Equal(t, "on it", got.EmployeeComment)

		_, err = f.svc.ChangeApproval(ctx, asEmployee, task.ID, "NOT_ACCEPTED", "")
		assert.ErrorIs(t, err, ErrStatusAlreadyChanged)
		f.tasks.AssertExpectations(t)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newTaskFixture()
		_, err := f.svc.ChangeApproval(ctx, asEmployee, primitive.NewObjectID(), "NO_ACTION", "")
		assert.ErrorIs(t, err, ErrInvalidTaskStatus)
	})

	t.Run("only the assignee", func(t *testing.T) {
		f := newTaskFixture()
		task := newTask(domain.AcceptNoAction)
		f.tasks.On("GetByID", ctx, task.ID).Return(task, nil)
		_, err := f.svc.ChangeApproval(ctx, asManager, task.ID, "ACCEPTED", "")
		assert.ErrorIs(t, err, apperr.ErrAccessDenied)
	})
}

func TestTaskService_ReportAndEvaluation(t *testing.T) {
	ctx := context.Background()

	t.Run("report requires acceptance", func(t *testing.T) {
		f := newTaskFixture()
		task := newTask(domain.AcceptNotAccepted)
		f.tasks.On("GetByID", ctx, task.ID).Return(task, nil)
		_, err := f.svc.SubmitReport(ctx, asEmployee, task.ID, ReportInput{Summary: "done"})
		assert.ErrorIs(t, err, ErrTaskNotAccepted)
	})

	t.Run("attachment must belong to the task", func(t *testing.T) {
		f := newTaskFixture()
		task := newTask(domain.AcceptAccepted)
		f.tasks.On("GetByID", ctx, task.ID).Return(task, nil)
		_, err := f.svc.SubmitReport(ctx, asEmployee, task.ID, ReportInput{Summary: "done", AttachmentKey: "tasks/other/x.pdf"})
		assert.ErrorIs(t, err, ErrInvalidAttachment)
	})

	t.Run("full workflow", func(t *testing.T) {
		f := newTaskFixture()
		task := newTask(domain.AcceptAccepted)
		f.tasks.On("GetByID", ctx, task.ID).Return(task, nil)
		f.tasks.On("Update", ctx, task).Return(nil)

		_, err := f.svc.Evaluate(ctx, asManager, task.ID, 5, "")
		assert.ErrorIs(t, err, ErrReportNotSent)

		key := "tasks/" + task.ID.Hex() + "/photo.jpg"
		got, err := f.svc.SubmitReport(ctx, asEmployee, task.ID, ReportInput{Summary: "done", AttachmentKey: key})
		require.NoError(t, err)
		assert.Equal(t, fixedClock(), got.Report.Date)

		_, err = f.svc.Evaluate(ctx, asManager, task.ID, 6, "")
		assert.ErrorIs(t, err, ErrInvalidMark)
		_, err = f.svc.Evaluate(ctx, asEmployee, task.ID, 5, "")
		assert.ErrorIs(t, err, apperr.ErrAccessDenied)

		got, err = f.svc.Evaluate(ctx, asManager, task.ID, 4, "good")
		require.NoError(t, err)
		assert.Equal(t, 4, got.ManagerEvaluation.Mark)

		_, err = f.svc.Evaluate(ctx, asManager, task.ID, 5, "")
		assert.ErrorIs(t, err, ErrAlreadyEvaluated)
		_, err = f.svc.SubmitReport(ctx, asEmployee, task.ID, ReportInput{Summary: "again"})
		assert.ErrorIs(t, err, ErrAlreadyEvaluated)
	})
}

func TestTaskService_Attachments(t *testing.T) {
	ctx := context.Background()

	t.Run("upload url", func(t *testing.T) {
		f := newTaskFixture()
		task := newTask(domain.AcceptAccepted)
		f.tasks.On("GetByID", ctx, task.ID).Return(task, nil)
		f.storage.On("GeneratePresignedUploadURL", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "tasks/"+task.ID.Hex()+"/") && strings.HasSuffix(key, ".pdf")
		}), "application/pdf", storage.DefaultPresignedURLExpiry).Return("https://s3/put", nil)

		up, err := f.svc.RequestAttachmentUpload(ctx, asEmployee, task.ID, "report.pdf", "application/pdf")
		require.NoError(t, err)
		assert.Equal(t, "https://s3/put", up.URL)
		assert.Equal(t, fixedClock().Add(storage.DefaultPresignedURLExpiry), up.ExpiresAt)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newTaskFixture()
		task := newTask(domain.AcceptAccepted)
		f.tasks.On("GetByID", ctx, task.ID).Return(task, nil)
		f.storage.On("GeneratePresignedUploadURL", ctx, mock.Anything, mock.Anything, mock.Anything).Return("", storage.ErrNotConfigured)

		_, err := f.svc.RequestAttachmentUpload(ctx, asEmployee, task.ID, "a.png", "image/png")
		assert.ErrorIs(t, err, ErrUploadFailed)
		assert.ErrorIs(t, err, storage.ErrNotConfigured)
	})

	t.Run("download without attachment", func(t *testing.T) {
		f := newTaskFixture()
		task := newTask(domain.AcceptAccepted)
		task.Report = &domain.Report{Summary: "no files"}
		f.tasks.On("GetByID", ctx, task.ID).Return(task, nil)

		_, err := f.svc.AttachmentDownloadURL(ctx, asManager, task.ID)
		assert.ErrorIs(t, err, ErrAttachmentNotFound)
	})

	t.Run("download", func(t *testing.T) {
		f := newTaskFixture()
		task := newTask(domain.AcceptAccepted)
		task.Report = &domain.Report{AttachmentKey: "tasks/" + task.ID.Hex() + "/a.pdf"}
		f.tasks.On("GetByID", ctx, task.ID).Return(task, nil)
		f.storage.On("GeneratePresignedDownloadURL", ctx, task.Report.AttachmentKey, storage.DefaultPresignedURLExpiry).Return("https://s3/get", nil)

		down, err := f.svc.AttachmentDownloadURL(ctx, asManager, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://s3/get", down.URL)
	})
}

func TestTaskService_Lists(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture()
	f.tasks.On("GetByManagerID", ctx, testManager.ID).Return([]domain.Task{*newTask(domain.AcceptNoAction)}, nil)
	f.tasks.On("GetByEmployeeID", ctx, testEmployee.ID).Return([]domain.Task{}, errors.New("timeout"))

	tasks, err := f.svc.ListForManager(ctx, asManager)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	_, err = f.svc.ListForEmployee(ctx, asEmployee)
	appErr, ok := apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.Kind.Status())
}
