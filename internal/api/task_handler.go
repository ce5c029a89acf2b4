package api

import (
	"alcyxob/gym-system/internal/apperr"
	"alcyxob/gym-system/internal/service"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type TaskRequest struct {
	EmployeeID  string `json:"employeeId" binding:"required,objectid"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate" binding:"required,datetime=2006-01-02"`
	Reminder    string `json:"reminder" binding:"omitempty,datetime=2006-01-02"`
}

type ApprovalRequest struct {
	Comment string `json:"comment"`
}

type ReportRequest struct {
	Summary       string `json:"summary" binding:"required"`
	AttachmentKey string `json:"attachmentKey"`
}

type AttachmentRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

type EvaluationRequest struct {
	Mark    int    `json:"mark"`
	Comment string `json:"comment"`
}

func (r TaskRequest) input() service.TaskInput {
	employeeID, _ := primitive.ObjectIDFromHex(r.EmployeeID)
	return service.TaskInput{
		EmployeeID:  employeeID,
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		DueDate:     r.DueDate,
		Reminder:    r.Reminder,
	}
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req TaskRequest
	if !bindJSON(c, &req) {
		return
	}
	task, err := h.taskService.Create(c.Request.Context(), caller(c), req.input())
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, "task.created", "task", task)
}

func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	task, err := h.taskService.Get(c.Request.Context(), caller(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.found", "task", task)
}

func (h *TaskHandler) ListForManager(c *gin.Context) {
	tasks, err := h.taskService.ListForManager(c.Request.Context(), caller(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.list", "tasks", tasks)
}

func (h *TaskHandler) ListForEmployee(c *gin.Context) {
	tasks, err := h.taskService.ListForEmployee(c.Request.Context(), caller(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.list", "tasks", tasks)
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req TaskRequest
	if !bindJSON(c, &req) {
		return
	}
	task, err := h.taskService.Update(c.Request.Context(), caller(c), id, req.input())
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.updated", "task", task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.taskService.Delete(c.Request.Context(), caller(c), id); err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.deleted", "", nil)
}

// ChangeApproval handles PUT /task/:id/approval/:status. The comment body is optional.
func (h *TaskHandler) ChangeApproval(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		abortWithError(c, apperr.ErrValidation.With(validationDetail(err)).Wrap(err))
		return
	}

	status := c.Param("status")
	task, err := h.taskService.ChangeApproval(c.Request.Context(), caller(c), id, status, req.Comment)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.approval", "task", task, task.EmployeeAccept)
}

func (h *TaskHandler) SubmitReport(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ReportRequest
	if !bindJSON(c, &req) {
		return
	}
	task, err := h.taskService.SubmitReport(c.Request.Context(), caller(c), id, service.ReportInput{
		Summary:       req.Summary,
		AttachmentKey: req.AttachmentKey,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.reported", "task", task)
}

// RequestAttachmentUpload returns a presigned PUT URL the client uploads to directly.
func (h *TaskHandler) RequestAttachmentUpload(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req AttachmentRequest
	if !bindJSON(c, &req) {
		return
	}
	upload, err := h.taskService.RequestAttachmentUpload(c.Request.Context(), caller(c), id, req.FileName, req.ContentType)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.attachmentUpload", "upload", upload)
}

func (h *TaskHandler) AttachmentDownloadURL(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	download, err := h.taskService.AttachmentDownloadURL(c.Request.Context(), caller(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.attachmentDownload", "upload", download)
}

func (h *TaskHandler) Evaluate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req EvaluationRequest
	if !bindJSON(c, &req) {
		return
	}
	task, err := h.taskService.Evaluate(c.Request.Context(), caller(c), id, req.Mark, req.Comment)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "task.evaluated", "task", task)
}
