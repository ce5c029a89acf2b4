package api

import (
	"alcyxob/gym-system/internal/apperr"
	"alcyxob/gym-system/internal/domain"
	"alcyxob/gym-system/internal/service"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TrainingHandler struct {
	trainingService service.TrainingService
}

func NewTrainingHandler(trainingService service.TrainingService) *TrainingHandler {
	return &TrainingHandler{trainingService: trainingService}
}

// TrainingRequest times are RFC 3339.
type TrainingRequest struct {
	TrainerID string    `json:"trainerId" binding:"required,objectid"`
	Title     string    `json:"title" binding:"required"`
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
	Location  string    `json:"location"`
	Remarks   string    `json:"remarks"`
}

type TrainingWindowQuery struct {
	StartDate string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
}

func (h *TrainingHandler) Create(c *gin.Context) {
	var req TrainingRequest
	if !bindJSON(c, &req) {
		return
	}
	trainerID, _ := primitive.ObjectIDFromHex(req.TrainerID)

	training, err := h.trainingService.Create(c.Request.Context(), caller(c), service.TrainingInput{
		TrainerID: trainerID,
		Title:     req.Title,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Location:  req.Location,
		Remarks:   req.Remarks,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, "training.requested", "training", training)
}

func (h *TrainingHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	training, err := h.trainingService.Get(c.Request.Context(), caller(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "training.found", "training", training)
}

func (h *TrainingHandler) ListForUser(c *gin.Context) {
	h.list(c, h.trainingService.ListForUser)
}

func (h *TrainingHandler) ListForTrainer(c *gin.Context) {
	h.list(c, h.trainingService.ListForTrainer)
}

type listFunc = func(ctx context.Context, caller service.Principal, window service.DateWindow) ([]domain.IndividualTraining, error)

func (h *TrainingHandler) list(c *gin.Context, fn listFunc) {
	var q TrainingWindowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, apperr.ErrValidation.With(validationDetail(err)).Wrap(err))
		return
	}
	trainings, err := fn(c.Request.Context(), caller(c), service.DateWindow{StartDate: q.StartDate, EndDate: q.EndDate})
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "training.list", "trainings", trainings)
}

type transitionFunc = func(ctx context.Context, caller service.Principal, id primitive.ObjectID) (*domain.IndividualTraining, error)

// transition serves accept, reject and cancel.
func (h *TrainingHandler) transition(fn transitionFunc, key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		training, err := fn(c.Request.Context(), caller(c), id)
		if err != nil {
			abortWithError(c, err)
			return
		}
		respond(c, http.StatusOK, key, "training", training)
	}
}

func (h *TrainingHandler) Accept() gin.HandlerFunc {
	return h.transition(h.trainingService.Accept, "training.accepted")
}

func (h *TrainingHandler) Reject() gin.HandlerFunc {
	return h.transition(h.trainingService.Reject, "training.rejected")
}

func (h *TrainingHandler) Cancel() gin.HandlerFunc {
	return h.transition(h.trainingService.Cancel, "training.cancelled")
}
