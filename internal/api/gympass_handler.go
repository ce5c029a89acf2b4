package api

import (
	"alcyxob/gym-system/internal/domain"
	"alcyxob/gym-system/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GymPassHandler serves offers and purchased gym passes.
type GymPassHandler struct {
	gymPassService service.GymPassService
}

func NewGymPassHandler(gymPassService service.GymPassService) *GymPassHandler {
	return &GymPassHandler{gymPassService: gymPassService}
}

// PriceRequest carries the validation tags domain.Price cannot.
type PriceRequest struct {
	Amount   float64 `json:"amount" binding:"gte=0"`
	Currency string  `json:"currency" binding:"required,len=3"`
	Period   string  `json:"period" binding:"required"`
}

type OfferRequest struct {
	Title        string                  `json:"title" binding:"required"`
	Subheader    string                  `json:"subheader"`
	Price        PriceRequest            `json:"price"`
	Description  domain.OfferDescription `json:"description"`
	Premium      bool                    `json:"premium"`
	ValidityDays int                     `json:"validityDays" binding:"required,min=1"`
	Entries      int                     `json:"entries" binding:"min=0"`
}

func (r OfferRequest) input() service.OfferInput {
	return service.OfferInput{
		Title:        r.Title,
		Subheader:    r.Subheader,
		Price:        domain.Price{Amount: r.Price.Amount, Currency: r.Price.Currency, Period: r.Price.Period},
		Description:  r.Description,
		Premium:      r.Premium,
		ValidityDays: r.ValidityDays,
		Entries:      r.Entries,
	}
}

type PurchaseRequest struct {
	OfferID   string `json:"offerId" binding:"required,objectid"`
	StartDate string `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
}

func (h *GymPassHandler) ListOffers(c *gin.Context) {
	offers, err := h.gymPassService.ListOffers(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "offer.list", "offers", offers)
}

func (h *GymPassHandler) GetOffer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	offer, err := h.gymPassService.GetOffer(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "offer.found", "offer", offer)
}

func (h *GymPassHandler) CreateOffer(c *gin.Context) {
	var req OfferRequest
	if !bindJSON(c, &req) {
		return
	}
	offer, err := h.gymPassService.CreateOffer(c.Request.Context(), req.input())
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, "offer.created", "offer", offer)
}

func (h *GymPassHandler) UpdateOffer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req OfferRequest
	if !bindJSON(c, &req) {
		return
	}
	offer, err := h.gymPassService.UpdateOffer(c.Request.Context(), id, req.input())
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "offer.updated", "offer", offer)
}

func (h *GymPassHandler) DeleteOffer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.gymPassService.DeleteOffer(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "offer.deleted", "", nil)
}

func (h *GymPassHandler) Purchase(c *gin.Context) {
	var req PurchaseRequest
	if !bindJSON(c, &req) {
		return
	}
	offerID, _ := primitive.ObjectIDFromHex(req.OfferID) // validated by binding

	pass, err := h.gymPassService.Purchase(c.Request.Context(), caller(c), offerID, req.StartDate)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, "gympass.purchased", "purchasedGymPass", pass)
}

func (h *GymPassHandler) Status(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	status, err := h.gymPassService.Status(c.Request.Context(), caller(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "gympass.status", "result", status)
}

// Suspend handles PUT /purchase/:id/suspend/:date.
func (h *GymPassHandler) Suspend(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	date := c.Param("date")
	pass, err := h.gymPassService.Suspend(c.Request.Context(), caller(c), id, date)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "gympass.suspended", "purchasedGymPass", pass, date)
}

func (h *GymPassHandler) ListUserPasses(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	passes, err := h.gymPassService.ListUserPasses(c.Request.Context(), caller(c), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "gympass.list", "purchasedGymPasses", passes)
}

func (h *GymPassHandler) RegisterEntry(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	pass, err := h.gymPassService.RegisterEntry(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "gympass.entry", "purchasedGymPass", pass)
}
