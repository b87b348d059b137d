package handler

import (
	"go-gin-ticket-inventory/internal/model"
	"go-gin-ticket-inventory/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	service service.BoxOfficeService
}

func NewOfferHandler(service service.BoxOfficeService) *OfferHandler {
	return &OfferHandler{service: service}
}

func (h *OfferHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("performances/:id/offers", h.Quote)
		router.GET("performances/:id/stats", h.Stats)
		router.POST("performances/:id/capacity", h.AddCapacity)
		router.GET("bundles", h.Bundles)
	}
}

func (h *OfferHandler) Quote(c *gin.Context) {
	performanceID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var query model.QuoteQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}

	offers, err := h.service.Quote(c, performanceID, query.CustomerID, query.PromoCode)
	if err != nil {
		handleError(c, err, "Quote")
		return
	}
	handleSuccess(c, offers, http.StatusOK)
}

func (h *OfferHandler) Bundles(c *gin.Context) {
	var query model.QuoteQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}

	bundles, err := h.service.Bundles(c, query.CustomerID, query.PromoCode)
	if err != nil {
		handleError(c, err, "Bundles")
		return
	}
	handleSuccess(c, bundles, http.StatusOK)
}

func (h *OfferHandler) Stats(c *gin.Context) {
	performanceID, ok := ParamID(c, "id")
	if !ok {
		return
	}

	stats, err := h.service.Stats(c, performanceID)
	if err != nil {
		handleError(c, err, "Stats")
		return
	}
	handleSuccess(c, stats, http.StatusOK)
}

func (h *OfferHandler) AddCapacity(c *gin.Context) {
	performanceID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req model.CapacityRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	stats, err := h.service.AddCapacity(c, performanceID, req.Seats)
	if err != nil {
		handleError(c, err, "AddCapacity")
		return
	}
	handleSuccess(c, stats, http.StatusOK)
}
