package handler

import (
	"go-gin-ticket-inventory/internal/model"
	"go-gin-ticket-inventory/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct {
	service service.BoxOfficeService
}

func NewPurchaseHandler(service service.BoxOfficeService) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

func (h *PurchaseHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("purchases", h.Purchase)
	}
}

func (h *PurchaseHandler) Purchase(c *gin.Context) {
	var req model.AllocationRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	resp, err := h.service.Purchase(c, req)
	if err != nil {
		handleError(c, err, "Purchase")
		return
	}
	handleSuccess(c, resp, http.StatusCreated)
}
