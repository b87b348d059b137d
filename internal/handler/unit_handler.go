package handler

import (
	"go-gin-ticket-inventory/internal/model"
	"go-gin-ticket-inventory/internal/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UnitHandler struct {
	service service.BoxOfficeService
}

func NewUnitHandler(service service.BoxOfficeService) *UnitHandler {
	return &UnitHandler{service: service}
}

func (h *UnitHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("units/modify", h.Modify)
		router.POST("units/check-in", h.CheckIn)
		router.PUT("units/:id/holder", h.TransferToCustomer)
		router.PUT("units/:id/reservation", h.Reserve)
		router.DELETE("units/:id/reservation", h.Unreserve)
	}
}

func (h *UnitHandler) Modify(c *gin.Context) {
	var req model.ModifyRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	outcome, err := h.service.Modify(c, req)
	if err != nil {
		handleError(c, err, "Modify")
		return
	}
	handleSuccess(c, outcome, http.StatusOK)
}

func (h *UnitHandler) CheckIn(c *gin.Context) {
	var req model.CheckInRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	units, err := h.service.CheckIn(c, req)
	if err != nil {
		handleError(c, err, "CheckIn")
		return
	}
	handleSuccess(c, units, http.StatusOK)
}

// TransferToCustomer 受讓人不存在時回 404，票券不變
func (h *UnitHandler) TransferToCustomer(c *gin.Context) {
	unitID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req model.HolderRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	transferred, err := h.service.TransferToCustomer(c, unitID, req.CustomerID)
	if err != nil {
		handleError(c, err, "TransferToCustomer")
		return
	}
	if !transferred {
		c.JSON(http.StatusNotFound, gin.H{
			"error":       "Recipient customer not found",
			"transferred": false,
		})
		return
	}
	handleSuccess(c, gin.H{"transferred": true}, http.StatusOK)
}

func (h *UnitHandler) Reserve(c *gin.Context) {
	unitID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var req model.ReservationRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	unit, err := h.service.Reserve(c, unitID, req.PerformanceID, req.ActorID)
	if err != nil {
		handleError(c, err, "Reserve")
		return
	}
	handleSuccess(c, unit, http.StatusOK)
}

func (h *UnitHandler) Unreserve(c *gin.Context) {
	unitID, ok := ParamID(c, "id")
	if !ok {
		return
	}
	var actorID int64
	if raw := c.Query("actor_id"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid actor_id"})
			return
		}
		actorID = n
	}

	unit, err := h.service.Unreserve(c, unitID, actorID)
	if err != nil {
		handleError(c, err, "Unreserve")
		return
	}
	handleSuccess(c, unit, http.StatusOK)
}
