package handler

import (
	"errors"
	apperrors "go-gin-ticket-inventory/pkg/app_errors"
	"go-gin-ticket-inventory/pkg/logger"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// ParamID 解析路徑上的數字 id；失敗時已回應 400
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))

	var capacityErr *apperrors.CapacityExceededError
	var transferErr *apperrors.TransferInfeasibleError
	switch {
	case errors.As(err, &capacityErr):
		log.Warn("Capacity exceeded")
		body := gin.H{
			"error":     "Capacity exceeded",
			"requested": capacityErr.Requested,
			"remaining": capacityErr.Remaining,
		}
		if capacityErr.Cause != nil {
			body["reason"] = capacityErr.Cause.Error()
		}
		c.JSON(http.StatusConflict, body)
	case errors.As(err, &transferErr):
		log.Warn("Transfer infeasible")
		c.JSON(http.StatusConflict, gin.H{
			"error":     "Transfer infeasible",
			"requested": transferErr.Requested,
			"fits":      transferErr.Fits,
			"shortfall": transferErr.Shortfall(),
		})
	case errors.Is(err, apperrors.ErrContended):
		log.Warn("Performance contended")
		c.JSON(http.StatusLocked, gin.H{
			"error": "Performance is busy, retry",
		})
	case errors.Is(err, apperrors.ErrInvalidRedemption):
		log.Warn("Invalid redemption")
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, apperrors.ErrInvalidTransition):
		log.Warn("Invalid transition")
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, apperrors.ErrInvalidOffer):
		log.Warn("Invalid offer")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, apperrors.ErrInvalidPurchaseMethod), errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, apperrors.ErrCustomerNotFound):
		log.Warn("Customer not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Customer not found",
		})
	case errors.Is(err, apperrors.ErrPerformanceNotFound):
		log.Warn("Performance not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Performance not found",
		})
	case errors.Is(err, apperrors.ErrUnitNotFound):
		log.Warn("Unit not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Inventory unit not found",
		})
	case errors.Is(err, apperrors.ErrVoucherKindNotFound):
		log.Warn("Voucher kind not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Voucher kind not found",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func handleSuccess(c *gin.Context, data interface{}, statusCode int) {
	if data != nil {
		c.JSON(statusCode, data)
	} else {
		c.Status(statusCode)
	}
}
