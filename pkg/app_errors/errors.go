package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOffer          = errors.New("invalid offer")
	ErrCapacityExceeded      = errors.New("capacity exceeded")
	ErrInvalidRedemption     = errors.New("invalid redemption")
	ErrTransferInfeasible    = errors.New("transfer infeasible")
	ErrContended             = errors.New("performance is busy, retry")
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrPerformanceNotFound   = errors.New("performance not found")
	ErrVoucherKindNotFound   = errors.New("voucher kind not found")
	ErrUnitNotFound          = errors.New("inventory unit not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidPurchaseMethod = errors.New("invalid purchase method")
	ErrInvalidTransition     = errors.New("invalid unit state transition")
)

// CapacityExceededError 請求數量在提交時已不足
type CapacityExceededError struct {
	Requested int
	Remaining int
	Cause     error
}

func (e *CapacityExceededError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("capacity exceeded: requested %d, remaining %d: %v", e.Requested, e.Remaining, e.Cause)
	}
	return fmt.Sprintf("capacity exceeded: requested %d, remaining %d", e.Requested, e.Remaining)
}

func (e *CapacityExceededError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

func (e *CapacityExceededError) Unwrap() error {
	return e.Cause
}

// TransferInfeasibleError 目的場次容量不足以容納整批轉移
type TransferInfeasibleError struct {
	Requested int
	Fits      int
}

func (e *TransferInfeasibleError) Shortfall() int {
	return e.Requested - e.Fits
}

func (e *TransferInfeasibleError) Error() string {
	return fmt.Sprintf("transfer infeasible: %d units requested, only %d fit (short by %d)", e.Requested, e.Fits, e.Shortfall())
}

func (e *TransferInfeasibleError) Is(target error) bool {
	return target == ErrTransferInfeasible
}
