package leavetypeerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found",
		http.StatusNotFound,
	)
	ErrLeaveTypeNameExists = apperror.New(
		apperror.CodeConflict,
		"leave type with this name already exists",
		http.StatusConflict,
	)
	ErrCarryForwardConfigInvalid = apperror.New(
		apperror.CodeInvalidInput,
		"max_carry_forward_days is required when carry forward is allowed",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type id",
		http.StatusBadRequest,
	)
	ErrInvalidAccrualType = apperror.New(
		apperror.CodeInvalidInput,
		"accrual_type must be MONTHLY or YEARLY",
		http.StatusBadRequest,
	)
)
