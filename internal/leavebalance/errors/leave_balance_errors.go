package leavebalanceerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrLeaveBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found",
		http.StatusNotFound,
	)
	ErrAlreadyAssigned = apperror.New(
		apperror.CodeConflict,
		"leave type already assigned for this user and year",
		http.StatusConflict,
	)
	ErrNoEligibleUsers = apperror.New(
		apperror.CodeInvalidInput,
		"no users match the applicable roles for this leave type",
		http.StatusBadRequest,
	)
	ErrNoLeaveTypesFound = apperror.New(
		apperror.CodeNotFound,
		"no valid leave types found",
		http.StatusNotFound,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"year must be a four-digit number",
		http.StatusBadRequest,
	)
)
