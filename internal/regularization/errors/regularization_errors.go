package regularizationerrors

import (
	"net/http"

	"hrconnect/internal/shared/apperror"
)

var (
	ErrRegularizationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Regularization request not found",
		http.StatusNotFound,
	)

	ErrAlreadyReviewed = apperror.New(
		apperror.CodeInvalidState,
		"Regularization request has already been reviewed",
		http.StatusConflict,
	)

	ErrNoCheckInOnDate = apperror.New(
		apperror.CodeInvalidState,
		"No check-in recorded on the requested date",
		http.StatusConflict,
	)

	ErrInvalidCheckOutTime = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid check-out time, expected HH:MM:SS",
		http.StatusBadRequest,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee id",
		http.StatusBadRequest,
	)
)
