package leaveerrors

import (
	"net/http"

	"hrconnect/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)

	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Leave request has already been reviewed",
		http.StatusConflict,
	)

	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"Leave type is required",
		http.StatusBadRequest,
	)

	ErrInvalidSession = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid leave session",
		http.StatusBadRequest,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid leave date range",
		http.StatusBadRequest,
	)

	ErrInvalidReviewStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Review status must be Approved or Rejected",
		http.StatusBadRequest,
	)

	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee id",
		http.StatusBadRequest,
	)
)
