package attendanceerrors

import (
	"net/http"

	"hrconnect/internal/shared/apperror"
)

var (
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"Already checked in for today",
		http.StatusConflict,
	)

	ErrNoCheckIn = apperror.New(
		apperror.CodeInvalidState,
		"No check-in found for today",
		http.StatusConflict,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid attendance status",
		http.StatusBadRequest,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee id",
		http.StatusBadRequest,
	)
)
