package employeeerrors

import (
	"net/http"

	"hrconnect/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"An employee with this email already exists",
		http.StatusConflict,
	)

	ErrInvalidDateOfJoining = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date_of_joining format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
