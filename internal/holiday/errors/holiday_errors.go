package holidayerrors

import (
	"net/http"

	"hrconnect/internal/shared/apperror"
)

var (
	ErrHolidayNotFound = apperror.New(
		apperror.CodeNotFound,
		"Holiday not found",
		http.StatusNotFound,
	)

	ErrHolidayDateExists = apperror.New(
		apperror.CodeConflict,
		"A holiday already exists on that date",
		http.StatusConflict,
	)

	ErrInvalidHolidayDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid holiday date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
