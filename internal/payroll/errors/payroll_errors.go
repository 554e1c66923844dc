package payrollerrors

import (
	"net/http"

	"hrconnect/internal/shared/apperror"
)

var (
	ErrInsufficientWorkingDays = apperror.New(
		apperror.CodeInvalidInput,
		"Working days must be positive to process payroll",
		http.StatusUnprocessableEntity,
	)

	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll record not found",
		http.StatusNotFound,
	)

	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid month, expected YYYY-MM",
		http.StatusBadRequest,
	)

	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee id",
		http.StatusBadRequest,
	)

	ErrPayslipNotReady = apperror.New(
		apperror.CodeInvalidState,
		"Payslip has not been generated for this record",
		http.StatusConflict,
	)
)
