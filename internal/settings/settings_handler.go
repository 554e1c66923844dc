package settings

import (
	"net/http"

	"hrconnect/internal/shared/apperror"
	"hrconnect/internal/shared/response"
	"hrconnect/internal/shared/timeutil"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) WorkingDays(c *gin.Context) {
	month := c.Query("month")
	if _, err := timeutil.ParseMonth(month); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid month, expected YYYY-MM", err.Error())
		return
	}

	days, err := h.service.WorkingDays(c.Request.Context(), month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, WorkingDaysResponse{Month: month, WorkingDays: days}, nil)
}
