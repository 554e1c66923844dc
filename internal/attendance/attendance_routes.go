package attendance

import (
	"hrconnect/internal/middleware"
	"hrconnect/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetAll)
		attendances.POST("/check-in", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.CheckIn)
		attendances.POST("/check-out", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.CheckOut)
		attendances.POST("/mark", middleware.RBACAuthorize(rbacService, "attendance", "manage"), h.ManualMark)
	}
}
