package settings

import (
	"hrconnect/internal/middleware"
	"hrconnect/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	group := r.Group("/settings")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("", middleware.RBACAuthorize(rbacService, "settings", "read"), h.Get)
		group.PUT("", middleware.RBACAuthorize(rbacService, "settings", "manage"), h.Update)
		group.GET("/working-days", middleware.RBACAuthorize(rbacService, "settings", "read"), h.WorkingDays)
	}
}
