package announcement

import (
	"hrconnect/internal/middleware"
	"hrconnect/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	announcements := r.Group("/announcements")
	announcements.Use(middleware.AuthMiddleware())
	{
		announcements.GET("", middleware.RBACAuthorize(rbacService, "announcement", "read"), h.GetAll)
		announcements.POST("", middleware.RBACAuthorize(rbacService, "announcement", "manage"), h.Create)
		announcements.DELETE("/:id", middleware.RBACAuthorize(rbacService, "announcement", "manage"), h.Delete)
	}
}
