package leave

import (
	"hrconnect/internal/middleware"
	"hrconnect/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leave", "read"), h.GetAll)
		leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), h.Apply)
		leaves.PATCH("/:id/review", middleware.RBACAuthorize(rbacService, "leave", "review"), h.Review)
	}
}
