package regularization

import (
	"hrconnect/internal/middleware"
	"hrconnect/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	regularizations := r.Group("/regularizations")
	regularizations.Use(middleware.AuthMiddleware())
	{
		regularizations.GET("", middleware.RBACAuthorize(rbacService, "regularization", "read"), h.GetAll)
		regularizations.POST("", middleware.RBACAuthorize(rbacService, "regularization", "create"), h.Apply)
		regularizations.PATCH("/:id/review", middleware.RBACAuthorize(rbacService, "regularization", "review"), h.Review)
	}
}
