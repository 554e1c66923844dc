package document

import (
	"hrconnect/internal/middleware"
	"hrconnect/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	documents := r.Group("/documents")
	documents.Use(middleware.AuthMiddleware())
	{
		documents.GET("", middleware.RBACAuthorize(rbacService, "document", "read"), h.GetMine)
		documents.POST("", middleware.RBACAuthorize(rbacService, "document", "create"), h.Create)
		documents.DELETE("/:id", middleware.RBACAuthorize(rbacService, "document", "manage"), h.Delete)
	}
}
