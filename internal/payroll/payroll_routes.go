package payroll

import (
	"hrconnect/internal/middleware"
	"hrconnect/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.GetByMonth)
		payrolls.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.GetByID)
		payrolls.GET("/:id/payslip", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.Payslip)
		payrolls.POST("/process",
			middleware.RBACAuthorize(rbacService, "payroll", "process"),
			middleware.Idempotency(rdb),
			h.Process,
		)
	}
}
