package auth

import (
	"hrconnect/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	group := r.Group("/auth")
	{
		group.POST("/login", middleware.RateLimitByIP(rate.Limit(5), 10), h.Login)
		group.POST("/refresh", h.Refresh)
		group.GET("/me", middleware.AuthMiddleware(), h.Me)
	}
}
