package accrual

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes exposes manual triggers for the scheduled runs. They mutate
// the whole ledger, so both are idempotency-keyed and admin-only.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	accruals := r.Group("/leave-accruals")
	accruals.Use(middleware.AuthMiddleware())
	{
		accruals.POST("/monthly/run",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "leave_accrual", "run"),
			middleware.Idempotency(rdb),
			handler.RunMonthly,
		)
		accruals.POST("/year-end/run",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "leave_accrual", "run"),
			middleware.Idempotency(rdb),
			handler.RunYearEnd,
		)
	}
}
