package leavebalance

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes wires the ledger endpoints. The assign route hangs off the
// leave-types resource because assignment is addressed by policy.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	leaveTypes := r.Group("/leave-types")
	leaveTypes.Use(middleware.AuthMiddleware())
	{
		leaveTypes.POST("/:id/assign",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "leave_balance", "assign"),
			middleware.Idempotency(rdb),
			handler.AssignToUsers,
		)
	}

	balances := r.Group("/leave-balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.POST("/bulk-assign",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "leave_balance", "assign"),
			middleware.Idempotency(rdb),
			handler.BulkAssign,
		)
		balances.GET("/users/:userId",
			middleware.RBACAuthorize(rbacService, "leave_balance", "read"),
			handler.GetUserBalances,
		)
		balances.GET("/users/:userId/types/:leaveTypeId",
			middleware.RBACAuthorize(rbacService, "leave_balance", "read"),
			handler.GetUserBalanceByType,
		)
	}
}
