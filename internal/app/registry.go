package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"go-hrms/internal/accrual"
	"go-hrms/internal/auth"
	"go-hrms/internal/leavebalance"
	"go-hrms/internal/leavetype"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/rbac"
	"go-hrms/internal/user"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	leaveBalanceRepo := leavebalance.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(userRepo)
	leaveTypeService := leavetype.NewService(db, leaveTypeRepo, rdb)
	leaveBalanceService := leavebalance.NewServiceWithOutbox(db, leaveBalanceRepo, leaveTypeRepo, userRepo, outboxRepo)
	accrualService := accrual.NewServiceWithOutbox(db, leaveBalanceRepo, leaveTypeRepo, outboxRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	leaveBalanceHandler := leavebalance.NewHandler(leaveBalanceService)
	accrualHandler := accrual.NewHandler(accrualService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, rbacService)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		leavebalance.RegisterRoutes(api, leaveBalanceHandler, rbacService, rdb)
		accrual.RegisterRoutes(api, accrualHandler, rbacService, rdb)
	}

	return nil
}
