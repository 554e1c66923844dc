package app

import (
	"database/sql"

	"hrconnect/internal/announcement"
	"hrconnect/internal/attendance"
	"hrconnect/internal/auth"
	"hrconnect/internal/document"
	"hrconnect/internal/employee"
	"hrconnect/internal/holiday"
	"hrconnect/internal/leave"
	"hrconnect/internal/messaging/kafka"
	"hrconnect/internal/payroll"
	"hrconnect/internal/rbac"
	"hrconnect/internal/regularization"
	"hrconnect/internal/settings"
	"hrconnect/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	announcementRepo := announcement.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	documentRepo := document.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	regularizationRepo := regularization.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	leaveChecker := leave.NewAttendanceLeaveChecker(leaveRepo)

	announcementService := announcement.NewService(announcementRepo)
	attendanceService := attendance.NewService(db, attendanceRepo, leaveChecker)
	authService := auth.NewService(authRepo)
	documentService := document.NewService(documentRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	holidayService := holiday.NewService(holidayRepo, rdb)
	leaveService := leave.NewService(db, leaveRepo, outboxRepo)
	settingsService := settings.NewService(settingsRepo, holidayService)
	payrollService := payroll.NewService(db, payrollRepo, settingsService, outboxRepo)
	regularizationService := regularization.NewService(db, regularizationRepo, attendanceRepo, leaveChecker)

	// --- Handlers ---
	announcementHandler := announcement.NewHandler(announcementService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	authHandler := auth.NewHandler(authService)
	documentHandler := document.NewHandler(documentService)
	employeeHandler := employee.NewHandler(employeeService)
	holidayHandler := holiday.NewHandler(holidayService)
	leaveHandler := leave.NewHandler(leaveService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	regularizationHandler := regularization.NewHandler(regularizationService)
	settingsHandler := settings.NewHandler(settingsService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		announcement.RegisterRoutes(api, announcementHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		document.RegisterRoutes(api, documentHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		holiday.RegisterRoutes(api, holidayHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		regularization.RegisterRoutes(api, regularizationHandler, rbacService)
		settings.RegisterRoutes(api, settingsHandler, rbacService)
	}

	return nil
}
