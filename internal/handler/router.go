package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/student-records/internal/middleware"
)

// Handlers groups every HTTP handler of the shell API.
type Handlers struct {
	Auth       *AuthHandler
	Shell      *ShellHandler
	Stream     *StreamHandler
	Dashboard  *DashboardHandler
	Profile    *ProfileHandler
	Enrollment *EnrollmentHandler
	Report     *ReportHandler
	Migration  *MigrationHandler
}

// RegisterRoutes mounts the API under api. Everything except login and export
// downloads sits behind guard; mutations are audited.
func RegisterRoutes(api *gin.RouterGroup, h Handlers, guard gin.HandlerFunc, logger *zap.Logger) {
	api.POST("/auth/login", middleware.Audit(logger, "login"), h.Auth.Login)
	api.GET("/export/:token", h.Report.Download)

	secured := api.Group("")
	secured.Use(guard)

	secured.POST("/auth/logout", middleware.Audit(logger, "logout"), h.Auth.Logout)
	secured.GET("/auth/session", h.Auth.Session)

	secured.GET("/state", h.Shell.State)
	secured.GET("/ws", h.Stream.Stream)
	secured.POST("/refresh", h.Shell.Refresh)
	secured.POST("/navigate", h.Shell.Navigate)
	secured.POST("/toast/dismiss", h.Shell.DismissToast)
	secured.GET("/settings", h.Shell.Settings)
	secured.GET("/dashboard", h.Dashboard.Summary)

	profiles := secured.Group("/profiles")
	profiles.GET("", h.Profile.List)
	profiles.GET("/form", h.Profile.Form)
	profiles.POST("", middleware.Audit(logger, "profile.create"), h.Profile.Create)
	profiles.POST("/cancel", h.Profile.CancelEdit)
	profiles.GET("/:uid", h.Profile.Detail)
	profiles.GET("/:uid/print", h.Profile.Print)
	profiles.PUT("/:uid", middleware.Audit(logger, "profile.update"), h.Profile.Update)
	profiles.POST("/:uid/edit", h.Profile.StartEdit)
	profiles.DELETE("/:uid", middleware.Audit(logger, "profile.delete"), h.Profile.Delete)

	enrollments := secured.Group("/enrollments")
	enrollments.GET("", h.Enrollment.List)
	enrollments.GET("/pending", h.Enrollment.Pending)
	enrollments.GET("/form", h.Enrollment.Form)
	enrollments.POST("", middleware.Audit(logger, "enrollment.create"), h.Enrollment.Create)
	enrollments.POST("/cancel", h.Enrollment.CancelEdit)
	enrollments.PUT("/:uid", middleware.Audit(logger, "enrollment.update"), h.Enrollment.Update)
	enrollments.POST("/:uid/edit", h.Enrollment.StartEdit)

	reports := secured.Group("/reports")
	reports.GET("/final", h.Report.Final)
	reports.GET("/final/print", h.Report.FinalPrint)
	reports.GET("/custom/columns", h.Report.Columns)
	reports.POST("/custom/preview", h.Report.Preview)
	reports.POST("/custom/export", middleware.Audit(logger, "report.export"), h.Report.Export)

	migration := secured.Group("/migration")
	migration.GET("", h.Migration.State)
	migration.PUT("/source", h.Migration.SetSource)
	migration.POST("/load", h.Migration.Load)
	migration.PUT("/target", h.Migration.SetTarget)
	migration.POST("/students/:uid/toggle", h.Migration.Toggle)
	migration.POST("/select-all", h.Migration.SelectAll)
	migration.PUT("/students/:uid/roll", h.Migration.SetRoll)
	migration.POST("/submit", middleware.Audit(logger, "migration.submit"), h.Migration.Submit)
}

// RegisterProbes mounts the liveness, readiness and metrics endpoints.
func RegisterProbes(r gin.IRoutes, h *MetricsHandler) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/metrics", h.Prometheus)
}
