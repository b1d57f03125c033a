package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/abonnet/univ-edt-api/internal/handler"
	"github.com/abonnet/univ-edt-api/internal/middleware"
	"github.com/abonnet/univ-edt-api/internal/models"
	"github.com/abonnet/univ-edt-api/internal/service"
	"github.com/abonnet/univ-edt-api/internal/store"
	"github.com/abonnet/univ-edt-api/pkg/config"
	"github.com/abonnet/univ-edt-api/pkg/logger"
	corsmiddleware "github.com/abonnet/univ-edt-api/pkg/middleware/cors"
	reqidmiddleware "github.com/abonnet/univ-edt-api/pkg/middleware/requestid"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Auth      *service.AuthService
	Profile   *service.ProfileService
	Classroom *service.ClassroomService
	Class     *service.ClassService
	Teacher   *service.TeacherService
	Student   *service.StudentService
	Subject   *service.SubjectService
	Occupancy *service.OccupancyService
	Admin     *service.AdminService
	Export    *service.ExportService
	Metrics   *service.MetricsService
}

// New assembles the gin engine: ambient middleware, health endpoints and
// the versioned API surface.
func New(cfg *config.Config, s *store.Store, svcs Services, logr *zap.Logger) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(svcs.Metrics))
	r.Use(middleware.Delay(s))

	metricsHandler := handler.NewMetricsHandler(svcs.Metrics)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := handler.NewAuthHandler(svcs.Auth)
	profileHandler := handler.NewProfileHandler(svcs.Profile)
	classroomHandler := handler.NewClassroomHandler(svcs.Classroom)
	classHandler := handler.NewClassHandler(svcs.Class)
	teacherHandler := handler.NewTeacherHandler(svcs.Teacher, svcs.Export)
	studentHandler := handler.NewStudentHandler(svcs.Student)
	subjectHandler := handler.NewSubjectHandler(svcs.Subject)
	occupancyHandler := handler.NewOccupancyHandler(svcs.Occupancy)
	adminHandler := handler.NewAdminHandler(svcs.Admin)
	exportHandler := handler.NewExportHandler(svcs.Export)

	authed := middleware.Auth(svcs.Auth)
	adminOnly := middleware.RequireRoles(models.RoleAdministrator)
	staff := middleware.RequireRoles(models.RoleAdministrator, models.RoleTeacher)
	staffOrSelf := middleware.RBAC(
		string(models.RoleAdministrator), string(models.RoleTeacher), middleware.Self)
	adminOrSelf := middleware.RBAC(string(models.RoleAdministrator), middleware.Self)

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", authHandler.Login)
	api.DELETE("/auth/logout", authed, authHandler.Logout)
	api.GET("/auth/me", authed, authHandler.Me)

	api.PUT("/profile", authed, profileHandler.Update)

	classrooms := api.Group("/classrooms", authed)
	{
		classrooms.GET("", staff, classroomHandler.List)
		classrooms.GET("/:id", classroomHandler.Get)
		classrooms.POST("", adminOnly, classroomHandler.Create)
		classrooms.PUT("/:id", adminOnly, classroomHandler.Update)
		classrooms.DELETE("", adminOnly, classroomHandler.Delete)
	}

	classes := api.Group("/classes", authed)
	{
		classes.GET("", staff, classHandler.List)
		classes.GET("/:id", classHandler.Get)
		classes.POST("", adminOnly, classHandler.Create)
		classes.PUT("/:id", adminOnly, classHandler.Update)
		classes.DELETE("", adminOnly, classHandler.Delete)
		classes.GET("/:id/occupancies", classHandler.Occupancies)
	}

	teachers := api.Group("/teachers", authed)
	{
		teachers.GET("", staff, teacherHandler.List)
		teachers.POST("", adminOnly, teacherHandler.Create)
		teachers.DELETE("", adminOnly, teacherHandler.Delete)
		teachers.GET("/:id", teacherHandler.Get)
		teachers.PUT("/:id", adminOnly, teacherHandler.Update)
		teachers.GET("/:id/subjects", staffOrSelf, teacherHandler.Subjects)
		teachers.GET("/:id/occupancies", staffOrSelf, teacherHandler.Occupancies)
		teachers.GET("/:id/workload", adminOrSelf, teacherHandler.Workload)
		teachers.POST("/:id/workload/export", adminOrSelf, teacherHandler.CreateExport)
	}

	students := api.Group("/students", authed)
	{
		students.GET("", staff, studentHandler.List)
		students.POST("", adminOnly, studentHandler.Create)
		students.DELETE("", adminOnly, studentHandler.Delete)
		students.GET("/:id", studentHandler.Get)
		students.PUT("/:id", adminOnly, studentHandler.Update)
		students.GET("/:id/subjects", staffOrSelf, studentHandler.Subjects)
		students.GET("/:id/occupancies", staffOrSelf, studentHandler.Occupancies)
	}

	subjects := api.Group("/subjects", authed)
	{
		subjects.GET("", staff, subjectHandler.List)
		subjects.POST("", adminOnly, subjectHandler.Create)
		subjects.DELETE("", adminOnly, subjectHandler.Delete)
		subjects.GET("/:id", subjectHandler.Get)
		subjects.PUT("/:id", adminOnly, subjectHandler.Update)
		subjects.POST("/:id/teachers", adminOnly, subjectHandler.AddTeachers)
		subjects.DELETE("/:id/teachers", adminOnly, subjectHandler.RemoveTeachers)
		subjects.GET("/:id/students", staff, subjectHandler.Students)
		subjects.POST("/:id/students", adminOnly, subjectHandler.Enroll)
		subjects.POST("/:id/groups", adminOnly, subjectHandler.AddGroup)
		subjects.DELETE("/:id/groups", adminOnly, subjectHandler.RemoveGroup)
		subjects.POST("/:id/groups/distribute", adminOnly, subjectHandler.Distribute)
		subjects.GET("/:id/occupancies", subjectHandler.Occupancies)
		subjects.POST("/:id/occupancies", adminOnly, subjectHandler.CreateOccupancy)
		subjects.GET("/:id/groups/:group/occupancies", subjectHandler.GroupOccupancies)
		subjects.POST("/:id/groups/:group/occupancies", adminOnly, subjectHandler.CreateGroupOccupancy)
	}

	api.GET("/occupancies", authed, adminOnly, occupancyHandler.List)
	api.DELETE("/occupancies", authed, adminOnly, occupancyHandler.Delete)
	api.GET("/users/:id/modifications", authed, adminOrSelf, occupancyHandler.Modifications)

	admin := api.Group("/admin", authed, adminOnly)
	{
		admin.GET("/dump", adminHandler.Dump)
		admin.POST("/reset", adminHandler.Reset)
		admin.GET("/delay", adminHandler.GetDelay)
		admin.PUT("/delay/:ms", adminHandler.SetDelay)
	}

	api.GET("/exports/:id", authed, exportHandler.Get)
	api.GET("/exports/:id/download", exportHandler.Download)

	return r
}
