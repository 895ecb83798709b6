package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/lummy-consults/lummy-api/internal/handler"
	"github.com/lummy-consults/lummy-api/internal/middleware"
	"github.com/lummy-consults/lummy-api/internal/models"
)

// Handlers groups every HTTP handler mounted by Register.
type Handlers struct {
	Auth    *handler.AuthHandler
	Tutor   *handler.TutorHandler
	Job     *handler.JobHandler
	Metrics *handler.MetricsHandler
}

// Options tunes route registration.
type Options struct {
	Prefix     string
	EnableDocs bool
}

// Register mounts the API on r. Ops endpoints live at the root, everything
// else under opts.Prefix.
func Register(r *gin.Engine, verifier middleware.TokenVerifier, h Handlers, opts Options) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(opts.Prefix)

	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/signup", h.Auth.Signup)
	auth.POST("/login", h.Auth.Login)
	auth.GET("/me", middleware.JWT(verifier), h.Auth.Me)

	api.GET("/protected", middleware.JWT(verifier), h.Auth.Protected)

	public := api.Group("")
	// identity here only tags error reports with the caller
	public.Use(middleware.OptionalJWT(verifier))
	public.GET("/tutors", h.Tutor.ListPublic)
	public.GET("/tutors/:id", h.Tutor.GetPublic)
	public.GET("/jobs", h.Job.ListPublic)
	public.GET("/jobs/:id", h.Job.GetPublic)

	secured := api.Group("")
	secured.Use(middleware.JWT(verifier))
	secured.POST("/tutors", h.Tutor.Upsert)
	secured.GET("/tutors/me", h.Tutor.Mine)

	admin := api.Group("/admin")
	admin.Use(middleware.JWT(verifier), middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/jobs", h.Job.AdminList)
	admin.GET("/jobs/export", h.Job.Export)
	admin.POST("/jobs", h.Job.Create)
	admin.PUT("/jobs/:id", h.Job.Update)
	admin.DELETE("/jobs/:id", h.Job.Delete)
	admin.GET("/tutors", h.Tutor.AdminList)
	admin.PATCH("/tutors/:id/status", h.Tutor.SetStatus)
}
