package routes

import (
	adminapi "educa-app/internal/api/admin"
	authapi "educa-app/internal/api/auth"
	contentsapi "educa-app/internal/api/contents"
	coursesapi "educa-app/internal/api/courses"
	"educa-app/internal/api/users"
	"educa-app/internal/app/http/middleware"
	"educa-app/internal/domain/access"
	"educa-app/internal/domain/authoring"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	Authoring *authoring.Service
	MaxUpload int64
	// Gatherer backs /metrics; nil serves the default registry.
	Gatherer prometheus.Gatherer
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	contents := &contentsapi.Handler{Service: deps.Authoring, MaxUpload: deps.MaxUpload}
	courses := &coursesapi.Handler{Service: deps.Authoring}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	} else {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.GET("/subjects", coursesapi.ListSubjects)
	r.GET("/catalog", coursesapi.ListCatalog)
	r.GET("/catalog/:slug", coursesapi.GetCourse)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", users.GetCurrentUser)

	// Instructors manage their own courses; ownership is enforced per query.
	teach := auth.Group("/")
	teach.Use(middleware.RequireRole(access.RoleInstructor, access.RoleAdmin))

	teach.GET("/courses/mine", coursesapi.ListMine)
	teach.POST("/courses", coursesapi.Create)
	teach.PUT("/courses/:id", coursesapi.Update)
	teach.DELETE("/courses/:id", courses.Delete)
	teach.GET("/courses/:id/modules", coursesapi.GetModules)
	teach.POST("/courses/:id/modules", courses.SaveModules)

	teach.POST("/modules/reorder", coursesapi.ReorderModules)
	teach.GET("/modules/:id/content", contents.List)

	teach.POST("/content/reorder", contentsapi.Reorder)
	teach.POST("/content/:id/delete", contents.Delete)
	teach.GET("/content/:id/:kind", contents.GetForm)
	teach.GET("/content/:id/:kind/:item_id", contents.GetForm)
	teach.POST("/content/:id/:kind", contents.SaveForm)
	teach.POST("/content/:id/:kind/:item_id", contents.SaveForm)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(access.RoleAdmin))
	admin.GET("/stats", adminapi.GetAdminStats)
}
