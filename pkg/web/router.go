package web

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/scienceol/labportal/internal/config"
	"github.com/scienceol/labportal/pkg/middleware/auth"
	"github.com/scienceol/labportal/pkg/middleware/db"
	"github.com/scienceol/labportal/pkg/middleware/logger"
	"github.com/scienceol/labportal/pkg/middleware/redis"
	"github.com/scienceol/labportal/pkg/middleware/session"
	"github.com/scienceol/labportal/pkg/web/render"
	dashboardView "github.com/scienceol/labportal/pkg/web/views/dashboard"
	"github.com/scienceol/labportal/pkg/web/views/health"
	"github.com/scienceol/labportal/pkg/web/views/login"
	recordView "github.com/scienceol/labportal/pkg/web/views/record"
	savedViewView "github.com/scienceol/labportal/pkg/web/views/savedview"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	dImpl "github.com/scienceol/labportal/pkg/core/dashboard/dashboard"
	lImpl "github.com/scienceol/labportal/pkg/core/login/login"
	rImpl "github.com/scienceol/labportal/pkg/core/record/record"
	vImpl "github.com/scienceol/labportal/pkg/core/savedview/savedview"
	aStore "github.com/scienceol/labportal/pkg/repo/account"
	rStore "github.com/scienceol/labportal/pkg/repo/record"
	vStore "github.com/scienceol/labportal/pkg/repo/savedview"
)

// Handles groups everything Register mounts.
type Handles struct {
	Sessions  session.Store
	Dashboard *dashboardView.Handle
	Record    *recordView.Handle
	SavedView *savedViewView.Handle
	Login     *login.Login
	Health    *health.Handle
}

func NewRouter(_ context.Context, g *gin.Engine) {
	conf := config.Global()
	ds := db.DB()
	sessions := session.NewRedisStore(redis.GetClient(), time.Duration(conf.Session.TTLHours)*time.Hour)
	r := render.New(sessions)
	viewStore := vStore.New(ds)

	installMiddleware(g)
	Register(g, &Handles{
		Sessions:  sessions,
		Dashboard: dashboardView.NewDashboardHandle(dImpl.New(rStore.NewStats(ds)), r),
		Record:    recordView.NewRecordHandle(rImpl.New(rStore.New(ds), viewStore), r),
		SavedView: savedViewView.NewSavedViewHandle(vImpl.New(viewStore), r),
		Login: login.NewLogin(lImpl.New(aStore.New(ds), sessions, lImpl.Config{
			JWTSecret: []byte(conf.Auth.JWTSecret),
			TokenTTL:  time.Duration(conf.Auth.JWTTTLHours) * time.Hour,
		}), r, conf.Session),
		Health: health.NewHealthHandle(ds, redis.GetClient(), conf.Database.Driver),
	})
}

func installMiddleware(g *gin.Engine) {
	g.ContextWithFallback = true
	server := config.Global().Server
	g.Use(otelgin.Middleware(fmt.Sprintf("%s-%s", server.Platform, server.Service)))
	g.Use(logger.LogWithWriter())
}

// Register mounts the html pages and the json api on g.
func Register(g *gin.Engine, h *Handles) {
	g.SetHTMLTemplate(render.Templates())

	g.GET("/login/", auth.OptionalSession(h.Sessions), h.Login.Page)
	g.POST("/login/", h.Login.Login)
	g.POST("/logout/", h.Login.Logout)

	pages := g.Group("/", auth.RequireLogin(h.Sessions))
	{
		pages.GET("/", h.Dashboard.Page)

		records := pages.Group("/records")
		records.GET("/", h.Record.List)
		records.GET("/new/", h.Record.New)
		records.POST("/new/", h.Record.Create)
		records.GET("/:id/", h.Record.Detail)
		records.GET("/:id/edit/", h.Record.Edit)
		records.POST("/:id/edit/", h.Record.Update)
		records.GET("/:id/delete/", h.Record.ConfirmDelete)
		records.POST("/:id/delete/", h.Record.Delete)

		views := pages.Group("/views")
		views.GET("/", h.SavedView.List)
		views.GET("/new/", h.SavedView.New)
		views.POST("/new/", h.SavedView.Create)
		views.GET("/:id/edit/", h.SavedView.Edit)
		views.POST("/:id/edit/", h.SavedView.Update)
		views.GET("/:id/delete/", h.SavedView.ConfirmDelete)
		views.POST("/:id/delete/", h.SavedView.Delete)
	}

	g.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := g.Group("/api", cors.Default())
	api.GET("/health", h.Health.Health)
	api.GET("/health/live", h.Health.Live)
	api.GET("/health/ready", h.Health.Ready)

	{
		v1 := api.Group("/v1")
		v1.POST("/auth/token", h.Login.Token)

		authed := v1.Group("", auth.AuthAPI(h.Sessions))
		authed.GET("/dashboard", h.Dashboard.Summary)
		authed.GET("/records", h.Record.APIList)
		authed.GET("/views", h.SavedView.APIList)
	}
}
