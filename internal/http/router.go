package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mirkamary/schoolhub/internal/auth"
	"github.com/mirkamary/schoolhub/internal/config"
	"github.com/mirkamary/schoolhub/internal/http/handlers"
	"github.com/mirkamary/schoolhub/internal/http/middlewares"
	"github.com/mirkamary/schoolhub/internal/observability"
	"github.com/mirkamary/schoolhub/internal/repo/mongodb"
	"github.com/mirkamary/schoolhub/internal/users"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "schoolhub-api"

func NewRouter(cfg config.Config, client *mongo.Client, issuer *auth.Issuer, reg *prometheus.Registry, prom *observability.Prom) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(prom.GinHandleMiddleware())

	// health

	ping := func() error {
		if client == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return client.Ping(ctx, nil)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	r.GET("/", func(ctx *gin.Context) {
		ctx.String(200, "Mirkamary Adarsa High School is sitting on this server")
	})

	// wire up repositories

	db := client.Database(cfg.MongoDB)

	usersStore := mongodb.NewUsersStore(db, prom)
	announcementsRepo := mongodb.NewAnnouncementsRepo(db, prom)
	bannersRepo := mongodb.NewBannersRepo(db, prom)
	teachersRepo := mongodb.NewTeachersRepo(db, prom)

	lifecycle := users.NewService(usersStore)

	// wire up handlers

	tokenHandler := handlers.NewTokenHandler(issuer, cfg.IsProd())
	usersHandler := handlers.NewUsersHandler(lifecycle)
	announcementsHandler := handlers.NewAnnouncementsHandler(announcementsRepo)
	bannersHandler := handlers.NewBannersHandler(bannersRepo)
	teachersHandler := handlers.NewTeachersHandler(teachersRepo)

	// token issuance is unauthenticated, keep a lid on it
	tokenLimiter := middlewares.NewRateLimiter(30, time.Minute)

	r.POST("/jwt", tokenLimiter.Middleware(middlewares.KeyByIP), tokenHandler.Create)
	r.GET("/logout", tokenHandler.Logout)

	r.GET("/users", usersHandler.ListUsers)
	r.GET("/users/:email", usersHandler.GetUserByEmail)
	r.PATCH("/users/:email", usersHandler.PatchUserRole)
	r.PUT("/user", usersHandler.UpsertUser)

	r.GET("/announcement", announcementsHandler.ListAnnouncements)
	r.POST("/announcement", announcementsHandler.CreateAnnouncement)

	r.GET("/banner", bannersHandler.ListBanners)
	r.POST("/banner", bannersHandler.CreateBanner)
	r.PATCH("/banner/:id", bannersHandler.UpdateBanner)

	r.GET("/teacher", teachersHandler.ListTeachers)
	r.GET("/teacher/:id", teachersHandler.GetTeacherByID)
	r.POST("/teacher", teachersHandler.CreateTeacher)
	r.PATCH("/teacher/:id", teachersHandler.UpdateTeacher)
	r.DELETE("/teacher/:id", teachersHandler.DeleteTeacher)

	return r
}
