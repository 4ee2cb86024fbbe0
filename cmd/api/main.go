package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ozavishnu24/Doctor-Appointment-app/internal/config"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/handlers"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/middleware"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/observability"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/repo/mongodb"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/services"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/utils"
)

func main() {
	cfg := config.Load()
	log := observability.NewLogger(cfg.Env)

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Error("failed to connect to MongoDB", "err", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		log.Error("MongoDB ping failed", "err", err)
		os.Exit(1)
	}
	db := client.Database(cfg.MongoDB)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Error("failed to create indexes", "err", err)
		os.Exit(1)
	}
	log.Info("connected to MongoDB", "database", cfg.MongoDB)

	// --- Repositories and Services ---
	usersRepo := mongodb.NewUsersRepo(db)
	doctorsRepo := mongodb.NewDoctorsRepo(db)
	servicesRepo := mongodb.NewServicesRepo(db)
	appointmentsRepo := mongodb.NewAppointmentsRepo(db)

	tokens := utils.NewTokenService(cfg.JWTSecret, cfg.JWTExpire)
	notificationSvc := services.NewNotificationService(cfg.TextbeltKey, log)

	reg := prometheus.NewRegistry()
	metrics := observability.NewProm(reg)

	h := handlers.NewHandler(usersRepo, doctorsRepo, servicesRepo, appointmentsRepo, tokens, notificationSvc, metrics)
	auth := middleware.NewAuth(tokens, usersRepo)

	// --- Gin Router ---
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(metrics.GinHandleMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	ping := func() error {
		pingCtx, pingCancel := context.WithTimeout(context.Background(), time.Second)
		defer pingCancel()
		return client.Ping(pingCtx, nil)
	}
	health := handlers.NewHealthHandler(ping)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// --- Routes ---
	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", h.Register)
			authRoutes.POST("/login", h.Login)
		}

		users := api.Group("/users")
		users.Use(auth.RequireAuth())
		{
			users.GET("/me", h.GetProfile)
			users.GET("/profile", h.GetProfile)
			users.PUT("/profile", h.UpdateProfile)

			admin := users.Group("")
			admin.Use(auth.RequireAdmin())
			{
				admin.GET("", h.ListUsers)
				admin.GET("/:id", h.GetUser)
				admin.PUT("/:id", h.UpdateUser)
				admin.DELETE("/:id", h.DeleteUser)
			}
		}

		doctors := api.Group("/doctors")
		{
			doctors.GET("", h.ListDoctors)
			doctors.GET("/:id", h.GetDoctor)
			doctors.GET("/specialization/:specialization", h.DoctorsBySpecialization)
			doctors.GET("/:id/availability", h.GetDoctorAvailability)

			doctors.POST("", auth.RequireAuth(), auth.RequireAdmin(), h.CreateDoctor)
			doctors.PUT("/:id", auth.RequireAuth(), h.UpdateDoctor)
			doctors.DELETE("/:id", auth.RequireAuth(), auth.RequireAdmin(), h.DeleteDoctor)
			doctors.PUT("/:id/rating", auth.RequireAuth(), h.RateDoctor)
		}

		servicesRoutes := api.Group("/services")
		{
			servicesRoutes.GET("", h.ListServices)
			servicesRoutes.GET("/:id", h.GetService)
			servicesRoutes.POST("", auth.RequireAuth(), auth.RequireAdmin(), h.CreateService)
		}

		appointments := api.Group("/appointments")
		appointments.Use(auth.RequireAuth())
		{
			appointments.POST("", h.BookAppointment)
			appointments.GET("", h.ListAppointments)
			appointments.GET("/all", auth.RequireAdmin(), h.ListAllAppointments)
			appointments.PUT("/:id", h.UpdateAppointmentStatus)
			appointments.DELETE("/:id", h.DeleteAppointment)
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
	}
}
