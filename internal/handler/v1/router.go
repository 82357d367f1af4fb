package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medidesk/frontdesk/internal/config"
	"github.com/medidesk/frontdesk/internal/service"
	"github.com/medidesk/frontdesk/pkg/auth"
	"github.com/medidesk/frontdesk/pkg/metrics"
)

type RouterDeps struct {
	Config         *config.Config
	Logger         *zap.Logger
	JWTManager     *auth.JWTManager
	Metrics        *metrics.Collector
	AuthSvc        *service.AuthService
	PatientSvc     *service.PatientService
	DoctorSvc      *service.DoctorService
	AppointmentSvc *service.AppointmentService
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(deps.Logger))
	r.Use(Metrics(deps.Metrics))
	r.Use(CORS(deps.Config.CORS))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": deps.Config.App.Version})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	authHandler := NewAuthHandler(deps.AuthSvc)
	patientHandler := NewPatientHandler(deps.PatientSvc)
	doctorHandler := NewDoctorHandler(deps.DoctorSvc)
	appointmentHandler := NewAppointmentHandler(deps.AppointmentSvc)

	api := r.Group("/api/v1")

	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	records := api.Group("")
	records.Use(RequireAuth(deps.JWTManager))
	{
		records.POST("/patients", patientHandler.Create)
		records.GET("/patients", patientHandler.List)
		records.GET("/patients/:id", patientHandler.Get)
		records.PUT("/patients/:id", patientHandler.Update)
		records.DELETE("/patients/:id", patientHandler.Delete)

		records.POST("/doctors", doctorHandler.Create)
		records.GET("/doctors", doctorHandler.List)
		records.GET("/doctors/:id", doctorHandler.Get)
		records.PUT("/doctors/:id", doctorHandler.Update)
		records.DELETE("/doctors/:id", doctorHandler.Delete)

		records.POST("/appointments", appointmentHandler.Create)
		records.GET("/appointments", appointmentHandler.List)
		records.GET("/appointments/:id", appointmentHandler.Get)
		records.PUT("/appointments/:id", appointmentHandler.Update)
		records.DELETE("/appointments/:id", appointmentHandler.Delete)
	}

	return r
}
