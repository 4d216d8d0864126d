package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/odontocare/odontocare/docs"
	"github.com/odontocare/odontocare/internal/api/handler"
	"github.com/odontocare/odontocare/internal/api/middleware"
	"github.com/odontocare/odontocare/internal/core/domain"
	"github.com/odontocare/odontocare/internal/core/ports"
	"github.com/odontocare/odontocare/internal/infrastructure/http/handlers"
)

// Common holds what both services need besides their own handlers.
type Common struct {
	JWTSecret string
	Log       zerolog.Logger
	Checks    []handlers.Check
	// Registerer and Gatherer default to the prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// GestionDeps wires the gestión service.
type GestionDeps struct {
	Common
	Auth     ports.AuthService
	Users    ports.UserService
	Doctors  ports.DoctorService
	Patients ports.PatientService
	Centers  ports.CenterService
}

// CitasDeps wires the citas service.
type CitasDeps struct {
	Common
	Appointments ports.AppointmentService
}

// NewGestionRouter builds the gestión Echo instance with all routes registered.
func NewGestionRouter(d GestionDeps) *echo.Echo {
	e := newEcho("gestion", d.Common)

	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	doctorHandler := handler.NewDoctorHandler(d.Doctors)
	patientHandler := handler.NewPatientHandler(d.Patients)
	centerHandler := handler.NewCenterHandler(d.Centers)

	// --- Public routes ---
	e.GET("/", authHandler.Welcome)
	e.POST("/auth/login", authHandler.Login)

	// --- Admin routes ---
	admin := e.Group("/admin", middleware.Auth(d.JWTSecret))
	staff := middleware.RBAC(domain.RoleAdmin, domain.RoleSecretary)

	admin.POST("/user", userHandler.Create, staff)
	admin.GET("/user/:id", userHandler.Get, staff)
	admin.GET("/users", userHandler.List, staff)

	admin.POST("/doctor", doctorHandler.Create, staff)
	admin.GET("/doctor/username", doctorHandler.GetByUsername, middleware.RBAC(domain.RoleAdmin, domain.RoleDoctor))
	admin.GET("/doctor/:id", doctorHandler.Get, staff)
	admin.GET("/doctors", doctorHandler.List, staff)

	admin.POST("/patient", patientHandler.Create, staff)
	admin.GET("/patient/:id", patientHandler.Get, staff)
	admin.GET("/patients", patientHandler.List, staff)

	admin.POST("/center", centerHandler.Create, staff)
	admin.GET("/center/:id", centerHandler.Get, staff)
	admin.GET("/centers", centerHandler.List, staff)

	return e
}

// NewCitasRouter builds the citas Echo instance with all routes registered.
func NewCitasRouter(d CitasDeps) *echo.Echo {
	e := newEcho("citas", d.Common)

	h := handler.NewAppointmentHandler(d.Appointments)
	staff := middleware.RBAC(domain.RoleAdmin, domain.RoleSecretary)

	citas := e.Group("/citas", middleware.Auth(d.JWTSecret))
	citas.POST("/agendar", h.Create, staff)
	citas.PUT("/modificar/:id", h.Update, staff)
	citas.PUT("/cancelar/:id", h.Cancel, staff)
	citas.GET("/listar_citas", h.List, middleware.RBAC(domain.RoleAdmin, domain.RoleSecretary, domain.RoleDoctor))

	return e
}

// newEcho applies the middleware and operational routes shared by both services.
func newEcho(service string, d Common) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	registerer := d.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "odontocare",
		Subsystem:  service,
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			switch c.Path() {
			case "/metrics", "/health", "/health/ready":
				return true
			}
			return false
		},
	}))

	// --- Operational routes (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler(service).Liveness)
	e.GET("/health/ready", handlers.NewHealthDependenciesHandler(d.Checks...).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger feeds echo's access log into zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
