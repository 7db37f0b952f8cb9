package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/summercamp/campfund/docs"
	"github.com/summercamp/campfund/internal/api/handler"
	"github.com/summercamp/campfund/internal/api/metrics"
	"github.com/summercamp/campfund/internal/api/middleware"
	"github.com/summercamp/campfund/internal/core/domain"
	"github.com/summercamp/campfund/internal/core/ports"
	"github.com/summercamp/campfund/internal/infrastructure/http/handlers"
)

// Services are the use cases the routes dispatch to.
type Services struct {
	Auth     ports.AuthService
	Authz    ports.Authorizer
	Users    ports.UserService
	Classes  ports.ClassService
	Carts    ports.CartService
	Payments ports.PaymentService
}

// Options configures the HTTP layer.
type Options struct {
	JWTSecret   string
	CORSOrigins []string
	Logger      zerolog.Logger
	// Registry receives HTTP and domain metrics. A fresh one is created when nil.
	Registry *prometheus.Registry
	// Checks are the readiness probes served at /health/ready.
	Checks map[string]handlers.Check
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	metrics.Register(reg)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(opts.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: corsOrigins(opts.CORSOrigins),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
			echo.HeaderAuthorization, handler.HeaderIdempotencyKey,
		},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "campfund",
		Subsystem:  "http",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	userHandler := handler.NewUserHandler(svc.Users)
	classHandler := handler.NewClassHandler(svc.Classes)
	cartHandler := handler.NewCartHandler(svc.Carts)
	paymentHandler := handler.NewPaymentHandler(svc.Payments)
	roleHandler := handler.NewRoleHandler()

	requireAuth := middleware.Auth(opts.JWTSecret)
	student := middleware.RequireRole(svc.Authz, domain.StudentRoles)
	instructor := middleware.RequireRole(svc.Authz, domain.InstructorRoles)
	admin := middleware.RequireRole(svc.Authz, domain.AdminRoles)

	// --- Probes and tooling (no auth required) ---
	e.GET("/", handler.Root)
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(opts.Checks, opts.Logger).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth ---
	e.POST("/jwt", authHandler.IssueToken)

	// --- Users ---
	e.POST("/users", userHandler.Register)
	e.GET("/users", userHandler.List)
	e.GET("/teachers", userHandler.Teachers)
	e.GET("/teachers/popularteachers", userHandler.PopularTeachers)
	e.PATCH("/all-users-data", userHandler.UpdateRole)
	e.GET("/users/instructor/:email", roleHandler.Instructor, requireAuth, instructor)
	e.GET("/users/admin/:email", roleHandler.Admin, requireAuth, admin)

	// --- Classes ---
	e.GET("/classes", classHandler.List)
	e.POST("/classes", classHandler.Create)
	e.GET("/classes/popularclasses", classHandler.Popular)
	e.PATCH("/all-classes-data", classHandler.Review)

	// --- Cart ---
	e.POST("/classes-cart", cartHandler.Add)
	e.GET("/classes-cart", cartHandler.List, requireAuth)
	e.GET("/classes-cart/:id", cartHandler.Get, requireAuth, student)
	e.DELETE("/classes-cart/:id", cartHandler.Remove)
	e.PATCH("/classes-cart/:id", classHandler.Enroll)
	e.GET("/user/student/:email", cartHandler.StudentCart, requireAuth, student)

	// --- Payments ---
	e.POST("/create-payment-intent", paymentHandler.CreateIntent)
	e.POST("/payments", paymentHandler.Checkout, requireAuth)
	e.GET("/payments", paymentHandler.History, requireAuth)

	return e
}

func corsOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// requestLogger writes one zerolog event per request.
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
			evt := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				evt = log.Error().Err(v.Error)
			case v.Status >= http.StatusBadRequest:
				evt = log.Warn()
			}
			evt.
				Str("method", v.Method).
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
