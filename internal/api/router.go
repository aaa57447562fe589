package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/tariq-shuvo/social-media-rest-api/internal/api/handler"
	"github.com/tariq-shuvo/social-media-rest-api/internal/api/middleware"
	"github.com/tariq-shuvo/social-media-rest-api/internal/core/ports"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Auth     ports.AuthService
	Tokens   ports.TokenVerifier
	Profiles ports.ProfileService
	Posts    ports.PostService
	Health   map[string]handler.HealthCheck
	Log      zerolog.Logger

	// Registerer receives the HTTP request collectors. Defaults to
	// prometheus.DefaultRegisterer, which /metrics serves.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:                 "social",
		Subsystem:                 "http",
		Registerer:                deps.Registerer,
		DoNotUseRequestPathFor404: true,
	}))
	e.Use(requestLogger(deps.Log))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler(deps.Health)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	auth := middleware.Auth(deps.Tokens)
	api := e.Group("/api")

	// --- Identity ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	api.POST("/users", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth", authHandler.Me, auth)

	// --- Profiles ---
	profileHandler := handler.NewProfileHandler(deps.Profiles)
	profile := api.Group("/profile")
	profile.GET("", profileHandler.List)
	profile.POST("", profileHandler.Upsert, auth)
	profile.DELETE("", profileHandler.Delete, auth)
	profile.GET("/me", profileHandler.Me, auth)
	profile.GET("/:user_id", profileHandler.GetByUser)
	profile.PUT("/experience", profileHandler.AddExperience, auth)
	profile.PUT("/experience/update/:experience_id", profileHandler.UpdateExperience, auth)
	profile.DELETE("/experience/:experience_id", profileHandler.RemoveExperience, auth)
	profile.PUT("/education", profileHandler.AddEducation, auth)
	profile.PUT("/education/update/:education_id", profileHandler.UpdateEducation, auth)
	profile.DELETE("/education/:education_id", profileHandler.RemoveEducation, auth)

	// --- Posts ---
	postHandler := handler.NewPostHandler(deps.Posts)
	post := api.Group("/post", auth)
	post.POST("", postHandler.Create)
	post.GET("", postHandler.List)
	post.GET("/:user_id", postHandler.ListByUser)
	post.PUT("/:post_id", postHandler.Update)
	post.DELETE("/:post_id", postHandler.Delete)
	post.PUT("/like/:post_id", postHandler.ToggleLike)
	post.GET("/alllike/:post_id", postHandler.ListLikers)
	post.PUT("/comment/:post_id", postHandler.AddComment)
	post.PUT("/comment/update/:post_id/:comment_id", postHandler.UpdateComment)
	post.DELETE("/comment/:post_id/:comment_id", postHandler.DeleteComment)

	return e
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
