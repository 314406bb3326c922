// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, CORS,
// security headers, caller identity, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-jobboard-backend/internal/config"
	"github.com/tbourn/go-jobboard-backend/internal/http/handlers"
	"github.com/tbourn/go-jobboard-backend/internal/http/middleware"
	"github.com/tbourn/go-jobboard-backend/internal/services"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), caller identity and
// rate limiting, CORS and security headers, health and metrics endpoints, and
// then mounts the public API under the configured base path.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Identity (X-User-ID extraction, keys the rate limiter)
//  8. Rate limiter (per user/IP)
//  9. Response compression
//  10. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Caller identity before the rate limiter so buckets key per user
	r.Use(middleware.Identity())

	// 8) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 9) Response compression for JSON payloads
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 10) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (off by default)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← db
	authSvc := services.NewAuthService(db)
	if cfg.BcryptCost > 0 {
		authSvc.BcryptCost = cfg.BcryptCost
	}
	jobSvc := services.NewJobService(db)
	if cfg.DefaultPageSize > 0 {
		jobSvc.DefaultPageSize = cfg.DefaultPageSize
	}
	if cfg.MaxPageSize > 0 {
		jobSvc.MaxPageSize = cfg.MaxPageSize
	}
	statsSvc := &services.StatsService{DB: db}
	refSvc := &services.ReferenceService{DB: db}
	h := handlers.New(authSvc, jobSvc, statsSvc, refSvc)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api"
	api := groupWithPrefix(r, apiBase)
	{
		// Accounts
		api.POST("/users/signup", h.Signup)
		api.POST("/users/login", h.Login)
		api.PUT("/employees/profile", h.UpdateEmployeeProfile)

		// Jobs
		api.GET("/jobs", h.ListJobs)
		api.GET("/jobs/search", h.SearchJobs)
		api.GET("/jobs/count", h.CountJobs)
		api.GET("/jobs/recommendations", h.RecommendJobs)
		api.POST("/jobs/post", h.PostJob)
		api.POST("/jobs/apply", h.ApplyForJob)

		// Applications
		api.GET("/jobs/applications", h.EmployerApplications)
		api.GET("/jobs/applications/employee/:employeeId", h.EmployeeApplications)
		api.PUT("/jobs/applications/status", h.UpdateApplicationStatus)

		// Shortlist / dislike marks
		api.POST("/jobs/shortlist", h.ShortlistJob)
		api.DELETE("/jobs/shortlist", h.UnshortlistJob)
		api.GET("/jobs/shortlist/:employeeId", h.ShortlistedJobs)
		api.POST("/jobs/dislike", h.DislikeJob)
		api.DELETE("/jobs/dislike", h.UndislikeJob)

		// Statistics
		api.GET("/jobs/statistics/location/:cityId", h.LocationStats)
		api.GET("/jobs/statistics/company/:companyId", h.CompanyStats)
		api.GET("/jobs/statistics/shortlist-ratio", h.ShortlistRatios)
		api.GET("/jobs/statistics/shortlist-ratio/job/:jobId", h.ShortlistRatioForJob)
		api.GET("/jobs/statistics/shortlist-ratio/employer/:employerId", h.ShortlistRatiosForEmployer)
		api.GET("/jobs/statistics/salary/min", h.LocationMinSalary)
		api.GET("/jobs/statistics/salary/max", h.LocationMaxSalary)

		// Reference data
		api.GET("/companies", h.ListCompanies)
		api.GET("/locations", h.ListLocations)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
