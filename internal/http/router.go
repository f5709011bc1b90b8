// Package httpapi wires the HTTP transport (Gin) to the news services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, error normalization, panic
// recovery, metrics, CORS, security headers, idempotency, and rate limiting.
package httpapi

import (
	"context"
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

	"github.com/tbourn/go-news-api/internal/config"
	_ "github.com/tbourn/go-news-api/internal/docs" // swagger spec registration
	"github.com/tbourn/go-news-api/internal/http/handlers"
	"github.com/tbourn/go-news-api/internal/http/middleware"
	"github.com/tbourn/go-news-api/internal/repo"
	"github.com/tbourn/go-news-api/internal/services"
	"github.com/tbourn/go-news-api/internal/validate"
)

var (
	corsMethods       = []string{"GET", "PATCH", "OPTIONS"}
	corsAllowHeaders  = []string{"Origin", "Content-Type", "Accept", "Authorization", "If-None-Match", middleware.HeaderIdempotencyKey}
	corsExposeHeaders = []string{"X-Request-ID", "ETag", "Content-Length", middleware.HeaderIdempotencyReplayed}
)

// NewRouter builds a gin engine with every middleware and route mounted.
func NewRouter(db *gorm.DB, cfg config.Config) *gin.Engine {
	r := gin.New()
	RegisterRoutes(r, db, cfg)
	return r
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine and mounts the public API under cfg.API.BasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Metrics: observes the final status, so it sits outside ErrorHandler
//  5. Gzip: error bodies are written through the compressor as well
//  6. ErrorHandler: renders the last recorded error as {"msg": ...}
//  7. Recovery: panics become internal errors for ErrorHandler
//  8. Body size limiter
//  9. CORS and security headers, before anything that may reject
//  10. Idempotency validator (before rate limiter to allow bypass on replay)
//  11. Rate limiter (per IP, bypass on replay)
//
// Unregistered methods on known paths are reported as unknown routes, so
// HandleMethodNotAllowed stays off.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// promhttp negotiates its own compression.
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Recovery())
	r.Use(limitBody(cfg.Server.MaxBodyBytes))

	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS: cfg.Security.EnableHSTS,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
	}))

	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200, Param: "article_id"},
		idempotencyLookup(db),
	))
	rl := middleware.NewRateLimiter(cfg.Rate.RPS, cfg.Rate.Burst, middleware.KeyByIP())
	r.Use(rl.Handler())

	r.NoRoute(middleware.NotFound())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.API.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(
		services.NewTopicService(db),
		services.NewArticleService(db, cfg.API.IdempotencyTTL),
		services.NewCommentService(db),
		services.NewUserService(db),
	)

	api := groupWithPrefix(r, cfg.API.BasePath)
	{
		api.GET("/topics", h.ListTopics)

		api.GET("/articles", h.ListArticles)
		api.GET("/articles/:article_id", h.GetArticle)
		api.PATCH("/articles/:article_id", h.PatchArticleVotes)
		api.GET("/articles/:article_id/comments", h.ListArticleComments)

		api.GET("/users", h.ListUsers)
		api.GET("/users/:username", h.GetUser)
	}
}

// idempotencyLookup reports whether an unexpired claim exists for the
// article named in the path. Malformed ids are left for the handler to
// reject.
func idempotencyLookup(db *gorm.DB) middleware.IdempotencyLookup {
	return func(ctx context.Context, resourceID, key string, now time.Time) (bool, error) {
		id, err := validate.IDParam("article_id", resourceID)
		if err != nil {
			return false, nil
		}
		if _, err := repo.GetIdempotency(ctx, db, id, key, now); err != nil {
			return false, err
		}
		return true, nil
	}
}

// corsMiddleware returns the CORS stack. With no allowlist every origin is
// accepted; otherwise the request Origin is echoed only when listed.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	if len(origins) == 0 {
		return []gin.HandlerFunc{
			// ACAO: * even without an Origin header, for curl and health checks.
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(cors.Config{
				AllowAllOrigins:  true,
				AllowMethods:     corsMethods,
				AllowHeaders:     corsAllowHeaders,
				ExposeHeaders:    corsExposeHeaders,
				AllowCredentials: false, // must remain false with AllowAllOrigins
				MaxAge:           12 * time.Hour,
			}),
		}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     corsMethods,
			AllowHeaders:     corsAllowHeaders,
			ExposeHeaders:    corsExposeHeaders,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}),
	}
}

// limitBody caps the request body at maxBytes. Reads past the cap fail with
// *http.MaxBytesError, which the vote handler reports as a payload error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
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
