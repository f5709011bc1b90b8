// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file is the single place where error responses are written. Handlers
// and other middleware record failures with c.Error(err) and return;
// ErrorHandler renders the last recorded error once the chain unwinds.
//
// Response body is always {"msg": "<message>"}:
//   - classified errors (apperr.Error) use their Kind's status and Message
//   - anything else is a 500 with "internal server error"; the real cause
//     goes to the log only
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tbourn/go-news-api/internal/apperr"
)

// ErrorBody is the JSON envelope of every error response.
type ErrorBody struct {
	Msg string `json:"msg" example:"article doesn't exist"`
}

// httpErrors counts rendered error responses by classification.
var httpErrors = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_errors_total",
		Help: "Total number of error responses by error kind.",
	},
	[]string{"kind"},
)

func init() {
	prometheus.MustRegister(httpErrors)
}

// ErrorHandler renders the last error recorded on the context. It must be
// installed before any middleware or handler that records errors, so its
// post-processing runs after theirs.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}
		status, body := render(c, last.Err)
		httpErrors.WithLabelValues(apperr.KindOf(last.Err).String()).Inc()

		if c.Writer.Written() {
			// Headers are gone; the status line cannot change any more.
			LoggerFrom(c).Error().Err(last.Err).Int("status", status).Msg("error after response was written")
			return
		}
		c.AbortWithStatusJSON(status, body)
	}
}

// render maps err to a status and body. Each Kind is listed so that adding a
// Kind without deciding its rendering shows up in review.
func render(c *gin.Context, err error) (int, ErrorBody) {
	ae, ok := apperr.As(err)
	if !ok {
		return internal(c, err)
	}
	switch ae.Kind {
	case apperr.KindBadIdentifier,
		apperr.KindResourceNotFound,
		apperr.KindInvalidPayload,
		apperr.KindInvalidQuery,
		apperr.KindRouteNotFound,
		apperr.KindConflict,
		apperr.KindRateLimited:
		return ae.Status(), ErrorBody{Msg: ae.Message}
	case apperr.KindInternal:
		return internal(c, err)
	default:
		LoggerFrom(c).Error().Uint8("kind_code", uint8(ae.Kind)).Msg("unhandled error kind")
		return internal(c, err)
	}
}

func internal(c *gin.Context, err error) (int, ErrorBody) {
	LoggerFrom(c).Error().Err(err).Msg("internal error")
	return apperr.Status(apperr.KindInternal), ErrorBody{Msg: apperr.MsgInternal}
}

// NotFound is installed as the engine's NoRoute handler. Every method on an
// unknown path, and every unregistered method on a known path, ends here.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(apperr.RouteNotFound())
		c.Abort()
	}
}
