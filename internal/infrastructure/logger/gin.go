package logger

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Keys mirrored from the middleware package, which imports this one.
const (
	ginRequestIDKey = "request_id"
	ginLoggerKey    = "logger"
	ginUserIDKey    = "jwt_user_id"
)

// quietPaths are probe endpoints that only get logged when they fail
var quietPaths = map[string]struct{}{
	"/health": {},
}

func ginRequestID(c *gin.Context) string {
	id, _ := c.Get(ginRequestIDKey)
	s, _ := id.(string)
	return s
}

// GinMiddleware returns a gin middleware that logs HTTP requests and
// injects a request-scoped logger into the gin context
func GinMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		reqLogger := logger.With(
			zap.String("request_id", ginRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
		)

		// Handlers pick this up via GetGinLogger
		c.Set(ginLoggerKey, reqLogger)

		c.Next()

		status := c.Writer.Status()
		if _, quiet := quietPaths[path]; quiet && status < 400 {
			return
		}

		logRequest(c, reqLogger, status, time.Since(start))
	}
}

func logRequest(c *gin.Context, reqLogger *zap.Logger, status int, latency time.Duration) {
	fields := []zap.Field{
		zap.Int("status", status),
		zap.Duration("latency", latency),
		zap.String("client_ip", c.ClientIP()),
		zap.String("user_agent", c.Request.UserAgent()),
		zap.Int("body_size", c.Writer.Size()),
	}

	if query := c.Request.URL.RawQuery; query != "" {
		fields = append(fields, zap.String("query", query))
	}

	// The JWT middleware stores the authenticated user ID
	if userID, ok := c.Get(ginUserIDKey); ok {
		if id, ok := userID.(string); ok && id != "" {
			fields = append(fields, zap.String("user_id", id))
		}
	}

	if len(c.Errors) > 0 {
		fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
	}

	msg := "HTTP Request"
	switch {
	case status >= http.StatusInternalServerError:
		reqLogger.Error(msg, fields...)
	case status >= http.StatusBadRequest:
		reqLogger.Warn(msg, fields...)
	default:
		reqLogger.Info(msg, fields...)
	}
}

// Recovery returns a gin middleware that recovers from panics and logs them
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered",
					zap.String("request_id", ginRequestID(c)),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("error", err),
					zap.Stack("stacktrace"),
				)

				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// GetGinLogger retrieves the request-scoped logger from the gin
// context, falling back to a no-op logger outside a request
func GetGinLogger(c *gin.Context) *zap.Logger {
	if logger, exists := c.Get(ginLoggerKey); exists {
		if l, ok := logger.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}
