package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedRouter(level zapcore.Level) (*gin.Engine, *observer.ObservedLogs) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(level)
	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	return router, recorded
}

func requestLogEntry(t *testing.T, recorded *observer.ObservedLogs) observer.LoggedEntry {
	t.Helper()
	entries := recorded.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1, "expected exactly one request log entry")
	return entries[0]
}

func logFields(entry observer.LoggedEntry) map[string]zapcore.Field {
	fields := make(map[string]zapcore.Field, len(entry.Context))
	for _, f := range entry.Context {
		fields[f.Key] = f
	}
	return fields
}

func TestGinMiddlewareLogsRequest(t *testing.T) {
	router, recorded := observedRouter(zapcore.InfoLevel)
	router.GET("/api/v1/advocates", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"advocates": []string{}})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/advocates", nil)
	req.Header.Set("User-Agent", "legallink-client/1.0")
	router.ServeHTTP(w, req)

	entry := requestLogEntry(t, recorded)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)

	fields := logFields(entry)
	for _, key := range []string{"method", "path", "status", "latency", "client_ip", "user_agent", "body_size"} {
		assert.Contains(t, fields, key)
	}
	assert.Equal(t, "GET", fields["method"].String)
	assert.Equal(t, "/api/v1/advocates", fields["path"].String)
}

func TestGinMiddlewarePropagatesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	// Simulates the RequestID middleware running first
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "req-7f3a")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/api/v1/users/me", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/users/me", nil)
	router.ServeHTTP(w, req)

	fields := logFields(requestLogEntry(t, recorded))
	require.Contains(t, fields, "request_id")
	assert.Equal(t, "req-7f3a", fields["request_id"].String)
}

func TestGinMiddlewareStatusLevels(t *testing.T) {
	cases := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{"success logs info", http.StatusOK, zapcore.InfoLevel},
		{"client error logs warn", http.StatusUnprocessableEntity, zapcore.WarnLevel},
		{"server error logs error", http.StatusBadGateway, zapcore.ErrorLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, recorded := observedRouter(zapcore.DebugLevel)
			router.POST("/api/v1/appointments", func(c *gin.Context) {
				c.Status(tc.status)
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/api/v1/appointments", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.level, requestLogEntry(t, recorded).Level)
		})
	}
}

func TestGinMiddlewareIncludesQuery(t *testing.T) {
	router, recorded := observedRouter(zapcore.InfoLevel)
	router.GET("/api/v1/advocates", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/advocates?specialization=family_law&page=2", nil)
	router.ServeHTTP(w, req)

	fields := logFields(requestLogEntry(t, recorded))
	require.Contains(t, fields, "query")
	assert.Contains(t, fields["query"].String, "specialization=family_law")
}

func TestGinMiddlewareIncludesAuthenticatedUser(t *testing.T) {
	router, recorded := observedRouter(zapcore.InfoLevel)
	router.GET("/api/v1/posts", func(c *gin.Context) {
		// Simulates the JWT middleware having authenticated the caller
		c.Set("jwt_user_id", "9f3c0a1e-2b4d-4c5e-8f6a-7b8c9d0e1f2a")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/posts", nil)
	router.ServeHTTP(w, req)

	fields := logFields(requestLogEntry(t, recorded))
	require.Contains(t, fields, "user_id")
	assert.Equal(t, "9f3c0a1e-2b4d-4c5e-8f6a-7b8c9d0e1f2a", fields["user_id"].String)
}

func TestGinMiddlewareQuietsHealthProbes(t *testing.T) {
	router, recorded := observedRouter(zapcore.InfoLevel)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Empty(t, recorded.FilterMessage("HTTP Request").All(),
		"healthy probe responses should not be logged")
}

func TestGinMiddlewareLogsFailedHealthProbes(t *testing.T) {
	router, recorded := observedRouter(zapcore.InfoLevel)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	entry := requestLogEntry(t, recorded)
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
}

func TestRecoveryLogsPanicAndAborts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/api/v1/matching", func(c *gin.Context) {
		panic("scorer blew up")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/matching", nil)

	assert.NotPanics(t, func() {
		router.ServeHTTP(w, req)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entries := recorded.FilterMessage("Panic recovered").All()
	require.Len(t, entries, 1)
	fields := logFields(entries[0])
	assert.Contains(t, fields, "stacktrace")
}

func TestGetGinLogger(t *testing.T) {
	router, _ := observedRouter(zapcore.InfoLevel)

	var handlerLogger *zap.Logger
	router.GET("/api/v1/reports", func(c *gin.Context) {
		handlerLogger = GetGinLogger(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/reports", nil)
	router.ServeHTTP(w, req)

	assert.NotNil(t, handlerLogger)
}

func TestGetGinLoggerFallsBackToNop(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var handlerLogger *zap.Logger
	router := gin.New()
	router.GET("/bare", func(c *gin.Context) {
		handlerLogger = GetGinLogger(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/bare", nil)
	router.ServeHTTP(w, req)

	require.NotNil(t, handlerLogger)
	assert.NotPanics(t, func() {
		handlerLogger.Info("no request logger installed")
	})
}
