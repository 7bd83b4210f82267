package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"
)

func setupSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
	})

	return sr
}

func findSpan(sr *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	for _, span := range sr.Ended() {
		if span.Name() == name {
			return span
		}
	}
	return nil
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) (string, bool) {
	for _, attr := range span.Attributes() {
		if attr.Key == attribute.Key(key) {
			return attr.Value.AsString(), true
		}
	}
	return "", false
}

func serveGET(router *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestTracingDisabledPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(TracingWithConfig(TracingConfig{Enabled: false, ServiceName: "legallink-test"}))
	router.GET("/api/v1/advocates", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": []string{}})
	})

	w := serveGET(router, "/api/v1/advocates", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTracingCreatesHTTPSpan(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sr := setupSpanRecorder(t)

	router := gin.New()
	router.Use(TracingWithConfig(TracingConfig{Enabled: true, ServiceName: "legallink-test"}))
	router.GET("/api/v1/advocates/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})

	w := serveGET(router, "/api/v1/advocates/42", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	span := findSpan(sr, "GET /api/v1/advocates/:id")
	require.NotNil(t, span, "otelgin span not recorded")
}

func TestTracingTagsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sr := setupSpanRecorder(t)

	router := gin.New()
	router.Use(RequestID())
	router.Use(TracingWithConfig(TracingConfig{Enabled: true, ServiceName: "legallink-test"}))
	router.Use(TracingAttributeInjector())
	router.GET("/api/v1/appointments", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": []string{}})
	})

	w := serveGET(router, "/api/v1/appointments", map[string]string{
		RequestIDHeader: "req-abc-123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	span := findSpan(sr, "GET /api/v1/appointments")
	require.NotNil(t, span)

	got, ok := spanAttr(span, "request_id")
	require.True(t, ok, "request_id attribute missing")
	assert.Equal(t, "req-abc-123", got)
}

func TestTracingTagsJWTIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sr := setupSpanRecorder(t)

	router := gin.New()
	router.Use(TracingWithConfig(TracingConfig{Enabled: true, ServiceName: "legallink-test"}))
	router.Use(func(c *gin.Context) {
		c.Set(JWTUserIDKey, "user-123")
		c.Set(JWTRoleKey, "advocate")
		c.Next()
	})
	router.Use(TracingAttributeInjector())
	router.GET("/api/v1/appointments", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": []string{}})
	})

	w := serveGET(router, "/api/v1/appointments", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	span := findSpan(sr, "GET /api/v1/appointments")
	require.NotNil(t, span)

	userID, ok := spanAttr(span, "user_id")
	require.True(t, ok, "user_id attribute missing")
	assert.Equal(t, "user-123", userID)

	role, ok := spanAttr(span, "user_role")
	require.True(t, ok, "user_role attribute missing")
	assert.Equal(t, "advocate", role)
}

func TestSpanErrorMarker(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		wantDesc string
	}{
		{"not found", http.StatusNotFound, "Not Found"},
		{"unauthorized", http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", http.StatusForbidden, "Forbidden"},
		{"bad request", http.StatusBadRequest, "Client Error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			sr := setupSpanRecorder(t)

			router := gin.New()
			router.Use(TracingWithConfig(TracingConfig{Enabled: true, ServiceName: "legallink-test"}))
			router.Use(SpanErrorMarker())
			router.GET("/api/v1/advocates/:id", func(c *gin.Context) {
				c.JSON(tc.status, gin.H{"error": tc.wantDesc})
			})

			w := serveGET(router, "/api/v1/advocates/9", nil)
			assert.Equal(t, tc.status, w.Code)

			span := findSpan(sr, "GET /api/v1/advocates/:id")
			require.NotNil(t, span)
			assert.Equal(t, codes.Error, span.Status().Code)
			assert.Equal(t, tc.wantDesc, span.Status().Description)
		})
	}
}

func TestSpanErrorMarkerServerError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sr := setupSpanRecorder(t)

	router := gin.New()
	router.Use(TracingWithConfig(TracingConfig{Enabled: true, ServiceName: "legallink-test"}))
	router.Use(SpanErrorMarker())
	router.GET("/api/v1/broken", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "broken"})
	})

	w := serveGET(router, "/api/v1/broken", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// otelgin also marks 5xx spans, so only the error code is asserted here.
	span := findSpan(sr, "GET /api/v1/broken")
	require.NotNil(t, span)
	assert.Equal(t, codes.Error, span.Status().Code)
}

func TestSpanErrorMarkerLeavesSuccessAlone(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sr := setupSpanRecorder(t)

	router := gin.New()
	router.Use(TracingWithConfig(TracingConfig{Enabled: true, ServiceName: "legallink-test"}))
	router.Use(SpanErrorMarker())
	router.GET("/api/v1/advocates", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": []string{}})
	})

	w := serveGET(router, "/api/v1/advocates", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	span := findSpan(sr, "GET /api/v1/advocates")
	require.NotNil(t, span)
	assert.NotEqual(t, codes.Error, span.Status().Code)
}

func TestSpanErrorMarkerWithoutRecordingSpan(t *testing.T) {
	gin.SetMode(gin.TestMode)
	otel.SetTracerProvider(noop.NewTracerProvider())

	router := gin.New()
	router.Use(SpanErrorMarker())
	router.GET("/api/v1/broken", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "broken"})
	})

	w := serveGET(router, "/api/v1/broken", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestTracingAttributeInjectorWithoutRecordingSpan(t *testing.T) {
	gin.SetMode(gin.TestMode)
	otel.SetTracerProvider(noop.NewTracerProvider())

	router := gin.New()
	router.Use(TracingAttributeInjector())
	router.GET("/api/v1/advocates", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": []string{}})
	})

	w := serveGET(router, "/api/v1/advocates", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTraceRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("prefers the gin context over the header", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set(RequestIDHeader, "from-header")
		c.Set(RequestIDKey, "from-context")

		assert.Equal(t, "from-context", traceRequestID(c))
	})

	t.Run("falls back to the header", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set(RequestIDHeader, "from-header")

		assert.Equal(t, "from-header", traceRequestID(c))
	})

	t.Run("truncates oversized header values", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set(RequestIDHeader, strings.Repeat("x", 300))

		assert.Len(t, traceRequestID(c), MaxRequestIDLength)
	})
}

func TestJWTUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, jwtUserID(c))

	c.Set(JWTUserIDKey, "user-789")
	assert.Equal(t, "user-789", jwtUserID(c))
}
