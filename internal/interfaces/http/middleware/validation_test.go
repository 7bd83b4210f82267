package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legallink/backend/internal/interfaces/http/dto"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	assert.NotNil(t, v)
}

func TestHandleValidationError(t *testing.T) {
	SetupValidator()
	gin.SetMode(gin.TestMode)

	type registerRequest struct {
		Email string `json:"email" binding:"required,email"`
		Role  string `json:"role" binding:"required,oneof=citizen advocate"`
	}

	router := gin.New()
	router.POST("/register", func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("reports every failing field", func(t *testing.T) {
		w := post(`{"email": "not-an-email", "role": "judge"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "Request validation failed", resp.Error.Message)
		require.Len(t, resp.Error.Details, 2)
	})

	t.Run("uses json tag names in details", func(t *testing.T) {
		w := post(`{"role": "citizen"}`)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "email", resp.Error.Details[0].Field)
	})

	t.Run("valid payload passes through", func(t *testing.T) {
		w := post(`{"email": "priya@example.com", "role": "citizen"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("echoes the request id", func(t *testing.T) {
		idRouter := gin.New()
		idRouter.POST("/register", func(c *gin.Context) {
			c.Set(RequestIDKey, "req-a1b2")
			var req registerRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				HandleValidationError(c, err)
				return
			}
		})

		req := httptest.NewRequest("POST", "/register", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		idRouter.ServeHTTP(w, req)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "req-a1b2", resp.Error.RequestID)
	})
}

func TestGetValidationMessage(t *testing.T) {
	type profileUpdate struct {
		Email       string `validate:"required,email"`
		DisplayName string `validate:"required,min=3,max=40"`
		AdvocateID  string `validate:"required,uuid"`
		Language    string `validate:"required,oneof=en hi ta"`
		Experience  int    `validate:"gte=0,lte=60"`
		Website     string `validate:"required,url"`
	}

	v := validator.New()
	err := v.Struct(profileUpdate{
		Email:       "bad",
		DisplayName: "ab",
		AdvocateID:  "bad",
		Language:    "fr",
		Experience:  99,
		Website:     "bad",
	})
	require.Error(t, err)

	want := map[string]string{
		"Email":       "Invalid email format",
		"DisplayName": "Must be at least 3 characters",
		"AdvocateID":  "Invalid UUID format",
		"Language":    "Must be one of: en hi ta",
		"Experience":  "Must be less than or equal to 60",
		"Website":     "Invalid URL format",
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)
	for _, fe := range fieldErrs {
		expected, covered := want[fe.Field()]
		if !covered {
			continue
		}
		assert.Equal(t, expected, getValidationMessage(fe), "field %s", fe.Field())
	}
}

func TestGetValidationMessageUnknownTag(t *testing.T) {
	type edge struct {
		IP string `validate:"ip"`
	}

	err := validator.New().Struct(edge{IP: "not-an-ip"})
	require.Error(t, err)

	fieldErrs := err.(validator.ValidationErrors)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "Invalid value", getValidationMessage(fieldErrs[0]))
}
