package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serveError(t *testing.T, handler gin.HandlerFunc) (int, Envelope) {
	t.Helper()
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/", handler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestErrorHandlerRendersKinds(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{ValidationError("Name is required"), http.StatusBadRequest, "Name is required"},
		{ConflictError("unitId in body must equal path parameter id"), http.StatusBadRequest, "unitId in body must equal path parameter id"},
		{NotFoundError("Unit not found"), http.StatusNotFound, "Unit not found"},
		{UnauthorizedError("Not authorized, no token"), http.StatusUnauthorized, "Not authorized, no token"},
		{RateLimitedError("Rate limit exceeded. Try again later."), http.StatusTooManyRequests, "Rate limit exceeded. Try again later."},
		{UnavailableError("Image storage is not configured"), http.StatusInternalServerError, "Image storage is not configured"},
		{InternalError(errors.New("mongo exploded")), http.StatusInternalServerError, "Internal Server Error"},
		{errors.New("plain failure"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tc := range cases {
		status, body := serveError(t, func(c *gin.Context) { _ = c.Error(tc.err) })
		assert.Equal(t, tc.status, status, tc.message)
		assert.False(t, body.Success)
		assert.Equal(t, tc.message, body.Message)
	}
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	status, body := serveError(t, func(c *gin.Context) { panic("boom") })
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal Server Error", body.Message)
}

func TestNotFoundRoute(t *testing.T) {
	r := gin.New()
	r.NoRoute(NotFoundRoute)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Route not found"}`, w.Body.String())
}

func TestParseObjectIDReportsNotFound(t *testing.T) {
	_, err := ParseObjectID("zzz", "Lead not found")
	assert.True(t, IsKind(err, KindNotFound))
	assert.Equal(t, "Lead not found", err.Error())
}
