package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newUserLimitedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/assign",
		func(c *gin.Context) {
			if uid := c.GetHeader("X-Test-User"); uid != "" {
				c.Set("user_id", uid)
			}
		},
		RateLimitByUser(0.01, 1),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return router
}

func doAssign(router *gin.Engine, userID string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/assign", nil)
	if userID != "" {
		req.Header.Set("X-Test-User", userID)
	}
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitByUser_ThrottlesPerUser(t *testing.T) {
	router := newUserLimitedRouter()

	assert.Equal(t, http.StatusOK, doAssign(router, "user-a"))
	assert.Equal(t, http.StatusTooManyRequests, doAssign(router, "user-a"))

	// A different user has their own bucket.
	assert.Equal(t, http.StatusOK, doAssign(router, "user-b"))
}

func TestRateLimitByUser_FallsBackToClientIP(t *testing.T) {
	router := newUserLimitedRouter()

	assert.Equal(t, http.StatusOK, doAssign(router, ""))
	assert.Equal(t, http.StatusTooManyRequests, doAssign(router, ""))
}
