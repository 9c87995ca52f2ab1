package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aspiantech/ogle-api/pkg/helpers"
)

func testTokens() *helpers.TokenManager {
	return helpers.NewTokenManager("test-secret", time.Hour, time.Minute)
}

func identityEngine(tokens *helpers.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identity(tokens))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString(CtxUserIDKey)})
	})
	return r
}

func TestIdentityResolvesValidToken(t *testing.T) {
	tokens := testTokens()
	r := identityEngine(tokens)

	token, _, err := tokens.GenerateSessionToken("64f1b2c3d4e5f60718293a4b", "ada@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "64f1b2c3d4e5f60718293a4b")
}

func TestIdentityTreatsBadTokenAsAnonymous(t *testing.T) {
	r := identityEngine(testTokens())

	for _, header := range []string{"", "Bearer garbage", "NotBearer abc"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"userID":""`)
	}
}

func requireAuthEngine(tokens *helpers.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequireAuth(tokens))
	r.GET("/secret", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString(CtxUserIDKey)})
	})
	return r
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	r := requireAuthEngine(testTokens())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secret", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication required")
}

func TestRequireAuthRejectsBadToken(t *testing.T) {
	r := requireAuthEngine(testTokens())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestRequireAuthPassesValidToken(t *testing.T) {
	tokens := testTokens()
	r := requireAuthEngine(tokens)

	token, _, err := tokens.GenerateSessionToken("64f1b2c3d4e5f60718293a4b", "ada@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secret", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "64f1b2c3d4e5f60718293a4b")
}
