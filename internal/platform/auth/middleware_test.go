package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func protectedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{RequireAuth(testSecret)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserIDFrom(c), "role": RoleFrom(c)})
	})
	r.GET("/ping", handlers...)
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	r := protectedRouter()

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"sub":  42,
			"role": RoleInspector,
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
		w := doGet(r, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":42`)
		assert.Contains(t, w.Body.String(), `"role":"inspector"`)
	})

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, doGet(r, "Token abc").Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"sub": 42,
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+token).Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": 42,
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("other-secret"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+signed).Code)
	})
}

func TestRequireRole(t *testing.T) {
	r := protectedRouter(RequireRole(RoleAdmin))

	adminToken := signToken(t, jwt.MapClaims{
		"sub": 1, "role": RoleAdmin, "exp": time.Now().Add(time.Hour).Unix(),
	})
	assert.Equal(t, http.StatusOK, doGet(r, "Bearer "+adminToken).Code)

	inspectorToken := signToken(t, jwt.MapClaims{
		"sub": 2, "role": RoleInspector, "exp": time.Now().Add(time.Hour).Unix(),
	})
	assert.Equal(t, http.StatusForbidden, doGet(r, "Bearer "+inspectorToken).Code)
}
