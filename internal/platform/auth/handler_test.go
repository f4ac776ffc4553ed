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

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := NewService(nil, string(testSecret))
	r := gin.New()
	pub := r.Group("/api/v1")
	priv := r.Group("/api/v1")
	priv.Use(RequireAuth(svc.Secret()))
	RegisterRoutes(pub, priv, svc)
	return r
}

func doDelete(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Account management is admin-only; the role gate and input validation run
// before any store access.
func TestDeactivateUserRoute(t *testing.T) {
	r := authRouter()

	t.Run("requires token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, doDelete(r, "/api/v1/auth/users/5", "").Code)
	})

	t.Run("inspector forbidden", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"sub": 2, "role": RoleInspector, "exp": time.Now().Add(time.Hour).Unix(),
		})
		assert.Equal(t, http.StatusForbidden, doDelete(r, "/api/v1/auth/users/5", token).Code)
	})

	t.Run("admin with bad id", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"sub": 1, "role": RoleAdmin, "exp": time.Now().Add(time.Hour).Unix(),
		})
		w := doDelete(r, "/api/v1/auth/users/lima", token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "user_id must be an integer")
	})
}
