package auth

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

// RegisterRoutes mounts the public login route on pub and the admin-only
// account management routes on priv (which must already carry RequireAuth).
func RegisterRoutes(pub gin.IRoutes, priv gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	pub.POST("/auth/login", h.Login)

	priv.POST("/auth/register", RequireRole(RoleAdmin), h.Register)
	priv.DELETE("/auth/users/:user_id", RequireRole(RoleAdmin), h.DeactivateUser)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nik and password are required"})
		return
	}

	res, err := h.svc.Login(c.Request.Context(), req.NIK, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrAuthFailed), errors.Is(err, ErrDisabled):
			// Same message for both: don't leak which accounts exist.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "NIK atau password salah"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json or missing required fields"})
		return
	}

	res, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "NIK already registered"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, res)
}

// DeactivateUser soft-disables an account: its tokens keep verifying until
// expiry, but login is refused.
func (h *Handler) DeactivateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id must be an integer"})
		return
	}

	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}
