package vehicles

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, NewService(nil))

	want := map[string]string{
		"POST /vehicles":               "",
		"GET /vehicles":                "",
		"GET /vehicles/:vehicle_id":    "",
		"PUT /vehicles/:vehicle_id":    "",
		"DELETE /vehicles/:vehicle_id": "",
		"GET /scan/:hull_number":       "",
	}
	for _, route := range r.Routes() {
		delete(want, route.Method+" "+route.Path)
	}
	assert.Empty(t, want, "routes not registered")
}

func TestGetByHull_RequiresHullNumber(t *testing.T) {
	svc := NewService(nil)

	// Whitespace-only hull numbers are rejected before any lookup runs.
	_, err := svc.GetByHull(context.Background(), "   ")
	require.Error(t, err)
	api, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidArgument, api.Code)
	assert.Equal(t, http.StatusBadRequest, toHTTPStatus(err))
}
