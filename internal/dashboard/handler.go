package dashboard

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.GET("/dashboard/statistics", h.Statistics)
	r.GET("/dashboard/monthly-reports", h.MonthlyReports)
	r.GET("/dashboard/vehicle-types", h.VehicleTypes)
	r.GET("/dashboard/vehicle-type-status", h.VehicleTypeStatus)
	r.GET("/dashboard/recent-reports", h.RecentReports)
}

// ---------- handlers ----------

func (h *Handler) Statistics(c *gin.Context) {
	res, err := h.svc.Statistics(c.Request.Context(), optQuery(c, "start_date"), optQuery(c, "end_date"))
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) MonthlyReports(c *gin.Context) {
	year := 0
	if v := c.Query("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "year must be an integer"))
			return
		}
		year = n
	}

	res, err := h.svc.MonthlyReports(c.Request.Context(), year, optQuery(c, "vehicle_type"))
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) VehicleTypes(c *gin.Context) {
	res, err := h.svc.VehicleTypes(c.Request.Context())
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) VehicleTypeStatus(c *gin.Context) {
	res, err := h.svc.VehicleTypeStatus(c.Request.Context(),
		c.Query("vehicle_type"), optQuery(c, "start_date"), optQuery(c, "end_date"))
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) RecentReports(c *gin.Context) {
	limit := DefaultRecentLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	res, err := h.svc.RecentReports(c.Request.Context(), limit)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// ---------- helpers ----------

func optQuery(c *gin.Context, key string) *string {
	if v := c.Query(key); v != "" {
		return &v
	}
	return nil
}

type errorDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func errorBody(code Code, msg string) errorDTO {
	var e errorDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

func errorFromErr(err error) errorDTO {
	var msg string
	var code Code = CodeInternal
	if api, ok := err.(*APIError); ok {
		code, msg = api.Code, api.Message
	} else {
		msg = err.Error()
	}
	return errorBody(code, msg)
}
