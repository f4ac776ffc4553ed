package p2h

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"P2H-backend/internal/platform/auth"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/p2h/reports", h.Submit)
	r.GET("/p2h/reports", h.ListReports)
	r.GET("/p2h/reports/:report_ulid", h.GetReport)
	r.GET("/p2h/can-submit", h.CanSubmit)
	r.GET("/p2h/shift-info/:vehicle_id", h.ShiftInfo)
	r.GET("/p2h/status/:vehicle_id", h.VehicleStatus)
}

// ---------- handlers ----------

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}

	userID := auth.UserIDFrom(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, errorBody(CodeInvalidArgument, "missing authenticated user"))
		return
	}

	res, err := h.svc.Submit(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.Header("Location", "/p2h/reports/"+res.ReportULID)
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) CanSubmit(c *gin.Context) {
	vehicleID, err := strconv.ParseUint(c.Query("vehicle_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "vehicle_id must be an integer"))
		return
	}
	selected := parseIntDefault(c.Query("shift"), 0)

	res, err := h.svc.CanSubmit(c.Request.Context(), vehicleID, selected)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) VehicleStatus(c *gin.Context) {
	vehicleID, err := strconv.ParseUint(c.Param("vehicle_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "vehicle_id must be an integer"))
		return
	}
	res, err := h.svc.VehicleStatus(c.Request.Context(), vehicleID)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ShiftInfo(c *gin.Context) {
	vehicleID, err := strconv.ParseUint(c.Param("vehicle_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "vehicle_id must be an integer"))
		return
	}
	res, err := h.svc.ShiftInfo(c.Request.Context(), vehicleID)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListReports(c *gin.Context) {
	q := ListReportsQuery{
		Limit:  parseIntDefault(c.Query("limit"), DefaultPageLimit),
		Offset: parseIntDefault(c.Query("offset"), 0),
		Sort:   c.DefaultQuery("sort", DefaultSort),
	}
	if v := c.Query("vehicle_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			q.VehicleID = &id
		}
	}
	if v := c.Query("user_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			q.UserID = &id
		}
	}
	if v := c.Query("from"); v != "" {
		q.From = &v
	}
	if v := c.Query("to"); v != "" {
		q.To = &v
	}
	if v := c.Query("status"); v != "" {
		q.Status = &v
	}

	res, err := h.svc.ListReports(c.Request.Context(), q)
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetReport(c *gin.Context) {
	res, err := h.svc.GetReport(c.Request.Context(), c.Param("report_ulid"))
	if err != nil {
		c.JSON(toHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// ---------- helpers ----------

func parseIntDefault(s string, d int) int {
	if s == "" {
		return d
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
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
