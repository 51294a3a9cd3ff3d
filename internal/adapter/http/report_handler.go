package http

import (
	"net/http"

	"creditline-backend/internal/usecase/report"

	"github.com/labstack/echo/v4"
)

type ReportHandler struct{ uc *report.Usecase }

func NewReportHandler(uc *report.Usecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) Dashboard(c echo.Context) error {
	today, err := parseDateParam(c, "date")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must be YYYY-MM-DD"})
	}
	dto, err := h.uc.Dashboard(c.Request().Context(), today)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ReportHandler) Aging(c echo.Context) error {
	today, err := parseDateParam(c, "date")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must be YYYY-MM-DD"})
	}
	buckets, err := h.uc.Aging(c.Request().Context(), today)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"buckets": buckets})
}

func (h *ReportHandler) Period(c echo.Context) error {
	start, err := requireDateParam(c, "start")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	end, err := requireDateParam(c, "end")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	dto, err := h.uc.Period(c.Request().Context(), start, end)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
