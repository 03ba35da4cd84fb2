package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fleetrent/services/report"
	"fleetrent/utils"
)

// DashboardHandler serves the read-only reporting endpoints.
type DashboardHandler struct {
	Service report.ReportService
}

func (h *DashboardHandler) StatsHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	stats, err := h.Service.Stats(c.Request.Context(), dealer)
	if err != nil {
		utils.GetLogger().Error("Dashboard stats failed", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
		return
	}
	utils.Respond(c, http.StatusOK, stats)
}

func (h *DashboardHandler) RecentActivityHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	activity, err := h.Service.Recent(c.Request.Context(), dealer, limit)
	if err != nil {
		utils.GetLogger().Error("Recent activity failed", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
		return
	}
	utils.Respond(c, http.StatusOK, activity)
}

func (h *DashboardHandler) RevenueChartHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	months, _ := strconv.Atoi(c.DefaultQuery("months", "6"))
	buckets, err := h.Service.RevenueChart(c.Request.Context(), dealer, months)
	if err != nil {
		utils.GetLogger().Error("Revenue chart failed", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
		return
	}
	utils.Respond(c, http.StatusOK, buckets)
}
