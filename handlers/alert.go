package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fleetrent/services/alert"
	"fleetrent/utils"
)

// AlertHandler serves the operator alert feed.
type AlertHandler struct {
	Service alert.AlertService
}

func (h *AlertHandler) ListAlertsHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	unacknowledgedOnly := c.DefaultQuery("unacknowledged", "false") == "true"
	alerts, err := h.Service.List(c.Request.Context(), dealer, unacknowledgedOnly)
	if err != nil {
		utils.GetLogger().Error("Alert listing failed", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
		return
	}
	utils.Respond(c, http.StatusOK, alerts)
}

func (h *AlertHandler) AcknowledgeAlertHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	if err := h.Service.Acknowledge(c.Request.Context(), dealer, c.Param("id")); err != nil {
		var notFound alert.NotFoundError
		if errors.As(err, &notFound) {
			utils.RespondError(c, http.StatusNotFound, err.Error())
			return
		}
		utils.GetLogger().Error("Alert acknowledge failed", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Alert acknowledged")
}
