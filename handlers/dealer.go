package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fleetrent/models"
	"fleetrent/services/dealer"
	"fleetrent/utils"
)

// DealerHandler serves account registration and authentication.
type DealerHandler struct {
	Service dealer.DealerService
}

func (h *DealerHandler) RegisterHandler(c *gin.Context) {
	var input models.RegisterDealerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid registration payload: "+err.Error())
		return
	}

	resp, err := h.Service.Register(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, dealer.ErrEmailTaken) {
			utils.RespondError(c, http.StatusConflict, err.Error())
			return
		}
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	utils.Respond(c, http.StatusCreated, resp)
}

func (h *DealerHandler) LoginHandler(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid login payload: "+err.Error())
		return
	}

	resp, err := h.Service.Login(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, dealer.ErrInvalidCredentials) {
			utils.RespondError(c, http.StatusUnauthorized, err.Error())
			return
		}
		utils.GetLogger().Error("Login failed", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.Respond(c, http.StatusOK, resp)
}

func (h *DealerHandler) LogoutHandler(c *gin.Context) {
	dealerID, ok := dealerFrom(c)
	if !ok {
		return
	}
	if err := h.Service.Revoke(c.Request.Context(), dealerID); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Logged out")
}
