package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	vehicleRepo "fleetrent/database/repository/vehicle"
	"fleetrent/models"
	"fleetrent/services/vehicle"
	"fleetrent/utils"
)

// VehicleHandler serves fleet management endpoints.
type VehicleHandler struct {
	Service vehicle.VehicleService
}

func respondVehicleError(c *gin.Context, err error) {
	var notFound vehicle.NotFoundError
	var invalid vehicle.InvalidStateError
	switch {
	case errors.As(err, &notFound):
		utils.RespondError(c, http.StatusNotFound, err.Error())
	case errors.As(err, &invalid):
		utils.RespondError(c, http.StatusBadRequest, err.Error())
	default:
		utils.GetLogger().Error("Vehicle operation failed", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
	}
}

func (h *VehicleHandler) CreateVehicleHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	var input models.CreateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid vehicle payload: "+err.Error())
		return
	}

	v, err := h.Service.Create(c.Request.Context(), dealer, input)
	if err != nil {
		respondVehicleError(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, v)
}

func (h *VehicleHandler) GetVehicleHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	v, err := h.Service.GetByID(c.Request.Context(), dealer, c.Param("id"))
	if err != nil {
		respondVehicleError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, v)
}

func (h *VehicleHandler) ListVehiclesHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	page, limit := pageParams(c)
	f := vehicleRepo.Filter{
		Status:    models.VehicleStatus(c.Query("status")),
		Condition: models.VehicleCondition(c.Query("condition")),
		Page:      page,
		Limit:     limit,
	}

	vehicles, total, err := h.Service.List(c.Request.Context(), dealer, f)
	if err != nil {
		respondVehicleError(c, err)
		return
	}
	utils.RespondList(c, vehicles, models.NewPagination(page, limit, total))
}

func (h *VehicleHandler) UpdateVehicleHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	var input models.UpdateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid vehicle payload: "+err.Error())
		return
	}

	v, err := h.Service.Update(c.Request.Context(), dealer, c.Param("id"), input)
	if err != nil {
		respondVehicleError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, v)
}

func (h *VehicleHandler) RetireVehicleHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	v, err := h.Service.Retire(c.Request.Context(), dealer, c.Param("id"))
	if err != nil {
		respondVehicleError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, v)
}
