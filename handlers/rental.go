package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	rentalRepo "fleetrent/database/repository/rental"
	"fleetrent/models"
	"fleetrent/services/rental"
	"fleetrent/utils"
)

// RentalHandler serves the rental lifecycle endpoints.
type RentalHandler struct {
	Service rental.RentalService
}

func respondRentalError(c *gin.Context, err error) {
	var notFound rental.NotFoundError
	var invalid rental.InvalidStateError
	switch {
	case errors.As(err, &notFound):
		utils.RespondError(c, http.StatusNotFound, err.Error())
	case errors.As(err, &invalid):
		utils.RespondError(c, http.StatusBadRequest, err.Error())
	default:
		utils.GetLogger().Error("Rental operation failed", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
	}
}

func (h *RentalHandler) CreateRentalHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	var input models.CreateRentalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid rental payload: "+err.Error())
		return
	}

	detail, err := h.Service.Create(c.Request.Context(), dealer, input)
	if err != nil {
		respondRentalError(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, detail)
}

func (h *RentalHandler) ReturnRentalHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	var input models.ReturnRentalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid return payload: "+err.Error())
		return
	}

	detail, err := h.Service.Return(c.Request.Context(), dealer, c.Param("id"), input)
	if err != nil {
		respondRentalError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, detail)
}

func (h *RentalHandler) ExtendRentalHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	var input models.ExtendRentalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid extension payload: "+err.Error())
		return
	}

	detail, err := h.Service.Extend(c.Request.Context(), dealer, c.Param("id"), input)
	if err != nil {
		respondRentalError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, detail)
}

func (h *RentalHandler) CancelRentalHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	var input models.CancelRentalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid cancellation payload: "+err.Error())
		return
	}

	detail, err := h.Service.Cancel(c.Request.Context(), dealer, c.Param("id"), input)
	if err != nil {
		respondRentalError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, detail)
}

func (h *RentalHandler) GetRentalHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	detail, err := h.Service.GetByID(c.Request.Context(), dealer, c.Param("id"))
	if err != nil {
		respondRentalError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, detail)
}

func (h *RentalHandler) ListRentalsHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	page, limit := pageParams(c)
	f := rentalRepo.Filter{
		Status:     models.RentalStatus(c.Query("status")),
		CustomerID: c.Query("customerId"),
		VehicleID:  c.Query("vehicleId"),
		Search:     c.Query("search"),
		Page:       page,
		Limit:      limit,
	}

	rentals, total, err := h.Service.List(c.Request.Context(), dealer, f)
	if err != nil {
		respondRentalError(c, err)
		return
	}
	utils.RespondList(c, rentals, models.NewPagination(page, limit, total))
}
