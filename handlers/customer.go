package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	customerRepo "fleetrent/database/repository/customer"
	"fleetrent/models"
	"fleetrent/services/customer"
	"fleetrent/utils"
)

// CustomerHandler serves customer management endpoints.
type CustomerHandler struct {
	Service customer.CustomerService
}

func respondCustomerError(c *gin.Context, err error) {
	var notFound customer.NotFoundError
	if errors.As(err, &notFound) {
		utils.RespondError(c, http.StatusNotFound, err.Error())
		return
	}
	utils.GetLogger().Error("Customer operation failed", zap.Error(err))
	utils.RespondError(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
}

func (h *CustomerHandler) CreateCustomerHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	var input models.CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid customer payload: "+err.Error())
		return
	}

	cust, err := h.Service.Create(c.Request.Context(), dealer, input)
	if err != nil {
		respondCustomerError(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, cust)
}

func (h *CustomerHandler) GetCustomerHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	detail, err := h.Service.GetByID(c.Request.Context(), dealer, c.Param("id"))
	if err != nil {
		respondCustomerError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, detail)
}

func (h *CustomerHandler) ListCustomersHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	page, limit := pageParams(c)
	f := customerRepo.Filter{
		Search:          c.Query("search"),
		IncludeInactive: c.Query("includeInactive") == "true",
		Page:            page,
		Limit:           limit,
	}

	customers, total, err := h.Service.List(c.Request.Context(), dealer, f)
	if err != nil {
		respondCustomerError(c, err)
		return
	}
	utils.RespondList(c, customers, models.NewPagination(page, limit, total))
}

func (h *CustomerHandler) UpdateCustomerHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	var input models.UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid customer payload: "+err.Error())
		return
	}

	cust, err := h.Service.Update(c.Request.Context(), dealer, c.Param("id"), input)
	if err != nil {
		respondCustomerError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, cust)
}

func (h *CustomerHandler) DeactivateCustomerHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	if err := h.Service.Deactivate(c.Request.Context(), dealer, c.Param("id")); err != nil {
		respondCustomerError(c, err)
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Customer deactivated")
}
