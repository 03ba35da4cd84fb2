package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	paymentRepo "fleetrent/database/repository/payment"
	"fleetrent/models"
	"fleetrent/services/payment"
	"fleetrent/utils"
)

// PaymentHandler serves the payment bookkeeping endpoints.
type PaymentHandler struct {
	Service payment.PaymentService
}

func respondPaymentError(c *gin.Context, err error) {
	var notFound payment.NotFoundError
	var invalid payment.InvalidStateError
	switch {
	case errors.As(err, &notFound):
		utils.RespondError(c, http.StatusNotFound, err.Error())
	case errors.As(err, &invalid):
		utils.RespondError(c, http.StatusBadRequest, err.Error())
	default:
		utils.GetLogger().Error("Payment operation failed", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
	}
}

func (h *PaymentHandler) GetPaymentHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	p, err := h.Service.GetByID(c.Request.Context(), dealer, c.Param("id"))
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, p)
}

func (h *PaymentHandler) ListPaymentsHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	page, limit := pageParams(c)
	f := paymentRepo.Filter{
		Status:     models.PaymentStatus(c.Query("status")),
		Type:       models.PaymentType(c.Query("type")),
		RentalID:   c.Query("rentalId"),
		CustomerID: c.Query("customerId"),
		Page:       page,
		Limit:      limit,
	}

	payments, total, err := h.Service.List(c.Request.Context(), dealer, f)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	utils.RespondList(c, payments, models.NewPagination(page, limit, total))
}

func (h *PaymentHandler) ProcessPaymentHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	var input models.ProcessPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid payment payload: "+err.Error())
		return
	}

	p, err := h.Service.Process(c.Request.Context(), dealer, c.Param("id"), input)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, p)
}

func (h *PaymentHandler) RefundPaymentHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	var input models.RefundPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid refund payload: "+err.Error())
		return
	}

	p, err := h.Service.Refund(c.Request.Context(), dealer, c.Param("id"), input)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, p)
}

func (h *PaymentHandler) ApplyLateFeeHandler(c *gin.Context) {
	dealer, ok := dealerFrom(c)
	if !ok {
		return
	}
	var input models.ApplyLateFeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid late fee payload: "+err.Error())
		return
	}

	p, err := h.Service.ApplyLateFee(c.Request.Context(), dealer, c.Param("id"), input)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, p)
}
