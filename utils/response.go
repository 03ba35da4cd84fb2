// File: utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fleetrent/models"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Success    bool               `json:"success"`
	Data       any                `json:"data,omitempty"`
	Message    string             `json:"message,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// Respond sends a successful response carrying data.
func Respond(c *gin.Context, status int, data any) {
	c.JSON(status, APIResponse{Success: true, Data: data})
}

// RespondList sends a successful paginated list response.
func RespondList(c *gin.Context, data any, p models.Pagination) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Pagination: &p})
}

// RespondMessage sends a successful response with only a message.
func RespondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, APIResponse{Success: true, Message: message})
}

// RespondError sends a failure response with a human-readable message.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, APIResponse{Success: false, Message: message})
}

// ErrorHandler is a middleware that catches panics and returns a generic 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.JSON(http.StatusInternalServerError, APIResponse{
					Success: false,
					Message: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
