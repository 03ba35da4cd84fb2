package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fleetrent/middleware"
	"fleetrent/models"
	"fleetrent/utils"
)

// dealerFrom pulls the authenticated tenant out of the request context,
// answering 401 itself when the auth middleware did not run.
func dealerFrom(c *gin.Context) (models.DealerID, bool) {
	dealer, ok := middleware.DealerFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Missing authentication context")
		return "", false
	}
	return dealer, true
}

// pageParams reads the page/limit query pair with sane bounds.
func pageParams(c *gin.Context) (page, limit int64) {
	page, _ = strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ = strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
