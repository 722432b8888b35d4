package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body carried by every error reply
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse is the JSON body for delete confirmations
type MessageResponse struct {
	Message string `json:"message"`
}

// pagination reads skip/limit query parameters with the API defaults
func pagination(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}
	return skip, limit
}
