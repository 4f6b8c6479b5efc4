package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondError writes the JSON error envelope for a domain error. Server-side
// detail stays out of the response body for 5xx errors; callers are expected
// to log it before responding.
func RespondError(c *gin.Context, err error) {
	status := HTTPStatusFromError(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = "Internal server error"
	}
	c.JSON(status, gin.H{"success": false, "message": message})
}

func RespondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
