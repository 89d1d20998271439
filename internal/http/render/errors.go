package render

import "github.com/gin-gonic/gin"

func ErrorPage(c *gin.Context, status int, msg string, requestID string) {
	Page(c, status, "error.html", "Error", gin.H{
		"Status":    status,
		"Message":   msg,
		"RequestID": requestID,
	})
}
