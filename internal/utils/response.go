package utils

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, data gin.H) {
	c.JSON(200, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{
		"success": false,
		"error":   msg,
	})
}

// ErrorWithCode adds the application error code and, when present, the raw
// provider payload so the caller can inspect what actually came back.
func ErrorWithCode(c *gin.Context, status int, code Code, msg string, raw string) {
	body := gin.H{
		"success": false,
		"code":    code,
		"error":   msg,
	}
	if raw != "" {
		body["raw_response"] = raw
	}
	c.JSON(status, body)
}
