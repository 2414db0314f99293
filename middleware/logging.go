package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// Logging returns a logging middleware for HTTP requests
func Logging() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(params gin.LogFormatterParams) string {
		requestID, _ := params.Keys[RequestIDKey].(string)
		line := fmt.Sprintf("%s | %3d | %13v | %15s | %-7s %s | %s\n",
			params.TimeStamp.Format(time.RFC3339),
			params.StatusCode,
			params.Latency,
			params.ClientIP,
			params.Method,
			params.Path,
			requestID,
		)
		if params.ErrorMessage != "" {
			line = line[:len(line)-1] + " | " + params.ErrorMessage + "\n"
		}
		return line
	})
}
