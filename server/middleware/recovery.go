// Package middleware provides the Gin middleware stack for the HTTP surface:
// panic recovery, request IDs, CORS, and request logging.
package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/regstatus/errors"
	"github.com/kbukum/regstatus/logger"
)

// Recovery returns a Gin middleware that recovers from panics and logs the stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered", map[string]interface{}{
					"error":     fmt.Sprintf("%v", err),
					"stack":     string(debug.Stack()),
					"path":      c.Request.URL.Path,
					"method":    c.Request.Method,
					"client_ip": c.ClientIP(),
				})
				appErr := errors.Internal(fmt.Errorf("%v", err))
				c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			}
		}()
		c.Next()
	}
}
