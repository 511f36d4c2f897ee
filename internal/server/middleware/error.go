package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nirmaan-tech/procure-api/internal/api"
)

// ErrorHandler converts errors attached by handlers into RFC 9457 problem
// responses. Handlers never write error bodies themselves.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		if problem, ok := err.(*api.Problem); ok {
			if problem.Log != nil {
				logger.Error("request failed",
					zap.String("path", c.Request.URL.Path),
					zap.Int("status", problem.Status),
					zap.Error(problem.Log),
				)
			}
			c.JSON(problem.Status, problem)
			c.Abort()
			return
		}

		// unknown error shape: catch-all 500
		logger.Error("unhandled error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, api.New(
			http.StatusInternalServerError,
			"Internal Server Error",
			"An unexpected error occurred.",
		))
		c.Abort()
	}
}
