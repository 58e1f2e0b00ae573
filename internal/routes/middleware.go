package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDMiddleware tags every request with an id, honoring one supplied
// by the client. The id is echoed in the response and attached to the log
// line written for server errors, so write-path failures can be correlated
// with their diagnostics.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)

		c.Next()

		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Printf("request %s: %s %s -> %d", id, c.Request.Method, c.Request.URL.Path, c.Writer.Status())
		}
	}
}
