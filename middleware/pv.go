package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cppla/folio/utils"
)

// PageViewRecorder records page views per day and path.
func PageViewRecorder(pv *utils.PageViews) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only record successful page views for GET requests.
		if c.Request.Method != http.MethodGet {
			return
		}
		status := c.Writer.Status()
		if status < 200 || status >= 400 {
			return
		}

		path := c.Request.URL.Path
		// Ignore non-content endpoints to avoid skewing PV
		if path == "/health" || strings.Contains(path, "/stats") || strings.HasPrefix(path, "/api/v1/config") {
			return
		}
		pv.Record(path)
	}
}
