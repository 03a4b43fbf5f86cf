package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/offrampkit/offramp-widget-backend/api/apistrings"
	basemodels "github.com/offrampkit/offramp-widget-backend/models"
)

// SessionMiddleware resolves the widget session named in the path and hangs
// it on the context. Expired or unknown sessions 404 before any handler runs.
func (s *Server) SessionMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.Param("session")
		if id == "" {
			ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.SessionNotFound))
			ctx.Abort()
			return
		}

		widget, ok := s.sessions.Get(id)
		if !ok {
			ctx.JSON(http.StatusNotFound, basemodels.NewError(apistrings.SessionNotFound))
			ctx.Abort()
			return
		}

		/// Accessible Widget Across the Request
		ctx.Set("widget", widget)
		ctx.Next()
	}
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {

		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST,HEAD,PATCH,OPTIONS,GET,PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
