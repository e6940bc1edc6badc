package server

import (
	"net/http"
	"time"

	"teakwood/storefront/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

const (
	sessionCookie      = "tw_session"
	sessionMaxAge      = 30 * 24 * 60 * 60
	sessionKey         = "session"
	columnsKey         = "columns"
	viewportHint       = "Sec-CH-Viewport-Width"
	viewportHintLegacy = "Viewport-Width"
)

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		})
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			entry.Error("Request failed")
		case c.Writer.Status() >= http.StatusBadRequest:
			entry.Warn("Request rejected")
		default:
			entry.Debug("Request served")
		}
	}
}

// clientHints asks browsers for their viewport width and derives the
// product grid column count from it.
func clientHints() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Accept-CH", viewportHint+", "+viewportHintLegacy)
		c.Header("Vary", viewportHint+", "+viewportHintLegacy)

		width := view.ParseViewportWidth(c.GetHeader(viewportHint))
		if width == 0 {
			width = view.ParseViewportWidth(c.GetHeader(viewportHintLegacy))
		}
		c.Set(columnsKey, view.ColumnsForWidth(width))
		c.Next()
	}
}

// session makes sure every visitor carries a session id. It keys the
// transient notices and the clipboard.
func (s *Server) session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, id, sessionMaxAge, "/", "", s.cfg.SecureCookies, true)
		}
		c.Set(sessionKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	handler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet},
	})

	return func(c *gin.Context) {
		handler.HandlerFunc(c.Writer, c.Request)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
