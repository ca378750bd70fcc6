package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/parlor-billing/utils"
)

func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		entry := utils.InfoLogger.WithFields(logrus.Fields{
			"request_id": c.GetString(RequestIDKey),
			"client_ip":  c.ClientIP(),
		})
		if status >= 500 {
			entry = utils.ErrorLogger.WithFields(entry.Data)
			entry.Errorf("%s | %3d | %13v | %s", c.Request.Method, status, latency, path)
			return
		}
		entry.Infof("%s | %3d | %13v | %s", c.Request.Method, status, latency, path)
	}
}
