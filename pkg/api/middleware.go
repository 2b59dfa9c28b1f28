package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Headers the firmware sends on every poll. The dashboard is same origin in
// the common self-hosted setup, but CORS stays open so a browser pointed at
// a remote instance still works.
var deviceHeaders = []string{"ID", "Access-Token", "Battery-Voltage", "Firmware-Version", "RSSI"}

// SetupMiddleware installs recovery, request logging and CORS on the router.
func SetupMiddleware(r *gin.Engine) {
	r.Use(gin.Recovery())
	r.Use(RequestLogger())

	allowHeaders := append([]string{"Origin", "Content-Type", "Accept", "Authorization"}, deviceHeaders...)
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  allowHeaders,
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
}

// RequestLogger logs one line per request. Firmware traffic carries the MAC
// in the ID header; tagging it makes a single device's poll history easy to
// grep out of the combined log.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		mac := c.GetHeader("ID")

		c.Next()

		status := c.Writer.Status()
		var evt *zerolog.Event
		switch {
		case status >= 500:
			evt = log.Error()
		case status >= 400:
			evt = log.Warn()
		default:
			evt = log.Info()
		}

		if mac != "" {
			evt = evt.Str("device", mac)
		}
		evt.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.RequestURI()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}
